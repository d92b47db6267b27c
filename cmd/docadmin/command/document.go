/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package docadmin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	c "github.com/codenotary/docadmin/cmd/helper"
	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/resource"
	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/cobra"
)

// stdin is read by document create when the document is "-".
var stdin io.Reader = os.Stdin

func (cl *commandline) document(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "document command",
		Short:             "Issue all document commands",
		Aliases:           []string{"d", "doc"},
		PersistentPreRunE: cl.ConfigChain(cl.checkLoggedInAndConnect),
		PersistentPostRun: cl.disconnect,
		ValidArgs:         []string{"list", "create", "show"},
	}

	listCmd := &cobra.Command{
		Use:   "list collection",
		Short: "List the documents of a collection",
		Example: `document list books
document list books --eq author.name=Calvino --eq year=1979
document list books --limit 10 --start-from 9788804668237`,
		Aliases: []string{"l"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eqs, err := cmd.Flags().GetStringArray("eq")
			if err != nil {
				return err
			}
			q, err := queryOf(eqs)
			if err != nil {
				return err
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			startFrom, err := cmd.Flags().GetString("start-from")
			if err != nil {
				return err
			}

			col, err := cl.getCollection(args[0])
			if err != nil {
				return err
			}

			f := resource.NewFactory(cl.client, cl.resourceOptions().
				WithPage(client.Page{Limit: limit, StartFrom: startFrom}))

			v := view.NewDocumentsView(f, col)
			defer v.Close()

			v.Mount(cl.context, q)
			if err := settle(cl.context, v); err != nil {
				return err
			}

			if err := render(cmd.OutOrStdout(), v.Documents(), func(w io.Writer) error {
				return renderTrees(w, v.Trees())
			}); err != nil {
				return err
			}

			if more, lastKey := v.HasMore(); more {
				c.PrintfColorW(cmd.ErrOrStderr(), c.Yellow, "more documents follow, continue with --start-from %s\n", lastKey)
			}
			return nil
		},
	}
	listCmd.Flags().StringArray("eq", nil, "select documents whose field equals the value, as field=value. Nested fields are dotted")
	listCmd.Flags().Int("limit", 0, "maximum number of documents, 0 fetches everything")
	listCmd.Flags().String("start-from", "", "id of the document after which the listing starts")

	createCmd := &cobra.Command{
		Use:   "create collection document",
		Short: "Create a document in a collection. Use - to read the document from stdin",
		Example: `document create books '{"isbn":"9788804668237","title":"Se una notte d'inverno un viaggiatore"}'
cat book.json | document create books -`,
		Aliases: []string{"c"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(args[1])
			if args[1] == "-" {
				var err error
				if data, err = io.ReadAll(stdin); err != nil {
					return err
				}
			}

			doc, err := model.ParseDocument(data)
			if err != nil {
				return err
			}

			col, err := cl.getCollection(args[0])
			if err != nil {
				return err
			}

			v := view.NewDocumentsView(cl.factory, col)
			defer v.Close()

			saved, err := created(v.Create(cl.context, doc))
			if err != nil {
				return err
			}
			if err := v.Wait(cl.context); err != nil {
				return err
			}

			id, _ := saved.ID(col.IDKey)
			c.PrintfColorW(cmd.ErrOrStderr(), c.Green, "document '%s' created in '%s'\n", id, col.Name)

			return renderDocument(cmd.OutOrStdout(), saved, col.IDKey)
		},
	}

	showCmd := &cobra.Command{
		Use:     "show collection id",
		Short:   "Show one document",
		Aliases: []string{"s"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := cl.getCollection(args[0])
			if err != nil {
				return err
			}

			raw, err := cl.client.Get(cl.context, col.Name, args[1])
			if err != nil {
				return err
			}
			doc, err := model.ParseDocument(raw)
			if err != nil {
				return fmt.Errorf("%w: %v", client.ErrMalformedResponse, err)
			}

			return renderDocument(cmd.OutOrStdout(), doc, col.IDKey)
		},
	}

	ccmd.AddCommand(listCmd, createCmd, showCmd)
	cmd.AddCommand(ccmd)
}

func renderDocument(w io.Writer, doc model.Document, idKey string) error {
	return render(w, doc, func(w io.Writer) error {
		root, err := doc.Tree(idKey)
		if err != nil {
			return err
		}
		return renderTrees(w, []doctree.Node{root})
	})
}

// queryOf turns field=value pairs into a query. Values are JSON literals
// when they parse as such, strings otherwise.
func queryOf(eqs []string) (*model.Query, error) {
	if len(eqs) == 0 {
		return nil, nil
	}

	conditions := make([]model.Predicate, 0, len(eqs))
	for _, eq := range eqs {
		field, value, ok := strings.Cut(eq, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("%w: '%s' is not field=value", model.ErrIllegalArguments, eq)
		}

		var v interface{}
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		conditions = append(conditions, model.Eq{FieldName: field, Value: v})
	}

	q := model.Query{Matches: conditions[0]}
	if len(conditions) > 1 {
		q.Matches = model.And{Conditions: conditions}
	}
	return &q, nil
}
