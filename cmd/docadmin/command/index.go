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
	"fmt"
	"io"
	"strings"

	c "github.com/codenotary/docadmin/cmd/helper"
	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/cobra"
)

func (cl *commandline) index(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:       "index command",
		Short:     "Issue all index commands",
		Aliases:   []string{"i"},
		ValidArgs: []string{"list", "create", "decode"},
	}

	listCmd := &cobra.Command{
		Use:               "list collection",
		Short:             "List the indexes of a collection",
		Aliases:           []string{"l"},
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: cl.ConfigChain(cl.checkLoggedInAndConnect),
		PersistentPostRun: cl.disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewIndexesView(cl.factory)
			defer v.Close()

			v.Mount(cl.context, args[0])
			if err := settle(cl.context, v); err != nil {
				return err
			}

			return renderIndexes(cmd.OutOrStdout(), v)
		},
	}

	createCmd := &cobra.Command{
		Use:               "create collection field...",
		Short:             "Create an index over one or more fields of a collection",
		Example:           "index create books author.name year --order-by title",
		Aliases:           []string{"c"},
		Args:              cobra.MinimumNArgs(2),
		PersistentPreRunE: cl.ConfigChain(cl.checkLoggedInAndConnect),
		PersistentPostRun: cl.disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			orderBy, err := cmd.Flags().GetString("order-by")
			if err != nil {
				return err
			}

			key := indexkey.Key{Fields: args[1:]}
			if cmd.Flags().Changed("order-by") {
				key.OrderingKey = orderBy
				key.Ordered = true
			}

			v := view.NewIndexesView(cl.factory)
			defer v.Close()

			v.Mount(cl.context, args[0])
			if err := settle(cl.context, v); err != nil {
				return err
			}

			ch, err := v.Create(cl.context, key)
			if err != nil {
				return err
			}
			idx, err := created(ch)
			if err != nil {
				return err
			}
			if err := settle(cl.context, v); err != nil {
				return err
			}

			c.PrintfColorW(cmd.ErrOrStderr(), c.Green, "index '%s' created on '%s'\n", idx.Name, idx.Collection.Name)

			return renderIndexes(cmd.OutOrStdout(), v)
		},
	}
	createCmd.Flags().String("order-by", "", "field ordering the index")

	decodeCmd := &cobra.Command{
		Use:               "decode name...",
		Short:             "Decode index names into their fields and ordering key",
		Example:           "index decode owner__status__ORDER_BY__created",
		Aliases:           []string{"d"},
		Args:              cobra.MinimumNArgs(1),
		PersistentPreRunE: cl.ConfigChain(nil),
		PersistentPostRun: cl.disconnect,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]view.IndexSpec, len(args))
			for i, name := range args {
				specs[i] = view.SpecOf(model.Index{Name: name})
			}

			return render(cmd.OutOrStdout(), specs, func(w io.Writer) error {
				c.PrintTable(w, []string{"Name", "Fields", "Ordering key"}, len(specs), func(i int) []string {
					return []string{specs[i].Name, strings.Join(specs[i].Fields, ", "), specs[i].OrderingKey}
				}, fmt.Sprintf("%d index name(s)", len(specs)))
				return nil
			})
		},
	}

	ccmd.AddCommand(listCmd, createCmd, decodeCmd)
	cmd.AddCommand(ccmd)
}

func renderIndexes(w io.Writer, v *view.IndexesView) error {
	return render(w, v.Specs(), func(w io.Writer) error {
		view.RenderIndexes(w, v.Indexes())
		return nil
	})
}
