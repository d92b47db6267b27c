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

	c "github.com/codenotary/docadmin/cmd/helper"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/cobra"
)

func (cl *commandline) collection(cmd *cobra.Command) {
	ccmd := &cobra.Command{
		Use:               "collection command",
		Short:             "Issue all collection commands",
		Aliases:           []string{"c"},
		PersistentPreRunE: cl.ConfigChain(cl.checkLoggedInAndConnect),
		PersistentPostRun: cl.disconnect,
		ValidArgs:         []string{"list", "create", "show"},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List all collections",
		Aliases: []string{"l"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewCollectionsView(cl.factory)
			defer v.Close()

			v.Mount(cl.context)
			if err := settle(cl.context, v); err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), v.Collections(), func(w io.Writer) error {
				view.RenderCollections(w, v.Collections())
				return nil
			})
		},
	}

	createCmd := &cobra.Command{
		Use:     "create name",
		Short:   "Create a new collection",
		Example: "collection create books --id-key isbn --ordering-key title",
		Aliases: []string{"c"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idKey, err := cmd.Flags().GetString("id-key")
			if err != nil {
				return err
			}
			orderingKey, err := cmd.Flags().GetString("ordering-key")
			if err != nil {
				return err
			}

			v := view.NewCollectionsView(cl.factory)
			defer v.Close()

			v.Mount(cl.context)
			if err := settle(cl.context, v); err != nil {
				return err
			}

			ch, err := v.Create(cl.context, model.Collection{
				Name:        args[0],
				IDKey:       idKey,
				OrderingKey: orderingKey,
				Active:      true,
			})
			if err != nil {
				return err
			}
			col, err := created(ch)
			if err != nil {
				return err
			}
			if err := settle(cl.context, v); err != nil {
				return err
			}

			c.PrintfColorW(cmd.ErrOrStderr(), c.Green, "collection '%s' created\n", col.Name)

			return render(cmd.OutOrStdout(), v.Collections(), func(w io.Writer) error {
				view.RenderCollections(w, v.Collections())
				return nil
			})
		},
	}
	createCmd.Flags().String("id-key", "id", "field holding the id of the documents")
	createCmd.Flags().String("ordering-key", "", "field ordering the documents")

	showCmd := &cobra.Command{
		Use:     "show name",
		Short:   "Show one collection",
		Aliases: []string{"s"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := cl.getCollection(args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), col, func(w io.Writer) error {
				view.RenderCollections(w, []model.Collection{col})
				return nil
			})
		},
	}

	ccmd.AddCommand(listCmd, createCmd, showCmd)
	cmd.AddCommand(ccmd)
}

func (cl *commandline) getCollection(name string) (model.Collection, error) {
	raw, err := cl.client.Get(cl.context, client.ResourceCollection, name)
	if err != nil {
		return model.Collection{}, err
	}

	var col model.Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		return model.Collection{}, fmt.Errorf("%w: %v", client.ErrMalformedResponse, err)
	}
	return col, nil
}
