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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/codenotary/docadmin/pkg/resource"
	"github.com/codenotary/docadmin/pkg/view"
	"github.com/spf13/viper"
)

var errCreateAborted = errors.New("create aborted")

type settler interface {
	Wait(ctx context.Context) error
	Err() error
}

// settle waits for the requests of v, including the refresh triggered by a
// create, and reports the failure they stored.
func settle(ctx context.Context, v settler) error {
	if err := v.Wait(ctx); err != nil {
		return err
	}
	return v.Err()
}

// created reads the outcome of a create.
func created[T any](ch <-chan resource.Outcome[T]) (T, error) {
	o, ok := <-ch
	if !ok {
		var zero T
		return zero, errCreateAborted
	}
	if o.Status == resource.StatusFailed {
		return o.Data, o.Err
	}
	return o.Data, nil
}

// render encodes v when a structured output is selected, otherwise it
// calls tree.
func render(w io.Writer, v interface{}, tree func(io.Writer) error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if format != view.FormatTree {
		return view.Encode(w, format, v)
	}
	return tree(w)
}

func renderTrees(w io.Writer, roots []doctree.Node) error {
	if len(roots) == 0 {
		_, err := fmt.Fprintln(w, "no documents")
		return err
	}
	return view.RenderTree(w, roots, viper.GetInt("depth"))
}
