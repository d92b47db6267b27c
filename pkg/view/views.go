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

// Package view binds the resource hooks to the document tree builder and to
// the index name codec, and renders their results.
//
// Views are the callers of the hooks: after a successful create they refresh
// the list they show.
package view

import (
	"context"

	"github.com/codenotary/docadmin/embedded/doctree"
	"github.com/codenotary/docadmin/embedded/indexkey"
	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/resource"
)

// CollectionsView lists the collections of the store and creates new ones.
type CollectionsView struct {
	list   *resource.Fetcher[model.Collection]
	create *resource.Creator[model.Collection]
}

// NewCollectionsView ...
func NewCollectionsView(f *resource.Factory) *CollectionsView {
	v := &CollectionsView{
		list:   f.Collections(),
		create: f.CreateCollection(),
	}
	v.create.OnCreated(func(model.Collection) {
		v.list.Refresh(context.Background())
	})
	return v
}

// Mount fetches the collections once.
func (v *CollectionsView) Mount(ctx context.Context) {
	v.list.Use(ctx, model.All())
}

// Create validates c and creates it. The returned channel yields the
// outcome; the list is refreshed on success.
func (v *CollectionsView) Create(ctx context.Context, c model.Collection) (<-chan resource.Outcome[model.Collection], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return v.create.Create(ctx, c), nil
}

// Collections ...
func (v *CollectionsView) Collections() []model.Collection {
	return v.list.Data()
}

// Find returns the collection named name among the fetched ones.
func (v *CollectionsView) Find(name string) (model.Collection, bool) {
	for _, c := range v.list.Data() {
		if c.Name == name {
			return c, true
		}
	}
	return model.Collection{}, false
}

// Loading reports whether a list or create request is in flight.
func (v *CollectionsView) Loading() bool {
	return v.list.IsLoading() || v.create.IsLoading()
}

// Err returns the latest failure of the list, if any.
func (v *CollectionsView) Err() error {
	return v.list.Err()
}

// Wait blocks until creates and the refreshes they triggered have settled.
func (v *CollectionsView) Wait(ctx context.Context) error {
	if err := v.create.Wait(ctx); err != nil {
		return err
	}
	return v.list.Wait(ctx)
}

// Close ...
func (v *CollectionsView) Close() {
	v.create.Close()
	v.list.Close()
}

// DocumentsView lists the documents of one collection as trees.
type DocumentsView struct {
	collection model.Collection
	list       *resource.Fetcher[model.Document]
	create     *resource.Creator[model.Document]
}

// NewDocumentsView ...
func NewDocumentsView(f *resource.Factory, collection model.Collection) *DocumentsView {
	v := &DocumentsView{
		collection: collection,
		list:       f.Documents(collection.Name),
		create:     f.CreateDocument(collection.Name),
	}
	v.create.OnCreated(func(model.Document) {
		v.list.Refresh(context.Background())
	})
	return v
}

// Mount fetches the documents matching q, nil selects all of them. The
// documents are fetched again only when q changes.
func (v *DocumentsView) Mount(ctx context.Context, q *model.Query) {
	body := model.All()
	if q != nil {
		body = *q
	}
	v.list.Use(ctx, body, v.collection.Name, body)
}

// Create ...
func (v *DocumentsView) Create(ctx context.Context, doc model.Document) <-chan resource.Outcome[model.Document] {
	return v.create.Create(ctx, doc)
}

// Documents ...
func (v *DocumentsView) Documents() []model.Document {
	return v.list.Data()
}

// Trees unfolds every fetched document under a root named after its id.
func (v *DocumentsView) Trees() []doctree.Node {
	docs := v.list.Data()

	trees := make([]doctree.Node, 0, len(docs))
	for _, d := range docs {
		n, err := d.Tree(v.collection.IDKey)
		if err != nil {
			continue
		}
		trees = append(trees, n)
	}

	return trees
}

// HasMore reports whether more documents follow the fetched page.
func (v *DocumentsView) HasMore() (bool, string) {
	return v.list.HasMore()
}

// Loading ...
func (v *DocumentsView) Loading() bool {
	return v.list.IsLoading() || v.create.IsLoading()
}

// Err ...
func (v *DocumentsView) Err() error {
	return v.list.Err()
}

// Wait ...
func (v *DocumentsView) Wait(ctx context.Context) error {
	if err := v.create.Wait(ctx); err != nil {
		return err
	}
	return v.list.Wait(ctx)
}

// Close ...
func (v *DocumentsView) Close() {
	v.create.Close()
	v.list.Close()
}

// IndexesView lists the indexes of one collection at a time.
type IndexesView struct {
	collection string
	list       *resource.Fetcher[model.Index]
	create     *resource.Creator[model.Index]
}

// NewIndexesView ...
func NewIndexesView(f *resource.Factory) *IndexesView {
	v := &IndexesView{
		list:   f.Indexes(),
		create: f.CreateIndex(),
	}
	v.create.OnCreated(func(model.Index) {
		v.list.Refresh(context.Background())
	})
	return v
}

// Mount fetches the indexes of collection. Mounting again with another
// collection fetches its indexes.
func (v *IndexesView) Mount(ctx context.Context, collection string) {
	v.collection = collection
	v.list.Use(ctx, model.IndexesOf(collection), collection)
}

// Create encodes fields and the optional ordering key into the name of a
// new index of the mounted collection. Invalid field names are reported
// synchronously and nothing is sent.
func (v *IndexesView) Create(ctx context.Context, key indexkey.Key) (<-chan resource.Outcome[model.Index], error) {
	idx, err := model.NewIndex(v.collection, key)
	if err != nil {
		return nil, err
	}
	return v.create.Create(ctx, idx), nil
}

// Indexes ...
func (v *IndexesView) Indexes() []model.Index {
	return v.list.Data()
}

// Specs decodes the names of the fetched indexes.
func (v *IndexesView) Specs() []IndexSpec {
	indexes := v.list.Data()

	specs := make([]IndexSpec, len(indexes))
	for i, idx := range indexes {
		specs[i] = SpecOf(idx)
	}

	return specs
}

// Loading ...
func (v *IndexesView) Loading() bool {
	return v.list.IsLoading() || v.create.IsLoading()
}

// Err ...
func (v *IndexesView) Err() error {
	return v.list.Err()
}

// Wait ...
func (v *IndexesView) Wait(ctx context.Context) error {
	if err := v.create.Wait(ctx); err != nil {
		return err
	}
	return v.list.Wait(ctx)
}

// Close ...
func (v *IndexesView) Close() {
	v.create.Close()
	v.list.Close()
}
