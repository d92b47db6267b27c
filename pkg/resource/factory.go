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

package resource

import (
	"encoding/json"

	"github.com/codenotary/docadmin/pkg/api/model"
	"github.com/codenotary/docadmin/pkg/client"
)

// Factory builds the hooks of every resource kind of the document store
// sharing one client, which carries the endpoint and the credential
// supplier, and one set of options.
type Factory struct {
	client client.Client
	opts   *Options
}

// NewFactory ...
func NewFactory(c client.Client, opts *Options) *Factory {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Factory{client: c, opts: opts}
}

// Client ...
func (f *Factory) Client() client.Client {
	return f.client
}

// Collections fetches collections. Use it with model.All() or a predicate
// on collection fields.
func (f *Factory) Collections() *Fetcher[model.Collection] {
	return NewFetcher(f.client, client.ResourceCollection, JSON[model.Collection](), f.opts)
}

// DocumentTypes fetches the legacy document types.
func (f *Factory) DocumentTypes() *Fetcher[model.DocumentType] {
	return NewFetcher(f.client, client.ResourceDocumentType, JSON[model.DocumentType](), f.opts)
}

// Documents fetches the documents of a collection.
func (f *Factory) Documents(collection string) *Fetcher[model.Document] {
	return NewFetcher[model.Document](f.client, collection, decodeDocument, f.opts)
}

// Indexes fetches indexes. Use it with model.IndexesOf(collection) and the
// collection name as dependency.
func (f *Factory) Indexes() *Fetcher[model.Index] {
	return NewFetcher(f.client, client.ResourceIndex, JSON[model.Index](), f.opts)
}

// CreateCollection creates collections from model.Collection payloads.
func (f *Factory) CreateCollection() *Creator[model.Collection] {
	return NewCreator(f.client, client.ResourceCollection, JSON[model.Collection](), f.opts)
}

// CreateDocumentType creates legacy document types.
func (f *Factory) CreateDocumentType() *Creator[model.DocumentType] {
	return NewCreator(f.client, client.ResourceDocumentType, JSON[model.DocumentType](), f.opts)
}

// CreateDocument creates documents in a collection.
func (f *Factory) CreateDocument(collection string) *Creator[model.Document] {
	return NewCreator[model.Document](f.client, collection, decodeDocument, f.opts)
}

// CreateIndex creates indexes from model.Index payloads, whose name carries
// the encoded fields and ordering key.
func (f *Factory) CreateIndex() *Creator[model.Index] {
	return NewCreator(f.client, client.ResourceIndex, JSON[model.Index](), f.opts)
}

func decodeDocument(raw json.RawMessage) (model.Document, error) {
	return model.ParseDocument(raw)
}
