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

// Package client talks JSON over HTTP to the document store API. Every
// request carries a bearer token obtained from the configured credential
// supplier immediately before dispatch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/google/uuid"
)

// Well-known resource names of the API. Documents live under the name of
// their collection.
const (
	ResourceCollection   = "collection"
	ResourceIndex        = "index"
	ResourceDocumentType = "document_type"
)

const (
	queryPath          = "query"
	requestIDHeader    = "X-Request-Id"
	maxErrorBodyLength = 4096
)

// Client ...
type Client interface {
	// Query posts body to /{resource}/query and returns the data sequence.
	Query(ctx context.Context, resource string, body interface{}, page Page) (*QueryResult, error)
	// Create posts payload to /{resource} and returns the created resource.
	Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error)
	// Get fetches /{resource}/{id}.
	Get(ctx context.Context, resource string, id string) (json.RawMessage, error)
}

// Page restricts a query to at most Limit results starting after StartFrom.
// The zero Page imposes no restriction.
type Page struct {
	Limit     int
	StartFrom string
}

// QueryResult ...
type QueryResult struct {
	Data    []json.RawMessage `json:"data"`
	HasMore bool              `json:"has_more"`
	LastKey string            `json:"last_key,omitempty"`
}

type docClient struct {
	options *Options
	base    *url.URL
	logger  logger.Logger
}

// NewClient ...
func NewClient(opts *Options) (Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimSuffix(opts.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint '%s': %v", ErrIllegalArguments, opts.Endpoint, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported endpoint scheme '%s'", ErrIllegalArguments, base.Scheme)
	}

	l := opts.Logger
	if l == nil {
		l = logger.NewDiscardLogger()
	}

	return &docClient{
		options: opts,
		base:    base,
		logger:  l,
	}, nil
}

func (c *docClient) Query(ctx context.Context, resource string, body interface{}, page Page) (*QueryResult, error) {
	if resource == "" || page.Limit < 0 {
		return nil, ErrIllegalArguments
	}

	if body == nil {
		body = struct{}{}
	}

	q := url.Values{}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if page.StartFrom != "" {
		q.Set("start_from", page.StartFrom)
	}

	raw, err := c.do(ctx, "query", http.MethodPost, c.url(q, resource, queryPath), resource, body)
	if err != nil {
		return nil, err
	}

	var res QueryResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrMalformedResponse, resource, err)
	}

	if res.Data == nil {
		res.Data = []json.RawMessage{}
	}

	return &res, nil
}

func (c *docClient) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	if resource == "" || payload == nil {
		return nil, ErrIllegalArguments
	}

	raw, err := c.do(ctx, "create", http.MethodPost, c.url(nil, resource), resource, payload)
	if err != nil {
		return nil, err
	}

	return unwrapCreated(resource, raw)
}

func (c *docClient) Get(ctx context.Context, resource string, id string) (json.RawMessage, error) {
	if resource == "" || id == "" {
		return nil, ErrIllegalArguments
	}

	raw, err := c.do(ctx, "get", http.MethodGet, c.url(nil, resource, id), resource, nil)
	if err != nil {
		return nil, err
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: get %s/%s", ErrMalformedResponse, resource, id)
	}

	return raw, nil
}

// unwrapCreated accepts either the created object itself or an envelope
// whose only key is "data".
func unwrapCreated(resource string, raw []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrMalformedResponse, resource, err)
	}

	if data, ok := envelope["data"]; ok && len(envelope) == 1 {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return json.RawMessage(trimmed), nil
		}
	}

	return json.RawMessage(raw), nil
}

func (c *docClient) url(q url.Values, segments ...string) string {
	u := *c.base

	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	u.Path = c.base.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.base.EscapedPath() + "/" + strings.Join(escaped, "/")

	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	return u.String()
}

func (c *docClient) do(ctx context.Context, op, method, target, resource string, body interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Op: op, Resource: resource, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
		}
		reqBody = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
	}

	tok, err := c.options.TokenSource.Token()
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, &AuthError{Err: ErrEmptyToken}
	}

	requestID := uuid.NewString()

	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.options.UserAgent != "" {
		req.Header.Set("User-Agent", c.options.UserAgent)
	}

	c.logger.Debugf("%s %s (request %s)", method, target, requestID)

	resp, err := c.options.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Resource: resource, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &NetworkError{
			Op:         op,
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	c.logger.Debugf("%s %s: status %d, %d bytes (request %s)", method, target, resp.StatusCode, len(raw), requestID)

	return raw, nil
}

// errorMessage extracts the "msg" field the API puts in error bodies.
func errorMessage(raw []byte) string {
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Msg != "" {
		return body.Msg
	}

	if len(raw) > maxErrorBodyLength {
		raw = raw[:maxErrorBodyLength]
	}
	return strings.TrimSpace(string(raw))
}
