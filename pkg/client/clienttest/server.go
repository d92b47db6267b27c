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

// Package clienttest provides an in-memory document store API and mocks
// for testing code built on the client package.
package clienttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/codenotary/docadmin/pkg/client"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BasePath is the path prefix the fake API is mounted under.
const BasePath = "/dynamoplus"

// Operations counted by the server.
const (
	OpQuery  = "query"
	OpCreate = "create"
	OpGet    = "get"
)

type entry struct {
	id     string
	raw    json.RawMessage
	fields map[string]interface{}
}

type failure struct {
	status int
	msg    string
}

// Server is an in-memory document store API served over HTTP.
//
// Collections, document types and indexes are keyed by "name", documents by
// the idKey of their collection. Requests can be made to fail per operation
// and resource, and held until released to observe in-flight state.
type Server struct {
	mu sync.Mutex

	token     string
	resources map[string][]*entry
	failures  map[string]failure
	requests  map[string]int
	inFlight  int
	gate      chan struct{}
	lastReq   *http.Request

	// EnvelopeCreated makes create responses wrap the object in {"data": ...}
	EnvelopeCreated bool

	srv *httptest.Server
}

// NewServer starts a fake API accepting only the given bearer token. An
// empty token disables authentication.
func NewServer(token string) *Server {
	s := &Server{
		token:     token,
		resources: make(map[string][]*entry),
		failures:  make(map[string]failure),
		requests:  make(map[string]int),
	}

	// ids may contain escaped slashes
	r := mux.NewRouter().UseEncodedPath()
	api := r.PathPrefix(BasePath).Subrouter()
	api.Use(s.track, s.authenticate)
	api.HandleFunc("/{resource}/query", s.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/{resource}", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/{resource}/{id}", s.handleGet).Methods(http.MethodGet)

	s.srv = httptest.NewServer(r)

	return s
}

// URL is the endpoint to configure clients with.
func (s *Server) URL() string {
	return s.srv.URL + BasePath
}

// Close shuts the server down, releasing held requests first.
func (s *Server) Close() {
	s.Release()
	s.srv.Close()
}

// Client returns a client of this server authenticated with token.
func (s *Server) Client(token string) (client.Client, error) {
	return client.NewClient(client.DefaultOptions().
		WithEndpoint(s.URL()).
		WithTokenSource(client.StaticTokenSource(token)))
}

// Put stores obj under resource, replacing any object with the same id.
func (s *Server) Put(resource string, obj interface{}) error {
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.put(resource, raw, true)
	return err
}

// MustPut is like Put but panics on error.
func (s *Server) MustPut(resource string, obj interface{}) {
	if err := s.Put(resource, obj); err != nil {
		panic(err)
	}
}

// AddCollection stores a collection named name whose documents are keyed by idKey.
func (s *Server) AddCollection(name, idKey string) {
	s.MustPut(client.ResourceCollection, map[string]interface{}{
		"name":   name,
		"idKey":  idKey,
		"active": true,
	})
}

// AddDocument stores a document, given as JSON text, in a collection.
func (s *Server) AddDocument(collection, doc string) {
	s.MustPut(collection, json.RawMessage(doc))
}

// Fail makes every op on resource answer with status and msg until Recover.
func (s *Server) Fail(op, resource string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op+" "+resource] = failure{status: status, msg: msg}
}

// Recover clears the failures of op on resource.
func (s *Server) Recover(op, resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, op+" "+resource)
}

// Requests is the number of op requests received for resource, failed ones included.
func (s *Server) Requests(op, resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests[op+" "+resource]
}

// InFlight is the number of requests being served.
func (s *Server) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inFlight
}

// LastRequestHeader returns the headers of the latest request received.
func (s *Server) LastRequestHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastReq == nil {
		return nil
	}
	return s.lastReq.Header.Clone()
}

// Hold blocks every request received from now on until Release.
func (s *Server) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate == nil {
		s.gate = make(chan struct{})
	}
}

// Release lets held requests through.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Objects returns the raw objects stored under resource, in insertion order.
func (s *Server) Objects(resource string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]json.RawMessage, len(s.resources[resource]))
	for i, e := range s.resources[resource] {
		res[i] = e.raw
	}
	return res
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource := pathVar(r, "resource")

		op := OpGet
		if r.Method == http.MethodPost {
			op = OpCreate
			if strings.HasSuffix(r.URL.Path, "/query") {
				op = OpQuery
			}
		}

		s.mu.Lock()
		s.requests[op+" "+resource]++
		s.inFlight++
		s.lastReq = r
		gate := s.gate
		f, failing := s.failures[op+" "+resource]
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.inFlight--
			s.mu.Unlock()
		}()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeError(w, f.status, f.msg)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	resource := pathVar(r, "resource")

	var body struct {
		Matches map[string]interface{} `json:"matches"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed query: "+err.Error())
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	startFrom := r.URL.Query().Get("start_from")

	s.mu.Lock()
	entries := append([]*entry(nil), s.resources[resource]...)
	s.mu.Unlock()

	var matched []*entry
	for _, e := range entries {
		if body.Matches == nil || matches(body.Matches, e.fields) {
			matched = append(matched, e)
		}
	}

	if startFrom != "" {
		for i, e := range matched {
			if e.id == startFrom {
				matched = matched[i+1:]
				break
			}
		}
	}

	hasMore := false
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
		hasMore = true
	}

	res := struct {
		Data    []json.RawMessage `json:"data"`
		HasMore bool              `json:"has_more"`
		LastKey string            `json:"last_key,omitempty"`
	}{
		Data:    make([]json.RawMessage, len(matched)),
		HasMore: hasMore,
	}

	for i, e := range matched {
		res.Data[i] = e.raw
	}
	if hasMore {
		res.LastKey = matched[len(matched)-1].id
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	resource := pathVar(r, "resource")

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload: "+err.Error())
		return
	}

	s.mu.Lock()
	e, err := s.put(resource, raw, false)
	s.mu.Unlock()

	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}

	if s.EnvelopeCreated {
		writeJSON(w, http.StatusCreated, map[string]json.RawMessage{"data": e.raw})
		return
	}
	writeJSON(w, http.StatusCreated, e.raw)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	resource, id := pathVar(r, "resource"), pathVar(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.resources[resource] {
		if e.id == id {
			writeJSON(w, http.StatusOK, e.raw)
			return
		}
	}

	writeError(w, http.StatusNotFound, fmt.Sprintf("%s '%s' not found", resource, id))
}

// pathVar returns the unescaped value of a route variable.
func pathVar(r *http.Request, name string) string {
	v := mux.Vars(r)[name]
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

type apiError struct {
	status int
	msg    string
}

func (e *apiError) Error() string {
	return e.msg
}

func statusOf(err error) int {
	if apiErr, ok := err.(*apiError); ok {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

// put must be called with s.mu held.
func (s *Server) put(resource string, raw json.RawMessage, replace bool) (*entry, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, &apiError{status: http.StatusBadRequest, msg: "payload is not an object"}
	}

	idKey, err := s.idKeyOf(resource)
	if err != nil {
		return nil, err
	}

	id, ok := fields[idKey]
	if !ok || id == nil || id == "" {
		if resource == client.ResourceCollection || resource == client.ResourceDocumentType || resource == client.ResourceIndex {
			return nil, &apiError{status: http.StatusBadRequest, msg: "missing " + idKey}
		}

		id = uuid.NewString()
		fields[idKey] = id

		raw, err = json.Marshal(fields)
		if err != nil {
			return nil, err
		}
	}

	e := &entry{id: fmt.Sprint(id), raw: raw, fields: fields}

	for i, other := range s.resources[resource] {
		if other.id == e.id {
			if !replace {
				return nil, &apiError{status: http.StatusConflict, msg: fmt.Sprintf("%s '%s' already exists", resource, e.id)}
			}
			s.resources[resource][i] = e
			return e, nil
		}
	}

	s.resources[resource] = append(s.resources[resource], e)

	return e, nil
}

// idKeyOf must be called with s.mu held.
func (s *Server) idKeyOf(resource string) (string, error) {
	switch resource {
	case client.ResourceCollection, client.ResourceDocumentType, client.ResourceIndex:
		return "name", nil
	}

	for _, c := range s.resources[client.ResourceCollection] {
		if c.id == resource {
			if idKey, ok := c.fields["idKey"].(string); ok && idKey != "" {
				return idKey, nil
			}
			return "id", nil
		}
	}

	return "", &apiError{status: http.StatusNotFound, msg: fmt.Sprintf("collection '%s' not found", resource)}
}

func matches(predicate map[string]interface{}, fields map[string]interface{}) bool {
	if eq, ok := predicate["eq"].(map[string]interface{}); ok {
		v, found := lookup(fields, eq["field_name"])
		return found && reflect.DeepEqual(v, eq["value"])
	}

	if rng, ok := predicate["range"].(map[string]interface{}); ok {
		v, found := lookup(fields, rng["field_name"])
		return found && compare(v, rng["from"]) >= 0 && compare(v, rng["to"]) <= 0
	}

	if and, ok := predicate["and"].([]interface{}); ok {
		for _, c := range and {
			p, ok := c.(map[string]interface{})
			if !ok || !matches(p, fields) {
				return false
			}
		}
		return true
	}

	return false
}

// lookup resolves a dotted field name such as "collection.name".
func lookup(fields map[string]interface{}, name interface{}) (interface{}, bool) {
	path, ok := name.(string)
	if !ok {
		return nil, false
	}

	var cur interface{} = fields
	for _, p := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

func compare(a, b interface{}) int {
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}
