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
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/codenotary/docadmin/embedded/logger"
	"github.com/codenotary/docadmin/pkg/client"
)

// Creator creates resources one request per call. It does not refresh any
// Fetcher: callers chain a Refresh from OnCreated or after the outcome.
type Creator[T any] struct {
	client    client.Client
	resource  string
	transform Transform[T]
	log       logger.Logger
	metrics   *Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	closed      bool
	lastCreated T
	created     bool
	loading     bool
	outcome     Outcome[T]
	pending     pending
	onCreated   func(T)
}

// NewCreator returns a Creator posting payloads to resource.
func NewCreator[T any](c client.Client, resource string, transform Transform[T], opts *Options) *Creator[T] {
	if transform == nil {
		transform = JSON[T]()
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Creator[T]{
		client:    c,
		resource:  resource,
		transform: transform,
		log:       opts.logger(),
		metrics:   opts.Metrics,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Resource is the name of the remote resource.
func (c *Creator[T]) Resource() string {
	return c.resource
}

// OnCreated registers fn to be called with every created resource, outside
// of any lock. It replaces the previous callback.
func (c *Creator[T]) OnCreated(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onCreated = fn
}

// Create dispatches one create request with payload and returns without
// blocking. The returned channel receives the outcome of this request once
// settled; it is closed without a value if the Creator is already closed.
func (c *Creator[T]) Create(ctx context.Context, payload interface{}) <-chan Outcome[T] {
	done := make(chan Outcome[T], 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(done)
		return done
	}

	c.loading = true
	c.outcome = Outcome[T]{Status: StatusLoading, Data: c.lastCreated}
	c.pending.add()

	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.ctx, cancel)

	start := c.metrics.dispatched(c.resource, opCreate)

	go func() {
		defer cancel()
		defer stop()
		defer close(done)

		var created T

		raw, err := c.client.Create(reqCtx, c.resource, payload)
		if err == nil {
			created, err = c.transform(raw)
			if err != nil {
				err = fmt.Errorf("%w: %s: %v", client.ErrMalformedResponse, c.resource, err)
			}
		}

		c.metrics.settled(c.resource, opCreate, start, err)

		if outcome, ok := c.settle(created, err); ok {
			done <- outcome
		}

		c.mu.Lock()
		c.pending.done()
		c.mu.Unlock()
	}()

	return done
}

func (c *Creator[T]) settle(created T, err error) (Outcome[T], bool) {
	c.mu.Lock()

	c.loading = false

	if c.closed {
		c.mu.Unlock()
		return Outcome[T]{}, false
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.log.Debugf("create %s canceled", c.resource)
		} else {
			c.log.Warningf("create %s failed: %v", c.resource, err)
		}

		c.outcome = Outcome[T]{Status: StatusFailed, Data: c.lastCreated, Err: err}
		outcome := c.outcome
		c.mu.Unlock()

		return outcome, true
	}

	c.lastCreated = created
	c.created = true
	c.outcome = Outcome[T]{Status: StatusSuccess, Data: created}
	c.log.Debugf("create %s succeeded", c.resource)

	outcome := c.outcome
	onCreated := c.onCreated

	c.mu.Unlock()

	if onCreated != nil {
		onCreated(created)
	}

	return outcome, true
}

// LastCreated returns the resource of the latest successful create, and
// false if none succeeded yet.
func (c *Creator[T]) LastCreated() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastCreated, c.created
}

// IsLoading is set when a request is dispatched and cleared when any
// request settles.
func (c *Creator[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}

// Outcome returns the state after the latest dispatch or settlement.
func (c *Creator[T]) Outcome() Outcome[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outcome
}

// Err returns the cause of the latest settlement if it failed.
func (c *Creator[T]) Err() error {
	return c.Outcome().Err
}

// Wait blocks until every request dispatched so far has settled.
func (c *Creator[T]) Wait(ctx context.Context) error {
	c.mu.Lock()
	settled := c.pending.settled()
	c.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels in-flight requests and freezes the state.
func (c *Creator[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
}
