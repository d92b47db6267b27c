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

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// pending counts dispatched requests not settled yet. It is guarded by the
// mutex of the owning hook.
type pending struct {
	n    int
	idle chan struct{}
}

func (p *pending) add() {
	if p.n == 0 {
		p.idle = make(chan struct{})
	}
	p.n++
}

func (p *pending) done() {
	p.n--
	if p.n == 0 {
		close(p.idle)
	}
}

// settled is closed once every request dispatched so far has settled.
func (p *pending) settled() <-chan struct{} {
	if p.n == 0 {
		return closedCh
	}
	return p.idle
}
