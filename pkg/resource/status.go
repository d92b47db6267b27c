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

// Status of the latest request dispatched by a hook.
type Status int

const (
	// StatusIdle means no request was ever dispatched.
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusSuccess: "success",
	StatusFailed:  "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Outcome is the state of a hook after its latest settlement.
//
// On failure Data keeps the value held before the failed request and Err
// holds the cause; on success Err is nil.
type Outcome[T any] struct {
	Status Status
	Data   T
	Err    error
}
