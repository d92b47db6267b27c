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

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors returned by the client
var (
	// ErrIllegalArguments indicates illegal arguments provided to a method
	ErrIllegalArguments = errors.New("illegal arguments")

	// ErrNetwork is matched by every transport or HTTP status failure
	ErrNetwork = errors.New("network error")

	// ErrAuth is matched by every failure to obtain a bearer credential
	ErrAuth = errors.New("authentication error")

	// ErrMalformedResponse is used when the response body is not the expected json
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotFound is used when the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrEmptyToken is used when the credential supplier returns no access token
	ErrEmptyToken = errors.New("empty access token")
)

// NetworkError reports a transport failure or an unsuccessful HTTP status.
type NetworkError struct {
	Op         string
	Resource   string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(e.StatusCode)
		}
		return fmt.Sprintf("%s %s: %s: status %d: %s", e.Op, e.Resource, ErrNetwork, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Resource, ErrNetwork, e.Err)
}

func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the store rejected the credential.
func (e *NetworkError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AuthError reports a failure of the credential supplier.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuth
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a credential failure, local or remote.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrAuth) {
		return true
	}
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.Unauthorized()
}
