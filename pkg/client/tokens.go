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
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/oauth2"
)

var (
	ErrEmptyTokenProvided     = errors.New("empty token provided")
	ErrTokenContentNotPresent = errors.New("token content not present")
)

// StaticTokenSource always returns the same bearer token.
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// FileTokenSource reads the bearer token from a file on every call, so that
// a login from another process is picked up without restarting.
type FileTokenSource struct {
	sync.Mutex
	path string
}

// NewFileTokenSource uses tokenFileName as is when it contains a path
// separator, otherwise it is looked up in the user home dir.
func NewFileTokenSource(tokenFileName string) (*FileTokenSource, error) {
	if tokenFileName == "" {
		tokenFileName = DefaultTokenFileName
	}

	p := tokenFileName
	if !strings.ContainsAny(tokenFileName, `/\`) {
		hd, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		p = filepath.Join(hd, tokenFileName)
	}

	return &FileTokenSource{path: p}, nil
}

// Path of the token file
func (ts *FileTokenSource) Path() string {
	return ts.path
}

// Token implements oauth2.TokenSource
func (ts *FileTokenSource) Token() (*oauth2.Token, error) {
	ts.Lock()
	defer ts.Unlock()

	content, err := os.ReadFile(ts.path)
	if err != nil {
		return nil, err
	}

	token := strings.TrimSpace(string(content))
	if token == "" {
		return nil, ErrTokenContentNotPresent
	}

	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// SetToken ...
func (ts *FileTokenSource) SetToken(token string) error {
	ts.Lock()
	defer ts.Unlock()

	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyTokenProvided
	}

	if err := os.MkdirAll(filepath.Dir(ts.path), 0700); err != nil {
		return err
	}

	return os.WriteFile(ts.path, []byte(token), 0600)
}

// DeleteToken ...
func (ts *FileTokenSource) DeleteToken() error {
	ts.Lock()
	defer ts.Unlock()

	err := os.Remove(ts.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsTokenPresent ...
func (ts *FileTokenSource) IsTokenPresent() (bool, error) {
	_, err := ts.Token()
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || errors.Is(err, ErrTokenContentNotPresent) {
		return false, nil
	}
	return false, err
}
