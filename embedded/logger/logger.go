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

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidLoggerType = errors.New("invalid logger type")
	ErrInvalidLogLevel   = errors.New("invalid log level")

	levelToString = map[LogLevel]string{
		LogDebug: "debug",
		LogInfo:  "info",
		LogWarn:  "warn",
		LogError: "error",
	}
)

// LogLevel ...
type LogLevel int8

// Log levels
const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	if s, ok := levelToString[l]; ok {
		return s
	}
	return "all"
}

// Logger ...
type Logger interface {
	Errorf(string, ...interface{})
	Warningf(string, ...interface{})
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Close() error
}

// ParseLogLevel accepts the names used by LOG_LEVEL and the log-level setting.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LogError, nil
	case "warn", "warning":
		return LogWarn, nil
	case "info", "":
		return LogInfo, nil
	case "debug":
		return LogDebug, nil
	}
	return LogInfo, fmt.Errorf("%w: '%s'", ErrInvalidLogLevel, s)
}

func LogLevelFromEnvironment() LogLevel {
	logLevel, _ := os.LookupEnv("LOG_LEVEL")
	level, err := ParseLogLevel(logLevel)
	if err != nil {
		return LogInfo
	}
	return level
}

type (
	// Options can be used to configure a new logger.
	Options struct {
		// Name of the subsystem to prefix logs with
		Name string

		// The threshold for the logger. Anything less severe is supressed
		Level LogLevel

		// Where to write the logs to. Defaults to os.Stderr if nil
		Output io.Writer

		// The format in which logs will be formatted. (eg: text/json)
		LogFormat string

		// The file to append to instead of Output
		LogFile string
	}
)

// NewLogger is a factory for selecting a logger based on options
func NewLogger(opts *Options) (logger Logger, err error) {
	switch opts.LogFormat {
	case LogFormatJSON, LogFormatText, "":
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidLoggerType, opts.LogFormat)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.LogFile != "" {
		f, err := openLogFile(opts.LogFile)
		if err != nil {
			return nil, err
		}
		out = f
	}

	if opts.LogFormat == LogFormatJSON {
		return NewJSONLogger(opts.Name, out, opts.Level), nil
	}
	return NewSimpleLoggerWithLevel(opts.Name, out, opts.Level), nil
}

func openLogFile(file string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log folder: %w", err)
	}

	out, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to create log file: %w", err)
	}
	return out, nil
}

func closeOutput(out io.Writer) error {
	if f, ok := out.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		return f.Close()
	}
	return nil
}
