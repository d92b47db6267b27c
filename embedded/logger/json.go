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
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultTimeFormat is the time format to use for JSON output
	DefaultTimeFormat = "2006-01-02T15:04:05.000000Z07:00"
	// callerDepth skips log and the level method to reach the caller
	callerDepth = 2
	// LogFormatText is the log format to use for TEXT output
	LogFormatText = "text"
	// LogFormatJSON is the log format to use for JSON output
	LogFormatJSON = "json"
)

var _ Logger = (*JsonLogger)(nil)

// JsonLogger writes one json object per line.
type JsonLogger struct {
	name    string
	timeFnc func() time.Time

	mutex sync.Mutex
	out   io.Writer

	level int32
}

// NewJSONLogger returns a json logger.
func NewJSONLogger(name string, out io.Writer, level LogLevel) *JsonLogger {
	return &JsonLogger{
		name:    name,
		timeFnc: time.Now,
		out:     out,
		level:   int32(level),
	}
}

func (l *JsonLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < LogLevel(atomic.LoadInt32(&l.level)) {
		return
	}

	vals := map[string]interface{}{
		"message":   fmt.Sprintf(msg, args...),
		"timestamp": l.timeFnc().Format(DefaultTimeFormat),
		"level":     level.String(),
	}

	if l.name != "" {
		vals["module"] = l.name
	}

	if _, file, line, ok := runtime.Caller(callerDepth); ok {
		vals["caller"] = fmt.Sprintf("%s:%d", file, line)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	json.NewEncoder(l.out).Encode(vals)
}

// Debugf prints the message and args at DEBUG level
func (l *JsonLogger) Debugf(msg string, args ...interface{}) {
	l.log(LogDebug, msg, args...)
}

// Infof prints the message and args at INFO level
func (l *JsonLogger) Infof(msg string, args ...interface{}) {
	l.log(LogInfo, msg, args...)
}

// Warningf prints the message and args at WARN level
func (l *JsonLogger) Warningf(msg string, args ...interface{}) {
	l.log(LogWarn, msg, args...)
}

// Errorf prints the message and args at ERROR level
func (l *JsonLogger) Errorf(msg string, args ...interface{}) {
	l.log(LogError, msg, args...)
}

// SetLogLevel updates the logging level
func (l *JsonLogger) SetLogLevel(level LogLevel) {
	atomic.StoreInt32(&l.level, int32(level))
}

// Name returns the loggers name
func (l *JsonLogger) Name() string {
	return l.name
}

// Close the logger
func (l *JsonLogger) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return closeOutput(l.out)
}
