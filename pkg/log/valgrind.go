// Copyright 2026 The vgshim Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"time"

	"github.com/vgshim/vgshim/pkg/valgrind"
	"golang.org/x/time/rate"
)

// ValgrindEmitter emits glog-formatted lines through Valgrind's output
// channel, so they interleave with the tool's own reports. Outside Valgrind
// it emits nothing.
//
// Warning lines are followed by a backtrace, at most once per interval given
// to NewValgrindEmitter. Further warnings in the same interval are printed
// without one.
type ValgrindEmitter struct {
	backtraces *rate.Limiter

	// Overridden in tests.
	print          func(string) (int, error)
	printBacktrace func(string) (int, error)
}

// NewValgrindEmitter returns a ValgrindEmitter allowing one backtrace per
// every. A zero or negative every disables backtraces.
func NewValgrindEmitter(every time.Duration) *ValgrindEmitter {
	limit := rate.Limit(0)
	if every > 0 {
		limit = rate.Every(every)
	}
	return &ValgrindEmitter{
		backtraces:     rate.NewLimiter(limit, 1),
		print:          valgrind.Print,
		printBacktrace: valgrind.PrintBacktrace,
	}
}

var escapedNUL = []byte(`\x00`)

// Emit implements Emitter.Emit.
func (e *ValgrindEmitter) Emit(depth int, level Level, timestamp time.Time, format string, v ...any) {
	b := formatLine(depth+1, level, timestamp, format, v...)
	// The bridge rejects messages with a NUL byte.
	b = bytes.ReplaceAll(b, []byte{0}, escapedNUL)

	emit := e.print
	if level == Warning && e.backtraces.Limit() > 0 && e.backtraces.Allow() {
		emit = e.printBacktrace
	}
	emit(string(b))
}
