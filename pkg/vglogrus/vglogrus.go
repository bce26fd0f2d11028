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

// Package vglogrus provides a logrus hook that writes entries through
// Valgrind's output channel.
package vglogrus

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vgshim/vgshim/pkg/valgrind"
)

// Hook implements logrus.Hook.
//
// The zero value forwards every level with a text formatter and no
// backtraces.
type Hook struct {
	// LogLevels are the levels the hook fires for. Empty means all levels.
	LogLevels []logrus.Level

	// Backtrace are the levels printed with a backtrace.
	Backtrace []logrus.Level

	// Formatter formats entries. Nil means a text formatter without colors.
	Formatter logrus.Formatter

	// Print and PrintBacktrace default to valgrind.Print and
	// valgrind.PrintBacktrace.
	Print          func(string) (int, error)
	PrintBacktrace func(string) (int, error)
}

var defaultFormatter = &logrus.TextFormatter{DisableColors: true}

// Levels implements logrus.Hook.Levels.
func (h *Hook) Levels() []logrus.Level {
	if len(h.LogLevels) == 0 {
		return logrus.AllLevels
	}
	return h.LogLevels
}

// Fire implements logrus.Hook.Fire.
func (h *Hook) Fire(entry *logrus.Entry) error {
	f := h.Formatter
	if f == nil {
		f = defaultFormatter
	}
	b, err := f.Format(entry)
	if err != nil {
		return fmt.Errorf("formatting entry: %w", err)
	}
	b = bytes.ReplaceAll(b, []byte{0}, []byte(`\x00`))

	emit := h.Print
	if emit == nil {
		emit = valgrind.Print
	}
	for _, l := range h.Backtrace {
		if l == entry.Level {
			emit = h.PrintBacktrace
			if emit == nil {
				emit = valgrind.PrintBacktrace
			}
			break
		}
	}
	if _, err := emit(string(b)); err != nil {
		return fmt.Errorf("printing entry: %w", err)
	}
	return nil
}
