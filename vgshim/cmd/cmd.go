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

// Package cmd holds implementations of the vgshim commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/log"
)

// ErrorLogger is where error messages should be written to, in addition to
// stderr. It is set from --log.
var ErrorLogger io.Writer

type jsonError struct {
	Msg  string    `json:"msg"`
	Time time.Time `json:"time"`
}

// Errorf logs error to --log, to stderr, and debug logs. It returns
// subcommands.ExitFailure for convenience with subcommand.Execute() methods.
func Errorf(format string, args ...any) subcommands.ExitStatus {
	log.Warningf("FATAL ERROR: "+format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	writeError(format, args...)
	return subcommands.ExitFailure
}

// Fatalf logs the same way as Errorf() does, plus *exits* the process.
func Fatalf(format string, args ...any) {
	Errorf(format, args...)
	// Return an error that is unlikely to be used by the application.
	os.Exit(128)
}

func writeError(format string, args ...any) {
	if ErrorLogger == nil {
		return
	}
	// Errors are written in JSON, one object per line, so they can be read
	// back by tooling.
	j := jsonError{
		Msg:  fmt.Sprintf(format, args...),
		Time: time.Now(),
	}
	b, err := json.Marshal(j)
	if err != nil {
		panic(err)
	}
	if _, err := ErrorLogger.Write(append(b, '\n')); err != nil {
		log.Warningf("Error writing to log file: %v", err)
	}
}

// outputOrStdout returns w, or os.Stdout if w is nil.
func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
