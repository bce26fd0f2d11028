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

package valgrind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInteriorNUL is wrapped by PrintError when a message cannot be passed to
// Valgrind as a C string.
var ErrInteriorNUL = errors.New("message contains an interior NUL byte")

// PrintError is returned by Print and PrintBacktrace for messages that
// contain a NUL byte.
type PrintError struct {
	// Pos is the offset of the first NUL byte in Msg.
	Pos int

	// Msg is the rejected message.
	Msg string
}

// Error implements error.Error.
func (e *PrintError) Error() string {
	return fmt.Sprintf("valgrind: print error: %v at pos %d: %q", ErrInteriorNUL, e.Pos, e.Msg)
}

// Unwrap returns ErrInteriorNUL.
func (e *PrintError) Unwrap() error {
	return ErrInteriorNUL
}

// cMessage returns msg as a NUL-terminated byte slice. The slice holds
// exactly len(msg)+1 bytes and is owned by the caller.
func cMessage(msg string) ([]byte, error) {
	if i := strings.IndexByte(msg, 0); i >= 0 {
		return nil, &PrintError{Pos: i, Msg: msg}
	}
	buf := make([]byte, len(msg)+1)
	copy(buf, msg)
	return buf, nil
}
