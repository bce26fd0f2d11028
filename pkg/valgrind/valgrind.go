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

// Package valgrind issues Valgrind client requests.
//
// Client requests are magic instruction sequences that Valgrind's synthetic
// CPU recognizes and that do nothing on real hardware. The sequences
// themselves come from <valgrind/valgrind.h>, which is only consulted when
// the package is built with the "valgrind" build tag and cgo enabled:
//
//	go build -tags valgrind ./...
//
// Any other build links an inert implementation: ClientRequest returns its
// default and the print functions return zero. Enabled reports which of the
// two was compiled in.
//
// All functions are safe for concurrent use. The package holds no state and
// adds no serialization; concurrent prints may interleave at Valgrind's
// discretion.
package valgrind

// Request is a client request code. Its meaning is defined by Valgrind and
// the tool it runs; this package never interprets it.
type Request uintptr

// Core client request codes, from the VG_USERREQ enumeration in valgrind.h.
const (
	RunningOnValgrind          Request = 0x1001
	DiscardTranslations        Request = 0x1002
	CountErrors                Request = 0x1201
	PrintfValistByRef          Request = 0x1403
	PrintfBacktraceValistByRef Request = 0x1404
	StackRegister              Request = 0x1501
	StackDeregister            Request = 0x1502
	StackChange                Request = 0x1503
)

// Print writes msg verbatim through Valgrind's output channel and returns the
// byte count reported by Valgrind. No newline is appended, and msg is never
// interpreted as a format template.
//
// Print returns a *PrintError if msg contains a NUL byte. Otherwise the
// error is nil, and when Valgrind is not present the count is 0.
func Print(msg string) (int, error) {
	buf, err := cMessage(msg)
	if err != nil {
		return 0, err
	}
	return printf(buf), nil
}

// PrintBacktrace is like Print, but Valgrind follows the message with a
// backtrace of the calling thread.
func PrintBacktrace(msg string) (int, error) {
	buf, err := cMessage(msg)
	if err != nil {
		return 0, err
	}
	return printfBacktrace(buf), nil
}

// IsRunningOnValgrind returns the number of Valgrind instances the program
// is running under: 0 on real hardware, 1 under Valgrind, more if Valgrind
// itself runs under Valgrind.
func IsRunningOnValgrind() uintptr {
	return ClientRequest(0, RunningOnValgrind, 0, 0, 0, 0, 0)
}
