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

//go:build !valgrind || !cgo
// +build !valgrind !cgo

package valgrind

// Enabled is false: client requests were not compiled in, and every request
// returns its default.
const Enabled = false

// ClientRequest returns def. The request and its arguments are ignored.
func ClientRequest(def uintptr, req Request, a1, a2, a3, a4, a5 uintptr) uintptr {
	return def
}

func printf(buf []byte) int { return 0 }

func printfBacktrace(buf []byte) int { return 0 }
