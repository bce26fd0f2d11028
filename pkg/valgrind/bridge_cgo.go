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

//go:build valgrind && cgo
// +build valgrind,cgo

package valgrind

/*
#include <stddef.h>
#include <valgrind/valgrind.h>

static size_t vgshim_client_request(size_t def, size_t req, size_t a1,
                                    size_t a2, size_t a3, size_t a4,
                                    size_t a5) {
#ifdef VALGRIND_DO_CLIENT_REQUEST_EXPR
	return (size_t)VALGRIND_DO_CLIENT_REQUEST_EXPR(def, req, a1, a2, a3, a4, a5);
#else
	(void)req;
	(void)a1;
	(void)a2;
	(void)a3;
	(void)a4;
	(void)a5;
	return def;
#endif
}

// The message is always an argument, never the format.
static int vgshim_printf(const char *msg) {
	return VALGRIND_PRINTF("%s", msg);
}

static int vgshim_printf_backtrace(const char *msg) {
	return VALGRIND_PRINTF_BACKTRACE("%s", msg);
}
*/
import "C"

import "unsafe"

// Enabled is true when client requests were compiled in. It does not mean
// that the program is running under Valgrind; see IsRunningOnValgrind.
const Enabled = true

// ClientRequest issues client request req with arguments a1 through a5.
//
// Under Valgrind, it returns the value deposited by the tool for req. On real
// hardware, or if no tool handles req, it returns def.
func ClientRequest(def uintptr, req Request, a1, a2, a3, a4, a5 uintptr) uintptr {
	return uintptr(C.vgshim_client_request(
		C.size_t(def), C.size_t(req),
		C.size_t(a1), C.size_t(a2), C.size_t(a3), C.size_t(a4), C.size_t(a5)))
}

// printf passes buf, which must be NUL-terminated, to VALGRIND_PRINTF. buf is
// only borrowed for the duration of the call.
func printf(buf []byte) int {
	return int(C.vgshim_printf((*C.char)(unsafe.Pointer(&buf[0]))))
}

// printfBacktrace is like printf, but uses VALGRIND_PRINTF_BACKTRACE.
func printfBacktrace(buf []byte) int {
	return int(C.vgshim_printf_backtrace((*C.char)(unsafe.Pointer(&buf[0]))))
}
