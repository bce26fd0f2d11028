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
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// GoogleEmitter is a wrapper that emits logs in a format compatible with
// package github.com/golang/glog.
type GoogleEmitter struct {
	*Writer
}

// pid is used for the threadid component of the header.
//
// The glog package logger uses 7 spaces of padding. See
// glob.loggingT.formatHeader.
var pid = fmt.Sprintf("%7d", os.Getpid())

func appendOneDigit(b []byte, d byte) []byte {
	return append(b, '0'+d)
}

func appendTwoDigits(b []byte, v int) []byte {
	v = v % 100
	b = appendOneDigit(b, byte(v/10))
	return appendOneDigit(b, byte(v%10))
}

func appendSixDigits(b []byte, v int) []byte {
	v = v % 1000000
	for div := 100000; div > 0; div /= 10 {
		b = appendOneDigit(b, byte((v/div)%10))
	}
	return b
}

// appendHeader appends a glog header to b. depth is relative to the caller of
// appendHeader.
//
// Log lines have this form:
//
//	Lmmdd hh:mm:ss.uuuuuu threadid file:line] msg...
//
// where the fields are defined as follows:
//
//	L                A single character, representing the log level (eg 'I' for INFO)
//	mm               The month (zero padded; ie May is '05')
//	dd               The day (zero padded)
//	hh:mm:ss.uuuuuu  Time in hours, minutes and fractional seconds
//	threadid         The space-padded process ID
//	file             The file name
//	line             The line number
//	msg              The user-supplied message
func appendHeader(b []byte, depth int, level Level, timestamp time.Time) []byte {
	switch level {
	case Debug:
		b = append(b, 'D')
	case Info:
		b = append(b, 'I')
	case Warning:
		b = append(b, 'W')
	}

	_, month, day := timestamp.Date()
	hour, minute, second := timestamp.Clock()
	b = appendTwoDigits(b, int(month))
	b = appendTwoDigits(b, day)
	b = append(b, ' ')
	b = appendTwoDigits(b, hour)
	b = append(b, ':')
	b = appendTwoDigits(b, minute)
	b = append(b, ':')
	b = appendTwoDigits(b, second)
	b = append(b, '.')
	b = appendSixDigits(b, timestamp.Nanosecond()/1000)
	b = append(b, ' ')

	b = append(b, pid...)
	b = append(b, ' ')

	file, line := "x", 0
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = f, l
		if slash := strings.LastIndexByte(file, '/'); slash >= 0 {
			file = file[slash+1:]
		}
	}
	b = append(b, file...)
	b = append(b, ':')
	b = fmt.Appendf(b, "%d", line)
	return append(b, ']', ' ')
}

// formatLine returns a complete, newline-terminated glog line.
func formatLine(depth int, level Level, timestamp time.Time, format string, args ...any) []byte {
	b := appendHeader(make([]byte, 0, 256), depth+1, level, timestamp)
	b = fmt.Appendf(b, format, args...)
	if b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}

// Emit emits the message, google-style.
func (g GoogleEmitter) Emit(depth int, level Level, timestamp time.Time, format string, args ...any) {
	g.Writer.Write(formatLine(depth+1, level, timestamp, format, args...))
}
