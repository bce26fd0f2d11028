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
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestPatternOpts(t *testing.T) {
	opts := PatternOpts{
		Command: "print",
		Start:   time.Date(2026, time.October, 18, 9, 30, 15, 123456000, time.UTC),
	}
	pid := strconv.Itoa(os.Getpid())
	for _, tc := range []struct {
		pattern string
		want    string
	}{
		{"/tmp/vg.log", "/tmp/vg.log"},
		{"/tmp/%COMMAND%.log", "/tmp/print.log"},
		{"/tmp/vg.%PID%.log", "/tmp/vg." + pid + ".log"},
		{"/tmp/logs/", "/tmp/logs/vgshim.20261018-093015.123456.print.txt"},
	} {
		if got := opts.Build(tc.pattern); got != tc.want {
			t.Errorf("Build(%q) got %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenFile(filepath.Join(dir, "sub", "%COMMAND%.log"), os.O_CREATE|os.O_WRONLY, PatternOpts{Command: "status"})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()
	if want := filepath.Join(dir, "sub", "status.log"); f.Name() != want {
		t.Errorf("OpenFile name got %q, want %q", f.Name(), want)
	}

	f, err = OpenFile("", os.O_CREATE|os.O_WRONLY, PatternOpts{})
	if err != nil || f != nil {
		t.Errorf("OpenFile(\"\") got (%v, %v), want (nil, nil)", f, err)
	}
}
