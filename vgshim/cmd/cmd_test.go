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

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/valgrind"
	"github.com/vgshim/vgshim/vgshim/config"
)

// execute parses args with c's flags and runs c.
func execute(t *testing.T, c subcommands.Command, conf *config.Config, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(&bytes.Buffer{})
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%q) failed: %v", args, err)
	}
	return c.Execute(context.Background(), f, conf)
}

func TestParseWord(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want uintptr
	}{
		{"0", 0},
		{"42", 42},
		{"0x2A", 0x2A},
		{"0o52", 0o52},
		{"0xDEADBEEF", 0xDEADBEEF},
	} {
		got, err := parseWord(tc.in)
		if err != nil {
			t.Errorf("parseWord(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseWord(%q) got %#x, want %#x", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"", "-1", "word", "0x"} {
		if _, err := parseWord(in); err == nil {
			t.Errorf("parseWord(%q) succeeded, want error", in)
		}
	}
}

func TestRequest(t *testing.T) {
	if valgrind.IsRunningOnValgrind() != 0 {
		t.Skip("results depend on the tool when running under Valgrind")
	}
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"-default=0x2A", "0"}, "0x2a\n"},
		{[]string{"0xDEADBEEF", "1", "2", "3", "4", "5"}, "0x0\n"},
		{[]string{"-default", "99", "0x1001"}, "0x63\n"},
	} {
		var out bytes.Buffer
		r := &Request{out: &out}
		if got := execute(t, r, nil, tc.args...); got != subcommands.ExitSuccess {
			t.Errorf("request %q got status %v", tc.args, got)
			continue
		}
		if out.String() != tc.want {
			t.Errorf("request %q printed %q, want %q", tc.args, out.String(), tc.want)
		}
	}
}

func TestRequestUsage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"0", "1", "2", "3", "4", "5", "6"},
	} {
		if got := execute(t, &Request{out: &bytes.Buffer{}}, nil, args...); got != subcommands.ExitUsageError {
			t.Errorf("request %q got status %v, want %v", args, got, subcommands.ExitUsageError)
		}
	}
	if got := execute(t, &Request{out: &bytes.Buffer{}}, nil, "0x1001", "nope"); got != subcommands.ExitFailure {
		t.Errorf("request with a bad word got status %v, want %v", got, subcommands.ExitFailure)
	}
}

func TestPrint(t *testing.T) {
	for _, tc := range []struct {
		args      []string
		plain     []string
		backtrace []string
	}{
		{args: []string{"hello", "world"}, plain: []string{"hello world\n"}},
		{args: []string{"-n", "%s%s%s"}, plain: []string{"%s%s%s"}},
		{args: []string{"-backtrace", "here"}, backtrace: []string{"here\n"}},
	} {
		var plain, backtrace []string
		p := &Print{
			print: func(msg string) (int, error) {
				plain = append(plain, msg)
				return len(msg), nil
			},
			printBacktrace: func(msg string) (int, error) {
				backtrace = append(backtrace, msg)
				return len(msg), nil
			},
		}
		if got := execute(t, p, nil, tc.args...); got != subcommands.ExitSuccess {
			t.Errorf("print %q got status %v", tc.args, got)
		}
		if diff := cmp.Diff(tc.plain, plain); diff != "" {
			t.Errorf("print %q plain mismatch (-want +got):\n%s", tc.args, diff)
		}
		if diff := cmp.Diff(tc.backtrace, backtrace); diff != "" {
			t.Errorf("print %q backtrace mismatch (-want +got):\n%s", tc.args, diff)
		}
	}
}

func TestPrintBridge(t *testing.T) {
	if got := execute(t, &Print{}, nil, "through", "the", "bridge"); got != subcommands.ExitSuccess {
		t.Errorf("print got status %v", got)
	}
	if got := execute(t, &Print{}, nil, "bad\x00word"); got != subcommands.ExitFailure {
		t.Errorf("print with NUL got status %v, want %v", got, subcommands.ExitFailure)
	}
	if got := execute(t, &Print{}, nil); got != subcommands.ExitUsageError {
		t.Errorf("print without words got status %v, want %v", got, subcommands.ExitUsageError)
	}
}

func TestStatus(t *testing.T) {
	depth := valgrind.IsRunningOnValgrind()
	state := "disabled"
	if valgrind.Enabled {
		state = "enabled"
	}

	var out bytes.Buffer
	if got := execute(t, &Status{out: &out}, nil); got != subcommands.ExitSuccess {
		t.Fatalf("status got status %v", got)
	}
	want := fmt.Sprintf("client requests: %s\nrunning on valgrind: %d\n", state, depth)
	if out.String() != want {
		t.Errorf("status printed %q, want %q", out.String(), want)
	}

	out.Reset()
	if got := execute(t, &Status{out: &out}, nil, "-o", "json"); got != subcommands.ExitSuccess {
		t.Fatalf("status -o json got status %v", got)
	}
	var info StatusInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("error unmarshaling %q: %v", out.String(), err)
	}
	if diff := cmp.Diff(StatusInfo{Enabled: valgrind.Enabled, Depth: uint64(depth)}, info); diff != "" {
		t.Errorf("status json mismatch (-want +got):\n%s", diff)
	}

	if got := execute(t, &Status{out: &out}, nil, "-o", "csv"); got != subcommands.ExitFailure {
		t.Errorf("status -o csv got status %v, want %v", got, subcommands.ExitFailure)
	}
}

func TestRunDryRun(t *testing.T) {
	conf := &config.Config{
		Binary:  "valgrind",
		Tool:    "callgrind",
		Options: []string{"--dump-instr=yes"},
	}
	var out bytes.Buffer
	if got := execute(t, &Run{out: &out}, conf, "-dry-run", "./bench", "-n", "3"); got != subcommands.ExitSuccess {
		t.Fatalf("run -dry-run got status %v", got)
	}
	if want := "valgrind --tool=callgrind --dump-instr=yes ./bench -n 3\n"; out.String() != want {
		t.Errorf("run -dry-run printed %q, want %q", out.String(), want)
	}
}

func TestRunExec(t *testing.T) {
	// A fake valgrind in its own directory, found by absolute path.
	bin := filepath.Join(t.TempDir(), "valgrind")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	conf := &config.Config{Binary: bin, Tool: "memcheck"}

	errExec := errors.New("exec disabled in tests")
	var gotPath string
	var gotArgv []string
	r := &Run{
		exec: func(argv0 string, argv []string, envv []string) error {
			gotPath, gotArgv = argv0, argv
			return errExec
		},
	}
	if got := execute(t, r, conf, "./prog", "arg"); got != subcommands.ExitFailure {
		t.Errorf("run with failing exec got status %v, want %v", got, subcommands.ExitFailure)
	}
	if gotPath != bin {
		t.Errorf("exec path got %q, want %q", gotPath, bin)
	}
	if diff := cmp.Diff([]string{bin, "--tool=memcheck", "./prog", "arg"}, gotArgv); diff != "" {
		t.Errorf("exec argv mismatch (-want +got):\n%s", diff)
	}
}

func TestRunMissingBinary(t *testing.T) {
	conf := &config.Config{Binary: filepath.Join(t.TempDir(), "no-such-valgrind"), Tool: "memcheck"}
	r := &Run{
		exec: func(string, []string, []string) error {
			t.Fatalf("exec called for a missing binary")
			return nil
		},
	}
	if got := execute(t, r, conf, "./prog"); got != subcommands.ExitFailure {
		t.Errorf("run got status %v, want %v", got, subcommands.ExitFailure)
	}
}

func TestErrorLogger(t *testing.T) {
	var buf bytes.Buffer
	ErrorLogger = &buf
	defer func() { ErrorLogger = nil }()

	if got := Errorf("request %#x failed", 0x1001); got != subcommands.ExitFailure {
		t.Errorf("Errorf got status %v, want %v", got, subcommands.ExitFailure)
	}
	var j jsonError
	if err := json.Unmarshal(buf.Bytes(), &j); err != nil {
		t.Fatalf("error unmarshaling %q: %v", buf.String(), err)
	}
	if want := "request 0x1001 failed"; j.Msg != want {
		t.Errorf("logged msg %q, want %q", j.Msg, want)
	}
}
