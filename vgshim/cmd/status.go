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
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/valgrind"
)

// Status implements subcommands.Command for the "status" command.
type Status struct {
	output string

	out io.Writer
}

// StatusInfo is the status reported by the "status" command.
type StatusInfo struct {
	// Enabled is whether client requests were compiled in.
	Enabled bool `json:"enabled"`

	// Depth is the number of Valgrind instances the command runs under.
	Depth uint64 `json:"depth"`
}

// Name implements subcommands.Command.Name.
func (*Status) Name() string {
	return "status"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Status) Synopsis() string {
	return "report whether client requests are compiled in and Valgrind is running"
}

// Usage implements subcommands.Command.Usage.
func (*Status) Usage() string {
	return `status [-o text|json]
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Status) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.output, "o", "text", "Output format (text, json).")
}

// Execute implements subcommands.Command.Execute.
func (s *Status) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	info := StatusInfo{
		Enabled: valgrind.Enabled,
		Depth:   uint64(valgrind.IsRunningOnValgrind()),
	}

	w := outputOrStdout(s.out)
	switch s.output {
	case "text":
		state := "disabled"
		if info.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(w, "client requests: %s\n", state)
		fmt.Fprintf(w, "running on valgrind: %d\n", info.Depth)
	case "json":
		if err := json.NewEncoder(w).Encode(&info); err != nil {
			return Errorf("error writing output: %v", err)
		}
	default:
		return Errorf("unsupported output format %q", s.output)
	}
	return subcommands.ExitSuccess
}
