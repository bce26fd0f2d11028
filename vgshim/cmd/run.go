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
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/log"
	"github.com/vgshim/vgshim/vgshim/config"
	"golang.org/x/sys/unix"
)

// Run implements subcommands.Command for the "run" command.
type Run struct {
	dryRun bool

	out  io.Writer
	exec func(argv0 string, argv []string, envv []string) error
}

// Name implements subcommands.Command.Name.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Run) Synopsis() string {
	return "run a program under Valgrind"
}

// Usage implements subcommands.Command.Usage.
func (*Run) Usage() string {
	return `run [-dry-run] <program> [args...]

Replaces vgshim with Valgrind running <program>. The Valgrind binary, tool and
options come from --valgrind, --tool and the --config file.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Run) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.dryRun, "dry-run", false, "print the Valgrind command line instead of running it.")
}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	argv := conf.ValgrindArgs(f.Arg(0), f.Args()[1:])
	if r.dryRun {
		fmt.Fprintln(outputOrStdout(r.out), strings.Join(argv, " "))
		return subcommands.ExitSuccess
	}

	binPath, err := exec.LookPath(conf.Binary)
	if err != nil {
		return Errorf("cannot find valgrind binary %q: %v", conf.Binary, err)
	}

	execve := r.exec
	if execve == nil {
		execve = unix.Exec
	}
	log.Infof("Execve %q %q, bye!", binPath, argv[1:])
	err = execve(binPath, argv, os.Environ())
	return Errorf("error executing %s: %v", binPath, err)
}
