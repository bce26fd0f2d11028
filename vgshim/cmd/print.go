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
	"strings"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/log"
	"github.com/vgshim/vgshim/pkg/valgrind"
)

// Print implements subcommands.Command for the "print" command.
type Print struct {
	backtrace bool
	noNewline bool

	// Overridden in tests.
	print          func(string) (int, error)
	printBacktrace func(string) (int, error)
}

// Name implements subcommands.Command.Name.
func (*Print) Name() string {
	return "print"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Print) Synopsis() string {
	return "print a message through Valgrind's output channel"
}

// Usage implements subcommands.Command.Usage.
func (*Print) Usage() string {
	return `print [-backtrace] [-n] <words...>

Joins the words with spaces and prints them through Valgrind. Nothing is
printed outside Valgrind.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (p *Print) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.backtrace, "backtrace", false, "follow the message with a backtrace.")
	f.BoolVar(&p.noNewline, "n", false, "do not append a newline.")
}

// Execute implements subcommands.Command.Execute.
func (p *Print) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	msg := strings.Join(f.Args(), " ")
	if !p.noNewline {
		msg += "\n"
	}

	emit := valgrind.Print
	if p.print != nil {
		emit = p.print
	}
	if p.backtrace {
		emit = valgrind.PrintBacktrace
		if p.printBacktrace != nil {
			emit = p.printBacktrace
		}
	}
	n, err := emit(msg)
	if err != nil {
		return Errorf("%v", err)
	}
	log.Debugf("Valgrind reported %d bytes printed", n)
	return subcommands.ExitSuccess
}
