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
	"math/bits"
	"strconv"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/log"
	"github.com/vgshim/vgshim/pkg/valgrind"
)

// maxRequestArgs is the number of argument words a client request carries.
const maxRequestArgs = 5

// wordValue is a flag.Value holding a machine word. It accepts the same
// prefixes as Go integer literals.
type wordValue uintptr

// String implements flag.Value.
func (w *wordValue) String() string {
	return fmt.Sprintf("%#x", uintptr(*w))
}

// Set implements flag.Value.
func (w *wordValue) Set(s string) error {
	v, err := parseWord(s)
	if err != nil {
		return err
	}
	*w = wordValue(v)
	return nil
}

// Get implements flag.Getter.
func (w *wordValue) Get() any {
	return uintptr(*w)
}

func parseWord(s string) (uintptr, error) {
	v, err := strconv.ParseUint(s, 0, bits.UintSize)
	if err != nil {
		return 0, err
	}
	return uintptr(v), nil
}

// Request implements subcommands.Command for the "request" command.
type Request struct {
	def wordValue

	out io.Writer
}

// Name implements subcommands.Command.Name.
func (*Request) Name() string {
	return "request"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Request) Synopsis() string {
	return "issue a Valgrind client request and print its result"
}

// Usage implements subcommands.Command.Usage.
func (*Request) Usage() string {
	return `request [-default N] <code> [arg1 [arg2 [arg3 [arg4 [arg5]]]]]

Issues client request <code> with up to five arguments and prints the result in
hex. Missing arguments are zero. Numbers may be decimal, 0x hex or 0o octal.
Outside Valgrind the result is the default.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Request) SetFlags(f *flag.FlagSet) {
	f.Var(&r.def, "default", "value returned when not running under Valgrind.")
}

// Execute implements subcommands.Command.Execute.
func (r *Request) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 1+maxRequestArgs {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var words [1 + maxRequestArgs]uintptr
	for i, arg := range f.Args() {
		w, err := parseWord(arg)
		if err != nil {
			return Errorf("invalid word %q: %v", arg, err)
		}
		words[i] = w
	}

	req := valgrind.Request(words[0])
	res := valgrind.ClientRequest(uintptr(r.def), req, words[1], words[2], words[3], words[4], words[5])
	log.Debugf("Client request %#x%v returned %#x (default %#x)", uintptr(req), words[1:], res, uintptr(r.def))

	fmt.Fprintf(outputOrStdout(r.out), "%#x\n", res)
	return subcommands.ExitSuccess
}
