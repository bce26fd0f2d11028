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

// Package cli is the main entrypoint for vgshim.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/subcommands"
	"github.com/vgshim/vgshim/pkg/log"
	"github.com/vgshim/vgshim/pkg/valgrind"
	"github.com/vgshim/vgshim/vgshim/cmd"
	"github.com/vgshim/vgshim/vgshim/config"
	"golang.org/x/sys/unix"
)

// versionFlagName is the name of a flag that triggers printing the version.
const versionFlagName = "version"

// version is set at link time with -X.
var version = "unknown"

var (
	// logFD, if set, takes precedence over --log.
	logFD = flag.Int("log-fd", -1, "file descriptor to log errors to. If set, the 'log' flag is ignored.")
)

// Main is the main entrypoint.
func Main() {
	// Register all commands.
	forEachCmd(subcommands.Register)

	// Register with the main command line.
	config.RegisterFlags(flag.CommandLine)

	// Register version flag if it is not already defined.
	if flag.Lookup(versionFlagName) == nil {
		flag.Bool(versionFlagName, false, "show version and exit.")
	}

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	// Are we showing the version?
	if flag.Lookup(versionFlagName).Value.(flag.Getter).Get().(bool) {
		fmt.Fprintf(os.Stdout, "vgshim version %s\n", version)
		fmt.Fprintf(os.Stdout, "client requests compiled in: %t\n", valgrind.Enabled)
		os.Exit(0)
	}

	// Create a new Config from the flags.
	conf, err := config.NewFromFlags(flag.CommandLine)
	if err != nil {
		cmd.Fatalf("%v", err)
	}

	var errorLogger io.Writer
	if *logFD > -1 {
		if _, err := unix.FcntlInt(uintptr(*logFD), unix.F_GETFD, 0); err != nil {
			cmd.Fatalf("invalid log FD %d: %v", *logFD, err)
		}
		errorLogger = os.NewFile(uintptr(*logFD), "error log file")
	} else if conf.LogFilename != "" {
		// O_APPEND so that several invocations can share a log.
		errorLogger, err = os.OpenFile(conf.LogFilename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			cmd.Fatalf("error opening log file %q: %v", conf.LogFilename, err)
		}
	}
	cmd.ErrorLogger = errorLogger

	subcommand := flag.CommandLine.Arg(0)

	// Set up logging.
	if conf.Debug {
		log.SetLevel(log.Debug)
	}

	var emitters log.MultiEmitter
	if len(conf.DebugLog) > 0 {
		f, err := log.OpenFile(conf.DebugLog, os.O_WRONLY|os.O_CREATE|os.O_APPEND, log.PatternOpts{
			Command: subcommand,
			Start:   time.Now(),
		})
		if err != nil {
			cmd.Fatalf("error opening debug log file in %q: %v", conf.DebugLog, err)
		}
		emitters = append(emitters, newEmitter(conf.LogFormat, f))
	}
	if conf.AlsoLogToStderr {
		emitters = append(emitters, newEmitter(conf.LogFormat, os.Stderr))
	}
	if conf.LogToValgrind {
		emitters = append(emitters, log.NewValgrindEmitter(conf.BacktraceInterval))
	}

	switch len(emitters) {
	case 0:
		// Stdout and stderr belong to the command; discard the logs if no
		// destination was asked for.
		log.SetTarget(newEmitter("text", io.Discard))
	case 1:
		// Use the singular emitter to avoid needless
		// `for` loop overhead when logging to a single place.
		log.SetTarget(emitters[0])
	default:
		log.SetTarget(&emitters)
	}

	const delimString = `**************** vgshim ****************`
	log.Infof(delimString)
	log.Infof("Version %s, %s, %s, client requests %t, running on valgrind %d, PID %d", version, runtime.Version(), runtime.GOARCH, valgrind.Enabled, valgrind.IsRunningOnValgrind(), os.Getpid())
	log.Infof("Args: %v", os.Args)
	conf.Log(log.Log())
	log.Infof(delimString)

	// Call the subcommand and pass in the configuration.
	subcmdCode := subcommands.Execute(context.Background(), conf)
	if subcmdCode != subcommands.ExitSuccess {
		log.Warningf("Failure to execute command, err: %v", subcmdCode)
	}
	os.Exit(int(subcmdCode))
}

// forEachCmd invokes the passed callback for each command supported by vgshim.
func forEachCmd(cb func(cmd subcommands.Command, group string)) {
	// Help and flags commands are generated automatically.
	cb(subcommands.HelpCommand(), "")
	cb(subcommands.FlagsCommand(), "")
	cb(subcommands.CommandsCommand(), "")

	// Client requests.
	cb(new(cmd.Request), "")
	cb(new(cmd.Print), "")
	cb(new(cmd.Status), "")

	const launcherGroup = "launcher"
	cb(new(cmd.Run), launcherGroup)
}

func newEmitter(format string, logFile io.Writer) log.Emitter {
	switch format {
	case "text":
		return log.GoogleEmitter{Writer: &log.Writer{Next: logFile}}
	case "json":
		return log.JSONEmitter{Writer: &log.Writer{Next: logFile}}
	}
	cmd.Fatalf("invalid log format %q, must be 'text' or 'json'", format)
	panic("unreachable")
}
