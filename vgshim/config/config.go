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

// Package config provides basic infrastructure to set configuration settings
// for vgshim. Each setting that can be changed from the command line must
// have a corresponding flag and be annotated with `flag:"flag-name"`.
// Settings for the Valgrind launcher may also come from a TOML file.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/vgshim/vgshim/pkg/log"
)

// Config holds configuration that is not part of the command arguments.
type Config struct {
	// LogFilename is the filename to log to, if not empty.
	LogFilename string `flag:"log"`

	// LogFormat is the log format.
	LogFormat string `flag:"log-format"`

	// Debug indicates that debug logging should be enabled.
	Debug bool `flag:"debug"`

	// DebugLog is the path to log debug information to, if not empty. It may
	// contain %COMMAND%, %TIMESTAMP% and %PID%.
	DebugLog string `flag:"debug-log"`

	// AlsoLogToStderr allows to send log messages to stderr.
	AlsoLogToStderr bool `flag:"alsologtostderr"`

	// LogToValgrind sends log messages through Valgrind's output channel.
	LogToValgrind bool `flag:"log-to-valgrind"`

	// BacktraceInterval limits how often warnings logged to Valgrind carry a
	// backtrace. Zero disables backtraces.
	BacktraceInterval time.Duration `flag:"backtrace-interval"`

	// ConfigFile is the TOML file with launcher settings, if not empty.
	ConfigFile string `flag:"config"`

	// Binary is the Valgrind executable used by "run".
	Binary string `flag:"valgrind"`

	// Tool is passed to Valgrind as --tool.
	Tool string `flag:"tool"`

	// Options are passed to Valgrind after --tool. They come only from the
	// config file.
	Options []string

	// LogFile is passed to Valgrind as --log-file, if not empty.
	LogFile string

	// Suppressions are passed to Valgrind as --suppressions, one per file.
	Suppressions []string
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be 'text' or 'json'", c.LogFormat)
	}
	if c.Tool == "" {
		return fmt.Errorf("tool must not be empty")
	}
	if strings.IndexFunc(c.Tool, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid tool %q: contains whitespace", c.Tool)
	}
	if c.Binary == "" {
		return fmt.Errorf("valgrind binary must not be empty")
	}
	if c.BacktraceInterval < 0 {
		return fmt.Errorf("backtrace interval must not be negative: %v", c.BacktraceInterval)
	}
	return nil
}

// Log logs important aspects of the configuration to l.
func (c *Config) Log(l log.Logger) {
	l.Infof("Config:")
	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		l.Infof("  %s: %v", st.Field(i).Name, obj.Field(i).Interface())
	}
}

// ValgrindArgs returns the argv that runs prog with args under Valgrind.
func (c *Config) ValgrindArgs(prog string, args []string) []string {
	argv := make([]string, 0, 3+len(c.Options)+len(c.Suppressions)+len(args))
	argv = append(argv, c.Binary, "--tool="+c.Tool)
	argv = append(argv, c.Options...)
	for _, s := range c.Suppressions {
		argv = append(argv, "--suppressions="+s)
	}
	if c.LogFile != "" {
		argv = append(argv, "--log-file="+c.LogFile)
	}
	argv = append(argv, prog)
	return append(argv, args...)
}
