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

package config

import (
	"flag"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// RegisterFlags registers flags used to populate Config.
func RegisterFlags(flagSet *flag.FlagSet) {
	// Logging flags.
	flagSet.String("log", "", "file path where internal error information is written, default is stderr.")
	flagSet.String("log-format", "text", "log format: text (default) or json.")
	flagSet.Bool("debug", false, "enable debug logging.")
	flagSet.String("debug-log", "", "additional location for logs. If it ends with '/', log files are created inside the directory with default names. The following variables are available: %TIMESTAMP%, %COMMAND%, %PID%.")
	flagSet.Bool("alsologtostderr", false, "send log messages to stderr.")
	flagSet.Bool("log-to-valgrind", false, "send log messages through Valgrind's output channel when running under Valgrind.")
	flagSet.Duration("backtrace-interval", time.Second, "minimum interval between warnings logged to Valgrind with a backtrace. 0 disables backtraces.")

	// Launcher flags.
	flagSet.String("config", "", "TOML file with a [valgrind] table: binary, tool, options, log-file, suppressions.")
	flagSet.String("valgrind", "valgrind", "Valgrind executable, looked up in $PATH unless it contains a slash.")
	flagSet.String("tool", "memcheck", "Valgrind tool to run programs with.")
}

// fileConfig is the layout of the TOML config file.
type fileConfig struct {
	Valgrind struct {
		Binary       string   `toml:"binary"`
		Tool         string   `toml:"tool"`
		Options      []string `toml:"options"`
		LogFile      string   `toml:"log-file"`
		Suppressions []string `toml:"suppressions"`
	} `toml:"valgrind"`
}

// NewFromFlags creates a new Config with values coming from command line flags
// and, if --config is set, the config file. Flags that are set explicitly take
// precedence over the file.
func NewFromFlags(flagSet *flag.FlagSet) (*Config, error) {
	conf := &Config{}

	obj := reflect.ValueOf(conf).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name, ok := f.Tag.Lookup("flag")
		if !ok {
			// No flag set for this field.
			continue
		}
		fl := flagSet.Lookup(name)
		if fl == nil {
			panic(fmt.Sprintf("Flag %q not found", name))
		}
		x := reflect.ValueOf(fl.Value.(flag.Getter).Get())
		obj.Field(i).Set(x)
	}

	if conf.ConfigFile != "" {
		set := make(map[string]bool)
		flagSet.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
		if err := conf.loadFile(conf.ConfigFile, set); err != nil {
			return nil, err
		}
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// loadFile merges the config file at path into c. Values for flags named in
// set are kept.
func (c *Config) loadFile(path string, set map[string]bool) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("decode config file %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %q: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	v := fc.Valgrind
	if md.IsDefined("valgrind", "binary") && !set["valgrind"] {
		c.Binary = v.Binary
	}
	if md.IsDefined("valgrind", "tool") && !set["tool"] {
		c.Tool = v.Tool
	}
	c.Options = v.Options
	c.LogFile = v.LogFile
	c.Suppressions = v.Suppressions
	return nil
}
