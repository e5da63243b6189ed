// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/stopwatch/xviper"
)

// LogLevelKey is the configuration key the debug flag overrides
const LogLevelKey = "log.level"

// ConfigureFlagSet adds the standard set of server flags to the supplied FlagSet.  Note that these flags
// are the same regardless of the application name.
func ConfigureFlagSet(applicationName string, f *pflag.FlagSet) {
	f.StringP(FileFlag, "f", "", "the fully-qualified configuration file, overriding the standard search path")
	f.StringP(NameFlag, "n", applicationName, "the name of the configuration file, used with the standard search path")
	f.StringP(AddressFlag, "a", "", "the listen address of the primary server")
	f.BoolP(DebugFlag, "d", false, "enables debug logging.  Overrides configuration.")
}

// Initialize parses the command line and produces a Viper populated from the configuration
// file, the environment, and the flags.  A configuration file is required only when
// the file flag names one explicitly.
func Initialize(applicationName string, arguments []string, f *pflag.FlagSet, v *viper.Viper) (*viper.Viper, error) {
	if err := f.Parse(arguments); err != nil {
		return nil, err
	}

	if v == nil {
		v = viper.New()
	}

	fileFlag := f.Lookup(FileFlag)
	required := fileFlag != nil && len(fileFlag.Value.String()) > 0

	v, err := xviper.Configure(
		v,
		xviper.StdOptions(applicationName, f),
		xviper.BindConfigName(f, NameFlag),
		xviper.BindConfigFile(f, FileFlag),
		xviper.BindPFlag(AddressKey, f, AddressFlag),
		xviper.ReadInConfig(required),
	)

	if err != nil {
		return nil, err
	}

	if debug, _ := f.GetBool(DebugFlag); debug {
		v.Set(LogLevelKey, "DEBUG")
	}

	return v, nil
}
