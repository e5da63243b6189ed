// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag = "name"
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

// SetEnvPrefix sets the environment prefix.  Nested keys map onto environment variables
// with underscores, e.g. server.address becomes PREFIX_SERVER_ADDRESS.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(strings.ToUpper(prefix))
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func SetConfigFile(file string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigFile(file)
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// BindPFlag binds a single flag to a configuration key that differs from the flag's name.
// A missing flag is not an error.
func BindPFlag(key string, fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			return v.BindPFlag(key, f)
		}

		return nil
	}
}

func BindConfigName(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configName := f.Value.String()
			if len(configName) > 0 {
				v.SetConfigName(configName)
			}
		}

		return nil
	}
}

func BindConfigFile(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configFile := f.Value.String()
			if len(configFile) > 0 {
				v.SetConfigFile(configFile)
			}
		}

		return nil
	}
}

// ReadInConfig reads the configuration file.  When required is false, the absence of any
// configuration file is not an error.  A named file that cannot be read is always an error.
func ReadInConfig(required bool) Option {
	return func(v *viper.Viper) error {
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if !required && errors.As(err, &notFound) {
			return nil
		}

		return err
	}
}

// StdOptions applies the standard *nix conventions for applicationName: configuration paths under
// /etc and $HOME, an environment prefix, and the configuration name.  The flag set is bound last,
// so that flags override everything else.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		err := AddConfigPaths(
			fmt.Sprintf("/etc/%s", applicationName),
			fmt.Sprintf("$HOME/.%s", applicationName),
			".",
		)(v)

		if err == nil {
			err = SetEnvPrefix(applicationName)(v)
		}

		if err == nil {
			err = AutomaticEnv(v)
		}

		if err == nil {
			err = SetConfigName(applicationName)(v)
		}

		if err == nil && fs != nil {
			err = BindPFlags(fs)(v)
		}

		return err
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
