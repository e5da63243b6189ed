// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Unmarshaler is the subset of Viper behavior for decoding an entire configuration
type Unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// KeyUnmarshaler is the subset of Viper behavior for decoding a single key
type KeyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// DecodeHook returns the standard decoding for configuration: durations and comma-separated
// slices are parsed from strings, followed by any extra hooks.
func DecodeHook(extra ...mapstructure.DecodeHookFunc) viper.DecoderConfigOption {
	hooks := append(
		[]mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		},
		extra...,
	)

	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...))
}

// Unmarshal decodes each value in turn, stopping at the first error.  If o is nil, DecodeHook() is used.
func Unmarshal(u Unmarshaler, o viper.DecoderConfigOption, v ...interface{}) error {
	if o == nil {
		o = DecodeHook()
	}

	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = u.Unmarshal(v[i], o)
	}

	return err
}

// MustUnmarshal is like Unmarshal, except that it panics on any error
func MustUnmarshal(u Unmarshaler, o viper.DecoderConfigOption, v ...interface{}) {
	if err := Unmarshal(u, o, v...); err != nil {
		panic(err)
	}
}

// UnmarshalKey decodes a single configuration key.  If o is nil, DecodeHook() is used.
func UnmarshalKey(u KeyUnmarshaler, o viper.DecoderConfigOption, key string, v interface{}) error {
	if o == nil {
		o = DecodeHook()
	}

	return u.UnmarshalKey(key, v, o)
}

type defaulter interface {
	SetDefault(string, interface{})
}

// Defaults maps configuration keys onto their default values
type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}
