// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// DecodeHook is a mapstructure hook that turns configuration strings into Themes, rejecting unknown names
func DecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Default) {
			return data, nil
		}

		return Parse(reflect.ValueOf(data).String())
	}
}
