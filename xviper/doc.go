// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.  Viper instances
are configured with functional options, and configuration is unmarshaled with a standard set of
mapstructure decode hooks.
*/
package xviper
