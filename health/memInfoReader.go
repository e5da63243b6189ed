// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"github.com/c9s/goprocinfo/linux"
)

// DefaultMemInfoLocation is where linux exposes meminfo
const DefaultMemInfoLocation = "/proc/meminfo"

// MemInfoReader reads linux memory information.  A nil MemInfoReader reads DefaultMemInfoLocation.
type MemInfoReader struct {
	Location string
}

func (r *MemInfoReader) location() string {
	if r != nil && len(r.Location) > 0 {
		return r.Location
	}

	return DefaultMemInfoLocation
}

// Read parses the configured Location as a linux meminfo file
func (r *MemInfoReader) Read() (*linux.MemInfo, error) {
	return linux.ReadMemInfo(r.location())
}
