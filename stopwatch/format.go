// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const (
	msPerHour   int64 = 3600000
	msPerMinute int64 = 60000
	msPerSecond int64 = 1000

	// ZeroTime is the display text of a stopwatch with nothing elapsed
	ZeroTime = "00:00:00.000"
)

var (
	// ErrInvalidTime indicates that a string is not in HH:MM:SS.mmm form
	ErrInvalidTime = errors.New("invalid time, expected HH:MM:SS.mmm")

	timePattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{3})$`)
)

// FormatTime renders a millisecond count as HH:MM:SS.mmm.  Hours are padded to two digits
// but never truncated, so 100 hours or more prints a wider field.  Negative values are
// formatted as zero.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	var (
		hours   = ms / msPerHour
		minutes = (ms % msPerHour) / msPerMinute
		seconds = (ms % msPerMinute) / msPerSecond
		millis  = ms % msPerSecond
	)

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ParseTime is the inverse of FormatTime
func ParseTime(v string) (int64, error) {
	m := timePattern.FindStringSubmatch(v)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}

	hours, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}

	// the pattern guarantees these are small decimal numbers
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)
	millis, _ := strconv.ParseInt(m[4], 10, 64)

	if minutes >= 60 || seconds >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}

	rest := minutes*msPerMinute + seconds*msPerSecond + millis
	if hours > (math.MaxInt64-rest)/msPerHour {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, v)
	}

	return hours*msPerHour + rest, nil
}
