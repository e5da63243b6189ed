// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package stopwatch

// Lap is a single recorded split
type Lap struct {
	// Index is the 1-based lap number
	Index int `json:"index"`

	// ElapsedMs is the total elapsed time when this lap was recorded
	ElapsedMs int64 `json:"elapsedMs"`
}

// State is a snapshot of a stopwatch.  LapCounter always equals len(Laps), and AnchorEpochMs
// is non-nil if and only if Running is true.
type State struct {
	Running   bool  `json:"running"`
	ElapsedMs int64 `json:"elapsedMs"`

	// AnchorEpochMs is the epoch millisecond time from which the current running segment is measured
	AnchorEpochMs *int64 `json:"anchorEpochMs,omitempty"`

	LapCounter int `json:"lapCounter"`

	// Laps holds every recorded lap, most recent first
	Laps []Lap `json:"laps"`
}

// Formatted returns the display text for this state's elapsed time
func (s State) Formatted() string {
	return FormatTime(s.ElapsedMs)
}
