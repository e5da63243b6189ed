// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"runtime"

	"github.com/c9s/goprocinfo/linux"
)

const (
	// General memory stats
	CurrentMemoryUtilizationAlloc   Stat = "CurrentMemoryUtilizationAlloc"
	CurrentMemoryUtilizationHeapSys Stat = "CurrentMemoryUtilizationHeapSys"
	CurrentMemoryUtilizationActive  Stat = "CurrentMemoryUtilizationActive"
	MaxMemoryUtilizationAlloc       Stat = "MaxMemoryUtilizationAlloc"
	MaxMemoryUtilizationHeapSys     Stat = "MaxMemoryUtilizationHeapSys"
	MaxMemoryUtilizationActive      Stat = "MaxMemoryUtilizationActive"

	// Stopwatch operation stats
	StopwatchStarts Stat = "StopwatchStarts"
	StopwatchPauses Stat = "StopwatchPauses"
	StopwatchResets Stat = "StopwatchResets"
	LapsRecorded    Stat = "LapsRecorded"

	// Viewer stats
	ViewersConnected    Stat = "ViewersConnected"
	TotalViewerConnects Stat = "TotalViewerConnects"

	// HTTP request stats
	TotalRequestsReceived            Stat = "TotalRequestsReceived"
	TotalRequestSuccessfullyServiced Stat = "TotalRequestSuccessfullyServiced"
	TotalRequestDenied               Stat = "TotalRequestDenied"
)

// commonStats seeds every Stats map
var commonStats = Stats{
	CurrentMemoryUtilizationAlloc:    0,
	CurrentMemoryUtilizationHeapSys:  0,
	CurrentMemoryUtilizationActive:   0,
	MaxMemoryUtilizationAlloc:        0,
	MaxMemoryUtilizationHeapSys:      0,
	MaxMemoryUtilizationActive:       0,
	StopwatchStarts:                  0,
	StopwatchPauses:                  0,
	StopwatchResets:                  0,
	LapsRecorded:                     0,
	ViewersConnected:                 0,
	TotalViewerConnects:              0,
	TotalRequestsReceived:            0,
	TotalRequestSuccessfullyServiced: 0,
	TotalRequestDenied:               0,
}

// Option describes an option that can be set on a Stats map.
// Various types implement this interface.
type Option interface {
	Set(Stats)
}

// Stat is a named piece of data to be tracked
type Stat string

// Set creates the stat if it does not already exist
func (s Stat) Set(stats Stats) {
	if _, ok := stats[s]; !ok {
		stats[s] = 0
	}
}

// HealthFunc functions are allowed to modify the passed-in stats.
type HealthFunc func(Stats)

func (f HealthFunc) Set(stats Stats) {
	f(stats)
}

// Options aggregates a sequence of options into a single Option.
// This constructor allows multiple options to be set atomically as a group.
func Options(options ...Option) Option {
	return HealthFunc(func(stats Stats) {
		for _, option := range options {
			option.Set(stats)
		}
	})
}

// Inc increments the given stat by a certain amount
func Inc(stat Stat, value int) HealthFunc {
	return func(stats Stats) {
		stats[stat] += value
	}
}

// Set changes (or, initializes) the stat to the given value
func Set(stat Stat, value int) HealthFunc {
	return func(stats Stats) {
		stats[stat] = value
	}
}

// Stats is mapping of Stat to value
type Stats map[Stat]int

// NewStats returns the common stats with the given options applied
func NewStats(options []Option) Stats {
	s := commonStats.Clone()
	s.Apply(options...)
	return s
}

func (s Stats) Set(stats Stats) {
	for key, value := range s {
		stats[key] = value
	}
}

// Clone returns a distinct copy of this Stats object
func (s Stats) Clone() Stats {
	clone := make(Stats, len(s))
	for key, value := range s {
		clone[key] = value
	}

	return clone
}

// Apply invokes each Option.Set() on this stats map.
func (s Stats) Apply(options ...Option) {
	for _, option := range options {
		option.Set(s)
	}
}

// UpdateMemInfo sets the active memory stats from a linux meminfo, which reports kilobytes
func (s Stats) UpdateMemInfo(memInfo *linux.MemInfo) {
	active := int(memInfo.Active * 1024)
	s[CurrentMemoryUtilizationActive] = active
	if active > s[MaxMemoryUtilizationActive] {
		s[MaxMemoryUtilizationActive] = active
	}
}

// UpdateMemStats sets the allocation stats from the golang runtime
func (s Stats) UpdateMemStats(memStats *runtime.MemStats) {
	alloc := int(memStats.Alloc)
	heapsys := int(memStats.HeapSys)

	s[CurrentMemoryUtilizationAlloc] = alloc
	s[CurrentMemoryUtilizationHeapSys] = heapsys

	if alloc > s[MaxMemoryUtilizationAlloc] {
		s[MaxMemoryUtilizationAlloc] = alloc
	}

	if heapsys > s[MaxMemoryUtilizationHeapSys] {
		s[MaxMemoryUtilizationHeapSys] = heapsys
	}
}

// UpdateMemory updates all the memory statistics.  Hosts without a readable meminfo
// only report runtime stats.
func (s Stats) UpdateMemory(memInfoReader *MemInfoReader) {
	if memInfo, err := memInfoReader.Read(); err == nil {
		s.UpdateMemInfo(memInfo)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	s.UpdateMemStats(&memStats)
}
