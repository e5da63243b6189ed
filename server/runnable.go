// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"sync"
	"time"
)

// Runnable represents any operation that can spawn zero or more goroutines.
type Runnable interface {
	// Run executes this operation, possibly returning an error if the operation
	// could not be started.  This method is responsible for using the supplied
	// waitGroup for any goroutines it spawns, and those goroutines exit when
	// shutdown is closed.
	//
	// Generally speaking, Run() should be idempotent.
	Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error
}

// RunnableFunc is a function type that implements Runnable
type RunnableFunc func(*sync.WaitGroup, <-chan struct{}) error

func (r RunnableFunc) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	return r(waitGroup, shutdown)
}

// RunnableSet is a slice type that allows grouping of operations.
// This type implements Runnable as well.
type RunnableSet []Runnable

// Run starts each operation in order, stopping at the first error
func (set RunnableSet) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	for _, operation := range set {
		if err := operation.Run(waitGroup, shutdown); err != nil {
			return err
		}
	}

	return nil
}

// Execute is a convenience function that creates the necessary synchronization objects
// and then runs the supplied Runnable.  The returned function closes shutdown and waits,
// at most timeout, for every goroutine to exit.
func Execute(runnable Runnable) (waitGroup *sync.WaitGroup, stop func(time.Duration) bool, err error) {
	waitGroup = new(sync.WaitGroup)
	shutdown := make(chan struct{})
	err = runnable.Run(waitGroup, shutdown)

	var once sync.Once
	stop = func(timeout time.Duration) bool {
		once.Do(func() { close(shutdown) })
		return WaitTimeout(waitGroup, timeout)
	}

	return
}

// WaitTimeout waits on a WaitGroup for a maximum time.  A nonpositive timeout waits
// indefinitely.  This function returns true if the WaitGroup finished in time.
func WaitTimeout(waitGroup *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		waitGroup.Wait()
	}()

	if timeout <= 0 {
		<-done
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
