// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// spinnerPhases are the braille frames of the spinner, each followed by a
// space to separate it from the endpoint text.
var spinnerPhases = []string{"⠉ ", "⠘ ", "⠰ ", "⠤ ", "⠆ ", "⠃ "}

// spinner advances through its phases in the background while endpoints are
// in verification.
type spinner struct {
	phase    atomic.Uint32
	done     chan struct{}
	stopOnce sync.Once
}

// newSpinner returns a new spinner; call Start to make it spin and Stop to
// stop it and release its background resources.
func newSpinner() *spinner {
	return &spinner{done: make(chan struct{})}
}

// Spinner returns the spinner string for the current phase.
func (s *spinner) Spinner() string {
	return spinnerPhases[int(s.phase.Load())%len(spinnerPhases)]
}

// Start spinning in steps of the specified interval.
func (s *spinner) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.phase.Add(1)
			case <-s.done:
				return
			}
		}
	}()
}

// Stop the spinner; Stop can be called multiple times.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
