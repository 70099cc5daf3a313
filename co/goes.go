// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small helpers for goroutine life-cycles.
package co

import (
	"sync"
	"sync/atomic"
	"time"
)

// Goes starts goroutines and waits for them to exit.
// The zero value is ready to use.
type Goes struct {
	wg      sync.WaitGroup
	running atomic.Int32
}

// Go runs f in a new goroutine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	g.running.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.running.Add(-1)
		f()
	}()
}

// Running returns the number of goroutines not yet returned.
func (g *Goes) Running() int {
	return int(g.running.Load())
}

// Wait blocks until every goroutine started by Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// WaitTimeout is Wait bounded by d. It reports whether all goroutines
// returned in time.
func (g *Goes) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
