// Package flight guards a controller's request lifecycle: a guard is Idle or
// Loading, and a new trigger is rejected while a previous one is still in
// flight. Both success and failure return the guard to Idle.
package flight

import (
	"errors"
	"sync/atomic"
)

var ErrBusy = errors.New("a request is already in flight")

const (
	idle int32 = iota
	loading
)

type Guard struct {
	state atomic.Int32
}

// Do runs fn if the guard is Idle, holding Loading for the duration.
// It returns ErrBusy without running fn if a call is already in flight.
func (g *Guard) Do(fn func() error) error {
	if !g.state.CompareAndSwap(idle, loading) {
		return ErrBusy
	}
	defer g.state.Store(idle)
	return fn()
}

func (g *Guard) Loading() bool {
	return g.state.Load() == loading
}
