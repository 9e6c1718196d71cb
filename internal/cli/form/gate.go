package form

import (
	"errors"
	"strings"
	"sync/atomic"
)

// ErrBusy is returned by Gate.Do while a previous submission is still running.
var ErrBusy = errors.New("a submission is already in progress")

// Gate lets at most one submission run at a time.
type Gate struct {
	busy atomic.Bool
}

// Do runs fn unless another call is in flight, in which case it returns ErrBusy
// without calling fn.
func (g *Gate) Do(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

func (g *Gate) Busy() bool { return g.busy.Load() }

// ErrConfirmMismatch: введённое имя не совпало с ожидаемым.
var ErrConfirmMismatch = errors.New("confirmation does not match")

// ConfirmDeletion checks that the operator retyped expected exactly (surrounding
// spaces ignored).
func ConfirmDeletion(expected, typed string) error {
	if strings.TrimSpace(typed) != expected || expected == "" {
		return ErrConfirmMismatch
	}
	return nil
}
