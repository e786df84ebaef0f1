package system

import (
	"fmt"

	"go-vfx-engine/internal/event"
)

// Frame: то, что каждое поведение видит о текущем тике
type Frame struct {
	Now       float64
	Dt        float64
	TimeScale float64 // scales growth, spin, orbit and fade rates
	FadeBoost float64 // from the load controller
	Events    *event.Dispatcher
}

// guard runs fn and turns a panic into an error, so one broken effect or one
// misbehaving host call cannot take the frame loop down.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("recovered: %w", e)
				return
			}
			err = fmt.Errorf("recovered: %v", r)
		}
	}()
	fn()
	return nil
}

// guardErr is guard for calls that also report errors themselves.
func guardErr(fn func() error) error {
	var callErr error
	if err := guard(func() { callErr = fn() }); err != nil {
		return err
	}
	return callErr
}
