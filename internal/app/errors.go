package app

import (
	"errors"
	"fmt"
)

// ErrQuit signals a normal, user-requested exit (Escape). main treats
// it as success.
var ErrQuit = errors.New("quit")

// InitError wraps a failure to bring up a component during startup.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
