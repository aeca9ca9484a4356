package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned by operations that need an established
	// connection while the client is in any other state.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectionLost is returned to an in-flight command when the peer
	// closes or resets the connection before the response frame arrives.
	ErrConnectionLost = errors.New("connection lost")

	// ErrCommandTimeout is returned when the device does not answer a
	// command with a state frame within the command timeout.
	ErrCommandTimeout = errors.New("command response timeout")

	// ErrInvalidTarget is returned when a convergence target is outside
	// its permitted range before any command is sent.
	ErrInvalidTarget = errors.New("target out of range")
)

// ConvergenceError reports a convergence loop that exhausted its step bound
// without reaching the target. The device is left in whatever state the
// last accepted step produced; there is no rollback.
type ConvergenceError struct {
	What   string // "setpoint" or "damper"
	Target int
	Final  int // value observed when the bound ran out
	Steps  int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge to %d after %d steps (stuck at %d)",
		e.What, e.Target, e.Steps, e.Final)
}
