package client

import (
	"context"
	"fmt"

	"github.com/krobar/airtouch3/internal/protocol"
)

// Convergence bounds. The wire protocol has no absolute-set primitive, only
// toggle and step commands, so targets are reached by stepping and
// re-reading state. Another controller (a wall touchpad, another phone) may
// be moving the same value concurrently, so every loop carries a hard step
// bound and surfaces failure instead of retrying forever.
const (
	MaxConvergeSteps = 20

	MinSetpoint = 16 // °C
	MaxSetpoint = 30 // °C

	DamperStep = 5 // percent per step command
)

// readValue extracts the value being converged from a snapshot.
type readValue func(*protocol.SystemSnapshot) (int, error)

// stepFunc sends one step command and returns the state frame the device
// answered with.
type stepFunc func(ctx context.Context) (*protocol.SystemSnapshot, error)

// ACSetTemperature drives an AC unit's setpoint to target °C through
// temp-up/temp-down steps. Fails with *ConvergenceError if the target is
// not reached within the step bound; steps already sent stay applied.
func (c *Client) ACSetTemperature(ctx context.Context, acNum, target int) error {
	if err := checkAcNum(acNum); err != nil {
		return err
	}
	if target < MinSetpoint || target > MaxSetpoint {
		return fmt.Errorf("setpoint %d°C: %w (%d-%d)", target, ErrInvalidTarget, MinSetpoint, MaxSetpoint)
	}
	return c.converge(ctx, "setpoint", target,
		func(snap *protocol.SystemSnapshot) (int, error) {
			if acNum >= len(snap.AcUnits) {
				return 0, fmt.Errorf("ac unit %d missing from snapshot", acNum)
			}
			return snap.AcUnits[acNum].Setpoint, nil
		},
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ACTempUp(ctx, acNum) },
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ACTempDown(ctx, acNum) },
	)
}

// ZoneSetDamper drives a zone's damper to target percent (0-100 in steps
// of 5) through zone value up/down commands. The zone must be in
// fixed-damper mode for the steps to affect the damper.
func (c *Client) ZoneSetDamper(ctx context.Context, zone, target int) error {
	if err := checkZone(zone); err != nil {
		return err
	}
	if target < 0 || target > 100 || target%DamperStep != 0 {
		return fmt.Errorf("damper %d%%: %w (0-100 in steps of %d)", target, ErrInvalidTarget, DamperStep)
	}
	return c.converge(ctx, "damper", target,
		func(snap *protocol.SystemSnapshot) (int, error) {
			if zone >= len(snap.Zones) {
				return 0, fmt.Errorf("zone %d missing from snapshot", zone)
			}
			return snap.Zones[zone].DamperPercent, nil
		},
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ZoneValueUp(ctx, zone) },
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ZoneValueDown(ctx, zone) },
	)
}

// ZoneSetSetpoint drives a temperature-controlled zone's setpoint to target
// °C. Refused when the zone has no sensor source (its setpoint bytes are
// meaningless then).
func (c *Client) ZoneSetSetpoint(ctx context.Context, zone, target int) error {
	if err := checkZone(zone); err != nil {
		return err
	}
	if target < MinSetpoint || target > MaxSetpoint {
		return fmt.Errorf("setpoint %d°C: %w (%d-%d)", target, ErrInvalidTarget, MinSetpoint, MaxSetpoint)
	}
	return c.converge(ctx, "setpoint", target,
		func(snap *protocol.SystemSnapshot) (int, error) {
			if zone >= len(snap.Zones) {
				return 0, fmt.Errorf("zone %d missing from snapshot", zone)
			}
			z := snap.Zones[zone]
			if !z.HasSetpoint {
				return 0, fmt.Errorf("zone %d has no temperature sensor", zone)
			}
			return z.Setpoint, nil
		},
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ZoneValueUp(ctx, zone) },
		func(ctx context.Context) (*protocol.SystemSnapshot, error) { return c.ZoneValueDown(ctx, zone) },
	)
}

// converge is the shared loop: read the latest value, step toward target,
// re-read from the state frame each step returns. Terminates on target,
// context cancellation, a failed step, or the step bound.
func (c *Client) converge(ctx context.Context, what string, target int, read readValue, up, down stepFunc) error {
	snap := c.Snapshot()
	if snap == nil {
		var err error
		if snap, err = c.Refresh(ctx); err != nil {
			return fmt.Errorf("initial state: %w", err)
		}
	}

	current, err := read(snap)
	if err != nil {
		return err
	}

	for steps := 0; steps < MaxConvergeSteps; steps++ {
		if current == target {
			return nil
		}
		if err := ctx.Err(); err != nil {
			// Steps already sent have taken effect on the device; there is
			// nothing to roll back.
			return err
		}

		if current < target {
			snap, err = up(ctx)
		} else {
			snap, err = down(ctx)
		}
		if err != nil {
			return fmt.Errorf("%s step toward %d: %w", what, target, err)
		}

		if current, err = read(snap); err != nil {
			return err
		}
	}

	if current == target {
		return nil
	}
	return &ConvergenceError{What: what, Target: target, Final: current, Steps: MaxConvergeSteps}
}
