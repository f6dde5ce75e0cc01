// Package indicator drives the two status lights from the RTC.
//
// A Machine polls the clock's seconds register. Every observed change is a
// tick. For the first thirty ticks the phase follows a local counter; on
// tick 30 the clock is rewound to a fixed epoch and from then on the
// clock's minute of the hour alone selects the phase.
package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/micro-nova/meetlight/internal/hardware"
	"github.com/micro-nova/meetlight/internal/models"
)

// Defaults for Config fields left zero.
const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultSettleDelay  = time.Second
)

// DefaultEpoch is the wall time written on reset and on a cold boot.
var DefaultEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is the part of the RTC the machine reads and rewinds.
type Clock interface {
	Second(ctx context.Context) (int, error)
	Minute(ctx context.Context) (int, error)
	Set(ctx context.Context, t time.Time) error
}

// Initializer brings the RTC to a known configuration after power loss.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Sleeper blocks for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Publisher receives a snapshot for every evaluated tick.
type Publisher interface {
	Publish(models.Snapshot)
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// Sleep is the real-time Sleeper.
var Sleep Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
})

// Config holds the optional parts of a Machine.
type Config struct {
	Boot         BootMode
	Initializer  Initializer // required when Boot is Cold
	PollInterval time.Duration
	SettleDelay  time.Duration
	Epoch        time.Time
	Sleeper      Sleeper
	Publisher    Publisher
}

// Machine is the status state machine. It owns the clock and the lights
// and must be driven from a single goroutine.
type Machine struct {
	clock  Clock
	lights hardware.Lights
	cfg    Config

	tick       int
	lastSecond int
	mode       models.Mode
}

// New creates a Machine in tick mode at tick 0.
func New(clock Clock, lights hardware.Lights, cfg Config) *Machine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Epoch.IsZero() {
		cfg.Epoch = DefaultEpoch
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = Sleep
	}
	return &Machine{
		clock:      clock,
		lights:     lights,
		cfg:        cfg,
		lastSecond: -1,
		mode:       models.ModeTick,
	}
}

// Mode reports whether the machine is still counting ticks.
func (m *Machine) Mode() models.Mode { return m.mode }

// Tick returns the tick counter.
func (m *Machine) Tick() int { return m.tick }

// Run performs the boot sequence and then polls until ctx is cancelled or a
// clock or light operation fails. Cancellation returns nil.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.boot(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	for {
		if err := m.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Step performs one poll. If the second has not changed since the last poll
// it sleeps the poll interval; otherwise it evaluates a tick and plays the
// phase's light pattern, which blocks for the pattern's duration.
func (m *Machine) Step(ctx context.Context) error {
	sec, err := m.clock.Second(ctx)
	if err != nil {
		return fmt.Errorf("indicator: read second: %w", err)
	}
	if sec == m.lastSecond {
		return m.cfg.Sleeper.Sleep(ctx, m.cfg.PollInterval)
	}
	m.lastSecond = sec

	snap := models.Snapshot{
		Mode:   m.mode,
		Boot:   m.cfg.Boot.String(),
		Tick:   m.tick,
		Second: sec,
	}

	var phase Phase
	if m.mode == models.ModeMinute {
		minute, err := m.clock.Minute(ctx)
		if err != nil {
			return fmt.Errorf("indicator: read minute: %w", err)
		}
		phase = MinutePhase(minute)
		snap.Minute = &minute
	} else {
		phase = TickPhase(m.tick)
		if phase != PhaseReset {
			m.tick++
		}
	}

	pattern := phase.Pattern()
	snap.Phase = phase.String()
	snap.Lights = pattern[0].Lights
	snap.UpdatedAt = time.Now()
	slog.Debug("indicator tick", "phase", phase, "mode", snap.Mode, "tick", snap.Tick, "second", sec)
	if m.cfg.Publisher != nil {
		m.cfg.Publisher.Publish(snap)
	}

	if err := m.play(ctx, pattern); err != nil {
		return err
	}

	if phase == PhaseReset {
		if err := m.clock.Set(ctx, m.cfg.Epoch); err != nil {
			return fmt.Errorf("indicator: reset clock: %w", err)
		}
		m.mode = models.ModeMinute
		slog.Info("clock reset, following minute of hour", "epoch", m.cfg.Epoch)
	}
	return nil
}

func (m *Machine) play(ctx context.Context, pattern []Step) error {
	for _, s := range pattern {
		if err := hardware.Apply(m.lights, s.Lights); err != nil {
			return fmt.Errorf("indicator: set lights: %w", err)
		}
		if s.Hold > 0 {
			if err := m.cfg.Sleeper.Sleep(ctx, s.Hold); err != nil {
				return err
			}
		}
	}
	return nil
}
