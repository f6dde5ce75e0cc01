package indicator

import (
	"context"
	"fmt"
	"log/slog"
)

// BootMode says whether the RTC kept its time across the last power cycle.
type BootMode uint8

const (
	// Warm: backup power held, the clock is running with valid time.
	Warm BootMode = iota
	// Cold: the voltage-low flag was set, the clock must be initialized and
	// given a fresh time before use.
	Cold
)

func (b BootMode) String() string {
	if b == Cold {
		return "cold"
	}
	return "warm"
}

// VoltageLowReader reports the RTC's voltage-low flag.
type VoltageLowReader interface {
	VoltageLowFlag(ctx context.Context) (bool, error)
}

// DetectBootMode maps the voltage-low flag to a boot mode.
func DetectBootMode(ctx context.Context, r VoltageLowReader) (BootMode, error) {
	low, err := r.VoltageLowFlag(ctx)
	if err != nil {
		return Warm, fmt.Errorf("indicator: read voltage-low flag: %w", err)
	}
	if low {
		return Cold, nil
	}
	return Warm, nil
}

// boot runs the one-shot cold start: wait for the oscillator to settle,
// initialize the chip, then write the epoch.
func (m *Machine) boot(ctx context.Context) error {
	if m.cfg.Boot != Cold {
		return nil
	}
	if m.cfg.Initializer == nil {
		return fmt.Errorf("indicator: cold boot without an initializer")
	}
	slog.Info("voltage-low flag set, initializing clock", "settle", m.cfg.SettleDelay)
	if err := m.cfg.Sleeper.Sleep(ctx, m.cfg.SettleDelay); err != nil {
		return err
	}
	if err := m.cfg.Initializer.Initialize(ctx); err != nil {
		return fmt.Errorf("indicator: cold boot: %w", err)
	}
	if err := m.clock.Set(ctx, m.cfg.Epoch); err != nil {
		return fmt.Errorf("indicator: cold boot set clock: %w", err)
	}
	return nil
}
