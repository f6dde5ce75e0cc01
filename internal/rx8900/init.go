package rx8900

import (
	"context"
	"fmt"
)

// Initialize configures the chip after a power loss (VLF set): interrupts,
// timer, FOUT selection and test mode off; VDET and VLF cleared; voltage
// detector disabled and the backup switch-off feature enabled. The caller
// must write a fresh time afterwards.
//
// The steps are separate register writes. If one fails the chip is left
// partly configured and VLF may still be set, so the sequence is simply
// run again on the next boot.
func (d *Device) Initialize(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"timer enable", func(ctx context.Context) error { return d.SetTimerEnabled(ctx, false) }},
		{"fout select", func(ctx context.Context) error { return d.SetFoutFrequency(ctx, FoutFrequency32768Hz) }},
		{"test", func(ctx context.Context) error { return d.SetTest(ctx, false) }},
		{"voltage detect flag", d.ClearVoltageDetectFlag},
		{"voltage low flag", d.ClearVoltageLowFlag},
		{"alarm interrupt", func(ctx context.Context) error { return d.SetAlarmInterruptEnabled(ctx, false) }},
		{"timer interrupt", func(ctx context.Context) error { return d.SetTimerInterruptEnabled(ctx, false) }},
		{"update interrupt", func(ctx context.Context) error { return d.SetUpdateInterruptEnabled(ctx, false) }},
		{"voltage detector off", func(ctx context.Context) error { return d.SetVoltageDetectorOff(ctx, true) }},
		{"switch off", func(ctx context.Context) error { return d.SetSwitchOff(ctx, true) }},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("rx8900: initialize %s: %w", s.name, err)
		}
	}
	return nil
}
