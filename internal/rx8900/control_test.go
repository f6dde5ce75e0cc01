package rx8900

import (
	"context"
	"errors"
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFlagClearsWriteZero(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()
	m.SetReg(byte(RegFlag), 0x3B)

	f, err := d.Flags(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, Flags{Update: true, Timer: true, Alarm: true, VoltageLow: true, VoltageDetect: true})

	clears := []struct {
		fn   func(context.Context) error
		want byte
	}{
		{d.ClearVoltageLowFlag, 0x39},
		{d.ClearVoltageDetectFlag, 0x38},
		{d.ClearAlarmFlag, 0x30},
		{d.ClearTimerFlag, 0x20},
		{d.ClearUpdateFlag, 0x00},
	}
	for _, tc := range clears {
		c.Assert(tc.fn(ctx), qt.IsNil)
		c.Assert(m.GetReg(byte(RegFlag)), qt.Equals, tc.want)
	}

	// Clearing an already clear flag leaves it clear.
	c.Assert(d.ClearVoltageLowFlag(ctx), qt.IsNil)
	vlf, err := d.VoltageLowFlag(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(vlf, qt.Equals, false)
}

func TestExtensionFields(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()

	c.Assert(d.SetSourceClock(ctx, SourceClockMinute), qt.IsNil)
	c.Assert(d.SetFoutFrequency(ctx, FoutFrequency1Hz), qt.IsNil)
	c.Assert(d.SetTimerEnabled(ctx, true), qt.IsNil)
	c.Assert(d.SetUpdateInterrupt(ctx, UpdateEveryMinute), qt.IsNil)
	c.Assert(d.SetAlarmType(ctx, AlarmTypeDay), qt.IsNil)
	c.Assert(m.GetReg(byte(RegExtension)), qt.Equals, byte(0b0111_1011))

	sc, err := d.SourceClock(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(sc, qt.Equals, SourceClockMinute)
	fout, err := d.FoutFrequency(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(fout, qt.Equals, FoutFrequency1Hz)
	ui, err := d.UpdateInterrupt(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(ui, qt.Equals, UpdateEveryMinute)
	at, err := d.AlarmType(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(at, qt.Equals, AlarmTypeDay)
	te, err := d.TimerEnabled(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(te, qt.Equals, true)
}

func TestFoutFrequencyReservedCode(t *testing.T) {
	c := qt.New(t)
	d, m := newTestDevice()
	m.SetReg(byte(RegExtension), 0b0000_1100)
	f, err := d.FoutFrequency(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, FoutFrequency32768Hz)
}

func TestControlRegister(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()

	c.Assert(d.SetCompensationInterval(ctx, CompensationInterval30s), qt.IsNil)
	c.Assert(d.SetUpdateInterruptEnabled(ctx, true), qt.IsNil)
	c.Assert(d.SetAlarmInterruptEnabled(ctx, true), qt.IsNil)
	c.Assert(d.SetCounterReset(ctx, true), qt.IsNil)
	c.Assert(m.GetReg(byte(RegControl)), qt.Equals, byte(0b1110_1001))

	ci, err := d.CompensationInterval(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(ci, qt.Equals, CompensationInterval30s)
	tie, err := d.TimerInterruptEnabled(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(tie, qt.Equals, false)
}

func TestBackupFunction(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()

	c.Assert(d.SetVoltageDetectorOff(ctx, true), qt.IsNil)
	c.Assert(d.SetSwitchOff(ctx, true), qt.IsNil)
	c.Assert(d.SetBackupSampling(ctx, 2), qt.IsNil)
	c.Assert(m.GetReg(byte(RegBackupFunction)), qt.Equals, byte(0x0E))

	s, err := d.BackupSampling(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, uint8(2))
	c.Assert(errors.Is(d.SetBackupSampling(ctx, 4), ErrOutOfRange), qt.Equals, true)
}

func TestTimerCounterAndRAM(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()

	c.Assert(d.SetTimerCounter(ctx, 0x1234), qt.IsNil)
	c.Assert(m.GetReg(byte(RegTimerCounter0)), qt.Equals, byte(0x34))
	c.Assert(m.GetReg(byte(RegTimerCounter1)), qt.Equals, byte(0x12))
	v, err := d.TimerCounter(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, uint16(0x1234))

	c.Assert(d.SetRAM(ctx, 0x5A), qt.IsNil)
	ram, err := d.RAM(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(ram, qt.Equals, byte(0x5A))
}

func TestTemperature(t *testing.T) {
	c := qt.New(t)
	d, m := newTestDevice()
	m.SetReg(byte(RegTemp), 118)

	got, err := d.Temperature(context.Background())
	c.Assert(err, qt.IsNil)
	c.Assert(math.Abs(got-15.1678) < 1e-3, qt.Equals, true, qt.Commentf("got %f", got))

	c.Assert(TemperatureCelsius(0) < 0, qt.Equals, true)
	c.Assert(math.Abs(TemperatureCelsius(255)-100.3139) < 1e-3, qt.Equals, true)
}

func TestEnumStrings(t *testing.T) {
	c := qt.New(t)
	c.Assert(SourceClock64Hz.String(), qt.Equals, "64Hz")
	c.Assert(FoutFrequency1024Hz.String(), qt.Equals, "1024Hz")
	c.Assert(CompensationInterval500ms.String(), qt.Equals, "0.5s")
	c.Assert(AlarmTypeWeek.String(), qt.Equals, "week")
	c.Assert(UpdateEveryMinute.String(), qt.Equals, "minute")
}
