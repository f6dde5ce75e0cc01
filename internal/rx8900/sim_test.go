package rx8900

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestPowerOn(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	PowerOn(m, start, true)
	vlf, err := d.VoltageLowFlag(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(vlf, qt.Equals, true)
	now, err := d.Now(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(now, qt.Equals, start)

	PowerOn(m, start, false)
	vlf, err = d.VoltageLowFlag(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(vlf, qt.Equals, false)
}

func TestLoadStoreTime(t *testing.T) {
	c := qt.New(t)
	regs := make([]byte, 32)
	_, ok := loadTime(regs)
	c.Assert(ok, qt.Equals, false)

	want := time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC)
	storeTime(regs, want)
	got, ok := loadTime(regs)
	c.Assert(ok, qt.Equals, true)
	c.Assert(got, qt.Equals, want)
}

func TestSimulateAdvances(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d, m := newTestDevice()
	start := time.Date(2024, 1, 1, 0, 0, 58, 0, time.UTC)

	go Simulate(ctx, m, start, time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		now, err := d.Now(ctx)
		if err == nil && now.After(start.Add(2*time.Second)) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	c.Fatal("simulated clock did not advance")
}
