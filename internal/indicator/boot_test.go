package indicator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/micro-nova/meetlight/internal/hardware"
	"github.com/micro-nova/meetlight/internal/indicator"
	"github.com/micro-nova/meetlight/internal/models"
	"github.com/micro-nova/meetlight/internal/rx8900"
)

type vlfReader struct {
	low bool
	err error
}

func (r vlfReader) VoltageLowFlag(context.Context) (bool, error) { return r.low, r.err }

type initRecorder struct {
	trace *[]string
	err   error
}

func (i initRecorder) Initialize(context.Context) error {
	*i.trace = append(*i.trace, "initialize")
	return i.err
}

func TestDetectBootMode(t *testing.T) {
	ctx := context.Background()
	if got, err := indicator.DetectBootMode(ctx, vlfReader{low: true}); err != nil || got != indicator.Cold {
		t.Errorf("VLF set: got %s, %v; want cold", got, err)
	}
	if got, err := indicator.DetectBootMode(ctx, vlfReader{}); err != nil || got != indicator.Warm {
		t.Errorf("VLF clear: got %s, %v; want warm", got, err)
	}
	busErr := errors.New("nack")
	if _, err := indicator.DetectBootMode(ctx, vlfReader{err: busErr}); !errors.Is(err, busErr) {
		t.Errorf("read failure: got %v, want %v", err, busErr)
	}
}

// runBoot runs the machine until its first poll, where the clock fails.
func runBoot(t *testing.T, mode indicator.BootMode, initErr error) ([]string, error) {
	t.Helper()
	var trace []string
	clock := &fakeClock{trace: &trace}
	sleep := &sleepLog{trace: &trace}
	m := indicator.New(clock, hardware.NewMockLights(), indicator.Config{
		Boot:        mode,
		Initializer: initRecorder{trace: &trace, err: initErr},
		Sleeper:     sleep,
	})
	clock.err = errors.New("stop")
	err := m.Run(context.Background())
	return trace, err
}

func TestColdBootSequence(t *testing.T) {
	trace, err := runBoot(t, indicator.Cold, nil)
	if err == nil || err.Error() != "indicator: read second: stop" {
		t.Fatalf("Run = %v, want the first poll to fail", err)
	}
	want := []string{"sleep 1s", "initialize", "set"}
	if diff := cmp.Diff(want, trace); diff != "" {
		t.Errorf("boot sequence (-want +got):\n%s", diff)
	}
}

func TestWarmBootSkipsInitialize(t *testing.T) {
	trace, _ := runBoot(t, indicator.Warm, nil)
	if len(trace) != 0 {
		t.Errorf("warm boot ran %v", trace)
	}
}

func TestColdBootInitializeFailure(t *testing.T) {
	initErr := errors.New("init nack")
	trace, err := runBoot(t, indicator.Cold, initErr)
	if !errors.Is(err, initErr) {
		t.Fatalf("Run = %v, want %v", err, initErr)
	}
	if diff := cmp.Diff([]string{"sleep 1s", "initialize"}, trace); diff != "" {
		t.Errorf("boot sequence (-want +got):\n%s", diff)
	}
}

func TestColdBootWithoutInitializer(t *testing.T) {
	m := indicator.New(&fakeClock{}, hardware.NewMockLights(), indicator.Config{Boot: indicator.Cold})
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("cold boot without an initializer should fail")
	}
}

// TestRX8900ColdBoot drives the machine against the chip driver on a mock
// bus. Every poll-interval sleep advances the chip by one second.
func TestRX8900ColdBoot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := hardware.NewMock(rx8900.Address)
	rx8900.PowerOn(bus, time.Date(2031, 5, 5, 12, 0, 0, 0, time.UTC), true)
	dev := rx8900.New(bus)

	mode, err := indicator.DetectBootMode(ctx, dev)
	if err != nil || mode != indicator.Cold {
		t.Fatalf("DetectBootMode = %s, %v; want cold", mode, err)
	}

	sleeper := indicator.SleeperFunc(func(ctx context.Context, d time.Duration) error {
		if d != indicator.DefaultPollInterval {
			return ctx.Err()
		}
		now, err := dev.Now(ctx)
		if err != nil {
			return err
		}
		rx8900.PowerOn(bus, now.Add(time.Second), false)
		return ctx.Err()
	})

	pub := &recorder{}
	stopper := publisherFunc(func(s models.Snapshot) {
		pub.Publish(s)
		if len(pub.snaps) == 40 {
			cancel()
		}
	})
	lights := hardware.NewMockLights()
	m := indicator.New(dev, lights, indicator.Config{
		Boot:        mode,
		Initializer: dev,
		Sleeper:     sleeper,
		Publisher:   stopper,
	})
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := bus.GetReg(byte(rx8900.RegBackupFunction)); got != 0x0C {
		t.Errorf("backup function register = 0x%02x, want 0x0c", got)
	}
	phases := make([]string, len(pub.snaps))
	for i, s := range pub.snaps {
		phases[i] = s.Phase
	}
	if phases[0] != "boot" || phases[20] != "warning" || phases[30] != "reset" {
		t.Errorf("tick phases = %v", phases[:31])
	}
	for i, p := range phases[31:] {
		if p != "event_open" {
			t.Errorf("phase after reset %d = %s, want event_open", i, p)
		}
	}
	if s := pub.snaps[31]; s.Second != 0 || s.Minute == nil || *s.Minute != 0 {
		t.Errorf("first minute-mode snapshot = %+v, want 00:00", s)
	}
	if s := pub.snaps[0]; s.Boot != "cold" {
		t.Errorf("boot = %q, want cold", s.Boot)
	}
}

type publisherFunc func(models.Snapshot)

func (f publisherFunc) Publish(s models.Snapshot) { f(s) }
