package hardware

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostOnce struct {
	sync.Once
	err error
}

// initHost loads the periph.io host drivers once per process.
func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostOnce.err = fmt.Errorf("periph: host init failed: %w", err)
		}
	})
	return hostOnce.err
}

// PeriphBus is a Bus backed by a periph.io I2C bus. It works on any host
// periph supports, not only Linux i2c-dev.
type PeriphBus struct {
	name    string
	bus     i2c.BusCloser
	limiter *rate.Limiter
}

// NewPeriph creates a periph.io bus. name is the periph bus name or number
// ("" selects the first bus); opsPerSec caps the transaction rate.
func NewPeriph(name string, opsPerSec int) *PeriphBus {
	if opsPerSec <= 0 {
		opsPerSec = defaultPeriphOpsPerSec
	}
	return &PeriphBus{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(opsPerSec), 10),
	}
}

const defaultPeriphOpsPerSec = 500

// Open initializes the periph host and opens the bus.
func (b *PeriphBus) Open() error {
	if err := initHost(); err != nil {
		return err
	}
	bus, err := i2creg.Open(b.name)
	if err != nil {
		return fmt.Errorf("periph: open i2c bus %q: %w", b.name, err)
	}
	b.bus = bus
	slog.Debug("periph: i2c bus opened", "bus", bus.String())
	return nil
}

func (b *PeriphBus) Tx(ctx context.Context, addr uint16, w, r []byte) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if b.bus == nil {
		return fmt.Errorf("periph: bus not open")
	}
	return b.bus.Tx(addr, w, r)
}

// Close releases the bus.
func (b *PeriphBus) Close() error {
	if b.bus == nil {
		return nil
	}
	err := b.bus.Close()
	b.bus = nil
	return err
}
