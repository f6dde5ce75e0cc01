package hardware

import (
	"context"

	"tinygo.org/x/drivers"
)

// TinyGoBus adapts a tinygo.org/x/drivers I2C bus (machine.I2C on a
// microcontroller) to Bus, so the RTC driver can be linked into firmware.
type TinyGoBus struct {
	bus drivers.I2C
}

// NewTinyGo wraps a TinyGo I2C bus.
func NewTinyGo(bus drivers.I2C) *TinyGoBus {
	return &TinyGoBus{bus: bus}
}

// Tx forwards to the TinyGo bus. The context is ignored: TinyGo I2C
// transfers are synchronous and cannot be cancelled.
func (b *TinyGoBus) Tx(_ context.Context, addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}
