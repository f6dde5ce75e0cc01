// Package rx8900 implements a driver for the Epson RX8900 temperature
// compensated real-time clock.
//
// Every accessor is built on four register primitives (Read, Write,
// ReadBit, WriteBit), each of which is one or two single-register bus
// transactions. No operation is atomic across registers: Set and
// Initialize leave a partially updated chip if the bus fails midway.
//
// A Device is not safe for concurrent use. WriteBit is a read-modify-write
// over two transactions, so the bus must be owned by one goroutine; callers
// that share a Device must serialize access themselves.
//
// Datasheet: https://support.epson.biz/td/api/doc_check.php?dl=app_RX8900CE
package rx8900

import (
	"context"
	"fmt"

	"github.com/micro-nova/meetlight/internal/hardware"
)

// Device is an RX8900 on an I2C bus.
type Device struct {
	bus     hardware.Bus
	Address uint16
}

// New returns a Device at the chip's fixed address. The bus is owned by the
// Device from here on.
func New(bus hardware.Bus) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

// Read returns the raw value of reg using a write-then-read transaction.
func (d *Device) Read(ctx context.Context, reg Register) (byte, error) {
	buf := [1]byte{}
	if err := d.bus.Tx(ctx, d.Address, []byte{byte(reg)}, buf[:]); err != nil {
		return 0, &BusError{Op: "read", Reg: reg, Err: err}
	}
	return buf[0], nil
}

// Write stores val in reg using a two-byte write transaction.
func (d *Device) Write(ctx context.Context, reg Register, val byte) error {
	if err := d.bus.Tx(ctx, d.Address, []byte{byte(reg), val}, nil); err != nil {
		return &BusError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// ReadBit reports whether bit of reg is set.
func (d *Device) ReadBit(ctx context.Context, reg Register, bit uint) (bool, error) {
	val, err := d.Read(ctx, reg)
	if err != nil {
		return false, err
	}
	return val&(1<<bit) != 0, nil
}

// WriteBit sets or clears one bit of reg, leaving the others unchanged.
func (d *Device) WriteBit(ctx context.Context, reg Register, bit uint, set bool) error {
	val, err := d.Read(ctx, reg)
	if err != nil {
		return err
	}
	val &^= 1 << bit
	if set {
		val |= 1 << bit
	}
	return d.Write(ctx, reg, val)
}

// readField returns the 2-bit field of reg starting at shift.
func (d *Device) readField(ctx context.Context, reg Register, shift uint) (uint8, error) {
	val, err := d.Read(ctx, reg)
	if err != nil {
		return 0, err
	}
	return (val >> shift) & 0x03, nil
}

// writeField replaces the 2-bit field of reg starting at shift.
func (d *Device) writeField(ctx context.Context, reg Register, shift uint, field uint8) error {
	if field > 0x03 {
		return fmt.Errorf("%w: 2-bit field value %d", ErrOutOfRange, field)
	}
	val, err := d.Read(ctx, reg)
	if err != nil {
		return err
	}
	val = val&^(0x03<<shift) | field<<shift
	return d.Write(ctx, reg, val)
}
