package rx8900

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/micro-nova/meetlight/internal/hardware"
)

func newTestDevice() (*Device, *hardware.Mock) {
	m := hardware.NewMock(Address)
	return New(m), m
}

func TestReadWrite(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()

	c.Assert(d.Write(ctx, RegRAM, 0xA5), qt.IsNil)
	c.Assert(m.GetReg(byte(RegRAM)), qt.Equals, byte(0xA5))

	m.SetReg(byte(RegTemp), 0x76)
	v, err := d.Read(ctx, RegTemp)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, byte(0x76))

	c.Assert(m.Transactions(), qt.DeepEquals, []hardware.MockTx{
		{Addr: Address, Write: []byte{0x07, 0xA5}},
		{Addr: Address, Write: []byte{0x17}, Read: []byte{0x76}},
	})
}

func TestBusError(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, _ := newTestDevice()
	d.Address = 0x33

	_, err := d.Read(ctx, RegSec)
	var be *BusError
	c.Assert(errors.As(err, &be), qt.Equals, true)
	c.Assert(be.Op, qt.Equals, "read")
	c.Assert(be.Reg, qt.Equals, RegSec)
	c.Assert(err, qt.ErrorMatches, `rx8900: read SEC \(0x00\): mock: no ack from 0x33`)

	var he hardware.HardwareError
	c.Assert(errors.As(err, &he), qt.Equals, true)

	err = d.Write(ctx, RegFlag, 0)
	c.Assert(errors.As(err, &be), qt.Equals, true)
	c.Assert(be.Op, qt.Equals, "write")
	c.Assert(be.Reg, qt.Equals, RegFlag)
}

func TestCancelledContext(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, _ := newTestDevice()
	_, err := d.Read(ctx, RegSec)
	c.Assert(errors.Is(err, context.Canceled), qt.Equals, true)
}

func TestWriteBitPreservesOthers(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()
	m.SetReg(byte(RegControl), 0b1010_0001)

	c.Assert(d.WriteBit(ctx, RegControl, 4, true), qt.IsNil)
	c.Assert(m.GetReg(byte(RegControl)), qt.Equals, byte(0b1011_0001))

	c.Assert(d.WriteBit(ctx, RegControl, 7, false), qt.IsNil)
	c.Assert(m.GetReg(byte(RegControl)), qt.Equals, byte(0b0011_0001))

	on, err := d.ReadBit(ctx, RegControl, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(on, qt.Equals, true)
	on, err = d.ReadBit(ctx, RegControl, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(on, qt.Equals, false)
}

func TestWriteBitReadFailureSkipsWrite(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	d, m := newTestDevice()
	m.SetReg(byte(RegControl), 0x01)
	m.SetFailRead(true)

	err := d.WriteBit(ctx, RegControl, 4, true)
	c.Assert(err, qt.Not(qt.IsNil))
	c.Assert(m.GetReg(byte(RegControl)), qt.Equals, byte(0x01))
	c.Assert(m.Transactions(), qt.HasLen, 0)
}

func TestWriteFieldRange(t *testing.T) {
	c := qt.New(t)
	d, m := newTestDevice()
	err := d.writeField(context.Background(), RegExtension, bitTSEL, 4)
	c.Assert(errors.Is(err, ErrOutOfRange), qt.Equals, true)
	c.Assert(m.Transactions(), qt.HasLen, 0)
}
