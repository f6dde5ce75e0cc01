//go:build linux

package hardware_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/micro-nova/meetlight/internal/hardware"
)

// These tests exercise I2CBus methods that are safe to call without real hardware.

func TestNewI2C_Defaults(t *testing.T) {
	b := hardware.NewI2C("", 0)
	if b == nil {
		t.Fatal("NewI2C() returned nil")
	}
}

func TestI2CBus_TxBeforeOpen(t *testing.T) {
	b := hardware.NewI2C("", 0)
	err := b.Tx(context.Background(), 0x32, []byte{0x00}, make([]byte, 1))
	if err == nil {
		t.Fatal("Tx before Open: want error, got nil")
	}
}

func TestI2CBus_Close_BeforeOpen(t *testing.T) {
	b := hardware.NewI2C("", 0)
	// Close() before Open() should be a no-op
	if err := b.Close(); err != nil {
		t.Errorf("Close() before Open = %v, want nil", err)
	}
}

func TestI2CBus_Open_MissingDevice(t *testing.T) {
	b := hardware.NewI2C(filepath.Join(t.TempDir(), "i2c-missing"), 0)
	if err := b.Open(); err == nil {
		t.Fatal("Open() on missing device node: want error, got nil")
	}
}

func TestI2CBus_TxCancelledContext(t *testing.T) {
	b := hardware.NewI2C("", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The limiter refuses to wait on a cancelled context.
	if err := b.Tx(ctx, 0x32, []byte{0x00}, make([]byte, 1)); err == nil {
		t.Fatal("Tx with cancelled context: want error, got nil")
	}
}

func TestI2CBus_ImplementsBus(t *testing.T) {
	var _ hardware.Bus = hardware.NewI2C("", 0)
}

func TestOpenBus_Errors(t *testing.T) {
	if _, _, err := hardware.OpenBus("spi", "", 0); err == nil {
		t.Error("OpenBus with an unknown driver: want error, got nil")
	}
	missing := filepath.Join(t.TempDir(), "i2c-missing")
	if _, _, err := hardware.OpenBus("ioctl", missing, 0); err == nil {
		t.Error("OpenBus on a missing device: want error, got nil")
	}
}
