//go:build linux

package hardware

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"
)

const (
	DefaultI2CDevice = "/dev/i2c-1"
	i2cRdwrIOCTL     = 0x0707 // I2C_RDWR ioctl (combined write+read with REPEATED START)
	i2cMsgRD         = 0x0001 // i2c_msg flag: read direction
	defaultOpsPerSec = 500
)

// i2cMsg mirrors struct i2c_msg from linux/i2c.h
type i2cMsg struct {
	addr   uint16
	flags  uint16
	length uint16
	_pad   uint16 // struct alignment
	buf    uintptr
}

// i2cRdwr mirrors struct i2c_rdwr_ioctl_data from linux/i2c-dev.h
type i2cRdwr struct {
	msgs  uintptr
	nmsgs uint32
}

// I2CBus is a Bus backed by a Linux i2c-dev character device, issuing every
// transaction through a single I2C_RDWR ioctl so reads get a repeated start.
type I2CBus struct {
	path    string
	fd      int
	limiter *rate.Limiter
}

// NewI2C creates an I2C bus for the given device node. opsPerSec caps the
// transaction rate; zero selects the default.
func NewI2C(path string, opsPerSec int) *I2CBus {
	if path == "" {
		path = DefaultI2CDevice
	}
	if opsPerSec <= 0 {
		opsPerSec = defaultOpsPerSec
	}
	return &I2CBus{
		path:    path,
		fd:      -1,
		limiter: rate.NewLimiter(rate.Limit(opsPerSec), 10),
	}
}

// Open opens the device node. It must be called before Tx.
func (b *I2CBus) Open() error {
	fd, err := unix.Open(b.path, unix.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("i2c: open %s: %w", b.path, err)
	}
	b.fd = fd
	slog.Debug("i2c: bus opened", "device", b.path)
	return nil
}

// Tx performs one combined transaction: a write of w followed, when r is
// non-empty, by a repeated-start read into r.
func (b *I2CBus) Tx(ctx context.Context, addr uint16, w, r []byte) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	if b.fd < 0 {
		return fmt.Errorf("i2c: bus not open")
	}
	if len(w) == 0 && len(r) == 0 {
		return nil
	}

	var msgs [2]i2cMsg
	n := 0
	if len(w) > 0 {
		msgs[n] = i2cMsg{addr: addr, flags: 0, length: uint16(len(w)), buf: uintptr(unsafe.Pointer(&w[0]))}
		n++
	}
	if len(r) > 0 {
		msgs[n] = i2cMsg{addr: addr, flags: i2cMsgRD, length: uint16(len(r)), buf: uintptr(unsafe.Pointer(&r[0]))}
		n++
	}
	rdwr := i2cRdwr{msgs: uintptr(unsafe.Pointer(&msgs[0])), nmsgs: uint32(n)}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), i2cRdwrIOCTL, uintptr(unsafe.Pointer(&rdwr))); errno != 0 {
		return fmt.Errorf("i2c: I2C_RDWR addr=0x%02x: %w", addr, errno)
	}
	return nil
}

// Close releases the file descriptor.
func (b *I2CBus) Close() error {
	if b.fd < 0 {
		return nil
	}
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}
