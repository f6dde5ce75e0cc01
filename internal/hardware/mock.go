package hardware

import (
	"context"
	"fmt"
	"sync"
)

// MockTx records one transaction seen by a Mock bus.
type MockTx struct {
	Addr  uint16
	Write []byte
	Read  []byte
}

// IsWrite reports whether the transaction was a register write
// (register byte followed by data, nothing read back).
func (t MockTx) IsWrite() bool { return len(t.Read) == 0 && len(t.Write) > 1 }

// Mock is a thread-safe in-memory Bus holding the 256-byte register file of
// one device. Reads auto-increment from the register in w[0]; writes store
// w[1:] starting at w[0]. Transactions to any other address are NACKed.
type Mock struct {
	mu        sync.Mutex
	addr      uint16
	regs      [256]byte
	log       []MockTx
	failWrite bool
	failRead  bool
	failAfter int // fail every transaction once this many have succeeded; -1 = never
	ok        int
}

// NewMock creates a mock device answering at addr with all registers zero.
func NewMock(addr uint16) *Mock {
	return &Mock{addr: addr, failAfter: -1}
}

// SetFailWrite configures the mock to fail all write transactions.
func (m *Mock) SetFailWrite(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = fail
}

// SetFailRead configures the mock to fail all read transactions.
func (m *Mock) SetFailRead(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead = fail
}

// FailAfter lets n more transactions succeed and fails every one after that.
// A negative n disables the limit.
func (m *Mock) FailAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter = n
	m.ok = 0
}

func (m *Mock) Tx(ctx context.Context, addr uint16, w, r []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if addr != m.addr {
		return ErrHardware(fmt.Sprintf("mock: no ack from 0x%02x", addr))
	}
	if len(w) == 0 {
		return ErrHardware("mock: empty transaction")
	}
	if m.failAfter >= 0 && m.ok >= m.failAfter {
		return ErrHardware("mock: bus failure injected")
	}

	reg := int(w[0])
	if len(r) > 0 {
		if m.failRead {
			return ErrHardware("mock: read failure configured")
		}
		for i := range r {
			r[i] = m.regs[(reg+i)&0xFF]
		}
	} else if len(w) > 1 {
		if m.failWrite {
			return ErrHardware("mock: write failure configured")
		}
		for i, b := range w[1:] {
			m.regs[(reg+i)&0xFF] = b
		}
	}
	m.ok++
	m.log = append(m.log, MockTx{
		Addr:  addr,
		Write: append([]byte(nil), w...),
		Read:  append([]byte(nil), r...),
	})
	return nil
}

// GetReg returns a register value for testing purposes.
func (m *Mock) GetReg(reg byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[reg]
}

// SetReg stores a register value directly, bypassing the transaction log.
func (m *Mock) SetReg(reg, val byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[reg] = val
}

// Update runs fn on the register file under the mock's lock, so several
// registers change together as seen by Tx.
func (m *Mock) Update(fn func(regs []byte)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.regs[:])
}

// Transactions returns a copy of every successful transaction so far.
func (m *Mock) Transactions() []MockTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockTx, len(m.log))
	copy(out, m.log)
	return out
}

// ResetLog clears the transaction log.
func (m *Mock) ResetLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = nil
}

// mockLightsHistory bounds MockLights.History when the mock drives a long
// running daemon.
const mockLightsHistory = 4096

// MockLights records every level change of the two indicator lines.
type MockLights struct {
	mu      sync.Mutex
	state   LightState
	history []LightState
	fail    bool
}

// NewMockLights creates mock lights with both lines low.
func NewMockLights() *MockLights {
	return &MockLights{}
}

// SetFail makes every subsequent call return an error.
func (l *MockLights) SetFail(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail = fail
}

func (l *MockLights) SetRed(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return ErrHardware("mock: gpio failure configured")
	}
	l.state.Red = on
	return nil
}

// SetGreen records the combined state, so one Apply produces one history entry.
func (l *MockLights) SetGreen(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return ErrHardware("mock: gpio failure configured")
	}
	l.state.Green = on
	if len(l.history) == mockLightsHistory {
		l.history = append(l.history[:0], l.history[1:]...)
	}
	l.history = append(l.history, l.state)
	return nil
}

// State returns the current level of both lines.
func (l *MockLights) State() LightState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// History returns the most recent applied states, oldest first.
func (l *MockLights) History() []LightState {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LightState, len(l.history))
	copy(out, l.history)
	return out
}

// Reset clears the recorded history.
func (l *MockLights) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = nil
}

// HardwareError is returned when a mock hardware operation fails.
type HardwareError struct {
	msg string
}

func (e HardwareError) Error() string { return e.msg }

// ErrHardware creates a new hardware error.
func ErrHardware(msg string) error { return HardwareError{msg: msg} }
