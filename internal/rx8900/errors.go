package rx8900

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeekday is returned when a week register does not hold
	// exactly one of its low seven bits.
	ErrInvalidWeekday = errors.New("rx8900: invalid weekday bit pattern")

	// ErrInvalidDate is returned when the calendar registers decode to a
	// date that does not exist.
	ErrInvalidDate = errors.New("rx8900: invalid calendar date")

	// ErrOutOfRange is returned when a value cannot be represented in the
	// target register.
	ErrOutOfRange = errors.New("rx8900: value out of range")
)

// BusError wraps a transport failure on a register access. It is the only
// error kind the bus layer produces; the cause is never subdivided.
type BusError struct {
	Op  string // "read" or "write"
	Reg Register
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("rx8900: %s %s (0x%02x): %v", e.Op, e.Reg, uint8(e.Reg), e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }
