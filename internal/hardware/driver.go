// Package hardware provides the hardware abstraction layer for meetlight.
// It defines the Bus and Lights interfaces consumed by the RTC driver and the
// indicator, plus the real transports (Linux ioctl, periph.io, TinyGo) and
// in-memory mocks used for tests and --mock runs.
package hardware

import "context"

// Bus is a transactional, addressed two-wire bus.
//
// Tx writes w to the device at addr and, if r is non-empty, reads len(r)
// bytes back using a repeated start. A failed transaction returns the
// transport error verbatim; implementations never retry.
//
// Implementations are not safe for concurrent use. A Bus is owned by a
// single goroutine for its whole lifetime; callers that share one must
// serialize access themselves.
type Bus interface {
	Tx(ctx context.Context, addr uint16, w, r []byte) error
}

// Lights drives the two indicator lines.
type Lights interface {
	// SetRed drives the red line high (on) or low (off).
	SetRed(on bool) error

	// SetGreen drives the green line high (on) or low (off).
	SetGreen(on bool) error
}

// LightState is the level of both indicator lines.
type LightState struct {
	Red   bool `json:"red"`
	Green bool `json:"green"`
}

// Apply drives both lines of l to s, red first.
func Apply(l Lights, s LightState) error {
	if err := l.SetRed(s.Red); err != nil {
		return err
	}
	return l.SetGreen(s.Green)
}
