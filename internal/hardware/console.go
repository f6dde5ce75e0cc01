package hardware

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultConsoleBaud is the baud rate of the serial debug console.
const DefaultConsoleBaud = 115200

// OpenConsole opens a UART as a write-only debug console, 8N1.
// The returned writer is meant to be teed into the log output.
func OpenConsole(dev string, baud int) (io.WriteCloser, error) {
	if baud <= 0 {
		baud = DefaultConsoleBaud
	}
	port, err := serial.Open(dev, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("console: open %s: %w", dev, err)
	}
	return port, nil
}
