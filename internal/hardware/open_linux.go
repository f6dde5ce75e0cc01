//go:build linux

package hardware

import "fmt"

// OpenBus opens the named bus driver: "ioctl" uses i2c-dev directly,
// "periph" goes through periph.io. It returns the bus and a function that
// releases it.
func OpenBus(driver, device string, opsPerSec int) (Bus, func() error, error) {
	switch driver {
	case "ioctl":
		b := NewI2C(device, opsPerSec)
		if err := b.Open(); err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case "periph":
		b := NewPeriph(device, opsPerSec)
		if err := b.Open(); err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		return nil, nil, fmt.Errorf("hardware: unknown bus driver %q", driver)
	}
}
