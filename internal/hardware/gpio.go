package hardware

import (
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Default indicator pins (BCM numbering).
const (
	DefaultRedPin   = "GPIO17"
	DefaultGreenPin = "GPIO27"
)

// GPIOLights drives the red and green indicator lines through periph.io GPIO.
type GPIOLights struct {
	red   gpio.PinOut
	green gpio.PinOut
}

// OpenGPIOLights initializes the periph host, resolves both pins by name and
// drives them low.
func OpenGPIOLights(redPin, greenPin string) (*GPIOLights, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	red := gpioreg.ByName(redPin)
	if red == nil {
		return nil, fmt.Errorf("gpio: failed to open %s (red)", redPin)
	}
	green := gpioreg.ByName(greenPin)
	if green == nil {
		return nil, fmt.Errorf("gpio: failed to open %s (green)", greenPin)
	}
	l := &GPIOLights{red: red, green: green}
	if err := Apply(l, LightState{}); err != nil {
		return nil, err
	}
	slog.Debug("gpio: indicator lines ready", "red_pin", redPin, "green_pin", greenPin)
	return l, nil
}

func (l *GPIOLights) SetRed(on bool) error {
	if err := l.red.Out(level(on)); err != nil {
		return fmt.Errorf("gpio: drive red: %w", err)
	}
	return nil
}

func (l *GPIOLights) SetGreen(on bool) error {
	if err := l.green.Out(level(on)); err != nil {
		return fmt.Errorf("gpio: drive green: %w", err)
	}
	return nil
}

func level(on bool) gpio.Level {
	if on {
		return gpio.High
	}
	return gpio.Low
}
