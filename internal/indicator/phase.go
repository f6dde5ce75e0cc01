package indicator

import (
	"fmt"
	"time"

	"github.com/micro-nova/meetlight/internal/hardware"
)

// Phase is the visual state the indicator shows.
type Phase uint8

const (
	PhaseBoot       Phase = iota // first observed second
	PhaseCountingUp              // ticks 1-19
	PhaseWarning                 // ticks 20-29
	PhaseReset                   // tick 30: clock rewound to the epoch
	PhasePreEvent                // minutes 55-59
	PhaseEventOpen               // minutes 0-4
	PhaseGrace                   // minutes 5-9
	PhaseWaiting                 // minutes 10-54
)

const (
	warningTick = 20
	resetTick   = 30
)

var phaseNames = [...]string{
	PhaseBoot:       "boot",
	PhaseCountingUp: "counting_up",
	PhaseWarning:    "warning",
	PhaseReset:      "reset",
	PhasePreEvent:   "pre_event",
	PhaseEventOpen:  "event_open",
	PhaseGrace:      "grace",
	PhaseWaiting:    "waiting",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TickPhase returns the phase for a tick counter value before the reset.
func TickPhase(tick int) Phase {
	switch {
	case tick <= 0:
		return PhaseBoot
	case tick < warningTick:
		return PhaseCountingUp
	case tick < resetTick:
		return PhaseWarning
	default:
		return PhaseReset
	}
}

// MinutePhase returns the phase for a minute of the hour after the reset.
func MinutePhase(minute int) Phase {
	switch {
	case minute >= 55 && minute <= 59:
		return PhasePreEvent
	case minute >= 0 && minute <= 4:
		return PhaseEventOpen
	case minute >= 5 && minute <= 9:
		return PhaseGrace
	default:
		return PhaseWaiting
	}
}

// Step is one segment of a light pattern: the lights to show and how long
// to hold them before the next segment.
type Step struct {
	Lights hardware.LightState
	Hold   time.Duration
}

var (
	off   = hardware.LightState{}
	red   = hardware.LightState{Red: true}
	green = hardware.LightState{Green: true}
	both  = hardware.LightState{Red: true, Green: true}
)

// Pattern returns the light segments shown once per observed second.
func (p Phase) Pattern() []Step {
	switch p {
	case PhaseWarning:
		return []Step{{red, 500 * time.Millisecond}, {green, 400 * time.Millisecond}}
	case PhaseReset:
		return []Step{{both, 0}}
	case PhasePreEvent:
		return []Step{{red, 500 * time.Millisecond}, {off, 400 * time.Millisecond}}
	case PhaseEventOpen:
		return []Step{{green, 900 * time.Millisecond}}
	case PhaseGrace:
		return []Step{{green, 500 * time.Millisecond}, {off, 400 * time.Millisecond}}
	case PhaseWaiting:
		return []Step{{red, 900 * time.Millisecond}}
	default:
		return []Step{{off, 0}}
	}
}
