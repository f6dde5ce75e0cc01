package indicator_test

import (
	"testing"

	"github.com/micro-nova/meetlight/internal/indicator"
)

func TestTickPhase(t *testing.T) {
	for tick := 0; tick <= 30; tick++ {
		want := indicator.PhaseCountingUp
		switch {
		case tick == 0:
			want = indicator.PhaseBoot
		case tick >= 20 && tick < 30:
			want = indicator.PhaseWarning
		case tick == 30:
			want = indicator.PhaseReset
		}
		if got := indicator.TickPhase(tick); got != want {
			t.Errorf("TickPhase(%d) = %s, want %s", tick, got, want)
		}
	}
}

func TestMinutePhaseCoversHour(t *testing.T) {
	counts := map[indicator.Phase]int{}
	for minute := 0; minute < 60; minute++ {
		counts[indicator.MinutePhase(minute)]++
	}
	want := map[indicator.Phase]int{
		indicator.PhasePreEvent:  5,
		indicator.PhaseEventOpen: 5,
		indicator.PhaseGrace:     5,
		indicator.PhaseWaiting:   45,
	}
	for p, n := range want {
		if counts[p] != n {
			t.Errorf("%s covers %d minutes, want %d", p, counts[p], n)
		}
	}
	for _, minute := range []int{55, 59} {
		if got := indicator.MinutePhase(minute); got != indicator.PhasePreEvent {
			t.Errorf("MinutePhase(%d) = %s", minute, got)
		}
	}
	edges := map[int]indicator.Phase{
		0:  indicator.PhaseEventOpen,
		4:  indicator.PhaseEventOpen,
		5:  indicator.PhaseGrace,
		9:  indicator.PhaseGrace,
		10: indicator.PhaseWaiting,
		54: indicator.PhaseWaiting,
	}
	for minute, want := range edges {
		if got := indicator.MinutePhase(minute); got != want {
			t.Errorf("MinutePhase(%d) = %s, want %s", minute, got, want)
		}
	}
}

func TestPatternsFillOneSecond(t *testing.T) {
	for p := indicator.PhaseWarning; p <= indicator.PhaseWaiting; p++ {
		if p == indicator.PhaseReset {
			continue
		}
		var total int64
		for _, s := range p.Pattern() {
			total += s.Hold.Milliseconds()
		}
		if total != 900 {
			t.Errorf("%s pattern holds %d ms, want 900", p, total)
		}
	}
}

func TestPhaseText(t *testing.T) {
	b, err := indicator.PhaseEventOpen.MarshalText()
	if err != nil || string(b) != "event_open" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if got := indicator.Phase(99).String(); got != "Phase(99)" {
		t.Errorf("String = %q", got)
	}
}
