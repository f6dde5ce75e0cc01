package rx8900

import (
	"fmt"
	"strings"
	"time"
)

const weekMask = 0x7F

// DecodeWeekday converts a one-hot week register value to a weekday.
// Bit 0 is Sunday and bit 6 is Saturday.
func DecodeWeekday(b byte) (time.Weekday, error) {
	if b&^weekMask != 0 || b == 0 || b&(b-1) != 0 {
		return 0, fmt.Errorf("%w: 0b%08b", ErrInvalidWeekday, b)
	}
	var w time.Weekday
	for b > 1 {
		b >>= 1
		w++
	}
	return w, nil
}

// EncodeWeekday converts a weekday to its one-hot register value.
func EncodeWeekday(w time.Weekday) byte {
	return 1 << (uint(w) % 7)
}

// WeekdaySet is a set of weekdays as stored in the week alarm register.
type WeekdaySet uint8

// NewWeekdaySet returns the set holding days.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add returns s with d included.
func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	return s | WeekdaySet(EncodeWeekday(d))
}

// Contains reports whether d is in s.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&WeekdaySet(EncodeWeekday(d)) != 0
}

// Days lists the members of s from Sunday to Saturday.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return "{" + strings.Join(names, ",") + "}"
}
