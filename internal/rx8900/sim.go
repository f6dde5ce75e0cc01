package rx8900

import (
	"context"
	"time"

	"github.com/micro-nova/meetlight/internal/hardware"
)

// PowerOn loads a mock register file with the state of a chip that has just
// been powered: the calendar registers hold t and, if lost is true, VLF is
// set as after a backup power failure.
func PowerOn(m *hardware.Mock, t time.Time, lost bool) {
	m.Update(func(regs []byte) {
		storeTime(regs, t)
		regs[RegFlag] &^= 1 << bitVLF
		if lost {
			regs[RegFlag] |= 1 << bitVLF
		}
	})
}

// Simulate advances the calendar registers of a mock chip by one second per
// tick until ctx is cancelled. Time written over the bus is picked up on the
// next tick. If the registers do not hold a valid time, counting restarts
// from start.
func Simulate(ctx context.Context, m *hardware.Mock, start time.Time, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Update(func(regs []byte) {
				t, ok := loadTime(regs)
				if !ok {
					t = start
				} else {
					t = t.Add(time.Second)
				}
				storeTime(regs, t)
			})
		}
	}
}

func loadTime(regs []byte) (time.Time, bool) {
	sec := DecodeBCD(regs[RegSec] & maskSec)
	minute := DecodeBCD(regs[RegMin] & maskMin)
	hour := DecodeBCD(regs[RegHour] & maskHour)
	day := DecodeBCD(regs[RegDay] & maskDay)
	month := DecodeBCD(regs[RegMonth] & maskMonth)
	year := minYear + DecodeBCD(regs[RegYear])
	if !validDate(year, month, day) || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC), true
}

func storeTime(regs []byte, t time.Time) {
	t = t.UTC()
	bcd := func(v int) byte {
		b, _ := EncodeBCD(v % 100)
		return b
	}
	regs[RegSec] = bcd(t.Second())
	regs[RegMin] = bcd(t.Minute())
	regs[RegHour] = bcd(t.Hour())
	regs[RegWeek] = EncodeWeekday(t.Weekday())
	regs[RegDay] = bcd(t.Day())
	regs[RegMonth] = bcd(int(t.Month()))
	regs[RegYear] = bcd(t.Year())
}
