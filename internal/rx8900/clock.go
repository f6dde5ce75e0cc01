package rx8900

import (
	"context"
	"fmt"
	"time"
)

const (
	minYear = 2000
	maxYear = 2099
)

func (d *Device) readBCD(ctx context.Context, reg Register, mask byte) (int, error) {
	val, err := d.Read(ctx, reg)
	if err != nil {
		return 0, err
	}
	return DecodeBCD(val & mask), nil
}

func (d *Device) writeBCD(ctx context.Context, reg Register, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s value %d not in [%d, %d]", ErrOutOfRange, reg, v, lo, hi)
	}
	b, err := EncodeBCD(v)
	if err != nil {
		return err
	}
	return d.Write(ctx, reg, b)
}

// Second returns the seconds counter (0-59).
func (d *Device) Second(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegSec, maskSec)
}

// Minute returns the minutes counter (0-59).
func (d *Device) Minute(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegMin, maskMin)
}

// Hour returns the hours counter (0-23).
func (d *Device) Hour(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegHour, maskHour)
}

// Weekday returns the day of week.
func (d *Device) Weekday(ctx context.Context) (time.Weekday, error) {
	val, err := d.Read(ctx, RegWeek)
	if err != nil {
		return 0, err
	}
	return DecodeWeekday(val)
}

// Day returns the day of month (1-31).
func (d *Device) Day(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegDay, maskDay)
}

// Month returns the month (1-12).
func (d *Device) Month(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegMonth, maskMonth)
}

// Year returns the year within the century (0-99).
func (d *Device) Year(ctx context.Context) (int, error) {
	return d.readBCD(ctx, RegYear, 0xFF)
}

func (d *Device) SetSecond(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegSec, v, 0, 59)
}

func (d *Device) SetMinute(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegMin, v, 0, 59)
}

func (d *Device) SetHour(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegHour, v, 0, 23)
}

func (d *Device) SetWeekday(ctx context.Context, w time.Weekday) error {
	return d.Write(ctx, RegWeek, EncodeWeekday(w))
}

func (d *Device) SetDay(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegDay, v, 1, 31)
}

func (d *Device) SetMonth(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegMonth, v, 1, 12)
}

func (d *Device) SetYear(ctx context.Context, v int) error {
	return d.writeBCD(ctx, RegYear, v, 0, 99)
}

// Now reads the calendar registers one at a time and returns the time in
// UTC. The registers are not latched together, so a read that straddles a
// rollover can produce an impossible time of day; that read artifact is
// reported as midnight of the decoded date rather than as an error. An
// impossible date returns ErrInvalidDate.
func (d *Device) Now(ctx context.Context) (time.Time, error) {
	sec, err := d.Second(ctx)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := d.Minute(ctx)
	if err != nil {
		return time.Time{}, err
	}
	hour, err := d.Hour(ctx)
	if err != nil {
		return time.Time{}, err
	}
	day, err := d.Day(ctx)
	if err != nil {
		return time.Time{}, err
	}
	month, err := d.Month(ctx)
	if err != nil {
		return time.Time{}, err
	}
	yy, err := d.Year(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := d.Weekday(ctx); err != nil {
		return time.Time{}, err
	}

	year := minYear + yy
	if !validDate(year, month, day) {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	if hour > 23 || minute > 59 || sec > 59 {
		hour, minute, sec = 0, 0, 0
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC), nil
}

// Set writes t's UTC wall-clock fields to the chip, deriving the weekday from
// the date. The seven registers are written one by one (year, month, day,
// weekday, hour, minute, second); a bus failure partway leaves a mix of old
// and new values.
func (d *Device) Set(ctx context.Context, t time.Time) error {
	t = t.UTC()
	if t.Year() < minYear || t.Year() > maxYear {
		return fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, t.Year(), minYear, maxYear)
	}
	steps := []func() error{
		func() error { return d.SetYear(ctx, t.Year()%100) },
		func() error { return d.SetMonth(ctx, int(t.Month())) },
		func() error { return d.SetDay(ctx, t.Day()) },
		func() error { return d.SetWeekday(ctx, t.Weekday()) },
		func() error { return d.SetHour(ctx, t.Hour()) },
		func() error { return d.SetMinute(ctx, t.Minute()) },
		func() error { return d.SetSecond(ctx, t.Second()) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// Day 0 of the following month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}
