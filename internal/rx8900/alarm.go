package rx8900

import (
	"context"
	"fmt"
)

// AlarmConfig is a minute, hour or day alarm: the BCD match value and the
// enable bit (AE, bit 7).
type AlarmConfig struct {
	Value   int
	Enabled bool
}

// WeekAlarm is the day-of-week alarm. It shares its register with the day
// alarm; AlarmType selects which interpretation the chip applies.
type WeekAlarm struct {
	Days    WeekdaySet
	Enabled bool
}

func (d *Device) readAlarm(ctx context.Context, reg Register, mask byte) (AlarmConfig, error) {
	val, err := d.Read(ctx, reg)
	if err != nil {
		return AlarmConfig{}, err
	}
	return AlarmConfig{
		Value:   DecodeBCD(val & mask),
		Enabled: val&(1<<bitAE) != 0,
	}, nil
}

func (d *Device) writeAlarm(ctx context.Context, reg Register, a AlarmConfig, lo, hi int) error {
	if a.Value < lo || a.Value > hi {
		return fmt.Errorf("%w: %s alarm value %d not in [%d, %d]", ErrOutOfRange, reg, a.Value, lo, hi)
	}
	b, err := EncodeBCD(a.Value)
	if err != nil {
		return err
	}
	if a.Enabled {
		b |= 1 << bitAE
	}
	return d.Write(ctx, reg, b)
}

func (d *Device) MinuteAlarm(ctx context.Context) (AlarmConfig, error) {
	return d.readAlarm(ctx, RegMinAlarm, maskMin)
}

func (d *Device) SetMinuteAlarm(ctx context.Context, a AlarmConfig) error {
	return d.writeAlarm(ctx, RegMinAlarm, a, 0, 59)
}

func (d *Device) HourAlarm(ctx context.Context) (AlarmConfig, error) {
	return d.readAlarm(ctx, RegHourAlarm, maskHour)
}

func (d *Device) SetHourAlarm(ctx context.Context, a AlarmConfig) error {
	return d.writeAlarm(ctx, RegHourAlarm, a, 0, 23)
}

// DayAlarm reads the alarm register as a day-of-month alarm.
func (d *Device) DayAlarm(ctx context.Context) (AlarmConfig, error) {
	return d.readAlarm(ctx, RegDayAlarm, maskDay)
}

// SetDayAlarm writes the alarm register as a day-of-month alarm. This
// overwrites any week alarm.
func (d *Device) SetDayAlarm(ctx context.Context, a AlarmConfig) error {
	return d.writeAlarm(ctx, RegDayAlarm, a, 1, 31)
}

// WeekAlarm reads the alarm register as a set of weekdays.
func (d *Device) WeekAlarm(ctx context.Context) (WeekAlarm, error) {
	val, err := d.Read(ctx, RegWeekAlarm)
	if err != nil {
		return WeekAlarm{}, err
	}
	return WeekAlarm{
		Days:    WeekdaySet(val & weekMask),
		Enabled: val&(1<<bitAE) != 0,
	}, nil
}

// SetWeekAlarm writes the alarm register as a set of weekdays. This
// overwrites any day alarm.
func (d *Device) SetWeekAlarm(ctx context.Context, a WeekAlarm) error {
	b := byte(a.Days) & weekMask
	if a.Enabled {
		b |= 1 << bitAE
	}
	return d.Write(ctx, RegWeekAlarm, b)
}
