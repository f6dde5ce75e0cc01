package rx8900

import (
	"context"
	"fmt"
)

// SourceClock is the timer counter source clock (TSEL1:0).
type SourceClock uint8

const (
	SourceClock4096Hz SourceClock = 0b00
	SourceClock64Hz   SourceClock = 0b01
	SourceClockSecond SourceClock = 0b10
	SourceClockMinute SourceClock = 0b11
)

func (s SourceClock) String() string {
	switch s {
	case SourceClock4096Hz:
		return "4096Hz"
	case SourceClock64Hz:
		return "64Hz"
	case SourceClockSecond:
		return "second"
	case SourceClockMinute:
		return "minute"
	default:
		return fmt.Sprintf("SourceClock(%d)", uint8(s))
	}
}

// FoutFrequency is the FOUT pin frequency (FSEL1:0). The chip treats 0b11
// as 32.768 kHz; it decodes as FoutFrequency32768Hz.
type FoutFrequency uint8

const (
	FoutFrequency32768Hz FoutFrequency = 0b00
	FoutFrequency1024Hz  FoutFrequency = 0b01
	FoutFrequency1Hz     FoutFrequency = 0b10
)

func (f FoutFrequency) String() string {
	switch f {
	case FoutFrequency32768Hz:
		return "32.768kHz"
	case FoutFrequency1024Hz:
		return "1024Hz"
	case FoutFrequency1Hz:
		return "1Hz"
	default:
		return fmt.Sprintf("FoutFrequency(%d)", uint8(f))
	}
}

// AlarmType selects how the week/day alarm register is matched (WADA).
type AlarmType uint8

const (
	AlarmTypeWeek AlarmType = 0
	AlarmTypeDay  AlarmType = 1
)

func (a AlarmType) String() string {
	if a == AlarmTypeDay {
		return "day"
	}
	return "week"
}

// UpdateInterrupt is the time update interrupt granularity (USEL).
type UpdateInterrupt uint8

const (
	UpdateEverySecond UpdateInterrupt = 0
	UpdateEveryMinute UpdateInterrupt = 1
)

func (u UpdateInterrupt) String() string {
	if u == UpdateEveryMinute {
		return "minute"
	}
	return "second"
}

// CompensationInterval is the temperature compensation interval (CSEL1:0).
type CompensationInterval uint8

const (
	CompensationInterval500ms CompensationInterval = 0b00
	CompensationInterval2s    CompensationInterval = 0b01
	CompensationInterval10s   CompensationInterval = 0b10
	CompensationInterval30s   CompensationInterval = 0b11
)

func (c CompensationInterval) String() string {
	switch c {
	case CompensationInterval500ms:
		return "0.5s"
	case CompensationInterval2s:
		return "2s"
	case CompensationInterval10s:
		return "10s"
	case CompensationInterval30s:
		return "30s"
	default:
		return fmt.Sprintf("CompensationInterval(%d)", uint8(c))
	}
}

// Flags holds the flag register bits.
type Flags struct {
	Update        bool // UF
	Timer         bool // TF
	Alarm         bool // AF
	VoltageLow    bool // VLF: backup power was lost, time is invalid
	VoltageDetect bool // VDET: temperature compensation stopped
}

// Flags reads the whole flag register in one transaction.
func (d *Device) Flags(ctx context.Context) (Flags, error) {
	val, err := d.Read(ctx, RegFlag)
	if err != nil {
		return Flags{}, err
	}
	return Flags{
		Update:        val&(1<<bitUF) != 0,
		Timer:         val&(1<<bitTF) != 0,
		Alarm:         val&(1<<bitAF) != 0,
		VoltageLow:    val&(1<<bitVLF) != 0,
		VoltageDetect: val&(1<<bitVDET) != 0,
	}, nil
}

// --- Extension register ---

func (d *Device) Test(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegExtension, bitTEST)
}

// SetTest sets the factory test bit. It must be 0 in normal operation.
func (d *Device) SetTest(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegExtension, bitTEST, on)
}

func (d *Device) AlarmType(ctx context.Context) (AlarmType, error) {
	on, err := d.ReadBit(ctx, RegExtension, bitWADA)
	if err != nil {
		return 0, err
	}
	if on {
		return AlarmTypeDay, nil
	}
	return AlarmTypeWeek, nil
}

func (d *Device) SetAlarmType(ctx context.Context, t AlarmType) error {
	return d.WriteBit(ctx, RegExtension, bitWADA, t == AlarmTypeDay)
}

func (d *Device) UpdateInterrupt(ctx context.Context) (UpdateInterrupt, error) {
	on, err := d.ReadBit(ctx, RegExtension, bitUSEL)
	if err != nil {
		return 0, err
	}
	if on {
		return UpdateEveryMinute, nil
	}
	return UpdateEverySecond, nil
}

func (d *Device) SetUpdateInterrupt(ctx context.Context, u UpdateInterrupt) error {
	return d.WriteBit(ctx, RegExtension, bitUSEL, u == UpdateEveryMinute)
}

func (d *Device) TimerEnabled(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegExtension, bitTE)
}

func (d *Device) SetTimerEnabled(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegExtension, bitTE, on)
}

func (d *Device) FoutFrequency(ctx context.Context) (FoutFrequency, error) {
	f, err := d.readField(ctx, RegExtension, bitFSEL)
	if err != nil {
		return 0, err
	}
	if f == 0b11 {
		return FoutFrequency32768Hz, nil
	}
	return FoutFrequency(f), nil
}

func (d *Device) SetFoutFrequency(ctx context.Context, f FoutFrequency) error {
	return d.writeField(ctx, RegExtension, bitFSEL, uint8(f))
}

func (d *Device) SourceClock(ctx context.Context) (SourceClock, error) {
	f, err := d.readField(ctx, RegExtension, bitTSEL)
	return SourceClock(f), err
}

func (d *Device) SetSourceClock(ctx context.Context, s SourceClock) error {
	return d.writeField(ctx, RegExtension, bitTSEL, uint8(s))
}

// --- Flag register ---
//
// The clear operations always write 0 to their bit: the chip only lets
// software clear these flags, never set them.

func (d *Device) UpdateFlag(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegFlag, bitUF)
}

func (d *Device) ClearUpdateFlag(ctx context.Context) error {
	return d.WriteBit(ctx, RegFlag, bitUF, false)
}

func (d *Device) TimerFlag(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegFlag, bitTF)
}

func (d *Device) ClearTimerFlag(ctx context.Context) error {
	return d.WriteBit(ctx, RegFlag, bitTF, false)
}

func (d *Device) AlarmFlag(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegFlag, bitAF)
}

func (d *Device) ClearAlarmFlag(ctx context.Context) error {
	return d.WriteBit(ctx, RegFlag, bitAF, false)
}

// VoltageLowFlag reports VLF. When set, backup power dropped too low (or the
// chip was just powered up) and the stored time is not trustworthy.
func (d *Device) VoltageLowFlag(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegFlag, bitVLF)
}

func (d *Device) ClearVoltageLowFlag(ctx context.Context) error {
	return d.WriteBit(ctx, RegFlag, bitVLF, false)
}

func (d *Device) VoltageDetectFlag(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegFlag, bitVDET)
}

func (d *Device) ClearVoltageDetectFlag(ctx context.Context) error {
	return d.WriteBit(ctx, RegFlag, bitVDET, false)
}

// --- Control register ---

func (d *Device) CompensationInterval(ctx context.Context) (CompensationInterval, error) {
	f, err := d.readField(ctx, RegControl, bitCSEL)
	return CompensationInterval(f), err
}

func (d *Device) SetCompensationInterval(ctx context.Context, c CompensationInterval) error {
	return d.writeField(ctx, RegControl, bitCSEL, uint8(c))
}

func (d *Device) UpdateInterruptEnabled(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegControl, bitUIE)
}

func (d *Device) SetUpdateInterruptEnabled(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegControl, bitUIE, on)
}

func (d *Device) TimerInterruptEnabled(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegControl, bitTIE)
}

func (d *Device) SetTimerInterruptEnabled(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegControl, bitTIE, on)
}

func (d *Device) AlarmInterruptEnabled(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegControl, bitAIE)
}

func (d *Device) SetAlarmInterruptEnabled(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegControl, bitAIE, on)
}

// CounterReset reports the RESET bit.
func (d *Device) CounterReset(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegControl, bitRESET)
}

// SetCounterReset writes the RESET bit, which resets the sub-second divider.
func (d *Device) SetCounterReset(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegControl, bitRESET, on)
}

// --- Backup function register ---

func (d *Device) VoltageDetectorOff(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegBackupFunction, bitVDETOFF)
}

func (d *Device) SetVoltageDetectorOff(ctx context.Context, off bool) error {
	return d.WriteBit(ctx, RegBackupFunction, bitVDETOFF, off)
}

func (d *Device) SwitchOff(ctx context.Context) (bool, error) {
	return d.ReadBit(ctx, RegBackupFunction, bitSWOFF)
}

func (d *Device) SetSwitchOff(ctx context.Context, on bool) error {
	return d.WriteBit(ctx, RegBackupFunction, bitSWOFF, on)
}

// BackupSampling returns the backup mode sampling interval field (BKSMP1:0).
func (d *Device) BackupSampling(ctx context.Context) (uint8, error) {
	return d.readField(ctx, RegBackupFunction, bitBKSMP)
}

func (d *Device) SetBackupSampling(ctx context.Context, v uint8) error {
	return d.writeField(ctx, RegBackupFunction, bitBKSMP, v)
}

// --- Timer counter, RAM, temperature ---

// TimerCounter returns the 16-bit timer preset, low byte first.
func (d *Device) TimerCounter(ctx context.Context) (uint16, error) {
	lo, err := d.Read(ctx, RegTimerCounter0)
	if err != nil {
		return 0, err
	}
	hi, err := d.Read(ctx, RegTimerCounter1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// SetTimerCounter writes the 16-bit timer preset, low byte first.
func (d *Device) SetTimerCounter(ctx context.Context, v uint16) error {
	if err := d.Write(ctx, RegTimerCounter0, byte(v)); err != nil {
		return err
	}
	return d.Write(ctx, RegTimerCounter1, byte(v>>8))
}

func (d *Device) RAM(ctx context.Context) (byte, error) {
	return d.Read(ctx, RegRAM)
}

func (d *Device) SetRAM(ctx context.Context, v byte) error {
	return d.Write(ctx, RegRAM, v)
}

// TemperatureRaw returns the raw temperature sensor register.
func (d *Device) TemperatureRaw(ctx context.Context) (byte, error) {
	return d.Read(ctx, RegTemp)
}

// Temperature reads the sensor and converts it to degrees Celsius.
func (d *Device) Temperature(ctx context.Context) (float64, error) {
	raw, err := d.TemperatureRaw(ctx)
	if err != nil {
		return 0, err
	}
	return TemperatureCelsius(raw), nil
}

// TemperatureCelsius converts a raw sensor value to degrees Celsius. The
// result is not range checked.
func TemperatureCelsius(raw byte) float64 {
	return (float64(raw)*2 - 187.19) / 3.218
}
