package rx8900

import "fmt"

// Address is the fixed 7-bit I2C address of the RX8900.
const Address = 0x32

// Register is an RX8900 register address. The chip exposes two banks of
// sixteen registers: the RX-8803 compatible bank (0x00-0x0F) and the
// extended bank (0x10-0x1F).
type Register uint8

// Compatible bank.
const (
	RegSec           Register = 0x00 // Seconds, BCD
	RegMin           Register = 0x01 // Minutes, BCD
	RegHour          Register = 0x02 // Hours, BCD, 24h
	RegWeek          Register = 0x03 // Day of week, one-hot
	RegDay           Register = 0x04 // Day of month, BCD
	RegMonth         Register = 0x05 // Month, BCD
	RegYear          Register = 0x06 // Year within century, BCD
	RegRAM           Register = 0x07 // General purpose RAM
	RegMinAlarm      Register = 0x08 // Minute alarm, [7]=AE
	RegHourAlarm     Register = 0x09 // Hour alarm, [7]=AE
	RegWeekDayAlarm  Register = 0x0A // Week or day alarm (selected by WADA), [7]=AE
	RegTimerCounter0 Register = 0x0B // Timer counter low byte
	RegTimerCounter1 Register = 0x0C // Timer counter high byte
	RegExtension     Register = 0x0D // TEST WADA USEL TE FSEL1 FSEL0 TSEL1 TSEL0
	RegFlag          Register = 0x0E // - - UF TF AF - VLF VDET
	RegControl       Register = 0x0F // CSEL1 CSEL0 UIE TIE AIE - - RESET
)

// Extended bank.
const (
	RegExtSec           Register = 0x10
	RegExtMin           Register = 0x11
	RegExtHour          Register = 0x12
	RegExtWeek          Register = 0x13
	RegExtDay           Register = 0x14
	RegExtMonth         Register = 0x15
	RegExtYear          Register = 0x16
	RegTemp             Register = 0x17 // Temperature sensor, raw
	RegBackupFunction   Register = 0x18 // - - - - VDETOFF SWOFF BKSMP1 BKSMP0
	RegReserved19       Register = 0x19
	RegReserved1A       Register = 0x1A
	RegExtTimerCounter0 Register = 0x1B
	RegExtTimerCounter1 Register = 0x1C
	RegExtExtension     Register = 0x1D
	RegExtFlag          Register = 0x1E
	RegExtControl       Register = 0x1F
)

// The week alarm and the day alarm share one register.
const (
	RegWeekAlarm = RegWeekDayAlarm
	RegDayAlarm  = RegWeekDayAlarm
)

// Bit positions.
const (
	// Extension register.
	bitTEST = 7
	bitWADA = 6
	bitUSEL = 5
	bitTE   = 4
	bitFSEL = 2 // 2-bit field
	bitTSEL = 0 // 2-bit field

	// Flag register.
	bitUF   = 5
	bitTF   = 4
	bitAF   = 3
	bitVLF  = 1
	bitVDET = 0

	// Control register.
	bitCSEL  = 6 // 2-bit field
	bitUIE   = 5
	bitTIE   = 4
	bitAIE   = 3
	bitRESET = 0

	// Backup function register.
	bitVDETOFF = 3
	bitSWOFF   = 2
	bitBKSMP   = 0 // 2-bit field

	// Alarm registers.
	bitAE = 7
)

// Field masks applied before BCD decode.
const (
	maskSec   = 0x7F
	maskMin   = 0x7F
	maskHour  = 0x3F
	maskDay   = 0x3F
	maskMonth = 0x1F
)

// Bank identifies one of the two register banks.
type Bank uint8

const (
	BankCompatible Bank = iota
	BankExtended
)

func (b Bank) String() string {
	if b == BankExtended {
		return "extended"
	}
	return "compatible"
}

// Bank reports which bank r belongs to.
func (r Register) Bank() Bank {
	if r >= 0x10 {
		return BankExtended
	}
	return BankCompatible
}

var registerNames = [32]string{
	"SEC", "MIN", "HOUR", "WEEK", "DAY", "MONTH", "YEAR", "RAM",
	"MIN_ALARM", "HOUR_ALARM", "WEEK_DAY_ALARM", "TIMER_COUNTER0", "TIMER_COUNTER1", "EXTENSION", "FLAG", "CONTROL",
	"EXT_SEC", "EXT_MIN", "EXT_HOUR", "EXT_WEEK", "EXT_DAY", "EXT_MONTH", "EXT_YEAR", "TEMP",
	"BACKUP_FUNCTION", "RESERVED_19", "RESERVED_1A", "EXT_TIMER_COUNTER0", "EXT_TIMER_COUNTER1", "EXT_EXTENSION", "EXT_FLAG", "EXT_CONTROL",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("REG_0x%02X", uint8(r))
}

// Registers lists all 32 register addresses in address order.
func Registers() []Register {
	regs := make([]Register, len(registerNames))
	for i := range regs {
		regs[i] = Register(i)
	}
	return regs
}
