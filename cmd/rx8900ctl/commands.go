package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/micro-nova/meetlight/internal/rx8900"
)

// run executes one command against dev, writing its output to w.
func run(ctx context.Context, dev *rx8900.Device, w io.Writer, args []string, now func() time.Time) error {
	if len(args) == 0 {
		return fmt.Errorf("no command")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "now":
		t, err := dev.Now(ctx)
		if err != nil {
			return err
		}
		wd, err := dev.Weekday(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", t.Format(time.RFC3339), wd)
		return nil

	case "set":
		t := now().UTC().Truncate(time.Second)
		if len(rest) > 0 {
			var err error
			if t, err = time.Parse(time.RFC3339, rest[0]); err != nil {
				return fmt.Errorf("set: %w", err)
			}
		}
		if err := dev.Set(ctx, t); err != nil {
			return err
		}
		fmt.Fprintf(w, "set %s\n", t.UTC().Format(time.RFC3339))
		return nil

	case "dump":
		for _, reg := range rx8900.Registers() {
			v, err := dev.Read(ctx, reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "0x%02x %-18s 0x%02x %08b\n", uint8(reg), reg, v, v)
		}
		return nil

	case "temp":
		raw, err := dev.TemperatureRaw(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.2f C (raw %d)\n", rx8900.TemperatureCelsius(raw), raw)
		return nil

	case "flags":
		fs := flag.NewFlagSet("flags", flag.ContinueOnError)
		fs.SetOutput(w)
		clear := fs.Bool("clear", false, "clear VLF and VDET")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *clear {
			if err := dev.ClearVoltageLowFlag(ctx); err != nil {
				return err
			}
			if err := dev.ClearVoltageDetectFlag(ctx); err != nil {
				return err
			}
		}
		f, err := dev.Flags(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "UF=%d TF=%d AF=%d VLF=%d VDET=%d\n",
			bit(f.Update), bit(f.Timer), bit(f.Alarm), bit(f.VoltageLow), bit(f.VoltageDetect))
		return nil

	case "init":
		if err := dev.Initialize(ctx); err != nil {
			return err
		}
		fmt.Fprintln(w, "initialized; set the time next")
		return nil

	case "alarm":
		fs := flag.NewFlagSet("alarm", flag.ContinueOnError)
		fs.SetOutput(w)
		clear := fs.Bool("clear", false, "clear AF")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *clear {
			if err := dev.ClearAlarmFlag(ctx); err != nil {
				return err
			}
		}
		return printAlarm(ctx, dev, w)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printAlarm(ctx context.Context, dev *rx8900.Device, w io.Writer) error {
	minute, err := dev.MinuteAlarm(ctx)
	if err != nil {
		return err
	}
	hour, err := dev.HourAlarm(ctx)
	if err != nil {
		return err
	}
	typ, err := dev.AlarmType(ctx)
	if err != nil {
		return err
	}
	enabled, err := dev.AlarmInterruptEnabled(ctx)
	if err != nil {
		return err
	}
	fired, err := dev.AlarmFlag(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "minute %02d AE=%d\n", minute.Value, bit(minute.Enabled))
	fmt.Fprintf(w, "hour   %02d AE=%d\n", hour.Value, bit(hour.Enabled))
	if typ == rx8900.AlarmTypeDay {
		day, err := dev.DayAlarm(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "day    %02d AE=%d\n", day.Value, bit(day.Enabled))
	} else {
		week, err := dev.WeekAlarm(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "week   %s AE=%d\n", week.Days, bit(week.Enabled))
	}
	fmt.Fprintf(w, "interrupt %s, flag %d\n", onOff(enabled), bit(fired))
	return nil
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
