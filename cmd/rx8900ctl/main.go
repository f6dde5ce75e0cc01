// Command rx8900ctl inspects and configures an RX8900 RTC.
//
//	rx8900ctl [flags] now|set [time]|dump|temp|flags [-clear]|init|alarm [-clear]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micro-nova/meetlight/internal/hardware"
	"github.com/micro-nova/meetlight/internal/rx8900"
)

func main() {
	var (
		driver = flag.String("driver", "ioctl", "bus driver: ioctl, periph or mock")
		device = flag.String("device", hardware.DefaultI2CDevice, "i2c-dev node (ioctl) or bus name (periph)")
		addr   = flag.Uint("address", rx8900.Address, "7-bit device address")
		debug  = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		bus     hardware.Bus
		release = func() error { return nil }
	)
	if *driver == "mock" {
		m := hardware.NewMock(uint16(*addr))
		rx8900.PowerOn(m, time.Now(), false)
		bus = m
	} else {
		b, c, err := hardware.OpenBus(*driver, *device, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rx8900ctl:", err)
			os.Exit(1)
		}
		bus, release = b, c
	}

	dev := rx8900.New(bus)
	dev.Address = uint16(*addr)
	err := run(ctx, dev, os.Stdout, flag.Args(), time.Now)
	if cerr := release(); cerr != nil {
		slog.Warn("bus close error", "err", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "rx8900ctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: rx8900ctl [flags] command [args]

commands:
  now            print the RTC date and time
  set [time]     write an RFC 3339 time, or the system time if omitted
  dump           print every register
  temp           print the temperature sensor
  flags [-clear] print the flag register; -clear resets VLF and VDET
  init           run the power-loss initialization sequence
  alarm [-clear] print the alarm registers; -clear resets AF

flags:
`)
	flag.PrintDefaults()
}
