// Command meetlight drives a two-color status light from an RX8900 RTC.
// Run with --mock to use a simulated clock and lights (no hardware required).
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micro-nova/meetlight/internal/api"
	"github.com/micro-nova/meetlight/internal/config"
	"github.com/micro-nova/meetlight/internal/events"
	"github.com/micro-nova/meetlight/internal/hardware"
	"github.com/micro-nova/meetlight/internal/identity"
	"github.com/micro-nova/meetlight/internal/indicator"
	"github.com/micro-nova/meetlight/internal/rx8900"
	"github.com/micro-nova/meetlight/internal/telemetry"
	"github.com/micro-nova/meetlight/internal/zeroconf"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "YAML config file (default: built-in defaults)")
		mock    = flag.Bool("mock", false, "use a simulated RTC and lights (no hardware required)")
		addr    = flag.String("addr", "", "HTTP listen address (overrides http.addr)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			slog.Error("cannot load config", "path", *cfgPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *mock {
		cfg.Bus.Driver = config.DriverMock
		cfg.Lights.Driver = config.DriverMock
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	// Configure logging
	var level slog.LevelVar
	level.Set(cfg.LogLevel())
	if *debug {
		level.Set(slog.LevelDebug)
	}
	var logOut io.Writer = os.Stderr
	if cfg.Log.Console != "" {
		console, err := hardware.OpenConsole(cfg.Log.Console, cfg.Log.ConsoleBaud)
		if err != nil {
			slog.Warn("serial console unavailable", "dev", cfg.Log.Console, "err", err)
		} else {
			defer console.Close()
			logOut = io.MultiWriter(os.Stderr, console)
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: &level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, closeBus, err := openBus(ctx, cfg)
	if err != nil {
		slog.Error("bus initialization failed", "driver", cfg.Bus.Driver, "err", err)
		os.Exit(1)
	}
	lights, err := openLights(cfg)
	if err != nil {
		slog.Error("light initialization failed", "driver", cfg.Lights.Driver, "err", err)
		_ = closeBus()
		os.Exit(1)
	}

	rtc := rx8900.New(bus)
	rtc.Address = cfg.Bus.Address

	mode, err := indicator.DetectBootMode(ctx, rtc)
	if err != nil {
		slog.Error("cannot read RTC", "err", err)
		_ = closeBus()
		os.Exit(1)
	}
	slog.Info("RTC detected", "boot", mode, "bus", cfg.Bus.Driver, "address", cfg.Bus.Address)

	snapshots := events.NewBus()
	machine := indicator.New(rtc, lights, indicator.Config{
		Boot:         mode,
		Initializer:  rtc,
		PollInterval: cfg.Indicator.PollInterval,
		SettleDelay:  cfg.Indicator.SettleDelay,
		Epoch:        cfg.Indicator.Epoch,
		Publisher:    snapshots,
	})

	info := identity.Describe(cfg.Bus.Driver, cfg.Lights.Driver)

	// HTTP server
	var srv *http.Server
	if cfg.HTTP.Addr != "" {
		srv = &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      api.NewRouter(info, snapshots),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 0, // 0 = no timeout (needed for SSE)
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			slog.Info("meetlight listening", "addr", cfg.HTTP.Addr, "mock", info.Mock)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server error", "err", err)
			}
		}()

		if cfg.HTTP.MDNS {
			port, err := zeroconf.PortFromAddr(cfg.HTTP.Addr)
			if err != nil {
				slog.Warn("zeroconf disabled", "err", err)
			} else {
				zc := zeroconf.New(info, port)
				go func() {
					if err := zc.Start(ctx); err != nil {
						slog.Warn("zeroconf failed", "err", err)
					}
				}()
			}
		}
	}

	// MQTT telemetry
	if cfg.MQTT.Broker != "" {
		clientID := cfg.MQTT.ClientID
		if clientID == "" {
			clientID = identity.Name + "-" + info.Hostname
		}
		pub, err := telemetry.Dial(cfg.MQTT.Broker, clientID, cfg.MQTT.Topic)
		if err != nil {
			slog.Warn("telemetry disabled", "err", err)
		} else {
			defer pub.Close()
			go pub.Run(ctx, snapshots)
		}
	}

	// Live log level reload
	if *cfgPath != "" {
		go func() {
			err := config.Watch(ctx, *cfgPath, func(c *config.Config) {
				if !*debug {
					level.Set(c.LogLevel())
				}
				slog.Info("config reloaded", "log_level", c.Log.Level)
			})
			if err != nil {
				slog.Warn("config watch failed", "err", err)
			}
		}()
	}

	runErr := machine.Run(ctx)
	slog.Info("shutting down...")

	if err := hardware.Apply(lights, hardware.LightState{}); err != nil {
		slog.Warn("failed to turn lights off", "err", err)
	}
	if srv != nil {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutCtx); err != nil {
			slog.Warn("server shutdown error", "err", err)
		}
		shutCancel()
	}
	if err := closeBus(); err != nil {
		slog.Warn("bus close error", "err", err)
	}

	if runErr != nil {
		slog.Error("indicator stopped", "err", runErr)
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

// openBus opens the configured bus. The mock bus carries a simulated RX8900
// that starts as if its backup supply had been lost.
func openBus(ctx context.Context, cfg *config.Config) (hardware.Bus, func() error, error) {
	if cfg.Bus.Driver == config.DriverMock {
		slog.Info("using simulated RTC")
		m := hardware.NewMock(cfg.Bus.Address)
		rx8900.PowerOn(m, time.Now(), true)
		go rx8900.Simulate(ctx, m, cfg.Indicator.Epoch, time.Second)
		return m, func() error { return nil }, nil
	}
	return hardware.OpenBus(cfg.Bus.Driver, cfg.Bus.Device, cfg.Bus.MaxOpsPerSec)
}

func openLights(cfg *config.Config) (hardware.Lights, error) {
	if cfg.Lights.Driver == config.DriverMock {
		slog.Info("using mock lights")
		return hardware.NewMockLights(), nil
	}
	return hardware.OpenGPIOLights(cfg.Lights.RedPin, cfg.Lights.GreenPin)
}
