// Package zeroconf advertises the status API as an mDNS/DNS-SD service so
// indicators are discoverable on the LAN.
package zeroconf

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/grandcat/zeroconf"

	"github.com/micro-nova/meetlight/internal/models"
)

const serviceType = "_http._tcp"

// Service manages mDNS service registration.
type Service struct {
	name string // instance name, usually the hostname
	port int
	txt  []string
}

// New creates a Service that will advertise info on the given port.
func New(info models.Info, port int) *Service {
	return &Service{
		name: info.Hostname,
		port: port,
		txt:  TXT(info),
	}
}

// TXT returns the TXT records advertised for info.
func TXT(info models.Info) []string {
	return []string{
		"version=" + info.Version,
		"model=" + info.Name,
		"bus=" + info.Bus,
		"path=/api/status",
	}
}

// PortFromAddr extracts the TCP port from a listen address such as ":8080".
func PortFromAddr(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("zeroconf: listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("zeroconf: listen address %q has no usable port", addr)
	}
	return port, nil
}

// Start registers the mDNS service and blocks until ctx is cancelled, at which
// point it shuts down the server cleanly.
func (s *Service) Start(ctx context.Context) error {
	server, err := zeroconf.Register(
		s.name,      // instance name
		serviceType, // service type
		"local.",    // domain
		s.port,      // port
		s.txt,       // TXT records
		nil,         // ifaces; nil means all interfaces
	)
	if err != nil {
		return fmt.Errorf("zeroconf register: %w", err)
	}
	slog.Info("zeroconf: registered mDNS service",
		"name", s.name,
		"port", s.port,
		"txt", s.txt,
	)

	<-ctx.Done()

	server.Shutdown()
	slog.Info("zeroconf: mDNS service unregistered")
	return nil
}
