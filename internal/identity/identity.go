// Package identity provides the name and version the daemon reports about
// itself.
package identity

import (
	"os"
	"runtime/debug"

	"github.com/micro-nova/meetlight/internal/models"
)

// Name is the product name reported by the API and mDNS.
const Name = "meetlight"

// DefaultVersion is reported when no version was stamped into the binary.
const DefaultVersion = "0.1.0-dev"

// Version is set at link time:
//
//	go build -ldflags "-X github.com/micro-nova/meetlight/internal/identity.Version=1.0.0"
var Version string

// GetHostname returns the system hostname.
func GetHostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return Name
	}
	return h
}

// GetVersion returns the stamped version, then the module version from the
// build info, then DefaultVersion.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return DefaultVersion
}

// Describe builds the info response for the given driver selection.
func Describe(bus, lights string) models.Info {
	return models.Info{
		Name:     Name,
		Version:  GetVersion(),
		Hostname: GetHostname(),
		Bus:      bus,
		Lights:   lights,
		Mock:     bus == "mock" || lights == "mock",
	}
}
