// Package models defines the data types shared between the indicator and
// its read-only surfaces (HTTP API, SSE, MQTT).
package models

import (
	"time"

	"github.com/micro-nova/meetlight/internal/hardware"
)

// Mode is the criterion the indicator uses to pick a phase.
type Mode string

const (
	ModeTick   Mode = "tick"   // local counter of observed second changes
	ModeMinute Mode = "minute" // the clock's minute of the hour
)

// Snapshot is one evaluated poll of the indicator: the phase it chose, the
// clock values it chose it from, and the lights it drove.
type Snapshot struct {
	Phase     string              `json:"phase"`
	Mode      Mode                `json:"mode"`
	Boot      string              `json:"boot"`
	Tick      int                 `json:"tick"`
	Second    int                 `json:"second"`
	Minute    *int                `json:"minute,omitempty"` // only read in minute mode
	Lights    hardware.LightState `json:"lights"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Info is the system information response.
type Info struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Hostname string `json:"hostname"`
	Bus      string `json:"bus"`
	Lights   string `json:"lights"`
	Mock     bool   `json:"mock,omitempty"`
}
