package zeroconf_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/micro-nova/meetlight/internal/models"
	"github.com/micro-nova/meetlight/internal/zeroconf"
)

var info = models.Info{Name: "meetlight", Version: "1.2.3", Hostname: "meetlight-test", Bus: "ioctl"}

func TestTXT(t *testing.T) {
	want := []string{"version=1.2.3", "model=meetlight", "bus=ioctl", "path=/api/status"}
	if diff := cmp.Diff(want, zeroconf.TXT(info)); diff != "" {
		t.Errorf("TXT (-want +got):\n%s", diff)
	}
}

func TestPortFromAddr(t *testing.T) {
	tests := []struct {
		addr    string
		want    int
		wantErr bool
	}{
		{":8080", 8080, false},
		{"127.0.0.1:9000", 9000, false},
		{"8080", 0, true},
		{":http", 0, true},
		{":0", 0, true},
	}
	for _, tc := range tests {
		got, err := zeroconf.PortFromAddr(tc.addr)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("PortFromAddr(%q) = %d, %v; want %d, err=%v", tc.addr, got, err, tc.want, tc.wantErr)
		}
	}
}

// TestStart_Cancel starts the service and cancels the context within 1 second.
// It verifies that Start returns without blocking.
func TestStart_Cancel(t *testing.T) {
	svc := zeroconf.New(info, 18080)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(ctx)
	}()

	select {
	case err := <-done:
		// mDNS may be unavailable in the test environment; what matters is
		// that Start returned.
		if err != nil {
			t.Logf("Start returned error (may be expected in CI): %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return within 3 seconds after context cancellation")
	}
}
