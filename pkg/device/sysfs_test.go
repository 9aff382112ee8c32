package device

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSysfsFile(t *testing.T, path, value string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(value+"\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSysfsProvider_Snapshot(t *testing.T) {
	root := t.TempDir()
	powerDir := filepath.Join(root, "power_supply")
	netDir := filepath.Join(root, "net")

	writeSysfsFile(t, filepath.Join(powerDir, "BAT0", "type"), "Battery")
	writeSysfsFile(t, filepath.Join(powerDir, "BAT0", "capacity"), "73")
	writeSysfsFile(t, filepath.Join(powerDir, "BAT0", "status"), "Charging")
	writeSysfsFile(t, filepath.Join(powerDir, "AC", "type"), "Mains")
	writeSysfsFile(t, filepath.Join(netDir, "lo", "operstate"), "unknown")
	writeSysfsFile(t, filepath.Join(netDir, "wlan0", "operstate"), "up")

	p := &SysfsProvider{
		powerSupplyDir: powerDir,
		netDir:         netDir,
		now:            func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if snap.BatteryLevel != 73 {
		t.Errorf("BatteryLevel = %d, expected 73", snap.BatteryLevel)
	}
	if !snap.Charging {
		t.Error("Charging = false, expected true")
	}
	if !snap.Connected {
		t.Error("Connected = false, expected true")
	}
	if snap.NetworkType != "wifi" {
		t.Errorf("NetworkType = %q, expected \"wifi\"", snap.NetworkType)
	}
	if snap.Now.IsZero() {
		t.Error("Now should be filled in")
	}
}

func TestSysfsProvider_MissingTree(t *testing.T) {
	root := t.TempDir()
	p := &SysfsProvider{
		powerSupplyDir: filepath.Join(root, "nope"),
		netDir:         filepath.Join(root, "also-nope"),
		now:            time.Now,
	}

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v, expected graceful degradation", err)
	}
	if snap.BatteryLevel != 0 || snap.Charging || snap.Connected {
		t.Errorf("expected zero-value battery/network state, got %+v", snap)
	}
}

func TestParseBatteryCapacity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"85", 85, false},
		{" 42 ", 42, false},
		{"104", 100, false},
		{"-3", 0, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseBatteryCapacity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseBatteryCapacity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseBatteryCapacity(%q) = %d, expected %d", tt.in, got, tt.want)
		}
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(Snapshot{BatteryLevel: 50})

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.BatteryLevel != 50 {
		t.Errorf("BatteryLevel = %d, expected 50", snap.BatteryLevel)
	}
	if snap.Now.IsZero() {
		t.Error("expected Now to be filled in when zero")
	}

	p.Set(Snapshot{BatteryLevel: 10, Now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)})
	snap, _ = p.Snapshot(context.Background())
	if snap.BatteryLevel != 10 {
		t.Errorf("BatteryLevel = %d after Set, expected 10", snap.BatteryLevel)
	}
	if snap.Now.Hour() != 8 {
		t.Errorf("expected explicit timestamp to be preserved, got %v", snap.Now)
	}
}
