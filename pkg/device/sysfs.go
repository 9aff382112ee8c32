package device

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultPowerSupplyDir = "/sys/class/power_supply"
	defaultNetDir         = "/sys/class/net"
)

// SysfsProvider reads battery and network state from the Linux sysfs
// tree. Fields that cannot be read are left at their zero value rather
// than failing the whole snapshot; conditions over them then fail
// closed.
type SysfsProvider struct {
	powerSupplyDir string
	netDir         string
	now            func() time.Time
}

// NewSysfsProvider creates a provider reading from the standard sysfs
// locations.
func NewSysfsProvider() *SysfsProvider {
	return &SysfsProvider{
		powerSupplyDir: defaultPowerSupplyDir,
		netDir:         defaultNetDir,
		now:            time.Now,
	}
}

// Snapshot reads the current device state.
func (p *SysfsProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Now:      p.now(),
		ScreenOn: true,
	}

	level, charging, err := p.readBattery()
	if err != nil {
		logrus.Debugf("sysfs battery read failed: %v", err)
	} else {
		snap.BatteryLevel = level
		snap.Charging = charging
	}

	connected, netType := p.readNetwork()
	snap.Connected = connected
	snap.NetworkType = netType

	return snap, nil
}

// readBattery finds the first battery-type power supply and reads its
// capacity and status.
func (p *SysfsProvider) readBattery() (int, bool, error) {
	entries, err := os.ReadDir(p.powerSupplyDir)
	if err != nil {
		return 0, false, err
	}

	for _, entry := range entries {
		dir := filepath.Join(p.powerSupplyDir, entry.Name())

		typ, err := readSysfsValue(filepath.Join(dir, "type"))
		if err != nil || !strings.EqualFold(typ, "Battery") {
			continue
		}

		capStr, err := readSysfsValue(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}
		level, err := parseBatteryCapacity(capStr)
		if err != nil {
			continue
		}

		status, _ := readSysfsValue(filepath.Join(dir, "status"))
		return level, isChargingStatus(status), nil
	}

	return 0, false, os.ErrNotExist
}

// readNetwork reports whether any non-loopback interface has an
// operational link, and a coarse network type derived from the first
// such interface name.
func (p *SysfsProvider) readNetwork() (bool, string) {
	entries, err := os.ReadDir(p.netDir)
	if err != nil {
		logrus.Debugf("sysfs net read failed: %v", err)
		return false, ""
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "lo" {
			continue
		}

		state, err := readSysfsValue(filepath.Join(p.netDir, name, "operstate"))
		if err != nil || state != "up" {
			continue
		}

		return true, interfaceNetworkType(name)
	}

	return false, ""
}

func readSysfsValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseBatteryCapacity parses a sysfs capacity value and clamps it to
// the 0-100 range some firmwares overshoot.
func parseBatteryCapacity(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return level, nil
}

func isChargingStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "charging", "full":
		return true
	default:
		return false
	}
}

// interfaceNetworkType maps a kernel interface name to a coarse
// network type.
func interfaceNetworkType(name string) string {
	switch {
	case strings.HasPrefix(name, "wl"):
		return "wifi"
	case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
		return "ethernet"
	case strings.HasPrefix(name, "ww"), strings.HasPrefix(name, "rmnet"):
		return "cellular"
	default:
		return ""
	}
}
