package condition

import (
	"github.com/inkdeck/display-automation/pkg/device"
)

// evaluateBattery compares the snapshot battery percent against the
// "level" parameter.
func evaluateBattery(cond Condition, snap device.Snapshot) bool {
	level, ok := cond.GetInt("level")
	if !ok {
		return false
	}

	switch cond.Operator {
	case OpEquals:
		return snap.BatteryLevel == level
	case OpAbove:
		return snap.BatteryLevel > level
	case OpBelow:
		return snap.BatteryLevel < level
	case OpAtLeast:
		return snap.BatteryLevel >= level
	case OpAtMost:
		return snap.BatteryLevel <= level
	default:
		return false
	}
}

// evaluateCharging compares the snapshot charging flag against the
// "charging" parameter.
func evaluateCharging(cond Condition, snap device.Snapshot) bool {
	if cond.Operator != OpEquals {
		return false
	}
	want, ok := cond.GetBool("charging")
	if !ok {
		return false
	}
	return snap.Charging == want
}

// evaluateConnectivity checks the snapshot network state.
func evaluateConnectivity(cond Condition, snap device.Snapshot) bool {
	switch cond.Operator {
	case OpConnected:
		return snap.Connected
	case OpDisconnected:
		return !snap.Connected
	case OpNetworkType:
		want, ok := cond.GetString("type")
		if !ok {
			return false
		}
		return snap.Connected && snap.NetworkType == want
	default:
		return false
	}
}

// evaluateAppRunning compares the snapshot foreground app against the
// "package" parameter.
func evaluateAppRunning(cond Condition, snap device.Snapshot) bool {
	pkg, ok := cond.GetString("package")
	if !ok {
		return false
	}

	switch cond.Operator {
	case OpEquals:
		return snap.ForegroundApp == pkg
	case OpNotEquals:
		return snap.ForegroundApp != pkg
	default:
		return false
	}
}
