package condition

// Condition is a typed predicate evaluated against a device state
// snapshot. Kind selects the evaluator, Operator selects the comparison
// within it, and Parameters carries operator-specific values.
type Condition struct {
	Kind       string         `yaml:"kind" json:"kind"`
	Operator   string         `yaml:"operator" json:"operator"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Built-in condition kinds.
const (
	KindTime         = "time"
	KindDate         = "date"
	KindBattery      = "battery"
	KindCharging     = "charging"
	KindConnectivity = "connectivity"
	KindAppRunning   = "app_running"
)

// Condition kinds carried over from the source application that have no
// evaluator yet. They are registered fail-closed.
const (
	KindWeather      = "weather"
	KindLocation     = "location"
	KindCalendar     = "calendar"
	KindSensor       = "sensor"
	KindNotification = "notification"
	KindDeviceState  = "device_state"
)

// Operators shared across kinds.
const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpAfter     = "after"
	OpBefore    = "before"
	OpBetween   = "between"
	OpAbove     = "above"
	OpBelow     = "below"
	OpAtLeast   = "at_least"
	OpAtMost    = "at_most"

	OpDayOfWeek  = "day_of_week"
	OpDayOfMonth = "day_of_month"
	OpMonth      = "month"
	OpWeekend    = "weekend"
	OpWeekday    = "weekday"

	OpConnected    = "connected"
	OpDisconnected = "disconnected"
	OpNetworkType  = "network_type"
)

// GetString retrieves a string parameter. The second return value
// reports whether the parameter was present and a string.
func (c Condition) GetString(key string) (string, bool) {
	val, ok := c.Parameters[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// GetInt retrieves an integer parameter. YAML decodes integers as int
// and JSON as float64, so both are accepted.
func (c Condition) GetInt(key string) (int, bool) {
	val, ok := c.Parameters[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a boolean parameter.
func (c Condition) GetBool(key string) (bool, bool) {
	val, ok := c.Parameters[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}
