package action

// Action is a typed side-effecting command executed when a rule fires.
// Kind selects the handler and Parameters carries handler-specific
// values. Unknown kinds and missing parameters make the action a no-op
// rather than an error.
type Action struct {
	Kind       string         `yaml:"kind" json:"kind"`
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Built-in action kinds.
const (
	KindSetTheme         = "set_theme"
	KindSetBrightness    = "set_brightness"
	KindShowNotification = "show_notification"
	KindPlaySound        = "play_sound"
	KindVibrate          = "vibrate"
	KindLaunchApp        = "launch_app"
	KindSendMessage      = "send_message"
	KindSetAlarm         = "set_alarm"
	KindSetWallpaper     = "set_wallpaper"
	KindSetRingtone      = "set_ringtone"
	KindSetWifi          = "set_wifi"
	KindSetBluetooth     = "set_bluetooth"
	KindSetAirplaneMode  = "set_airplane_mode"
	KindRefreshDisplay   = "refresh_display"
	KindRunScript        = "run_script"
)

// GetString retrieves a string parameter. The second return value
// reports whether the parameter was present and a string.
func (a Action) GetString(key string) (string, bool) {
	val, ok := a.Parameters[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// GetInt retrieves an integer parameter, accepting the int form YAML
// produces and the float64 form JSON produces.
func (a Action) GetInt(key string) (int, bool) {
	val, ok := a.Parameters[key]
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
func (a Action) GetBool(key string) (bool, bool) {
	val, ok := a.Parameters[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// GetStringDefault retrieves a string parameter with a fallback.
func (a Action) GetStringDefault(key, defaultValue string) string {
	if s, ok := a.GetString(key); ok {
		return s
	}
	return defaultValue
}
