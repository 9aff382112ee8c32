package action

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DeviceController is the side-effect boundary for actions. The daemon
// injects a platform implementation; tests inject a recorder. Every
// built-in handler delegates to exactly one of these methods.
type DeviceController interface {
	SetTheme(ctx context.Context, theme string) error
	SetBrightness(ctx context.Context, level int) error
	ShowNotification(ctx context.Context, title, message string) error
	PlaySound(ctx context.Context, sound string) error
	Vibrate(ctx context.Context, duration time.Duration) error
	LaunchApp(ctx context.Context, pkg string) error
	SendMessage(ctx context.Context, recipient, body string) error
	SetAlarm(ctx context.Context, at, label string) error
	SetWallpaper(ctx context.Context, uri string) error
	SetRingtone(ctx context.Context, uri string) error
	SetWifi(ctx context.Context, enabled bool) error
	SetBluetooth(ctx context.Context, enabled bool) error
	SetAirplaneMode(ctx context.Context, enabled bool) error
	RefreshDisplay(ctx context.Context) error
	RunScript(ctx context.Context, path string) error
}

// LogController is a DeviceController that only logs what it would do.
// It is the default controller when no platform integration is wired,
// keeping the dispatch contract observable without real side effects.
type LogController struct{}

// NewLogController creates a logging no-op controller.
func NewLogController() *LogController {
	return &LogController{}
}

func (c *LogController) SetTheme(ctx context.Context, theme string) error {
	logrus.Infof("device: set theme to %q", theme)
	return nil
}

func (c *LogController) SetBrightness(ctx context.Context, level int) error {
	logrus.Infof("device: set brightness to %d", level)
	return nil
}

func (c *LogController) ShowNotification(ctx context.Context, title, message string) error {
	logrus.Infof("device: show notification %q: %s", title, message)
	return nil
}

func (c *LogController) PlaySound(ctx context.Context, sound string) error {
	logrus.Infof("device: play sound %q", sound)
	return nil
}

func (c *LogController) Vibrate(ctx context.Context, duration time.Duration) error {
	logrus.Infof("device: vibrate for %v", duration)
	return nil
}

func (c *LogController) LaunchApp(ctx context.Context, pkg string) error {
	logrus.Infof("device: launch app %q", pkg)
	return nil
}

func (c *LogController) SendMessage(ctx context.Context, recipient, body string) error {
	logrus.Infof("device: send message to %q", recipient)
	return nil
}

func (c *LogController) SetAlarm(ctx context.Context, at, label string) error {
	logrus.Infof("device: set alarm at %s (%q)", at, label)
	return nil
}

func (c *LogController) SetWallpaper(ctx context.Context, uri string) error {
	logrus.Infof("device: set wallpaper to %q", uri)
	return nil
}

func (c *LogController) SetRingtone(ctx context.Context, uri string) error {
	logrus.Infof("device: set ringtone to %q", uri)
	return nil
}

func (c *LogController) SetWifi(ctx context.Context, enabled bool) error {
	logrus.Infof("device: set wifi enabled=%v", enabled)
	return nil
}

func (c *LogController) SetBluetooth(ctx context.Context, enabled bool) error {
	logrus.Infof("device: set bluetooth enabled=%v", enabled)
	return nil
}

func (c *LogController) SetAirplaneMode(ctx context.Context, enabled bool) error {
	logrus.Infof("device: set airplane mode enabled=%v", enabled)
	return nil
}

func (c *LogController) RefreshDisplay(ctx context.Context) error {
	logrus.Info("device: refresh display")
	return nil
}

func (c *LogController) RunScript(ctx context.Context, path string) error {
	logrus.Infof("device: run script %q", path)
	return nil
}
