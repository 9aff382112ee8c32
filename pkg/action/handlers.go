package action

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// skip logs the reason an action was skipped. Missing or malformed
// parameters make the action a silent no-op rather than a failure.
func skip(act Action, param string) error {
	logrus.Warnf("action %s missing parameter %q, skipping", act.Kind, param)
	return nil
}

func builtinHandlers() map[string]Handler {
	return map[string]Handler{
		KindSetTheme: func(ctx context.Context, act Action, ctrl DeviceController) error {
			theme, ok := act.GetString("theme")
			if !ok {
				return skip(act, "theme")
			}
			return ctrl.SetTheme(ctx, theme)
		},

		KindSetBrightness: func(ctx context.Context, act Action, ctrl DeviceController) error {
			level, ok := act.GetInt("brightness")
			if !ok {
				return skip(act, "brightness")
			}
			return ctrl.SetBrightness(ctx, level)
		},

		KindShowNotification: func(ctx context.Context, act Action, ctrl DeviceController) error {
			message, ok := act.GetString("message")
			if !ok {
				return skip(act, "message")
			}
			title := act.GetStringDefault("title", "Automation")
			return ctrl.ShowNotification(ctx, title, message)
		},

		KindPlaySound: func(ctx context.Context, act Action, ctrl DeviceController) error {
			sound, ok := act.GetString("sound")
			if !ok {
				return skip(act, "sound")
			}
			return ctrl.PlaySound(ctx, sound)
		},

		KindVibrate: func(ctx context.Context, act Action, ctrl DeviceController) error {
			millis, ok := act.GetInt("duration_ms")
			if !ok {
				return skip(act, "duration_ms")
			}
			return ctrl.Vibrate(ctx, time.Duration(millis)*time.Millisecond)
		},

		KindLaunchApp: func(ctx context.Context, act Action, ctrl DeviceController) error {
			pkg, ok := act.GetString("package")
			if !ok {
				return skip(act, "package")
			}
			return ctrl.LaunchApp(ctx, pkg)
		},

		KindSendMessage: func(ctx context.Context, act Action, ctrl DeviceController) error {
			recipient, ok := act.GetString("recipient")
			if !ok {
				return skip(act, "recipient")
			}
			body, ok := act.GetString("body")
			if !ok {
				return skip(act, "body")
			}
			return ctrl.SendMessage(ctx, recipient, body)
		},

		KindSetAlarm: func(ctx context.Context, act Action, ctrl DeviceController) error {
			at, ok := act.GetString("time")
			if !ok {
				return skip(act, "time")
			}
			return ctrl.SetAlarm(ctx, at, act.GetStringDefault("label", ""))
		},

		KindSetWallpaper: func(ctx context.Context, act Action, ctrl DeviceController) error {
			uri, ok := act.GetString("uri")
			if !ok {
				return skip(act, "uri")
			}
			return ctrl.SetWallpaper(ctx, uri)
		},

		KindSetRingtone: func(ctx context.Context, act Action, ctrl DeviceController) error {
			uri, ok := act.GetString("uri")
			if !ok {
				return skip(act, "uri")
			}
			return ctrl.SetRingtone(ctx, uri)
		},

		KindSetWifi: func(ctx context.Context, act Action, ctrl DeviceController) error {
			enabled, ok := act.GetBool("enabled")
			if !ok {
				return skip(act, "enabled")
			}
			return ctrl.SetWifi(ctx, enabled)
		},

		KindSetBluetooth: func(ctx context.Context, act Action, ctrl DeviceController) error {
			enabled, ok := act.GetBool("enabled")
			if !ok {
				return skip(act, "enabled")
			}
			return ctrl.SetBluetooth(ctx, enabled)
		},

		KindSetAirplaneMode: func(ctx context.Context, act Action, ctrl DeviceController) error {
			enabled, ok := act.GetBool("enabled")
			if !ok {
				return skip(act, "enabled")
			}
			return ctrl.SetAirplaneMode(ctx, enabled)
		},

		KindRefreshDisplay: func(ctx context.Context, act Action, ctrl DeviceController) error {
			return ctrl.RefreshDisplay(ctx)
		},

		KindRunScript: func(ctx context.Context, act Action, ctrl DeviceController) error {
			path, ok := act.GetString("path")
			if !ok {
				return skip(act, "path")
			}
			return ctrl.RunScript(ctx, path)
		},
	}
}
