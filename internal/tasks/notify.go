package tasks

import (
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/gen2brain/beeep"
)

// Notifier shows short messages outside the terminal.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier sends desktop notifications through the OS notification service.
type DesktopNotifier struct {
	appName string
}

// NewNotifier returns a [DesktopNotifier], or a no-op notifier when notifications are disabled.
func NewNotifier(cfg shared.NotificationsConfig) Notifier {
	if !cfg.Enabled {
		return nopNotifier{}
	}
	return &DesktopNotifier{appName: "nmp"}
}

func (n *DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(n.appName+": "+title, message, "")
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) error { return nil }
