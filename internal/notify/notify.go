package notify

import "fyne.io/fyne/v2"

// Fyne delivers system notifications through the running Fyne application.
type Fyne struct {
	app fyne.App
}

// NewFyne creates a notifier bound to the given application.
func NewFyne(app fyne.App) *Fyne {
	return &Fyne{app: app}
}

// Notify sends a system notification.
func (notifier *Fyne) Notify(title, body string) {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
}

// Discard swallows notifications. Used when notifications are disabled.
type Discard struct{}

// Notify does nothing.
func (Discard) Notify(title, body string) {}
