package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnNextPhase     func()
	OnPreviousPhase func()
	OnRestartPhase  func()
	OnToggleWindow  func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	statusItem   *fyne.MenuItem
	nextItem     *fyne.MenuItem
	previousItem *fyne.MenuItem
	restartItem  *fyne.MenuItem
	windowItem   *fyne.MenuItem
	callbacks    Callbacks
	windowHidden bool
	statusLabel  string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.nextItem = fyne.NewMenuItem("Next phase", func() {
		if manager.callbacks.OnNextPhase != nil {
			manager.callbacks.OnNextPhase()
		}
	})

	manager.previousItem = fyne.NewMenuItem("Previous phase", func() {
		if manager.callbacks.OnPreviousPhase != nil {
			manager.callbacks.OnPreviousPhase()
		}
	})

	manager.restartItem = fyne.NewMenuItem("Restart phase", func() {
		if manager.callbacks.OnRestartPhase != nil {
			manager.callbacks.OnRestartPhase()
		}
	})

	manager.windowItem = fyne.NewMenuItem("Hide", func() {
		if manager.callbacks.OnToggleWindow != nil {
			manager.callbacks.OnToggleWindow()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetWindowHidden updates the show/hide menu entry.
func (manager *Manager) SetWindowHidden(hidden bool) {
	manager.windowHidden = hidden
	if hidden {
		manager.windowItem.Label = "Show"
	} else {
		manager.windowItem.Label = "Hide"
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomodorio",
		manager.statusItem,
		manager.nextItem,
		manager.previousItem,
		manager.restartItem,
		manager.windowItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
