package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/danielsampar12/pomodorio/internal/config"
	"github.com/danielsampar12/pomodorio/internal/core/engine"
	"github.com/danielsampar12/pomodorio/internal/core/model"
	"github.com/danielsampar12/pomodorio/internal/core/stats"
	"github.com/danielsampar12/pomodorio/internal/logging"
	"github.com/danielsampar12/pomodorio/internal/notify"
	"github.com/danielsampar12/pomodorio/internal/platform"
	"github.com/danielsampar12/pomodorio/internal/storage"
	"github.com/danielsampar12/pomodorio/internal/ui/tray"
)

const appName = "pomodorio"

func main() {
	log := logging.NewLogger("main")

	lock, err := platform.LockInstance(appName)
	if err != nil {
		log.WithError(err).Error("single instance")
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	cfg, err := config.Load(appName)
	if err != nil {
		log.WithError(err).Warn("load config failed, using defaults")
	}
	logging.Configure(cfg.LogLevel)

	dataDir, err := cfg.ResolveDataDir(appName)
	if err != nil {
		log.WithError(err).Error("resolve data dir")
		return
	}

	store, err := storage.Open(dataDir)
	if err != nil {
		log.WithError(err).Error("open store")
		return
	}

	tracker := stats.New(store, logging.NewLogger("stats"))
	if err := tracker.CheckReset(); err != nil {
		log.WithError(err).Error("stat reset check")
		return
	}

	fyneApp := app.NewWithID("com.pomodorio.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Error("system tray unsupported on this platform")
		return
	}

	var notifier engine.Notifier = notify.Discard{}
	if cfg.Notifications {
		notifier = notify.NewFyne(fyneApp)
	}

	core := engine.New(store, tracker, notifier, logging.NewLogger("engine"))

	mainWindow := fyneApp.NewWindow("Pomodorio")
	mainWindow.SetContent(widget.NewLabel("Pomodorio is running in the system tray."))
	windowHidden := false

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnNextPhase: func() {
			if err := core.SwitchPhase(false, true); err != nil {
				log.WithError(err).Error("switch phase")
			}
		},
		OnPreviousPhase: func() {
			if err := core.SwitchPhase(true, true); err != nil {
				log.WithError(err).Error("switch phase")
			}
		},
		OnRestartPhase: func() {
			if err := core.ResetPhase(); err != nil {
				log.WithError(err).Error("reset phase")
			}
		},
		OnToggleWindow: func() {
			if windowHidden {
				mainWindow.Show()
			} else {
				mainWindow.Hide()
			}
			windowHidden = !windowHidden
			trayManager.SetWindowHidden(windowHidden)
		},
		OnQuit: func() {
			core.Close()
			fyneApp.Quit()
		},
	})

	mainWindow.SetCloseIntercept(func() {
		mainWindow.Hide()
		windowHidden = true
		trayManager.SetWindowHidden(true)
	})

	events := core.Subscribe(8)
	go runCountdown(core, events, trayManager, log)

	if err := core.RestoreState(); err != nil {
		log.WithError(err).Error("restore state")
		return
	}

	mainWindow.Show()
	fyneApp.Run()
}

// runCountdown drives the automatic phase transitions. The remaining event
// after each transition arms the timer for the new phase; when it expires
// the next transition is an automatic forward switch.
func runCountdown(core *engine.Engine, events <-chan engine.Event, trayManager *tray.Manager, log *logrus.Entry) {
	currentPhase := model.PhaseWork
	countdown := time.NewTimer(time.Hour)
	if !countdown.Stop() {
		<-countdown.C
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				countdown.Stop()
				return
			}
			switch event.Type {
			case engine.EventPhase:
				currentPhase = event.Phase
			case engine.EventRemaining:
				if !countdown.Stop() {
					select {
					case <-countdown.C:
					default:
					}
				}
				countdown.Reset(time.Duration(event.Remaining) * time.Minute)
				trayManager.SetStatus(statusText(currentPhase, event.Remaining))
			}
		case <-countdown.C:
			if err := core.SwitchPhase(false, false); err != nil {
				log.WithError(err).Error("automatic phase switch")
			}
		}
	}
}

func statusText(phase model.Phase, remaining int) string {
	return fmt.Sprintf("%s (%d min)", phaseLabel(phase), remaining)
}

func phaseLabel(phase model.Phase) string {
	switch phase {
	case model.PhaseShortBreak:
		return "Short break"
	case model.PhaseLongBreak:
		return "Long break"
	default:
		return "Work"
	}
}
