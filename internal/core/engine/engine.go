package engine

import (
	"sync"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/danielsampar12/pomodorio/internal/core/model"
	"github.com/danielsampar12/pomodorio/internal/storage"
)

// Notifier delivers a system notification to the user.
type Notifier interface {
	Notify(title, body string)
}

// SessionRecorder records one completed work session of the given
// length in minutes.
type SessionRecorder interface {
	Record(minutes int) error
}

const notificationTitle = "Phase changed"

// Engine is the phase state machine behind the Pomodoro cycle. The current
// phase and session counter live only in memory; settings and statistics
// are read from and written to the durable store.
type Engine struct {
	phaseMu sync.Mutex
	phase   model.Phase

	sessionMu     sync.Mutex
	sessionNumber int

	store    storage.Store
	recorder SessionRecorder
	notifier Notifier
	log      *logrus.Entry

	observersMu sync.Mutex
	observers   []chan Event
}

// New creates an Engine starting at the Work phase with a zero session
// counter. The recorder and notifier may be nil, in which case completed
// sessions are not recorded and no notifications are sent.
func New(store storage.Store, recorder SessionRecorder, notifier Notifier, log *logrus.Entry) *Engine {
	return &Engine{
		phase:    model.PhaseWork,
		store:    store,
		recorder: recorder,
		notifier: notifier,
		log:      log,
	}
}

// PhaseForSession maps a session counter to its phase. Even counters are
// work time. Odd counters are breaks: every (2*longBreakInterval - 1)th
// counter is a long break, the rest are short breaks.
func PhaseForSession(sessionNumber, longBreakInterval int) model.Phase {
	if sessionNumber%2 != 1 {
		return model.PhaseWork
	}
	if sessionNumber%(longBreakInterval*2-1) == 0 {
		return model.PhaseLongBreak
	}
	return model.PhaseShortBreak
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.observersMu.Lock()
	engine.observers = append(engine.observers, ch)
	engine.observersMu.Unlock()
	return ch
}

// Close closes all observer channels.
func (engine *Engine) Close() {
	engine.observersMu.Lock()
	observers := engine.observers
	engine.observers = nil
	engine.observersMu.Unlock()

	for _, ch := range observers {
		close(ch)
	}
}

// Phase returns the current phase.
func (engine *Engine) Phase() model.Phase {
	engine.phaseMu.Lock()
	defer engine.phaseMu.Unlock()
	return engine.phase
}

// SessionNumber returns the current session counter.
func (engine *Engine) SessionNumber() int {
	engine.sessionMu.Lock()
	defer engine.sessionMu.Unlock()
	return engine.sessionNumber
}

// SwitchPhase advances the cycle to the next phase, or reverts to the
// previous one when isPrevious is set. An automatic forward transition out
// of the Work phase records one completed session before the counter moves.
// Overlapping invocations are not serialized against each other.
func (engine *Engine) SwitchPhase(isPrevious, isUser bool) error {
	sessionNumber := engine.SessionNumber()
	phase := engine.Phase()

	var settings model.Settings
	if err := engine.store.Get(storage.KeySettings, &settings); err != nil {
		return eris.Wrap(err, "load settings")
	}

	if phase == model.PhaseWork && !isUser && !isPrevious && engine.recorder != nil {
		if err := engine.recorder.Record(settings.Duration(phase)); err != nil {
			return eris.Wrap(err, "record completed session")
		}
	}

	if isPrevious {
		sessionNumber--
	} else {
		sessionNumber++
	}
	engine.sessionMu.Lock()
	engine.sessionNumber = sessionNumber
	engine.sessionMu.Unlock()

	newPhase := PhaseForSession(sessionNumber, settings.LongBreakInterval)
	engine.phaseMu.Lock()
	engine.phase = newPhase
	engine.phaseMu.Unlock()

	engine.log.WithFields(logrus.Fields{
		"phase":   newPhase,
		"session": sessionNumber,
	}).Debug("phase switched")

	if engine.notifier != nil {
		engine.notifier.Notify(notificationTitle, notificationBody(newPhase))
	}

	engine.emit(Event{Type: EventPhase, Phase: newPhase})
	engine.emit(Event{Type: EventSessionNumber, SessionNumber: sessionNumber})
	engine.emit(Event{Type: EventRemaining, Remaining: settings.Duration(newPhase)})
	return nil
}

// ResetPhase re-emits the remaining duration for the current phase without
// altering the phase or the session counter. The front-end uses this to
// resynchronize its countdown.
func (engine *Engine) ResetPhase() error {
	var settings model.Settings
	if err := engine.store.Get(storage.KeySettings, &settings); err != nil {
		return eris.Wrap(err, "load settings")
	}

	engine.emit(Event{Type: EventRemaining, Remaining: settings.Duration(engine.Phase())})
	return nil
}

// RestoreState re-emits the current phase, session number and remaining
// duration so a freshly started front-end can hydrate its view.
func (engine *Engine) RestoreState() error {
	var settings model.Settings
	if err := engine.store.Get(storage.KeySettings, &settings); err != nil {
		return eris.Wrap(err, "load settings")
	}

	phase := engine.Phase()
	engine.emit(Event{Type: EventPhase, Phase: phase})
	engine.emit(Event{Type: EventSessionNumber, SessionNumber: engine.SessionNumber()})
	engine.emit(Event{Type: EventRemaining, Remaining: settings.Duration(phase)})
	return nil
}

// UpdateSettings replaces the persisted settings record wholesale.
// Fields are not validated.
func (engine *Engine) UpdateSettings(settings model.Settings) error {
	if err := engine.store.Set(storage.KeySettings, settings); err != nil {
		return eris.Wrap(err, "save settings")
	}

	engine.log.WithFields(logrus.Fields{
		"work_time":           settings.WorkTime,
		"short_break_time":    settings.ShortBreakTime,
		"long_break_time":     settings.LongBreakTime,
		"long_break_interval": settings.LongBreakInterval,
	}).Debug("settings updated")
	return nil
}

func notificationBody(phase model.Phase) string {
	switch phase {
	case model.PhaseShortBreak:
		return "Have a little rest!"
	case model.PhaseLongBreak:
		return "Take some extra time to relax!"
	default:
		return "Time to get back to work!"
	}
}

func (engine *Engine) emit(event Event) {
	engine.observersMu.Lock()
	observers := append([]chan Event(nil), engine.observers...)
	engine.observersMu.Unlock()

	for _, ch := range observers {
		select {
		case ch <- event:
		default:
		}
	}
}
