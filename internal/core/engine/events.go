package engine

import "github.com/danielsampar12/pomodorio/internal/core/model"

// EventType defines the type of engine event.
type EventType string

const (
	EventPhase         EventType = "switch-phase"
	EventSessionNumber EventType = "session-number"
	EventRemaining     EventType = "remaining"
)

// Event represents an engine update for observers. After a phase
// transition, observers receive phase, session number and remaining
// duration events in that order.
type Event struct {
	Type          EventType
	Phase         model.Phase
	SessionNumber int
	Remaining     int
}
