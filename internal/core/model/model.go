package model

// Phase represents the current segment of the Pomodoro cycle.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Settings holds the user-configurable durations and the long break interval.
// All durations are in minutes. The record is persisted wholesale; fields are
// not validated against each other.
type Settings struct {
	WorkTime          int `json:"work_time"`
	ShortBreakTime    int `json:"short_break_time"`
	LongBreakTime     int `json:"long_break_time"`
	LongBreakInterval int `json:"long_break_interval"`
}

// DefaultSettings returns the settings seeded on first store initialization.
func DefaultSettings() Settings {
	return Settings{
		WorkTime:          25,
		ShortBreakTime:    5,
		LongBreakTime:     20,
		LongBreakInterval: 4,
	}
}

// Duration returns the configured length in minutes for the given phase.
func (settings Settings) Duration(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return settings.ShortBreakTime
	case PhaseLongBreak:
		return settings.LongBreakTime
	default:
		return settings.WorkTime
	}
}

// Stat accumulates completed work time for one reporting bucket.
type Stat struct {
	Minutes  int `json:"minutes"`
	Sessions int `json:"sessions"`
}

// Stats groups the three rolling aggregates. Today and Week are zeroed when
// a day or ISO week boundary is crossed; Total only ever grows.
type Stats struct {
	Today Stat `json:"today"`
	Week  Stat `json:"week"`
	Total Stat `json:"total"`
}
