package stats

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/danielsampar12/pomodorio/internal/core/model"
	"github.com/danielsampar12/pomodorio/internal/storage"
)

// Tracker maintains the rolling today/week/total aggregates in the store.
type Tracker struct {
	store storage.Store
	log   *logrus.Entry
	now   func() time.Time
}

// New creates a Tracker backed by the given store.
func New(store storage.Store, log *logrus.Entry) *Tracker {
	return &Tracker{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// SetClock injects a clock. Used by tests to cross date boundaries.
func (tracker *Tracker) SetClock(now func() time.Time) {
	tracker.now = now
}

// Record adds one completed work session of the given length in minutes to
// all three buckets as a single persisted write.
func (tracker *Tracker) Record(minutes int) error {
	var stats model.Stats
	if err := tracker.store.Get(storage.KeyStats, &stats); err != nil {
		return eris.Wrap(err, "load stats")
	}

	for _, bucket := range []*model.Stat{&stats.Today, &stats.Week, &stats.Total} {
		bucket.Minutes += minutes
		bucket.Sessions++
	}

	if err := tracker.store.Set(storage.KeyStats, stats); err != nil {
		return eris.Wrap(err, "save stats")
	}

	tracker.log.WithFields(logrus.Fields{
		"minutes":        minutes,
		"total_sessions": stats.Total.Sessions,
	}).Debug("session recorded")
	return nil
}

// CheckReset zeroes the today bucket when the calendar day has changed since
// the store was last opened, or failing that the week bucket when the ISO
// week has changed. At most one bucket is reset per call; a day rollover
// takes precedence and defers a simultaneous week rollover to the next
// check. Runs once at startup, before any command is accepted, and rewrites
// last_opened to now.
func (tracker *Tracker) CheckReset() error {
	var lastOpened time.Time
	if err := tracker.store.Get(storage.KeyLastOpened, &lastOpened); err != nil {
		return eris.Wrap(err, "load last opened time")
	}
	lastOpened = lastOpened.UTC()

	var stats model.Stats
	if err := tracker.store.Get(storage.KeyStats, &stats); err != nil {
		return eris.Wrap(err, "load stats")
	}

	now := tracker.now().UTC()

	switch {
	case now.Year() != lastOpened.Year() || now.YearDay() != lastOpened.YearDay():
		stats.Today = model.Stat{}
		if err := tracker.store.Set(storage.KeyStats, stats); err != nil {
			return eris.Wrap(err, "save stats")
		}
		tracker.log.Info("daily stats reset")
	case now.Year() != lastOpened.Year() || isoWeek(now) != isoWeek(lastOpened):
		stats.Week = model.Stat{}
		if err := tracker.store.Set(storage.KeyStats, stats); err != nil {
			return eris.Wrap(err, "save stats")
		}
		tracker.log.Info("weekly stats reset")
	}

	if err := tracker.store.Set(storage.KeyLastOpened, now); err != nil {
		return eris.Wrap(err, "save last opened time")
	}
	return nil
}

func isoWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
