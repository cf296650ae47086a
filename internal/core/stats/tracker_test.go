package stats

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsampar12/pomodorio/internal/core/model"
	"github.com/danielsampar12/pomodorio/internal/storage"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newTracker(t *testing.T, lastOpened, now time.Time, stats model.Stats) (*Tracker, *storage.MemStore) {
	t.Helper()

	store := storage.NewMemStore()
	require.NoError(t, store.Set(storage.KeyLastOpened, lastOpened))
	require.NoError(t, store.Set(storage.KeyStats, stats))

	tracker := New(store, testLogger())
	tracker.SetClock(func() time.Time { return now })
	return tracker, store
}

func TestRecordUpdatesAllBuckets(t *testing.T) {
	store := storage.NewMemStore()
	tracker := New(store, testLogger())

	require.NoError(t, tracker.Record(25))
	require.NoError(t, tracker.Record(25))

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	want := model.Stat{Minutes: 50, Sessions: 2}
	assert.Equal(t, want, stats.Today)
	assert.Equal(t, want, stats.Week)
	assert.Equal(t, want, stats.Total)
}

func TestCheckResetDayBoundary(t *testing.T) {
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	initial := model.Stats{
		Today: model.Stat{Minutes: 30, Sessions: 2},
		Week:  model.Stat{Minutes: 120, Sessions: 6},
		Total: model.Stat{Minutes: 900, Sessions: 40},
	}
	tracker, store := newTracker(t, yesterday, now, initial)

	require.NoError(t, tracker.CheckReset())

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	assert.Equal(t, model.Stat{}, stats.Today)
	assert.Equal(t, initial.Week, stats.Week)
	assert.Equal(t, initial.Total, stats.Total)
}

func TestCheckResetDayTakesPrecedenceOverWeek(t *testing.T) {
	// Last opened in the previous ISO week: only the finer-grained day
	// reset fires, the week bucket is deferred to the next check.
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	lastWeek := now.AddDate(0, 0, -8)

	initial := model.Stats{
		Today: model.Stat{Minutes: 30, Sessions: 2},
		Week:  model.Stat{Minutes: 120, Sessions: 6},
		Total: model.Stat{Minutes: 900, Sessions: 40},
	}
	tracker, store := newTracker(t, lastWeek, now, initial)

	require.NoError(t, tracker.CheckReset())

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	assert.Equal(t, model.Stat{}, stats.Today)
	assert.Equal(t, initial.Week, stats.Week)
	assert.Equal(t, initial.Total, stats.Total)
}

func TestCheckResetYearBoundary(t *testing.T) {
	// Same day-of-year one year apart still resets the day bucket.
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	lastYear := now.AddDate(-1, 0, 0)

	initial := model.Stats{Today: model.Stat{Minutes: 10, Sessions: 1}}
	tracker, store := newTracker(t, lastYear, now, initial)

	require.NoError(t, tracker.CheckReset())

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	assert.Equal(t, model.Stat{}, stats.Today)
}

func TestCheckResetSameDayLeavesStatsUntouched(t *testing.T) {
	now := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)
	earlier := now.Add(-6 * time.Hour)

	initial := model.Stats{
		Today: model.Stat{Minutes: 30, Sessions: 2},
		Week:  model.Stat{Minutes: 120, Sessions: 6},
		Total: model.Stat{Minutes: 900, Sessions: 40},
	}
	tracker, store := newTracker(t, earlier, now, initial)

	require.NoError(t, tracker.CheckReset())

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	assert.Equal(t, initial, stats)
}

func TestCheckResetRefreshesLastOpened(t *testing.T) {
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	tracker, store := newTracker(t, now.AddDate(0, 0, -3), now, model.Stats{})

	require.NoError(t, tracker.CheckReset())

	var lastOpened time.Time
	require.NoError(t, store.Get(storage.KeyLastOpened, &lastOpened))
	assert.True(t, lastOpened.Equal(now))
}

func TestTotalNeverResets(t *testing.T) {
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	initial := model.Stats{Total: model.Stat{Minutes: 900, Sessions: 40}}
	tracker, store := newTracker(t, now.AddDate(0, 0, -400), now, initial)

	require.NoError(t, tracker.CheckReset())

	var stats model.Stats
	require.NoError(t, store.Get(storage.KeyStats, &stats))
	assert.Equal(t, initial.Total, stats.Total)
}
