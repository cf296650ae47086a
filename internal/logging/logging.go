package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	base   *logrus.Logger
	baseMu sync.Mutex
)

// Configure sets the global log level. The POMODORIO_LOG_LEVEL environment
// variable takes precedence over the configured value. Unknown levels fall
// back to info.
func Configure(level string) {
	baseMu.Lock()
	defer baseMu.Unlock()

	logger := baseLocked()
	if env := os.Getenv("POMODORIO_LOG_LEVEL"); env != "" {
		level = env
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// NewLogger returns a logger entry tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	baseMu.Lock()
	defer baseMu.Unlock()
	return baseLocked().WithField("component", component)
}

func baseLocked() *logrus.Logger {
	if base == nil {
		base = logrus.New()
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		base.SetLevel(logrus.InfoLevel)
	}
	return base
}
