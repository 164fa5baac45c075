package core

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerMu sync.RWMutex
	logger   = newLogger()
)

func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "viewer",
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the process-wide logger. A nil logger restores the
// default stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newLogger()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// SetLogLevel parses one of debug, info, warn, error, fatal and applies it.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

func LogDebug(msg string, args ...interface{}) {
	Logger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	Logger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	Logger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	Logger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	Logger().Fatalf(msg, args...)
}
