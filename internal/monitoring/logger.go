package monitoring

import (
	"log"
	"sync/atomic"
)

type logFunc func(format string, v ...interface{})

var logger atomic.Pointer[logFunc]

func init() {
	SetLogger(log.Printf)
}

// Logf is the diagnostic logger used by the conversion pipeline. It writes
// through log.Printf until SetLogger installs something else; the CLI mutes
// it with --quiet. Safe to call from any goroutine.
func Logf(format string, v ...interface{}) {
	(*logger.Load())(format, v...)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
// It may be called while conversions are running.
func SetLogger(f func(format string, v ...interface{})) {
	fn := logFunc(f)
	if f == nil {
		fn = func(string, ...interface{}) {}
	}
	logger.Store(&fn)
}
