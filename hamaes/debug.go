package hamaes

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var traceOn = os.Getenv("HAMAES_TRACE") == "1"

// trace receives the detection/correction narrative as structured entries.
// Disabled by default; set HAMAES_TRACE=1 or install a logger via
// SetTraceLogger.
var trace = newTraceLogger()

func newTraceLogger() *logrus.Logger {
	l := logrus.New()
	if traceOn {
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetOutput(io.Discard)
	}
	return l
}

// SetTraceLogger redirects the fault narrative to the given logger.
// Passing nil restores the default environment-gated logger.
func SetTraceLogger(l *logrus.Logger) {
	if l == nil {
		trace = newTraceLogger()
		return
	}
	trace = l
}
