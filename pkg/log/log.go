// Package log is a small facade over glog used across the server.
package log

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Infof logs to the INFO log.
func Infof(format string, args ...interface{}) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// Warningf logs to the WARNING and INFO logs.
func Warningf(format string, args ...interface{}) {
	glog.WarningDepth(1, fmt.Sprintf(format, args...))
}

// Errorf logs to the ERROR, WARNING and INFO logs.
func Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(1, fmt.Sprintf(format, args...))
}

// Fatalf logs to all logs and exits the process.
func Fatalf(format string, args ...interface{}) {
	glog.FatalDepth(1, fmt.Sprintf(format, args...))
}

// V reports whether verbose logging at the given level is enabled.
func V(level glog.Level) glog.Verbose {
	return glog.V(level)
}

// TimeTrack logs how long the named operation took since start.
func TimeTrack(start time.Time, name string) {
	if glog.V(1) {
		glog.InfoDepth(1, fmt.Sprintf("%s took %s", name, time.Since(start)))
	}
}

// Flush writes any buffered log entries.
func Flush() {
	glog.Flush()
}
