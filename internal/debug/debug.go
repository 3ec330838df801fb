package debug

import (
	"fmt"
	"log"
	"time"
)

// Printf logs a trace line when debugging is enabled.
func Printf(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	log.Printf("[%s] %s", timestamp, fmt.Sprintf(format, args...))
}

// Timing logs the duration of an operation when debugging is enabled.
// Use as: defer debug.Timing(enabled, "fuzzy stage")().
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	Printf(enabled, "starting: %s", operation)
	return func() {
		Printf(enabled, "completed: %s (took %v)", operation, time.Since(start))
	}
}
