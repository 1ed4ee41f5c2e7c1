// Package logger provides verbose logging for deckroute.
// When verbose mode is enabled via the --verbose flag, routing decisions
// (classification, diversity overrides, variant fallbacks and per-slide
// dispatch) are traced to stderr. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write prints one tagged line. Untagged lines are printed as is. The
// write lock keeps lines from interleaving on a shared writer.
func write(always bool, tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && !always {
		return
	}
	if tag != "" {
		format = "[" + tag + "] " + format
	}
	fmt.Fprintf(output, format+"\n", args...)
}

// Debug traces a routing step.
func Debug(format string, args ...any) {
	write(false, "DEBUG", format, args...)
}

// Info reports a run-level result.
func Info(format string, args ...any) {
	write(false, "INFO", format, args...)
}

// Warn reports a recoverable problem such as a fallback or a failed slide.
func Warn(format string, args ...any) {
	write(false, "WARN", format, args...)
}

// Error prints an error message, even when verbose mode is disabled.
func Error(format string, args ...any) {
	write(true, "ERROR", format, args...)
}

// Section prints a section header.
func Section(name string) {
	write(false, "", "\n=== %s ===", name)
}

// Since traces a step together with the time elapsed since start,
// rounded to milliseconds.
func Since(start time.Time, format string, args ...any) {
	elapsed := time.Since(start).Round(time.Millisecond)
	write(false, "DEBUG", format+" (%s)", append(args, elapsed)...)
}
