package ai

import "sync/atomic"

// debugLoggingEnabled controls per-branch debug logging of the search.
// Searches visit thousands of branches, so the flag is checked instead of the log level.
// Set via EnableDebugLogging() during initialization based on config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the search.
// Must be called during initialization (e.g., from main.go after parsing config).
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard debug log calls in the search loop:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("branch evaluated", "skill", name, "eval", v)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
