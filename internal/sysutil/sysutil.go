// Package sysutil carries the small process-level helpers used during
// startup: mapping LOG_LEVEL onto zerolog and reading loose env toggles.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
	"panic":   zerolog.PanicLevel,
}

// SetLogLevel applies a LOG_LEVEL string to zerolog's global filter.
// Matching is case-insensitive after trimming; blank or unrecognised
// values fall back to info.
func SetLogLevel(lvl string) {
	if l, ok := logLevels[strings.ToLower(strings.TrimSpace(lvl))]; ok {
		zerolog.SetGlobalLevel(l)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

var truthy = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"y":    true,
	"on":   true,
}

// IsTruthy reports whether an env toggle such as LOG_CALLER is switched
// on. It accepts 1, true, yes, y and on in any case; anything else,
// including the empty string, reads as off.
func IsTruthy(v string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(v))]
}

// FirstNonEmpty returns the first candidate with non-whitespace content,
// preserving its original spacing. When every candidate is blank it
// returns the empty string.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
