// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs to a slog.Handler.
type Logger = gethlog.Logger

// Verbosity numbers accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// NewLogger returns a logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return gethlog.NewLogger(h)
}

// FromLegacyLevel converts a verbosity number to a slog level. Out of range
// values are clamped to the nearest end.
func FromLegacyLevel(lvl int) slog.Level {
	return gethlog.FromLegacyLevel(lvl)
}

// LevelString returns the lower case name of l.
func LevelString(l slog.Level) string {
	return gethlog.LevelString(l)
}
