// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
	assert.Equal(t, LevelTrace, FromLegacyLevel(42))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(out, lvl, false))

	l.Debug("hidden")
	assert.Empty(t, out.String())

	l.Info("stake applied", "amount", uint64(1234567), "reward", uint256.NewInt(5))
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO ["))
	assert.Contains(t, line, "stake applied")
	assert.Contains(t, line, "amount=1,234,567")
	assert.Contains(t, line, "reward=5")
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out)).With("pkg", "staker")
	l.Warn("pool low", "volume", 10)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "staker", rec["pkg"])
	assert.Equal(t, "pool low", rec["msg"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")

	out := new(bytes.Buffer)
	SetDefault(NewLogger(LogfmtHandler(out)))
	pkgLogger.Info("hello")

	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "msg=hello")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelChangesAtRuntime(t *testing.T) {
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)

	for _, tt := range []struct {
		name    string
		handler func(*bytes.Buffer) slog.Handler
	}{
		{"terminal", func(out *bytes.Buffer) slog.Handler { return NewTerminalHandlerWithLevel(out, &lvl, false) }},
		{"json", func(out *bytes.Buffer) slog.Handler { return JSONHandlerWithLevel(out, &lvl) }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			lvl.Set(slog.LevelInfo)
			out := new(bytes.Buffer)
			l := NewLogger(tt.handler(out)).With("pkg", "staker")

			l.Debug("before")
			assert.Empty(t, out.String())

			lvl.Set(slog.LevelDebug)
			l.Debug("after")
			assert.Contains(t, out.String(), "after")

			out.Reset()
			lvl.Set(slog.LevelError)
			l.Warn("muted")
			assert.Empty(t, out.String())
		})
	}
}
