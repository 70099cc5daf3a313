// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

// NewTerminalHandlerWithLevel returns a handler for interactive use, with
// aligned level names and optional colors. Records below lvl are dropped; lvl
// may be changed while the handler is in use.
//
//	INFO [05-16|20:58:45.123] stake applied    amount=1,234,567
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) slog.Handler {
	return &levelHandler{gethlog.NewTerminalHandler(wr, useColor), lvl}
}

// JSONHandler writes one JSON object per record at any level.
func JSONHandler(wr io.Writer) slog.Handler {
	return gethlog.JSONHandler(wr)
}

func JSONHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &levelHandler{gethlog.JSONHandler(wr), lvl}
}

// LogfmtHandler writes key=value records at any level.
func LogfmtHandler(wr io.Writer) slog.Handler {
	return gethlog.LogfmtHandler(wr)
}

func DiscardHandler() slog.Handler {
	return gethlog.DiscardHandler()
}

// levelHandler gates an inner handler on a level read at every record.
type levelHandler struct {
	inner slog.Handler
	lvl   slog.Leveler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.lvl.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < h.lvl.Level() {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.inner.WithAttrs(attrs), h.lvl}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.inner.WithGroup(name), h.lvl}
}

// ParseLevel parses a level name as accepted by the admin log-level endpoint.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "crit":
		return LevelCrit, nil
	}
	return 0, errors.Errorf("unknown level %q", s)
}
