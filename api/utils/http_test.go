// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gona-network/gonastake/builtin/staker/reverts"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.WithMessage(reverts.ErrNotFound, "staker"), http.StatusNotFound},
		{"unauthorized", reverts.ErrUnauthorized, http.StatusForbidden},
		{"paused", reverts.ErrPaused, http.StatusBadRequest},
		{"external call", errors.WithMessagef(reverts.ErrExternalCall, "credit: %v", "boom"), http.StatusBadRequest},
		{"bad request", BadRequest(errors.New("body")), http.StatusBadRequest},
		{"forbidden", Forbidden(errors.New("limit")), http.StatusForbidden},
		{"custom", HTTPError(errors.New("gone"), http.StatusGone), http.StatusGone},
		{"infra", errors.Wrap(errors.New("disk"), "read"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestWrapHandlerFunc(t *testing.T) {
	ok := WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return WriteJSON(w, M{"ok": true})
	})
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	failed := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return errors.WithMessage(reverts.ErrNotFound, "staker abcd")
	})
	rec = httptest.NewRecorder()
	failed(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "staker abcd: stake not found", strings.TrimSpace(rec.Body.String()))

	empty := WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return HTTPError(nil, http.StatusNoContent)
	})
	rec = httptest.NewRecorder()
	empty(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)

	assert.Error(t, ParseJSON(strings.NewReader(`{"a":1,"b":2}`), &v))
}
