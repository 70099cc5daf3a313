// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStmtCache(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	sc := newStmtCache(db)
	first, err := sc.Prepare("SELECT 1")
	require.NoError(t, err)
	again, err := sc.Prepare("SELECT 1")
	require.NoError(t, err)
	assert.Same(t, first, again)

	for i := range stmtCacheSize {
		_, err := sc.Prepare("SELECT " + strconv.Itoa(i+2))
		require.NoError(t, err)
	}
	assert.Equal(t, stmtCacheSize, sc.Len())

	// the oldest statement was evicted and closed
	var n int
	assert.Error(t, first.QueryRow().Scan(&n))

	_, err = sc.Prepare("SELECT")
	assert.Error(t, err)

	sc.Clear()
	assert.Zero(t, sc.Len())
}
