// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const stmtCacheSize = 256

// stmtCache keeps prepared filter queries. Filters are built from user
// criteria, so the set of distinct queries is bounded by evicting the
// least recently used statement.
type stmtCache struct {
	db    *sql.DB
	mu    sync.Mutex
	cache *lru.Cache
}

func newStmtCache(db *sql.DB) *stmtCache {
	cache, _ := lru.NewWithEvict(stmtCacheSize, func(_, value any) {
		// waits for rows still open on the statement
		_ = value.(*sql.Stmt).Close()
	})
	return &stmtCache{db: db, cache: cache}
}

func (sc *stmtCache) Prepare(query string) (*sql.Stmt, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if cached, ok := sc.cache.Get(query); ok {
		return cached.(*sql.Stmt), nil
	}
	stmt, err := sc.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	sc.cache.Add(query, stmt)
	return stmt, nil
}

func (sc *stmtCache) Len() int {
	return sc.cache.Len()
}

// Clear closes every cached statement.
func (sc *stmtCache) Clear() {
	sc.cache.Purge()
}
