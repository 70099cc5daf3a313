// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/gona-network/gonastake/kv"
)

const storageBucket = kv.Bucket("s")

// Stater is the state creator. It shares the committed-read cache between the
// states it creates.
type Stater struct {
	store kv.Store
	cache *lru.Cache
}

// NewStater create a new stater. A non-positive cacheSize disables the cache.
func NewStater(store kv.Store, cacheSize int) *Stater {
	var cache *lru.Cache
	if cacheSize > 0 {
		cache, _ = lru.New(cacheSize)
	}
	return &Stater{
		store: storageBucket.NewStore(store),
		cache: cache,
	}
}

// NewState create a new state object over the latest committed data.
func (s *Stater) NewState() *State {
	return newState(s.store, s.cache)
}
