// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/kv"
)

// EmptyStageHash is the hash of a stage without changes.
var EmptyStageHash = gona.Blake2bFn(func(io.Writer) {})

type change struct {
	key storageKey
	val rlp.RawValue
}

// Stage abstracts the storage changes made by a state.
type Stage struct {
	store   kv.Store
	cache   *lru.Cache
	changes []change
}

func newStage(store kv.Store, cache *lru.Cache, changes []change) *Stage {
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key.bytes(), changes[j].key.bytes()) < 0
	})
	return &Stage{store: store, cache: cache, changes: changes}
}

// Len returns count of changed storage values.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of the change set.
func (s *Stage) Hash() gona.Bytes32 {
	return gona.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.key.bytes())
			// length prefixed, so that deletes can be told from empty values
			rlp.Encode(w, []byte(c.val))
		}
	})
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit() (gona.Bytes32, error) {
	if len(s.changes) == 0 {
		return EmptyStageHash, nil
	}
	bulk := s.store.Bulk()
	for _, c := range s.changes {
		var err error
		if len(c.val) == 0 {
			err = bulk.Delete(c.key.bytes())
		} else {
			err = bulk.Put(c.key.bytes(), c.val)
		}
		if err != nil {
			return gona.Bytes32{}, errors.Wrap(err, "stage commit")
		}
	}
	if err := bulk.Write(); err != nil {
		return gona.Bytes32{}, errors.Wrap(err, "stage commit")
	}
	if s.cache != nil {
		for _, c := range s.changes {
			s.cache.Add(c.key, c.val)
		}
	}
	metricStorageWrite().Add(int64(len(s.changes)))
	return s.Hash(), nil
}
