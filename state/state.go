// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/kv"
	"github.com/gona-network/gonastake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr gona.Address
	key  gona.Bytes32
}

func (k storageKey) bytes() []byte {
	b := make([]byte, 0, gona.AddressLength+32)
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// State manages contract storage.
type State struct {
	store kv.Store
	cache *lru.Cache // committed values, may be nil
	sm    *stackedmap.StackedMap
}

func newState(store kv.Store, cache *lru.Cache) *State {
	s := &State{
		store: store,
		cache: cache,
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.committedGetter(key)
	})
	return s
}

// committedGetter implements stackedmap.MapGetter.
func (s *State) committedGetter(key any) (any, bool, error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}
	v, err := s.loadCommitted(k)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *State) loadCommitted(k storageKey) (rlp.RawValue, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(k); ok {
			metricStorageRead().AddWithLabel(1, map[string]string{"source": "cache"})
			return v.(rlp.RawValue), nil
		}
	}
	metricStorageRead().AddWithLabel(1, map[string]string{"source": "store"})

	data, err := s.store.Get(k.bytes())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, err
		}
		data = nil
	}
	v := rlp.RawValue(data)
	if s.cache != nil {
		s.cache.Add(k, v)
	}
	return v, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
// Absent value is returned as empty raw.
func (s *State) GetRawStorage(addr gona.Address, key gona.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw. Empty raw deletes the value.
func (s *State) SetRawStorage(addr gona.Address, key gona.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr gona.Address, key gona.Bytes32) (gona.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return gona.Bytes32{}, err
	}
	if len(raw) == 0 {
		return gona.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return gona.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return gona.Blake2b(raw), nil
	}
	return gona.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr gona.Address, key, value gona.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr gona.Address, key gona.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr gona.Address, key gona.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage makes a stage object to compute hash of the change set or commit all changes.
// Writes that leave a value equal to the committed one are dropped.
func (s *State) Stage() (*Stage, error) {
	latest := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		if _, ok := latest[key]; !ok {
			order = append(order, key)
		}
		latest[key] = v.(rlp.RawValue)
		return true
	})

	changes := make([]change, 0, len(order))
	for _, key := range order {
		committed, err := s.loadCommitted(key)
		if err != nil {
			return nil, &Error{err}
		}
		if bytes.Equal(committed, latest[key]) {
			continue
		}
		changes = append(changes, change{key, latest[key]})
	}
	return newStage(s.store, s.cache, changes), nil
}
