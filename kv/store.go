// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value surface the staking state is persisted on.
package kv

type (
	// Getter reads keys. A missing key is reported as an error recognized by IsNotFound.
	Getter interface {
		Get(key []byte) ([]byte, error)
		Has(key []byte) (bool, error)
		IsNotFound(err error) bool
	}

	Putter interface {
		Put(key, val []byte) error
		Delete(key []byte) error
	}

	GetPutter interface {
		Getter
		Putter
	}

	// Snapshot is a frozen read view. It must be released.
	Snapshot interface {
		Getter
		Release()
	}

	// Bulk buffers writes until Write. With auto flush enabled it may write
	// early and loses atomicity.
	Bulk interface {
		Putter
		Len() int
		EnableAutoFlush()
		Write() error
	}

	// Iterator walks a Range in key order.
	Iterator interface {
		First() bool
		Last() bool
		Next() bool
		Prev() bool
		Key() []byte
		Value() []byte
		Release()
		Error() error
	}

	// Store is what a stage commits to.
	Store interface {
		GetPutter
		Snapshot() Snapshot
		Bulk() Bulk
		Iterate(r Range) Iterator
	}
)

// Range selects keys in [Start, Limit). A nil bound is open.
type Range struct {
	Start []byte
	Limit []byte
}

// Has is Get reduced to presence, with not-found mapped to false.
func Has(g Getter, key []byte) (bool, error) {
	if _, err := g.Get(key); err != nil {
		if g.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
