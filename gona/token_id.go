// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gona

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// TokenID is the opaque identifier of a token. The unit value (empty) denotes the
// native staking token.
type TokenID []byte

var (
	_ json.Marshaler   = TokenID(nil)
	_ json.Unmarshaler = (*TokenID)(nil)
)

// IsUnit returns whether the id is the unit (empty) token id.
func (id TokenID) IsUnit() bool {
	return len(id) == 0
}

// Equal reports whether two ids are byte-equal.
func (id TokenID) Equal(other TokenID) bool {
	return bytes.Equal(id, other)
}

// String implements stringer.
func (id TokenID) String() string {
	if id.IsUnit() {
		return "unit"
	}
	return "0x" + hex.EncodeToString(id)
}

// MarshalJSON implements json.Marshaler.
func (id TokenID) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(id))
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *TokenID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if len(str) >= 2 && (str[:2] == "0x" || str[:2] == "0X") {
		str = str[2:]
	}
	b, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		b = nil
	}
	*id = b
	return nil
}
