// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gona

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// PublicKeyLength length of a staker identity in bytes.
const PublicKeyLength = ed25519.PublicKeySize

// PublicKey is an ed25519 public key identifying a staker position.
type PublicKey [PublicKeyLength]byte

var (
	_ json.Marshaler   = (*PublicKey)(nil)
	_ json.Unmarshaler = (*PublicKey)(nil)
)

// String implements stringer.
func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// AbbrevString returns abbrev string presentation.
func (k PublicKey) AbbrevString() string {
	return fmt.Sprintf("%x…%x", k[:4], k[28:])
}

// Bytes returns byte slice form of the key.
func (k PublicKey) Bytes() []byte {
	return k[:]
}

// Ed25519 returns the key in crypto/ed25519 form.
func (k PublicKey) Ed25519() ed25519.PublicKey {
	return ed25519.PublicKey(k[:])
}

// MarshalJSON implements json.Marshaler.
func (k *PublicKey) MarshalJSON() ([]byte, error) {
	if k == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePublicKey parses a hex encoded key, with or without 0x prefix.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	if err := decodeFixedHex(s, k[:]); err != nil {
		return PublicKey{}, err
	}
	return k, nil
}

// MustParsePublicKey parses a hex encoded key, panic on error.
func MustParsePublicKey(s string) PublicKey {
	k, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// PublicKeyFromEd25519 converts a crypto/ed25519 key.
func PublicKeyFromEd25519(pub ed25519.PublicKey) (PublicKey, error) {
	if len(pub) != PublicKeyLength {
		return PublicKey{}, errors.New("invalid ed25519 public key length")
	}
	var k PublicKey
	copy(k[:], pub)
	return k, nil
}
