// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/hivemind-chain/marketchain/fault"
)

// HashLength is the size in bytes of a record identifier.
const HashLength = 32

// Hash is a 32-byte content identifier: double-SHA-256 of a record's
// canonical encoding. Stored internally in the order SHA256 produces it;
// printed in the same big-endian order (no reversal, unlike a block hash).
type Hash [HashLength]byte

// NewHash computes the double-SHA-256 identifier of a canonical record
// encoding.
func NewHash(encoded []byte) Hash {
	first := sha256.Sum256(encoded)
	second := sha256.Sum256(first[:])
	return second
}

// String renders the hash as big-endian hex.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// GoString renders the hash for %#v.
func (h Hash) GoString() string {
	return "<Hash:" + hex.EncodeToString(h[:]) + ">"
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(HashLength))
	hex.Encode(buffer, h[:])
	return buffer, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(s []byte) error {
	if HashLength != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidCursor
	}
	_, err := hex.Decode(h[:], s)
	return err
}

// Scan supports fmt scanning of a hash from hex text.
func (h *Hash) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(HashLength) {
		return fault.ErrInvalidCursor
	}
	_, err = hex.Decode(h[:], token)
	return err
}

// IsZero reports whether h is the zero hash (unset).
func (h Hash) IsZero() bool {
	return h == Hash{}
}
