// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainio declares the contracts the core consumes from the
// surrounding node (spec.md §1): an opaque-script transaction builder,
// a compressed-secp256k1 signer, and the current chain-tip height. No
// implementation lives here; the surrounding node's P2P, mempool, and
// wallet layers satisfy these interfaces.
package chainio

import (
	"github.com/btcsuite/btcd/btcec"

	"github.com/hivemind-chain/marketchain/market"
)

// TxBroadcaster embeds an opaque script payload (the Codec's output) in
// a transaction output and broadcasts it, returning the transaction's
// content id.
type TxBroadcaster interface {
	Broadcast(script []byte) (txId market.Hash, err error)
}

// Signer signs over a compressed secp256k1 key, matching spec.md §1's
// "signing interface over compressed-secp256k1 keys".
type Signer interface {
	PublicKey() *btcec.PublicKey
	Sign(digest market.Hash) (*btcec.Signature, error)
}

// TipHeight reports the surrounding node's current chain-tip height;
// ops stamps each new record with it, and the Object lifecycle
// validator rejects an Outcome whose height is above it.
type TipHeight interface {
	Height() uint32
}
