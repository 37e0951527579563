// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainio_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/chainio"
	"github.com/hivemind-chain/marketchain/market"
)

// memSigner is a minimal chainio.Signer satisfied by an in-memory
// secp256k1 key, used only to confirm the interface is implementable
// the way a wallet-backed signer would be.
type memSigner struct {
	key *btcec.PrivateKey
}

func (s *memSigner) PublicKey() *btcec.PublicKey {
	return s.key.PubKey()
}

func (s *memSigner) Sign(digest market.Hash) (*btcec.Signature, error) {
	return s.key.Sign(digest[:])
}

func TestSignerRoundTrip(t *testing.T) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	assert.NoError(t, err)

	var signer chainio.Signer = &memSigner{key: key}

	digest := market.NewHash([]byte("trade payload"))
	sig, err := signer.Sign(digest)
	assert.NoError(t, err)
	assert.True(t, sig.Verify(digest[:], signer.PublicKey()))
}

type memBroadcaster struct{}

func (memBroadcaster) Broadcast(script []byte) (market.Hash, error) {
	return market.NewHash(script), nil
}

type fixedTip uint32

func (h fixedTip) Height() uint32 { return uint32(h) }

func TestInterfacesAreImplementable(t *testing.T) {
	var _ chainio.TxBroadcaster = memBroadcaster{}
	var _ chainio.TipHeight = fixedTip(42)
}
