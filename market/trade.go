// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// Trade is a signed share-delta in one state of a market. Immutable and
// accumulates forever on a market.
type Trade struct {
	Envelope
	KeyId         Hash   `json:"keyId"`
	MarketId      Hash   `json:"marketId"`
	IsBuy         bool   `json:"isBuy"`
	NShares       int64  `json:"nShares"` // sats, always > 0; sign derives from IsBuy
	Price         int64  `json:"price"`   // sats, total declared price
	DecisionState uint64  `json:"decisionState"`
	Nonce         uint64 `json:"nonce"`
}

func (t *Trade) Tag() TagType { return TradeTag }

func (t *Trade) Pack() Packed {
	buf := []byte{byte(TradeTag)}
	buf = appendUint32(buf, t.Height)
	buf = appendHash(buf, t.KeyId)
	buf = appendHash(buf, t.MarketId)
	buf = appendBool(buf, t.IsBuy)
	buf = appendInt64(buf, t.NShares)
	buf = appendInt64(buf, t.Price)
	buf = appendUint64(buf, t.DecisionState)
	buf = appendUint64(buf, t.Nonce)
	return buf
}

func (t *Trade) Hash() Hash { return NewHash(t.Pack()) }

func unpackTrade(body []byte) (*Trade, error) {
	t := &Trade{}
	var err error
	cursor := 0

	if t.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if t.KeyId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if t.MarketId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if t.IsBuy, err = readBool(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 1

	if t.NShares, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if t.Price, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if t.DecisionState, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if t.Nonce, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}

	return t, nil
}

// SignedShares returns the trade's share delta: positive for a buy,
// negative for a sell, in coin-denominated float terms.
func (t *Trade) SignedShares() float64 {
	shares := float64(t.NShares) / 1e8
	if t.IsBuy {
		return shares
	}
	return -shares
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade{market:%s buy:%v shares:%d state:%d}", t.MarketId, t.IsBuy, t.NShares, t.DecisionState)
}
