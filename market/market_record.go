// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// Market is an LMSR combinatorial market over a set of decisions.
// Immutable once committed.
type Market struct {
	Envelope
	KeyId                Hash     `json:"keyId"`
	B                    int64    `json:"b"`            // liquidity, sats
	TradingFee           int64    `json:"tradingFee"`   // sats
	MaxCommission        int64    `json:"maxCommission"` // sats; 0 means not liquidity-sensitive
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags"`
	Maturation           uint32   `json:"maturation"` // block height
	BranchId             Hash     `json:"branchId"`
	DecisionIds          []Hash   `json:"decisionIds"`
	DecisionFunctionIds  []byte   `json:"decisionFunctionIds"` // one DecisionFunction per decision
	TxPoWHashId          Hash     `json:"txPoWHashId"`
	TxPoWDifficulty      uint64   `json:"txPoWDifficulty"`
}

func (m *Market) Tag() TagType { return MarketTag }

func (m *Market) Pack() Packed {
	buf := []byte{byte(MarketTag)}
	buf = appendUint32(buf, m.Height)
	buf = appendHash(buf, m.KeyId)
	buf = appendInt64(buf, m.B)
	buf = appendInt64(buf, m.TradingFee)
	buf = appendInt64(buf, m.MaxCommission)
	buf = appendString(buf, m.Title)
	buf = appendString(buf, m.Description)
	buf = appendCompactSize(buf, uint64(len(m.Tags)))
	for _, t := range m.Tags {
		buf = appendString(buf, t)
	}
	buf = appendUint32(buf, m.Maturation)
	buf = appendHash(buf, m.BranchId)
	buf = appendHashes(buf, m.DecisionIds)
	buf = appendByteList(buf, m.DecisionFunctionIds)
	buf = appendHash(buf, m.TxPoWHashId)
	buf = appendUint64(buf, m.TxPoWDifficulty)
	return buf
}

func (m *Market) Hash() Hash { return NewHash(m.Pack()) }

func unpackMarket(body []byte) (*Market, error) {
	m := &Market{}
	var err error
	var n int
	cursor := 0

	if m.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if m.KeyId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if m.B, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if m.TradingFee, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if m.MaxCommission, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if m.Title, n, err = readString(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if m.Description, n, err = readString(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	tagCount, n, err := readCompactSize(body[cursor:])
	if nil != err {
		return nil, err
	}
	cursor += n
	m.Tags = make([]string, tagCount)
	for i := range m.Tags {
		if m.Tags[i], n, err = readString(body[cursor:]); nil != err {
			return nil, err
		}
		cursor += n
	}

	if m.Maturation, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if m.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if m.DecisionIds, n, err = readHashes(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if m.DecisionFunctionIds, n, err = readByteList(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if m.TxPoWHashId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if m.TxPoWDifficulty, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}

	return m, nil
}

// NumDecisions returns the market's state-space dimension k; the LMSR
// engine derives nStates = 2^k from this.
func (m *Market) NumDecisions() int { return len(m.DecisionIds) }

func (m *Market) String() string {
	return fmt.Sprintf("Market{title:%q decisions:%d}", m.Title, len(m.DecisionIds))
}
