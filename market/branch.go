// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// Branch is a self-contained prediction-market universe with its own
// voting cadence and parameters. Immutable once committed.
type Branch struct {
	Envelope
	Name               string `json:"name"`
	Description        string `json:"description"`
	BaseListingFee     int64  `json:"baseListingFee"`     // sats
	FreeDecisions      uint64 `json:"freeDecisions"`
	TargetDecisions    uint64 `json:"targetDecisions"`
	MaxDecisions       uint64 `json:"maxDecisions"`
	MinTradingFee       int64  `json:"minTradingFee"`      // sats
	Tau                uint32 `json:"tau"`                // blocks per voting period
	BallotTime         uint32 `json:"ballotTime"`         // blocks
	UnsealTime         uint32 `json:"unsealTime"`         // blocks
	ConsensusThreshold int64  `json:"consensusThreshold"` // fixed-point fraction, 1e8 = 1.0
	Alpha              int64  `json:"alpha"`              // fixed-point, smoothing factor
	Tol                int64  `json:"tol"`                // fixed-point, decision tolerance
}

func (b *Branch) Tag() TagType { return BranchTag }

func (b *Branch) Pack() Packed {
	buf := []byte{byte(BranchTag)}
	buf = appendUint32(buf, b.Height)
	buf = appendString(buf, b.Name)
	buf = appendString(buf, b.Description)
	buf = appendInt64(buf, b.BaseListingFee)
	buf = appendUint64(buf, b.FreeDecisions)
	buf = appendUint64(buf, b.TargetDecisions)
	buf = appendUint64(buf, b.MaxDecisions)
	buf = appendInt64(buf, b.MinTradingFee)
	buf = appendUint32(buf, b.Tau)
	buf = appendUint32(buf, b.BallotTime)
	buf = appendUint32(buf, b.UnsealTime)
	buf = appendInt64(buf, b.ConsensusThreshold)
	buf = appendInt64(buf, b.Alpha)
	buf = appendInt64(buf, b.Tol)
	return buf
}

func (b *Branch) Hash() Hash { return NewHash(b.Pack()) }

func unpackBranch(body []byte) (*Branch, error) {
	b := &Branch{}
	var err error
	var n int
	cursor := 0

	if b.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if b.Name, n, err = readString(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if b.Description, n, err = readString(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if b.BaseListingFee, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.FreeDecisions, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.TargetDecisions, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.MaxDecisions, err = readUint64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.MinTradingFee, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.Tau, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if b.BallotTime, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if b.UnsealTime, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if b.ConsensusThreshold, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.Alpha, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if b.Tol, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}

	return b, nil
}

func (b *Branch) String() string {
	return fmt.Sprintf("Branch{name:%q tau:%d}", b.Name, b.Tau)
}
