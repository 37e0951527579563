// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// Decision is a question whose outcome will be voted on; binary or scaled
// to [Min,Max]. Immutable once committed.
type Decision struct {
	Envelope
	KeyId              Hash   `json:"keyId"`
	BranchId           Hash   `json:"branchId"`
	Prompt             string `json:"prompt"`
	EventOverBy        uint32 `json:"eventOverBy"` // block height
	IsScaled           bool   `json:"isScaled"`
	Min                int64  `json:"min"` // fixed-point, only meaningful when IsScaled
	Max                int64  `json:"max"` // fixed-point, only meaningful when IsScaled
	AnswerOptionality  bool   `json:"answerOptionality"`
}

func (d *Decision) Tag() TagType { return DecisionTag }

func (d *Decision) Pack() Packed {
	buf := []byte{byte(DecisionTag)}
	buf = appendUint32(buf, d.Height)
	buf = appendHash(buf, d.KeyId)
	buf = appendHash(buf, d.BranchId)
	buf = appendString(buf, d.Prompt)
	buf = appendUint32(buf, d.EventOverBy)
	buf = appendBool(buf, d.IsScaled)
	buf = appendInt64(buf, d.Min)
	buf = appendInt64(buf, d.Max)
	buf = appendBool(buf, d.AnswerOptionality)
	return buf
}

func (d *Decision) Hash() Hash { return NewHash(d.Pack()) }

func unpackDecision(body []byte) (*Decision, error) {
	d := &Decision{}
	var err error
	var n int
	cursor := 0

	if d.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if d.KeyId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if d.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if d.Prompt, n, err = readString(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if d.EventOverBy, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if d.IsScaled, err = readBool(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 1

	if d.Min, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if d.Max, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if d.AnswerOptionality, err = readBool(body[cursor:]); nil != err {
		return nil, err
	}

	return d, nil
}

func (d *Decision) String() string {
	return fmt.Sprintf("Decision{prompt:%q scaled:%v}", d.Prompt, d.IsScaled)
}
