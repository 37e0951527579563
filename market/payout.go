// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

// PayoutEntry is one payout-transaction output: a credit of Amount
// (fixed-point sats, may be negative for a reputation debit) to KeyId.
type PayoutEntry struct {
	KeyId  Hash  `json:"keyId"`
	Amount int64 `json:"amount"`
}

// PayoutLedger is the decoded form of an Outcome's PayoutTx: the three
// output classes spec.md §4.4 stage 10 names, in order — market
// settlement under decisions_final, votecoin reputation mint/transfer
// (smoothed_rep − old_rep), and author/row bonus payouts.
type PayoutLedger struct {
	Settlement []PayoutEntry
	Reputation []PayoutEntry
	Bonus      []PayoutEntry
}

// Pack encodes the ledger the same way a record body is encoded: three
// CompactSize-counted lists of (keyId, amount) pairs.
func (l *PayoutLedger) Pack() []byte {
	var buf []byte
	buf = appendPayoutEntries(buf, l.Settlement)
	buf = appendPayoutEntries(buf, l.Reputation)
	buf = appendPayoutEntries(buf, l.Bonus)
	return buf
}

func appendPayoutEntries(buf []byte, entries []PayoutEntry) []byte {
	buf = appendCompactSize(buf, uint64(len(entries)))
	for _, e := range entries {
		buf = appendHash(buf, e.KeyId)
		buf = appendInt64(buf, e.Amount)
	}
	return buf
}

// UnpackPayoutLedger decodes bytes produced by PayoutLedger.Pack, the
// form stored in Outcome.PayoutTx.
func UnpackPayoutLedger(body []byte) (*PayoutLedger, error) {
	l := &PayoutLedger{}
	cursor := 0
	for _, slot := range []*[]PayoutEntry{&l.Settlement, &l.Reputation, &l.Bonus} {
		entries, n, err := readPayoutEntries(body[cursor:])
		if nil != err {
			return nil, err
		}
		*slot = entries
		cursor += n
	}
	return l, nil
}

func readPayoutEntries(buffer []byte) ([]PayoutEntry, int, error) {
	count, n, err := readCompactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	cursor := n
	entries := make([]PayoutEntry, count)
	for i := range entries {
		h, err := readHash(buffer[cursor:])
		if nil != err {
			return nil, 0, err
		}
		cursor += HashLength

		amount, err := readInt64(buffer[cursor:])
		if nil != err {
			return nil, 0, err
		}
		cursor += 8

		entries[i] = PayoutEntry{KeyId: h, Amount: amount}
	}
	return entries, cursor, nil
}
