// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/hivemind-chain/marketchain/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrDecodeOne     = fault.DecodeError("decode one")
	ErrDuplicateOne  = fault.DuplicateError("duplicate one")
	ErrConstraintOne = fault.ConstraintError("constraint one")
	ErrPriceOne      = fault.PriceError("price one")
	ErrCorruptOne    = fault.CorruptionError("corrupt one")
	ErrCancelledOne  = fault.CancelledError("cancelled one")
)

// test that each error class is classified correctly and no other
// classifier matches it
func TestErrorClasses(t *testing.T) {
	classifiers := map[string]func(error) bool{
		"exists":     fault.IsErrExists,
		"invalid":    fault.IsErrInvalid,
		"notfound":   fault.IsErrNotFound,
		"process":    fault.IsErrProcess,
		"decode":     fault.IsErrDecode,
		"duplicate":  fault.IsErrDuplicate,
		"constraint": fault.IsErrConstraint,
		"price":      fault.IsErrPrice,
		"corruption": fault.IsErrCorruption,
		"cancelled":  fault.IsErrCancelled,
	}

	cases := []struct {
		name string
		err  error
	}{
		{"exists", ErrExistsOne},
		{"invalid", ErrInvalidOne},
		{"notfound", ErrNotFoundOne},
		{"process", ErrProcessOne},
		{"decode", ErrDecodeOne},
		{"duplicate", ErrDuplicateOne},
		{"constraint", ErrConstraintOne},
		{"price", ErrPriceOne},
		{"corruption", ErrCorruptOne},
		{"cancelled", ErrCancelledOne},
	}

	for _, c := range cases {
		for name, classify := range classifiers {
			want := name == c.name
			if got := classify(c.err); got != want {
				t.Errorf("error %q: classifier %s returned %v, want %v", c.name, name, got, want)
			}
		}
	}
}

func TestErrorMessage(t *testing.T) {
	if ErrDecodeOne.Error() != "decode one" {
		t.Errorf("unexpected message: %s", ErrDecodeOne.Error())
	}
	if fault.ErrDuplicateRecord.Error() != "duplicate record" {
		t.Errorf("unexpected message: %s", fault.ErrDuplicateRecord.Error())
	}
}

func TestCommonErrorsClassifyCorrectly(t *testing.T) {
	if !fault.IsErrNotFound(fault.ErrBranchNotFound) {
		t.Error("ErrBranchNotFound should classify as NotFound")
	}
	if !fault.IsErrConstraint(fault.ErrTauMisaligned) {
		t.Error("ErrTauMisaligned should classify as Constraint")
	}
	if !fault.IsErrPrice(fault.ErrPriceBelowQuote) {
		t.Error("ErrPriceBelowQuote should classify as Price")
	}
	if !fault.IsErrCorruption(fault.ErrStoreCorruption) {
		t.Error("ErrStoreCorruption should classify as Corruption")
	}
}
