// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"math"

	"github.com/hivemind-chain/marketchain/fault"
)

// DecisionFunction names the payout-time transform applied to a finalised
// scaled-decision value before it feeds the market's scoring dimension.
// Named X1/X2/X3/LNX1 after the original decisionfunctionid enumeration.
type DecisionFunction byte

const (
	X1   = DecisionFunction(1) // identity
	X2   = DecisionFunction(2) // square
	X3   = DecisionFunction(3) // cube
	LNX1 = DecisionFunction(4) // ln(x+1)-style monotone transform
)

// String names the function, matching decisionFunctionIDToString.
func (f DecisionFunction) String() string {
	switch f {
	case X1:
		return "X1"
	case X2:
		return "X2"
	case X3:
		return "X3"
	case LNX1:
		return "LNX1"
	default:
		return "unknown"
	}
}

// ParseDecisionFunction maps a function code string to its enum value,
// defaulting to X1 when code is empty (per spec.md §6's decision-spec
// default).
func ParseDecisionFunction(code string) (DecisionFunction, error) {
	switch code {
	case "", "X1":
		return X1, nil
	case "X2":
		return X2, nil
	case "X3":
		return X3, nil
	case "LNX1":
		return LNX1, nil
	default:
		return 0, fault.ErrInvalidDecisionFnID
	}
}

// ValidFunctionId reports whether b names one of {X1, X2, X3, LNX1}
// (spec.md §3's "every Market decision-function id is drawn from" set).
func ValidFunctionId(b byte) bool {
	switch DecisionFunction(b) {
	case X1, X2, X3, LNX1:
		return true
	default:
		return false
	}
}

// Apply transforms a raw finalised decision value under f.
func (f DecisionFunction) Apply(raw float64) float64 {
	switch f {
	case X1:
		return raw
	case X2:
		return raw * raw
	case X3:
		return raw * raw * raw
	case LNX1:
		return math.Log(raw + 1)
	default:
		return raw
	}
}
