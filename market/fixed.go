// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "math"

// FixedScale is the number of fixed-point sats per coin (10^8).
const FixedScale = 100000000

// ToFixed converts a float64 coin-denominated value to its 64-bit
// fixed-point sats representation using explicit half-up rounding (never
// Go's round-to-even), per spec.md §4.4's determinism requirement.
func ToFixed(v float64) int64 {
	scaled := v * FixedScale
	if scaled >= 0 {
		return int64(math.Floor(scaled + 0.5))
	}
	return -int64(math.Floor(-scaled + 0.5))
}

// ToFixedSlice converts a slice of float64 coin values to fixed-point.
func ToFixedSlice(vs []float64) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = ToFixed(v)
	}
	return out
}

// FromFixed converts a 64-bit fixed-point sats value back to float64.
func FromFixed(v int64) float64 {
	return float64(v) / FixedScale
}

// FromFixedSlice converts a slice of fixed-point sats to float64.
func FromFixedSlice(vs []int64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = FromFixed(v)
	}
	return out
}
