// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ballot computes a branch's tau-aligned voting windows and
// selects the decisions whose event falls inside one (spec.md §4.6).
package ballot

import "github.com/hivemind-chain/marketchain/market"

// Window is a tau-aligned, inclusive voting period: [MinBlock, MaxBlock].
type Window struct {
	MinBlock uint32
	MaxBlock uint32
}

// ForHeight computes the window containing query height h for a branch
// whose voting cadence is tau blocks, following the retarget-window
// integer arithmetic idiom difficulty.Current's filter uses: no
// floating point, every boundary an exact block height.
func ForHeight(tau uint32, h uint32) Window {
	period := (h - 1) / tau
	minBlock := period*tau + 1
	return Window{MinBlock: minBlock, MaxBlock: minBlock + tau - 1}
}

// InWindow reports whether decision d's event_over_by falls inside w.
func InWindow(w Window, d *market.Decision) bool {
	return d.EventOverBy >= w.MinBlock && d.EventOverBy <= w.MaxBlock
}

// Select filters decisions to those whose event falls in the branch's
// window for height h.
func Select(tau uint32, h uint32, decisions []*market.Decision) (Window, []*market.Decision) {
	w := ForHeight(tau, h)
	out := make([]*market.Decision, 0, len(decisions))
	for _, d := range decisions {
		if InWindow(w, d) {
			out = append(out, d)
		}
	}
	return w, out
}
