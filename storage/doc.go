// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage maintains the on-disk market record store.
//
// A single LevelDB database is split into prefix-tagged pools. Each
// pool is defined by a single prefix byte taken from the `prefix`
// struct tag on the corresponding field of the pools struct in
// setup.go, so the keyspace stays one physical database while logical
// record families never collide.
//
// Notes:
// 1. each pool has a single byte prefix
// 2. ++       = concatenation of byte data
// 3. id       = 32 byte double-SHA-256 record identifier
// 4. height   = little-endian uint32 block height
// 5. value    = record_bytes ++ carrier_tx_id, for both primary and
//               secondary entries
//
// Primary (one per record variant):
//
//   B ++ id                        - Branch
//   D ++ id                        - Decision
//   M ++ id                        - Market
//   T ++ id                        - Trade
//   S ++ id                        - SealedVote
//   R ++ id                        - RevealVote
//   L ++ id                        - StealVote
//   O ++ id                        - Outcome
//
// Secondary (written alongside the primary write for the same record):
//
//   d ++ branch_id ++ decision_id            - decisions in a branch
//   m ++ decision_id ++ market_id            - markets listing a decision
//   t ++ market_id ++ trade_id               - trades against a market
//   o ++ branch_id ++ outcome_id             - outcomes for a branch
//   s ++ branch_id ++ height ++ vote_id       - sealed votes for a window
//   r ++ branch_id ++ height ++ vote_id       - reveal votes for a window
//   l ++ branch_id ++ height ++ vote_id       - steal votes for a window
package storage
