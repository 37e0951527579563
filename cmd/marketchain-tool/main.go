// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// marketchain-tool is an offline calculator: it prices an incremental
// LMSR trade or runs the outcome engine over a JSON ballot file,
// without touching the Store or the chain. Useful for clients quoting
// a trade before broadcasting it, and for replaying a vote outcome by
// hand.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"

	"github.com/hivemind-chain/marketchain/lmsr"
	"github.com/hivemind-chain/marketchain/outcome"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "b", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'b'},
		{Long: "max-commission", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "states", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
		{Long: "state", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "delta", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "sell", HasArg: getoptions.NO_ARGUMENT, Short: 'S'},
		{Long: "alpha", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'a'},
		{Long: "tol", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 't'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: option parse error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		exitwithstatus.Message("usage: %s quote [--b=N --max-commission=N --states=N --state=N --delta=N [--sell]] q0,q1,...\n"+
			"       %s outcome [--alpha=N --tol=N] ballots.json", program, program)
	}

	switch arguments[0] {
	case "quote":
		runQuote(program, options, arguments[1:])
	case "outcome":
		runOutcome(program, options, arguments[1:])
	default:
		exitwithstatus.Message("%s: unknown command: %s", program, arguments[0])
	}
}

func runQuote(program string, options getoptions.OptionsMap, arguments []string) {
	if 1 != len(arguments) {
		exitwithstatus.Message("%s: quote requires a comma-separated share vector argument", program)
	}

	q, err := parseFloats(arguments[0])
	if nil != err {
		exitwithstatus.Message("%s: invalid share vector: %s", program, err)
	}

	b := floatOption(options, "b", 1.0)
	maxCommission := floatOption(options, "max-commission", 0.0)
	nStates := uint32(len(q))
	if len(options["states"]) > 0 {
		n, err := strconv.Atoi(options["states"][0])
		if nil != err {
			exitwithstatus.Message("%s: invalid --states: %s", program, err)
		}
		nStates = uint32(n)
	}
	state := uint32(intOption(options, "state", 0))
	delta := floatOption(options, "delta", 1.0)
	isBuy := 0 == len(options["sell"])

	quote := lmsr.PriceTrade(maxCommission, b, nStates, q, state, delta, isBuy)
	out, _ := json.MarshalIndent(quote, "", "  ")
	fmt.Println(string(out))
}

func runOutcome(program string, options getoptions.OptionsMap, arguments []string) {
	if 1 != len(arguments) {
		exitwithstatus.Message("%s: outcome requires a ballots.json path", program)
	}

	data, err := ioutil.ReadFile(arguments[0])
	if nil != err {
		exitwithstatus.Message("%s: read %q failed: %s", program, arguments[0], err)
	}

	var input ballotFile
	if err := json.Unmarshal(data, &input); nil != err {
		exitwithstatus.Message("%s: parse %q failed: %s", program, arguments[0], err)
	}

	ballots := make([]outcome.Ballot, len(input.Votes))
	for i, row := range input.Votes {
		var voterId outcome.Hash
		if i < len(input.VoterIds) {
			copy(voterId[:], input.VoterIds[i])
		}
		ballots[i] = outcome.Ballot{VoterId: voterId, OldRep: input.OldRep[i], Votes: row}
	}

	params := outcome.Params{
		Alpha: floatOption(options, "alpha", 0.1),
		Tol:   floatOption(options, "tol", 0.02),
	}

	result := outcome.Process(ballots, input.IsScaled, input.Min, input.Max, params)
	out, _ := json.MarshalIndent(result.Fixed(), "", "  ")
	fmt.Println(string(out))
}

type ballotFile struct {
	VoterIds []string    `json:"voter_ids"`
	OldRep   []float64   `json:"old_rep"`
	Votes    [][]float64 `json:"votes"`
	IsScaled []bool      `json:"is_scaled"`
	Min      []float64   `json:"min"`
	Max      []float64   `json:"max"`
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if nil != err {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func floatOption(options getoptions.OptionsMap, name string, fallback float64) float64 {
	if len(options[name]) > 0 {
		v, err := strconv.ParseFloat(options[name][0], 64)
		if nil == err {
			return v
		}
	}
	return fallback
}

func intOption(options getoptions.OptionsMap, name string, fallback int) int {
	if len(options[name]) > 0 {
		v, err := strconv.Atoi(options[name][0])
		if nil == err {
			return v
		}
	}
	return fallback
}
