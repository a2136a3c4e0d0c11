package coinselect

import "math/rand"

// Result is the outcome of a successful search: the number of
// iterations the search performed, and the selected UTXOs in the
// order the search visited them. A miss is represented as
// (Result{}, false) throughout this package -- there is no error
// type; see SPEC_FULL.md for the rationale.
type Result struct {
	Iterations int
	Inputs     []WeightedUtxo
}

// SelectCoins tries SelectCoinsBnB first; if it finds no changeless
// match, it falls back to SelectCoinsSRD using an internal RNG. The
// overall result is (nil, false) only when both fail. Callers that
// need the iteration count or want to supply their own RNG should call
// SelectCoinsBnB/SelectCoinsSRD directly.
func SelectCoins(target, costOfChange Amount, feeRate, longTermFeeRate FeeRate, pool []WeightedUtxo) ([]WeightedUtxo, bool) {
	if res, ok := SelectCoinsBnB(target, costOfChange, feeRate, longTermFeeRate, pool); ok {
		return res.Inputs, true
	}

	res, ok := SelectCoinsSRD(target, feeRate, pool, rand.New(rand.NewSource(rand.Int63())))
	if !ok {
		return nil, false
	}
	return res.Inputs, true
}
