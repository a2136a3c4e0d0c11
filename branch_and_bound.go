package coinselect

import (
	"math"
	"sort"
)

// bnbCandidate is one entry of the BnB working projection: the
// candidate's effective value, its per-utxo waste increment, and the
// original UTXO reference.
type bnbCandidate struct {
	effectiveValue Amount
	waste          SignedAmount
	utxo           WeightedUtxo
}

// SelectCoinsBnB performs a deterministic depth-first branch-and-bound
// search for a changeless solution: a subset whose effective-value sum
// lies in [target, target+costOfChange], chosen to minimize waste.
//
// The search explores a binary tree, inclusion branch first:
//
//	    o
//	   / \
//	  I   E
//
// Given pool [4,3,2,1], target 5 and cost of change 2: include 4,
// include 3 -> sum 7, record a solution with excess 2; backtrack,
// exclude 3, include 2 -> sum 6, excess 1, new best; backtrack further,
// include 1 -> sum 5, excess 0 -- the search keeps going since a tie
// may still exist elsewhere, eventually finding [3,2] (also excess 0).
// A tie replaces the recorded best, so [3,2] is returned.
//
// Returns (Result{}, false) when: target is zero, the pool's available
// value can't reach target, target+costOfChange overflows, or the
// iteration limit is reached with no recorded best.
func SelectCoinsBnB(target, costOfChange Amount, feeRate, longTermFeeRate FeeRate, pool []WeightedUtxo) (Result, bool) {
	upperBound, ok := target.CheckedAdd(costOfChange)
	if !ok {
		return Result{}, false
	}

	candidates := prepareBnBCandidates(pool, feeRate, longTermFeeRate)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].effectiveValue > candidates[j].effectiveValue
	})

	var availableValue Amount
	for _, c := range candidates {
		var sumOK bool
		availableValue, sumOK = availableValue.CheckedAdd(c.effectiveValue)
		if !sumOK {
			return Result{}, false
		}
	}

	if target == 0 || availableValue < target {
		return Result{}, false
	}

	var (
		iteration      = 0
		index          = 0
		value          Amount
		currentWaste   SignedAmount
		bestWaste      = SignedAmount(math.MaxInt64) // no solution beats this until one is found
		indexSelection []int
		bestSelection  []int
	)

	for iteration < IterationLimit {
		backtrack := false

		switch {
		case availableValue+value < target:
			// Infeasible tail: even taking every remaining candidate can't reach target.
			backtrack = true
		case value > upperBound:
			// Over the changeless window; this branch overshoots.
			backtrack = true
		case currentWaste > bestWaste && feeRate > longTermFeeRate:
			// Waste is monotone non-decreasing only when fees exceed the
			// long-term rate; the guard keeps this bound sound.
			backtrack = true
		case value >= target:
			backtrack = true

			v, ok := value.ToSigned()
			if !ok {
				return Result{}, false
			}
			t, ok := target.ToSigned()
			if !ok {
				return Result{}, false
			}
			excess, ok := v.CheckedSub(t)
			if !ok {
				return Result{}, false
			}
			tentative, ok := currentWaste.CheckedAdd(excess)
			if !ok {
				return Result{}, false
			}
			if tentative <= bestWaste {
				bestSelection = append([]int(nil), indexSelection...)
				bestWaste = tentative
			}
		}

		if backtrack {
			if len(indexSelection) == 0 {
				return bnbResult(iteration, bestSelection, candidates)
			}

			last := indexSelection[len(indexSelection)-1]
			for {
				index--
				if index <= last {
					break
				}
				availableValue += candidates[index].effectiveValue
			}

			c := candidates[index]
			newWaste, ok := currentWaste.CheckedSub(c.waste)
			if !ok {
				return Result{}, false
			}
			currentWaste = newWaste
			newValue, ok := value.CheckedSub(c.effectiveValue)
			if !ok {
				return Result{}, false
			}
			value = newValue
			indexSelection = indexSelection[:len(indexSelection)-1]
		} else {
			c := candidates[index]
			// Fast unchecked subtraction: the full-pool sum was already
			// checked above, so any partial remainder fits.
			availableValue -= c.effectiveValue

			// Sibling-skip: if the previous candidate was excluded (not the
			// parent on the inclusion path) and has the same effective
			// value as this one, including it would re-explore an
			// equivalent subtree -- skip straight past it instead.
			include := len(indexSelection) == 0 ||
				index-1 == indexSelection[len(indexSelection)-1] ||
				candidates[index].effectiveValue != candidates[index-1].effectiveValue
			if include {
				indexSelection = append(indexSelection, index)
				newWaste, ok := currentWaste.CheckedAdd(c.waste)
				if !ok {
					return Result{}, false
				}
				currentWaste = newWaste
				// Fast unchecked addition for the same reason as above.
				value += c.effectiveValue
			}
		}

		index++
		iteration++
	}

	return bnbResult(iteration, bestSelection, candidates)
}

func prepareBnBCandidates(pool []WeightedUtxo, feeRate, longTermFeeRate FeeRate) []bnbCandidate {
	candidates := make([]bnbCandidate, 0, len(pool))
	for _, u := range pool {
		ev, evOK := effectiveValueOf(u, feeRate)
		waste, wasteOK := Waste(u, feeRate, longTermFeeRate)
		if !evOK || !wasteOK || !ev.IsPositive() {
			continue
		}
		amt, _ := ev.ToUnsigned()
		candidates = append(candidates, bnbCandidate{effectiveValue: amt, waste: waste, utxo: u})
	}
	return candidates
}

func bnbResult(iterations int, selection []int, candidates []bnbCandidate) (Result, bool) {
	if len(selection) == 0 {
		return Result{}, false
	}
	inputs := make([]WeightedUtxo, len(selection))
	for i, idx := range selection {
		inputs[i] = candidates[idx].utxo
	}
	return Result{Iterations: iterations, Inputs: inputs}, true
}
