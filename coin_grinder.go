package coinselect

import "sort"

// cgCandidate is one entry of the Coin-Grinder working projection.
type cgCandidate struct {
	effectiveValue Amount
	weight         Weight
	utxo           WeightedUtxo
}

// SelectCoinsCG performs a depth-first search that minimizes total
// spending weight subject to a hard ceiling, returning a subset whose
// effective-value sum meets target+changeTarget. Unlike SelectCoinsBnB
// this always produces change, so changeTarget should budget for the
// change output.
//
// The search tracks two control flags as it walks the tree:
//   - cut: the current branch cannot possibly improve on the best
//     weight found so far (or cannot reach the target at all), so its
//     entire subtree is abandoned.
//   - shift: the current leaf is a valid (possibly improved) solution,
//     or weight can still be reduced further right; move to the next
//     sibling instead of descending.
//
// Returns (Result{}, false) when target is zero, available value can't
// reach target+changeTarget, or the iteration limit is hit with no
// recorded best.
func SelectCoinsCG(target, changeTarget Amount, maxSelectionWeight Weight, feeRate FeeRate, pool []WeightedUtxo) (Result, bool) {
	if target == 0 {
		return Result{}, false
	}

	candidates := calcEffectiveValuesCG(pool, feeRate)

	var available Amount
	for _, c := range candidates {
		var ok bool
		available, ok = available.CheckedAdd(c.effectiveValue)
		if !ok {
			return Result{}, false
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].effectiveValue != candidates[j].effectiveValue {
			return candidates[i].effectiveValue > candidates[j].effectiveValue
		}
		return candidates[i].weight > candidates[j].weight
	})

	lookahead := buildLookahead(candidates, available)
	minTailWeight := buildMinTailWeight(candidates)

	totalTarget, ok := target.CheckedAdd(changeTarget)
	if !ok {
		return Result{}, false
	}
	if available < totalTarget {
		return Result{}, false
	}

	var (
		selection, bestSelection []int
		amountTotal, bestAmount  Amount
		weightTotal              Weight
		bestWeight               = maxSelectionWeight
		nextIdx                  = 0
		iterations               = 0
	)
	bestAmount = ^Amount(0) // Amount max

	for {
		var shift, cut bool

		c := candidates[nextIdx]
		amountTotal += c.effectiveValue
		weightTotal += c.weight
		selection = append(selection, nextIdx)
		nextIdx++
		iterations++

		tail := selection[len(selection)-1]
		switch {
		case amountTotal+lookahead[tail] < totalTarget:
			cut = true
		case weightTotal > bestWeight:
			if candidates[tail].weight <= minTailWeight[tail] {
				cut = true
			} else {
				shift = true
			}
		case amountTotal >= totalTarget:
			shift = true
			if weightTotal < bestWeight || (weightTotal == bestWeight && amountTotal < bestAmount) {
				bestSelection = append([]int(nil), selection...)
				bestWeight = weightTotal
				bestAmount = amountTotal
			}
		}

		if iterations >= IterationLimit {
			return cgResult(iterations, bestSelection, candidates)
		}

		if nextIdx == len(candidates) {
			cut = true
		}

		if cut {
			last := selection[len(selection)-1]
			amountTotal -= candidates[last].effectiveValue
			weightTotal -= candidates[last].weight
			selection = selection[:len(selection)-1]
			shift = true
		}

		if shift {
			if len(selection) == 0 {
				return cgResult(iterations, bestSelection, candidates)
			}
			last := selection[len(selection)-1]
			nextIdx = last + 1
			amountTotal -= candidates[last].effectiveValue
			weightTotal -= candidates[last].weight
			selection = selection[:len(selection)-1]
		}
	}
}

func calcEffectiveValuesCG(pool []WeightedUtxo, feeRate FeeRate) []cgCandidate {
	candidates := make([]cgCandidate, 0, len(pool))
	for _, u := range pool {
		ev, ok := effectiveValueOf(u, feeRate)
		if !ok || !ev.IsPositive() {
			continue
		}
		amt, _ := ev.ToUnsigned()
		candidates = append(candidates, cgCandidate{effectiveValue: amt, weight: u.Weight(), utxo: u})
	}
	return candidates
}

// buildLookahead returns, for each index i, the sum of effective
// values strictly after i -- an upper bound on what a completion past
// i could still add.
func buildLookahead(candidates []cgCandidate, available Amount) []Amount {
	out := make([]Amount, len(candidates))
	state := available
	for i, c := range candidates {
		state -= c.effectiveValue
		out[i] = state
	}
	return out
}

// buildMinTailWeight returns, for each index i, the minimum weight
// among candidates strictly after i (sentinel: weight max at the last index).
func buildMinTailWeight(candidates []cgCandidate) []Weight {
	n := len(candidates)
	out := make([]Weight, n)
	prev := ^Weight(0)
	for i := n - 1; i >= 0; i-- {
		out[i] = prev
		if candidates[i].weight < prev {
			prev = candidates[i].weight
		}
	}
	return out
}

func cgResult(iterations int, selection []int, candidates []cgCandidate) (Result, bool) {
	if len(selection) == 0 {
		return Result{}, false
	}
	inputs := make([]WeightedUtxo, len(selection))
	for i, idx := range selection {
		inputs[i] = candidates[idx].utxo
	}
	return Result{Iterations: iterations, Inputs: inputs}, true
}
