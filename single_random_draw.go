package coinselect

// Shuffler is the RNG contract SelectCoinsSRD needs: anything able to
// permute n elements via a swap callback. *math/rand.Rand satisfies
// this; tests inject a deterministic step implementation instead.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// SelectCoinsSRD shuffles a copy of the pool and linearly accumulates
// effective value until target+ChangeLower is reached, so the
// resulting change output is never needlessly small. Returns
// (Result{}, false) if target is zero, exceeds MaxMoney, or the whole
// pool is consumed without reaching the threshold.
func SelectCoinsSRD(target Amount, feeRate FeeRate, pool []WeightedUtxo, rng Shuffler) (Result, bool) {
	if target == 0 || target > MaxMoney {
		return Result{}, false
	}
	threshold, ok := target.CheckedAdd(ChangeLower)
	if !ok {
		return Result{}, false
	}

	shuffled := make([]WeightedUtxo, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var (
		selected   []WeightedUtxo
		value      Amount
		iterations int
	)
	for _, u := range shuffled {
		iterations++

		ev, ok := effectiveValueOf(u, feeRate)
		if !ok || !ev.IsPositive() {
			continue
		}
		amt, _ := ev.ToUnsigned()

		value, ok = value.CheckedAdd(amt)
		if !ok {
			return Result{}, false
		}
		selected = append(selected, u)

		if value >= threshold {
			return Result{Iterations: iterations, Inputs: selected}, true
		}
	}

	return Result{}, false
}
