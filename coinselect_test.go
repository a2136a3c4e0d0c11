package coinselect

import "testing"

// buildFacadePool returns the fixed 10-UTXO pool used to exercise
// SelectCoins' BnB-then-SRD fallback, with effective value sum 262,643
// sat at a zero fee rate.
func buildFacadePool() []WeightedUtxo {
	amts := []float64{27_336, 238, 9_225, 20_540, 35_590, 49_463, 6_331, 35_548, 50_363, 28_009}
	pool := make([]WeightedUtxo, len(amts))
	for i, a := range amts {
		pool[i] = testUtxo{value: Amount(a), weight: 0}
	}
	return pool
}

func TestSelectCoins_NoSolution(t *testing.T) {
	pool := buildFacadePool()

	// BnB fails because the sum overage exceeds cost_of_change (0), and
	// SRD fails because the pool sum is below target+ChangeLower.
	_, ok := SelectCoins(Amount(255_432), 0, 0, 0, pool)
	if ok {
		t.Fatal("expected no solution")
	}
}

func TestSelectCoins_SRDSolution(t *testing.T) {
	pool := buildFacadePool()
	target, ok := Amount(255_432).CheckedSub(ChangeLower)
	if !ok {
		t.Fatal("unexpected underflow computing target")
	}

	inputs, ok := SelectCoins(target, 0, 0, 0, pool)
	if !ok {
		t.Fatal("expected a solution")
	}
	var sum Amount
	for _, u := range inputs {
		var sumOK bool
		sum, sumOK = sum.CheckedAdd(u.Value())
		if !sumOK {
			t.Fatal("unexpected overflow summing selection")
		}
	}
	if sum <= target {
		t.Fatalf("selection sum %d, want > target %d", sum, target)
	}
}

func TestSelectCoins_BnBSolution(t *testing.T) {
	pool := buildFacadePool()
	target := Amount(255_432)
	// Exactly the difference between the pool's effective-value sum and
	// target: the upper bound then equals the pool sum, so the whole pool
	// fits the window, forcing a BnB match instead of a fallback to SRD.
	costOfChange := Amount(7_211)

	inputs, ok := SelectCoins(target, costOfChange, 0, 0, pool)
	if !ok {
		t.Fatal("expected a solution")
	}
	var sum Amount
	for _, u := range inputs {
		var sumOK bool
		sum, sumOK = sum.CheckedAdd(u.Value())
		if !sumOK {
			t.Fatal("unexpected overflow summing selection")
		}
	}
	if sum <= target {
		t.Fatalf("selection sum %d, want > target %d", sum, target)
	}
	upperBound, ok := target.CheckedAdd(costOfChange)
	if !ok {
		t.Fatal("unexpected overflow computing upper bound")
	}
	if sum > upperBound {
		t.Fatalf("selection sum %d, want <= upper bound %d", sum, upperBound)
	}
}
