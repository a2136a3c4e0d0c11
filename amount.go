// Package coinselect implements Branch-and-Bound, Coin-Grinder and
// Single-Random-Draw UTXO coin selection over an abstract WeightedUtxo
// capability. Every exported search function is a pure computation: no
// I/O, no persisted state, no logging side effects. The only
// non-determinism is the RNG a caller hands to SelectCoinsSRD.
package coinselect

import (
	"math"
	"math/bits"

	"github.com/btcsuite/btcd/btcutil"
)

// Amount is an unsigned satoshi quantity. Zero value is zero satoshis.
type Amount uint64

// SignedAmount is a signed satoshi quantity, used for waste and excess
// values which may legitimately go negative (e.g. waste in a low-fee
// environment). Its String method formats through btcutil.Amount, so it
// prints in btcutil's "N.NNNNNNNN BTC" form.
type SignedAmount int64

// Weight is a count of weight units (wu); 4 wu = 1 virtual byte.
type Weight uint64

// FeeRate is expressed in satoshis per 1000 weight units.
type FeeRate uint64

// MaxMoney is Bitcoin's total monetary supply cap, in satoshis.
const MaxMoney Amount = 2_100_000_000_000_000

// ChangeLower is SRD's minimum acceptable surplus over target, so the
// change output it produces is never needlessly small.
const ChangeLower Amount = 50_000

// TxInBaseWeight is the base per-input weight every WeightedUtxo is
// expected to already include in Weight().
const TxInBaseWeight Weight = 160

// IterationLimit bounds the number of iterations of a BnB or
// Coin-Grinder search.
const IterationLimit = 100_000

// CheckedAdd returns a+b and true, or (0, false) on overflow.
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, false
	}
	return Amount(sum), true
}

// CheckedSub returns a-b and true, or (0, false) if the result would be negative.
func (a Amount) CheckedSub(b Amount) (Amount, bool) {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		return 0, false
	}
	return Amount(diff), true
}

// ToSigned converts to SignedAmount, failing if the value exceeds the
// signed 64-bit range.
func (a Amount) ToSigned() (SignedAmount, bool) {
	if a > math.MaxInt64 {
		return 0, false
	}
	return SignedAmount(a), true
}

func (a SignedAmount) String() string {
	return btcutil.Amount(a).String()
}

// IsPositive reports whether a is strictly greater than zero.
func (a SignedAmount) IsPositive() bool {
	return a > 0
}

// CheckedAdd returns a+b and true, or (0, false) on overflow.
func (a SignedAmount) CheckedAdd(b SignedAmount) (SignedAmount, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// CheckedSub returns a-b and true, or (0, false) on overflow.
func (a SignedAmount) CheckedSub(b SignedAmount) (SignedAmount, bool) {
	if b == math.MinInt64 {
		return 0, false
	}
	return a.CheckedAdd(-b)
}

// ToUnsigned converts to Amount, failing if negative.
func (a SignedAmount) ToUnsigned() (Amount, bool) {
	if a < 0 {
		return 0, false
	}
	return Amount(a), true
}

// NewFeeRateFromSatPerKwu builds a FeeRate from satoshis per 1000 weight units.
func NewFeeRateFromSatPerKwu(satPerKwu uint64) FeeRate {
	return FeeRate(satPerKwu)
}

// NewFeeRateFromSatPerVB builds a FeeRate from satoshis per virtual byte.
// 4 wu = 1 vB, so sat/vB * 1000/4 = sat/vB * 250 gives satoshis per 1000 wu.
func NewFeeRateFromSatPerVB(satPerVB uint64) FeeRate {
	return FeeRate(satPerVB * 250)
}

// Fee computes fee_rate * weight / 1000, checked for overflow in the
// 64x64-bit multiply. The division floors.
func (f FeeRate) Fee(w Weight) (Amount, bool) {
	hi, lo := bits.Mul64(uint64(f), uint64(w))
	if hi >= 1000 {
		return 0, false
	}
	q, _ := bits.Div64(hi, lo, 1000)
	return Amount(q), true
}
