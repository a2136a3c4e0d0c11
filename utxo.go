package coinselect

// WeightedUtxo is the capability every coin-selection candidate must
// provide. Equality and ordering of the underlying UTXO are never
// required by the library -- only effective value and waste, derived
// below, are ever compared.
type WeightedUtxo interface {
	// Value is the UTXO's satoshi amount.
	Value() Amount
	// Weight is the serialized cost of spending this output,
	// including the base input weight (TxInBaseWeight).
	Weight() Weight
}

// EffectiveValue computes value - fee_rate*weight. The result may be
// negative in a high-fee environment; callers are expected to drop
// non-positive effective values before selection. Fails (false) if the
// fee calculation overflows or value does not fit a SignedAmount.
func EffectiveValue(feeRate FeeRate, weight Weight, value Amount) (SignedAmount, bool) {
	fee, ok := feeRate.Fee(weight)
	if !ok {
		return 0, false
	}
	feeSigned, ok := fee.ToSigned()
	if !ok {
		return 0, false
	}
	valueSigned, ok := value.ToSigned()
	if !ok {
		return 0, false
	}
	return valueSigned.CheckedSub(feeSigned)
}

// Waste computes (fee_rate - long_term_fee_rate) * weight: how much
// more (or less, if negative) it costs to spend this UTXO now versus
// at the long-term fee rate.
func Waste(u WeightedUtxo, feeRate, longTermFeeRate FeeRate) (SignedAmount, bool) {
	fee, ok := feeRate.Fee(u.Weight())
	if !ok {
		return 0, false
	}
	ltFee, ok := longTermFeeRate.Fee(u.Weight())
	if !ok {
		return 0, false
	}
	feeSigned, ok := fee.ToSigned()
	if !ok {
		return 0, false
	}
	ltFeeSigned, ok := ltFee.ToSigned()
	if !ok {
		return 0, false
	}
	return feeSigned.CheckedSub(ltFeeSigned)
}

func effectiveValueOf(u WeightedUtxo, feeRate FeeRate) (SignedAmount, bool) {
	return EffectiveValue(feeRate, u.Weight(), u.Value())
}
