package search

import (
	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/types"
)

// costRatioExtraDigits is the working-precision headroom used for the
// per-edge cost ratio (§4.7 "ratios use +4").
const costRatioExtraDigits = 4

// DirectionalCapacities returns (spendCapacity, receiveCapacity) for e: the
// capacity range in the currency a taker spends (e.From) and the one they
// receive (e.To) — base/quote for BUY, quote/base for SELL (§4.2).
func DirectionalCapacities(e *graph.Edge) (spend, receive graph.Range) {
	if e.Side == types.SideBuy {
		return e.BaseCapacity, e.QuoteCapacity
	}
	return e.QuoteCapacity, e.BaseCapacity
}

// CostFactor computes c_e = spendCapacity.max / receiveCapacity.max and its
// reciprocal, both at canonical scale. feasible is false when either
// bound is zero (the edge cannot be used at all and must not be enqueued).
func CostFactor(e *graph.Edge) (factor, rateFactor decimal.Decimal, feasible bool, err error) {
	spend, receive := DirectionalCapacities(e)
	if receive.Max.Amount.IsZero() || spend.Max.Amount.IsZero() {
		return decimal.Decimal{}, decimal.Decimal{}, false, nil
	}
	factor, err = spend.Max.Amount.Div(receive.Max.Amount, decimal.CanonicalScale, costRatioExtraDigits)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, false, err
	}
	rateFactor, err = receive.Max.Amount.Div(spend.Max.Amount, decimal.CanonicalScale, costRatioExtraDigits)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, false, err
	}
	return factor, rateFactor, true, nil
}
