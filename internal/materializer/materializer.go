// Package materializer turns an abstract edge sequence discovered by the
// search loop into a concrete sequence of fills: how much is actually
// spent and received at each hop, fees included (§4.7). It depends only on
// graph/money/types/result/decimal — never on internal/search — so the
// search loop can call into it without an import cycle.
package materializer

import (
	"errors"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
	"github.com/mExOms/pathsearch/pkg/types"
)

// maxBuyRefinementSteps and maxSellRefinementSteps bound the iterative
// refinement loops below (§4.7).
const (
	maxBuyRefinementSteps  = 12
	maxSellRefinementSteps = 16
	sellRelativeTolerance  = "0.000001"
	refinementExtraDigits  = 6
)

// errInfeasible marks a leg that cannot be filled within its budget — the
// candidate is dropped silently, not reported as an error (§4.7, §6).
var errInfeasible = errors.New("materializer: leg infeasible within budget")

// Params is the input to Materialize: one edge sequence plus the spend
// window it must respect.
type Params struct {
	Path        []*graph.Edge
	SpendAmount money.Money
	MinSpend    money.Money
	MaxSpend    money.Money
	OrderKey    result.PathOrderKey
}

// Materialize resolves Params.Path into concrete per-leg fills. It returns
// (nil, nil) when the path is infeasible or falls outside the configured
// spend tolerance — a reportable-but-not-exceptional outcome the caller
// should simply drop. A non-nil error signals an arithmetic failure
// (typically *types.PrecisionViolation) that should be logged before the
// candidate is dropped.
func Materialize(p Params) (*result.PathResult, error) {
	if len(p.Path) == 0 {
		return nil, types.NewInvalidInput("materializer: empty path")
	}

	scale := p.SpendAmount.Scale()
	current := p.SpendAmount
	remainingGrossBudget := p.MaxSpend

	legs := make([]result.PathLeg, 0, len(p.Path))
	feeBreakdown := make(map[money.Currency]money.Money)

	var totalSpent money.Money

	for i, e := range p.Path {
		if current.Currency != e.From {
			return nil, nil
		}

		var ceiling money.Money
		if i == 0 {
			ceiling = remainingGrossBudget
		} else {
			ceiling = current
		}

		var outcome legOutcome
		var err error
		if e.Side == types.SideBuy {
			outcome, err = resolveBuyLeg(e, ceiling, scale)
		} else {
			outcome, err = resolveSellLeg(e, current, ceiling, scale)
		}
		if err != nil {
			if errors.Is(err, errInfeasible) {
				return nil, nil
			}
			return nil, err
		}

		legs = append(legs, result.PathLeg{
			From:     e.From,
			To:       e.To,
			Spent:    outcome.spent,
			Received: outcome.received,
			Fees:     outcome.fees,
		})
		for ccy, fee := range outcome.fees {
			acc, ok := feeBreakdown[ccy]
			if !ok {
				feeBreakdown[ccy] = fee
				continue
			}
			acc, err = acc.AddAt(fee, acc.Scale())
			if err != nil {
				return nil, err
			}
			feeBreakdown[ccy] = acc
		}

		if i == 0 {
			totalSpent = outcome.spent
		}
		if outcome.spent.Currency == remainingGrossBudget.Currency {
			reduced, err := remainingGrossBudget.SubAt(outcome.spent, remainingGrossBudget.Scale())
			if err != nil {
				return nil, err
			}
			if reduced.Amount.Sign() < 0 {
				reduced, err = money.Zero(reduced.Currency, reduced.Scale())
				if err != nil {
					return nil, err
				}
			}
			remainingGrossBudget = reduced
		}

		current = outcome.received
	}

	totalReceived := current

	if cmp, err := totalSpent.Cmp(p.MinSpend); err != nil {
		return nil, err
	} else if cmp < 0 {
		return nil, nil
	}
	if cmp, err := totalSpent.Cmp(p.MaxSpend); err != nil {
		return nil, err
	} else if cmp > 0 {
		return nil, nil
	}

	residual, err := residualTolerance(totalSpent, p.SpendAmount)
	if err != nil {
		return nil, err
	}

	return &result.PathResult{
		TotalSpent:        totalSpent,
		TotalReceived:     totalReceived,
		ResidualTolerance: residual,
		FeeBreakdown:      feeBreakdown,
		Legs:              legs,
		OrderKey:          p.OrderKey,
	}, nil
}

// residualTolerance is |totalSpent - desiredSpend| / desiredSpend (§4.6).
func residualTolerance(totalSpent, desiredSpend money.Money) (decimal.Decimal, error) {
	diff, err := totalSpent.Amount.Sub(desiredSpend.Amount, decimal.CanonicalScale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if diff.Sign() < 0 {
		diff = diff.Neg()
	}
	if desiredSpend.Amount.IsZero() {
		return decimal.Zero(decimal.CanonicalScale), nil
	}
	return diff.Div(desiredSpend.Amount, decimal.CanonicalScale, 4)
}

// legOutcome is one leg's resolved fill.
type legOutcome struct {
	spent    money.Money
	received money.Money
	fees     map[money.Currency]money.Money
}

// resolveBuyLeg finds the largest net base amount within order.Bounds whose
// gross base (net + baseFee, if any) does not exceed ceiling, by bounded
// iterative refinement shrinking the candidate toward the ceiling by the
// ratio ceiling/grossBase (§4.7 "BUY leg").
func resolveBuyLeg(e *graph.Edge, ceiling money.Money, scale int32) (legOutcome, error) {
	order := e.Order
	min, max := order.Bounds.Min, order.Bounds.Max

	minQuote, err := order.EffectiveRate.Convert(min, scale, refinementExtraDigits)
	if err != nil {
		return legOutcome{}, err
	}
	minGross, err := graph.GrossBaseAt(order, min, minQuote, scale)
	if err != nil {
		return legOutcome{}, err
	}
	if cmp, err := minGross.Cmp(ceiling); err != nil {
		return legOutcome{}, err
	} else if cmp > 0 {
		return legOutcome{}, errInfeasible
	}

	candidate := max.Amount
	var rawQuote, grossBase money.Money

	for step := 0; step < maxBuyRefinementSteps; step++ {
		candMoney, err := money.New(order.Base, candidate)
		if err != nil {
			return legOutcome{}, err
		}
		rawQuote, err = order.EffectiveRate.Convert(candMoney, scale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		grossBase, err = graph.GrossBaseAt(order, candMoney, rawQuote, scale)
		if err != nil {
			return legOutcome{}, err
		}
		cmp, err := grossBase.Cmp(ceiling)
		if err != nil {
			return legOutcome{}, err
		}
		if cmp <= 0 {
			break
		}
		if grossBase.Amount.IsZero() {
			return legOutcome{}, types.NewPrecisionViolation("buy leg gross base collapsed to zero during refinement")
		}
		ratio, err := ceiling.Amount.Div(grossBase.Amount, scale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		candidate, err = candidate.Mul(ratio, scale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		if candidate.LessThan(min.Amount) {
			candidate = min.Amount
		}
		if candidate.GreaterThan(max.Amount) {
			candidate = max.Amount
		}
	}

	if cmp, err := grossBase.Cmp(ceiling); err != nil {
		return legOutcome{}, err
	} else if cmp > 0 {
		return legOutcome{}, errInfeasible
	}
	if candidate.LessThan(min.Amount) {
		return legOutcome{}, errInfeasible
	}

	netBase, err := money.New(order.Base, candidate)
	if err != nil {
		return legOutcome{}, err
	}
	breakdown, err := order.Policy().Calculate(types.SideBuy, netBase, rawQuote)
	if err != nil {
		return legOutcome{}, err
	}

	fees := make(map[money.Currency]money.Money)
	spent := grossBase
	received := rawQuote
	if breakdown.BaseFee != nil {
		fees[breakdown.BaseFee.Currency] = *breakdown.BaseFee
	}
	if breakdown.QuoteFee != nil {
		received, err = rawQuote.SubAt(*breakdown.QuoteFee, scale)
		if err != nil {
			return legOutcome{}, err
		}
		fees[breakdown.QuoteFee.Currency] = *breakdown.QuoteFee
	}

	return legOutcome{spent: spent, received: received, fees: fees}, nil
}

// resolveSellLeg finds the net base amount whose gross quote (raw + quote
// fee, if any) matches target (the quote available to spend on this leg)
// within a relative tolerance of 1e-6, by bounded iterative refinement, and
// confirms the gross quote does not exceed ceiling (§4.7 "SELL leg").
func resolveSellLeg(e *graph.Edge, target, ceiling money.Money, scale int32) (legOutcome, error) {
	order := e.Order
	min, max := order.Bounds.Min, order.Bounds.Max
	tolerance := decimal.MustNewFromString(sellRelativeTolerance, decimal.CanonicalScale)

	invRate, err := order.EffectiveRate.Invert(scale, refinementExtraDigits)
	if err != nil {
		return legOutcome{}, err
	}
	seed, err := invRate.Convert(target, scale, refinementExtraDigits)
	if err != nil {
		return legOutcome{}, err
	}
	candidate := clamp(seed.Amount, min.Amount, max.Amount)

	// The correction ratio is computed at no less than the canonical scale so
	// that a coarse spend scale cannot round it to exactly 1 and stall.
	ratioScale := scale
	if ratioScale < decimal.CanonicalScale {
		ratioScale = decimal.CanonicalScale
	}

	var rawQuote money.Money
	var grossQuote money.Money
	var breakdown types.FeeBreakdown
	var candMoney money.Money
	converged := false

	for step := 0; step < maxSellRefinementSteps; step++ {
		candMoney, err = money.New(order.Base, candidate)
		if err != nil {
			return legOutcome{}, err
		}
		rawQuote, err = order.EffectiveRate.Convert(candMoney, scale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		breakdown, err = order.Policy().Calculate(types.SideSell, candMoney, rawQuote)
		if err != nil {
			return legOutcome{}, err
		}
		grossQuote = rawQuote
		if breakdown.QuoteFee != nil {
			grossQuote, err = rawQuote.AddAt(*breakdown.QuoteFee, scale)
			if err != nil {
				return legOutcome{}, err
			}
		}

		relErr, err := relativeError(grossQuote.Amount, target.Amount)
		if err != nil {
			return legOutcome{}, err
		}
		cmp, err := grossQuote.Cmp(ceiling)
		if err != nil {
			return legOutcome{}, err
		}
		if relErr.LessOrEqual(tolerance) && cmp <= 0 {
			converged = true
			break
		}
		if grossQuote.Amount.IsZero() {
			return legOutcome{}, types.NewPrecisionViolation("sell leg gross quote collapsed to zero during refinement")
		}
		ratio, err := target.Amount.Div(grossQuote.Amount, ratioScale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		candidate, err = candidate.Mul(ratio, scale, refinementExtraDigits)
		if err != nil {
			return legOutcome{}, err
		}
		candidate = clamp(candidate, min.Amount, max.Amount)
	}

	if !converged {
		return legOutcome{}, errInfeasible
	}
	if cmp, err := grossQuote.Cmp(ceiling); err != nil {
		return legOutcome{}, err
	} else if cmp > 0 {
		return legOutcome{}, errInfeasible
	}

	fees := make(map[money.Currency]money.Money)
	received := candMoney
	if breakdown.BaseFee != nil {
		var err error
		received, err = candMoney.SubAt(*breakdown.BaseFee, scale)
		if err != nil {
			return legOutcome{}, err
		}
		fees[breakdown.BaseFee.Currency] = *breakdown.BaseFee
	}
	if breakdown.QuoteFee != nil {
		fees[breakdown.QuoteFee.Currency] = *breakdown.QuoteFee
	}

	return legOutcome{spent: grossQuote, received: received, fees: fees}, nil
}

func relativeError(actual, target decimal.Decimal) (decimal.Decimal, error) {
	diff, err := actual.Sub(target, decimal.CanonicalScale)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if diff.Sign() < 0 {
		diff = diff.Neg()
	}
	if target.IsZero() {
		return decimal.Zero(decimal.CanonicalScale), nil
	}
	return diff.Div(target, decimal.CanonicalScale, refinementExtraDigits)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
