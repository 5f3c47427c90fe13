package types

import (
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
)

// Side is an order's standing direction. The taker of a BUY order spends
// base and receives quote; the taker of a SELL order spends quote and
// receives base (§3).
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// FeeBreakdown is the fee a policy charges for filling some net base amount.
// Fees subtract from the received amount and/or add to the gross spend
// depending on side and which component is populated.
type FeeBreakdown struct {
	BaseFee  *money.Money
	QuoteFee *money.Money
}

// FeePolicy computes the fee charged for filling netBase of an order whose
// effective quote amount (before fees) is netQuote.
type FeePolicy interface {
	Calculate(side Side, netBase, netQuote money.Money) (FeeBreakdown, error)
}

// NoFee charges nothing. It is the zero value of the sum type described in
// the design notes: no dynamic dispatch overhead beyond the single
// interface call the core already budgets for.
type NoFee struct{}

func (NoFee) Calculate(_ Side, _, _ money.Money) (FeeBreakdown, error) {
	return FeeBreakdown{}, nil
}

// FlatBaseFee charges a fixed percentage of the base amount, denominated in
// base currency. It surcharges the taker's spend on a BUY (gross base rises)
// and reduces the base the taker receives on a SELL.
type FlatBaseFee struct {
	Rate decimal.Decimal // e.g. 0.001 for 10 bps
}

func (f FlatBaseFee) Calculate(_ Side, netBase, _ money.Money) (FeeBreakdown, error) {
	scale := netBase.Scale()
	feeAmt, err := netBase.Amount.Mul(f.Rate, scale, 4)
	if err != nil {
		return FeeBreakdown{}, err
	}
	fee, err := money.New(netBase.Currency, feeAmt)
	if err != nil {
		return FeeBreakdown{}, err
	}
	return FeeBreakdown{BaseFee: &fee}, nil
}

// PercentageQuoteFee charges a fixed percentage of the quote amount,
// denominated in quote currency. It reduces what the taker receives out of
// the quote leg (§8 scenario 4).
type PercentageQuoteFee struct {
	Rate decimal.Decimal
}

func (f PercentageQuoteFee) Calculate(_ Side, _, netQuote money.Money) (FeeBreakdown, error) {
	scale := netQuote.Scale()
	feeAmt, err := netQuote.Amount.Mul(f.Rate, scale, 4)
	if err != nil {
		return FeeBreakdown{}, err
	}
	fee, err := money.New(netQuote.Currency, feeAmt)
	if err != nil {
		return FeeBreakdown{}, err
	}
	return FeeBreakdown{QuoteFee: &fee}, nil
}

// CombinedFee charges both a base-denominated and a quote-denominated fee,
// each independently optional.
type CombinedFee struct {
	Base  *FlatBaseFee
	Quote *PercentageQuoteFee
}

func (f CombinedFee) Calculate(side Side, netBase, netQuote money.Money) (FeeBreakdown, error) {
	var out FeeBreakdown
	if f.Base != nil {
		b, err := f.Base.Calculate(side, netBase, netQuote)
		if err != nil {
			return FeeBreakdown{}, err
		}
		out.BaseFee = b.BaseFee
	}
	if f.Quote != nil {
		q, err := f.Quote.Calculate(side, netBase, netQuote)
		if err != nil {
			return FeeBreakdown{}, err
		}
		out.QuoteFee = q.QuoteFee
	}
	return out, nil
}
