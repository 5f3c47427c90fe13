package types

import "github.com/mExOms/pathsearch/pkg/money"

// Order is a standing offer to exchange base for quote (BUY) or quote for
// base (SELL) within a base-denominated [min,max] bound (§3).
type Order struct {
	Side          Side
	Base          money.Currency
	Quote         money.Currency
	Bounds        Bounds
	EffectiveRate money.ExchangeRate
	FeePolicy     FeePolicy
}

// Bounds is a [Min,Max] base-denominated fillable range.
type Bounds struct {
	Min money.Money
	Max money.Money
}

// Validate enforces the invariants from §3: bounds.min.currency ==
// pair.base == effectiveRate.base; effectiveRate.quote == pair.quote;
// 0 <= bounds.min <= bounds.max.
func (o Order) Validate() error {
	if o.Side != SideBuy && o.Side != SideSell {
		return NewInvalidInput("order side must be BUY or SELL, got %q", o.Side)
	}
	if o.Base == "" || o.Quote == "" {
		return NewInvalidInput("order base and quote currencies must be non-empty")
	}
	if o.Base == o.Quote {
		return NewInvalidInput("order base and quote must differ, got %s", o.Base)
	}
	if o.Bounds.Min.Currency != o.Base {
		return NewInvalidInput("order bounds.min currency %s must equal base %s", o.Bounds.Min.Currency, o.Base)
	}
	if o.Bounds.Max.Currency != o.Base {
		return NewInvalidInput("order bounds.max currency %s must equal base %s", o.Bounds.Max.Currency, o.Base)
	}
	if o.EffectiveRate.Base != o.Base {
		return NewInvalidInput("order effectiveRate.base %s must equal base %s", o.EffectiveRate.Base, o.Base)
	}
	if o.EffectiveRate.Quote != o.Quote {
		return NewInvalidInput("order effectiveRate.quote %s must equal quote %s", o.EffectiveRate.Quote, o.Quote)
	}
	if o.Bounds.Min.Amount.Sign() < 0 {
		return NewInvalidInput("order bounds.min must be >= 0")
	}
	cmp, err := o.Bounds.Min.Cmp(o.Bounds.Max)
	if err != nil {
		return NewInvalidInput("order bounds comparison failed: %v", err)
	}
	if cmp > 0 {
		return NewInvalidInput("order bounds.min must be <= bounds.max")
	}
	return nil
}

// TakerSpendCurrency returns the currency a taker of this order must supply:
// base for BUY, quote for SELL.
func (o Order) TakerSpendCurrency() money.Currency {
	if o.Side == SideBuy {
		return o.Base
	}
	return o.Quote
}

// TakerReceiveCurrency returns the currency a taker of this order receives:
// quote for BUY, base for SELL.
func (o Order) TakerReceiveCurrency() money.Currency {
	if o.Side == SideBuy {
		return o.Quote
	}
	return o.Base
}

// Policy returns the order's fee policy, defaulting to NoFee when unset.
func (o Order) Policy() FeePolicy {
	if o.FeePolicy == nil {
		return NoFee{}
	}
	return o.FeePolicy
}
