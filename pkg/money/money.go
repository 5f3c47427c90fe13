// Package money defines Money and ExchangeRate, the currency-tagged value
// objects every other package in this module exchanges. Currencies are
// opaque uppercase identifiers; no conversion between them is implied by
// the type system alone — only an ExchangeRate converts.
package money

import (
	"fmt"
	"strings"

	"github.com/mExOms/pathsearch/pkg/decimal"
)

// Currency is an uppercase, non-empty asset symbol (e.g. "USD", "BTC").
type Currency string

// Normalize trims and uppercases a raw currency string.
func Normalize(raw string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(raw)))
}

func (c Currency) validate() error {
	if c == "" {
		return fmt.Errorf("money: currency must not be empty")
	}
	if Currency(strings.ToUpper(string(c))) != c {
		return fmt.Errorf("money: currency %q must be uppercase", c)
	}
	return nil
}

// Money is an amount denominated in a specific currency at an explicit scale.
type Money struct {
	Currency Currency
	Amount   decimal.Decimal
}

// New builds a Money value, validating the currency is non-empty uppercase.
func New(currency Currency, amount decimal.Decimal) (Money, error) {
	if err := currency.validate(); err != nil {
		return Money{}, err
	}
	return Money{Currency: currency, Amount: amount}, nil
}

// Zero builds a zero-valued Money at the requested scale.
func Zero(currency Currency, scale int32) (Money, error) {
	return New(currency, decimal.Zero(scale))
}

// Scale is the amount's explicit scale.
func (m Money) Scale() int32 { return m.Amount.Scale() }

// sameCurrency returns an error unless both values share a currency.
func (m Money) sameCurrency(o Money) error {
	if m.Currency != o.Currency {
		return fmt.Errorf("money: currency mismatch: %s vs %s", m.Currency, o.Currency)
	}
	return nil
}

// Add returns m+o at the result scale (max of operand scales unless
// targetScale is explicitly supplied via AddAt).
func (m Money) Add(o Money) (Money, error) {
	return m.AddAt(o, maxScale(m.Scale(), o.Scale()))
}

// AddAt returns m+o rounded HALF_UP to the requested scale.
func (m Money) AddAt(o Money, scale int32) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	sum, err := m.Amount.Add(o.Amount, scale)
	if err != nil {
		return Money{}, err
	}
	return Money{Currency: m.Currency, Amount: sum}, nil
}

// Sub returns m-o at the max operand scale.
func (m Money) Sub(o Money) (Money, error) {
	return m.SubAt(o, maxScale(m.Scale(), o.Scale()))
}

// SubAt returns m-o rounded HALF_UP to the requested scale.
func (m Money) SubAt(o Money, scale int32) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	diff, err := m.Amount.Sub(o.Amount, scale)
	if err != nil {
		return Money{}, err
	}
	return Money{Currency: m.Currency, Amount: diff}, nil
}

// Cmp compares the mathematical amount of m and o; both must share currency.
func (m Money) Cmp(o Money) (int, error) {
	if err := m.sameCurrency(o); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(o.Amount), nil
}

// LessThan reports m < o, panicking on currency mismatch — callers that
// cannot guarantee same-currency operands should use Cmp instead.
func (m Money) LessThan(o Money) bool {
	c, err := m.Cmp(o)
	if err != nil {
		panic(err)
	}
	return c < 0
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency)
}

func maxScale(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// ExchangeRate converts Money between base and quote currencies.
type ExchangeRate struct {
	Base  Currency
	Quote Currency
	Value decimal.Decimal
}

// NewExchangeRate validates base != quote (self-loops are rejected at graph
// build time per spec §9 Open Question (b); a degenerate same-currency rate
// is never meaningful) and both currencies are well formed.
func NewExchangeRate(base, quote Currency, value decimal.Decimal) (ExchangeRate, error) {
	if err := base.validate(); err != nil {
		return ExchangeRate{}, err
	}
	if err := quote.validate(); err != nil {
		return ExchangeRate{}, err
	}
	if base == quote {
		return ExchangeRate{}, fmt.Errorf("money: exchange rate base and quote must differ, got %s", base)
	}
	if value.Sign() <= 0 {
		return ExchangeRate{}, fmt.Errorf("money: exchange rate value must be positive, got %s", value.String())
	}
	return ExchangeRate{Base: base, Quote: quote, Value: value}, nil
}

// Invert returns the reciprocal rate (quote->base), extending scale by
// extraDigits of working precision before rounding to targetScale.
func (r ExchangeRate) Invert(targetScale int32, extraDigits int32) (ExchangeRate, error) {
	one, err := decimal.NewFromInt(1, r.Value.Scale())
	if err != nil {
		return ExchangeRate{}, err
	}
	inv, err := one.Div(r.Value, targetScale, extraDigits)
	if err != nil {
		return ExchangeRate{}, err
	}
	return ExchangeRate{Base: r.Quote, Quote: r.Base, Value: inv}, nil
}

// Convert converts m (which must be denominated in r.Base) into r.Quote at
// targetScale, computed with extraDigits of working headroom.
func (r ExchangeRate) Convert(m Money, targetScale int32, extraDigits int32) (Money, error) {
	if m.Currency != r.Base {
		return Money{}, fmt.Errorf("money: rate %s/%s cannot convert %s", r.Base, r.Quote, m.Currency)
	}
	converted, err := m.Amount.Mul(r.Value, targetScale, extraDigits)
	if err != nil {
		return Money{}, err
	}
	return Money{Currency: r.Quote, Amount: converted}, nil
}
