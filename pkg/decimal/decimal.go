// Package decimal provides the fixed-point arithmetic primitive the rest of
// this module builds on: an arbitrary-precision signed decimal with an
// explicit scale field and HALF_UP-only rounding. It wraps
// github.com/shopspring/decimal rather than reimplementing big-integer
// arithmetic from scratch, but pins down behavior the raw library leaves
// open: every value here carries its own scale, every operation rounds to a
// caller-specified scale, and nothing above this package ever rounds any
// other way.
package decimal

import (
	"fmt"

	ext "github.com/shopspring/decimal"
)

// MaxScale is the largest scale a Decimal may carry.
const MaxScale = 50

// CanonicalScale is the working scale for search cost arithmetic (§3).
const CanonicalScale = 18

// Decimal is a signed decimal value at a fixed, explicit scale.
type Decimal struct {
	v     ext.Decimal
	scale int32
}

// Zero returns the zero value at the given scale.
func Zero(scale int32) Decimal {
	return Decimal{v: ext.NewFromInt(0), scale: scale}
}

// validateScale checks scale is in [0, MaxScale].
func validateScale(scale int32) error {
	if scale < 0 || scale > MaxScale {
		return fmt.Errorf("decimal: scale %d out of range [0,%d]", scale, MaxScale)
	}
	return nil
}

// NewFromString parses s as a decimal and rounds it HALF_UP to scale.
func NewFromString(s string, scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	raw, err := ext.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("decimal: invalid literal %q: %w", s, err)
	}
	return Decimal{v: raw.Round(scale), scale: scale}, nil
}

// NewFromInt builds an integer-valued Decimal at the given scale.
func NewFromInt(i int64, scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: ext.NewFromInt(i), scale: scale}, nil
}

// MustNewFromString is NewFromString that panics on error; reserved for
// literals inside tests.
func MustNewFromString(s string, scale int32) Decimal {
	d, err := NewFromString(s, scale)
	if err != nil {
		panic(err)
	}
	return d
}

// Scale returns the value's explicit scale.
func (d Decimal) Scale() int32 { return d.scale }

// IsZero reports whether the value is mathematically zero.
func (d Decimal) IsZero() bool { return d.v.IsZero() }

// Sign returns -1, 0, or 1.
func (d Decimal) Sign() int { return d.v.Sign() }

// Rescale returns d rounded HALF_UP to a new scale.
func (d Decimal) Rescale(scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Round(scale), scale: scale}, nil
}

// Cmp compares mathematical value regardless of scale: -1, 0, 1.
func (d Decimal) Cmp(o Decimal) int { return d.v.Cmp(o.v) }

// Equal reports mathematical equality after scale alignment.
func (d Decimal) Equal(o Decimal) bool { return d.v.Equal(o.v) }

func (d Decimal) LessThan(o Decimal) bool    { return d.Cmp(o) < 0 }
func (d Decimal) LessOrEqual(o Decimal) bool { return d.Cmp(o) <= 0 }
func (d Decimal) GreaterThan(o Decimal) bool { return d.Cmp(o) > 0 }
func (d Decimal) GreaterOrEqual(o Decimal) bool { return d.Cmp(o) >= 0 }

// Add returns d+o rounded HALF_UP to scale (operands' working precision is
// preserved internally by the underlying big-decimal; only the published
// result is rounded).
func (d Decimal) Add(o Decimal, scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Add(o.v).Round(scale), scale: scale}, nil
}

// Sub returns d-o rounded HALF_UP to scale.
func (d Decimal) Sub(o Decimal, scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: d.v.Sub(o.v).Round(scale), scale: scale}, nil
}

// Mul returns d*o rounded HALF_UP to scale, computed with extraDigits of
// working headroom before the final round (§4.7 numeric discipline).
func (d Decimal) Mul(o Decimal, scale int32, extraDigits int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	working := scale + extraDigits
	if working > MaxScale {
		working = MaxScale
	}
	product := d.v.Mul(o.v).Round(working)
	return Decimal{v: product.Round(scale), scale: scale}, nil
}

// Div returns d/o rounded HALF_UP to scale, computed with extraDigits of
// working headroom. Returns an error if o is zero (PrecisionViolation is
// raised by callers that need that taxonomy; this package stays taxonomy
// agnostic).
func (d Decimal) Div(o Decimal, scale int32, extraDigits int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	if o.IsZero() {
		return Decimal{}, fmt.Errorf("decimal: division by zero")
	}
	working := scale + extraDigits
	if working > MaxScale {
		working = MaxScale
	}
	quotient := d.v.DivRound(o.v, working)
	return Decimal{v: quotient.Round(scale), scale: scale}, nil
}

// Neg returns -d at the same scale.
func (d Decimal) Neg() Decimal { return Decimal{v: d.v.Neg(), scale: d.scale} }

// Max returns the larger of d and o (ties keep d).
func Max(d, o Decimal) Decimal {
	if o.Cmp(d) > 0 {
		return o
	}
	return d
}

// Min returns the smaller of d and o (ties keep d).
func Min(d, o Decimal) Decimal {
	if o.Cmp(d) < 0 {
		return o
	}
	return d
}

// String renders the value normalized to its scale, e.g. "100.000".
func (d Decimal) String() string {
	return d.v.StringFixed(d.scale)
}

// Raw exposes the underlying shopspring decimal for callers (e.g. other
// packages in this module) that need operations this primitive does not
// surface directly, such as comparisons against untyped literals.
func (d Decimal) Raw() ext.Decimal { return d.v }

// FromRaw wraps an already-computed shopspring decimal at the given scale,
// rounding HALF_UP if it carries more precision than the scale allows.
func FromRaw(v ext.Decimal, scale int32) (Decimal, error) {
	if err := validateScale(scale); err != nil {
		return Decimal{}, err
	}
	return Decimal{v: v.Round(scale), scale: scale}, nil
}
