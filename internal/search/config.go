package search

import (
	"io"

	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/types"
)

// Default guard limits (§5).
const (
	DefaultMaxVisitedStates = 250000
	DefaultMaxExpansions    = 250000
)

// GuardLimits bounds a search call's resource use (§3, §5).
type GuardLimits struct {
	MaxVisitedStates int
	MaxExpansions    int
	TimeBudgetMs     *int64
}

// Config is PathSearchConfig (§3): spend target, tolerance window, hop
// bounds, result cardinality, and guard limits.
type Config struct {
	SpendAmount  money.Money
	MinTolerance decimal.Decimal
	MaxTolerance decimal.Decimal
	MinHops      int
	MaxHops      int
	ResultLimit  int
	Guards       GuardLimits

	// TraceSink, when non-nil, receives one CSV line per queue pop
	// ("node,cost,hops,signature") for the lifetime of the search. Nil
	// (the default) disables tracing entirely so it never affects
	// determinism or performance.
	TraceSink io.Writer
}

// NewConfig builds a Config with the teacher's nil-defaulting convention
// (cf. routing_engine.go's NewRoutingEngine): every field gets a sane
// default, callers then narrow with With... setters.
func NewConfig(spendAmount money.Money) *Config {
	return &Config{
		SpendAmount:  spendAmount,
		MinTolerance: decimal.Zero(decimal.CanonicalScale),
		MaxTolerance: decimal.Zero(decimal.CanonicalScale),
		MinHops:      1,
		MaxHops:      1,
		ResultLimit:  1,
		Guards: GuardLimits{
			MaxVisitedStates: DefaultMaxVisitedStates,
			MaxExpansions:    DefaultMaxExpansions,
		},
	}
}

// WithTolerance sets the min/max deviation window, each in [0,1).
func (c *Config) WithTolerance(min, max decimal.Decimal) (*Config, error) {
	if min.Sign() < 0 || min.GreaterOrEqual(decimal.MustNewFromString("1", min.Scale())) {
		return nil, types.NewInvalidInput("minTolerance must be in [0,1), got %s", min.String())
	}
	if max.Sign() < 0 || max.GreaterOrEqual(decimal.MustNewFromString("1", max.Scale())) {
		return nil, types.NewInvalidInput("maxTolerance must be in [0,1), got %s", max.String())
	}
	c.MinTolerance = min
	c.MaxTolerance = max
	return c, nil
}

// WithHops sets the inclusive [minHops,maxHops] window.
func (c *Config) WithHops(min, max int) (*Config, error) {
	if min < 1 {
		return nil, types.NewInvalidInput("minHops must be >= 1, got %d", min)
	}
	if max < min {
		return nil, types.NewInvalidInput("maxHops (%d) must be >= minHops (%d)", max, min)
	}
	c.MinHops = min
	c.MaxHops = max
	return c, nil
}

// WithResultLimit sets the number of top-K results retained.
func (c *Config) WithResultLimit(limit int) (*Config, error) {
	if limit < 1 {
		return nil, types.NewInvalidInput("resultLimit must be >= 1, got %d", limit)
	}
	c.ResultLimit = limit
	return c, nil
}

// WithGuards overrides the default guard limits.
func (c *Config) WithGuards(g GuardLimits) (*Config, error) {
	if g.MaxVisitedStates < 1 {
		return nil, types.NewInvalidInput("maxVisitedStates must be >= 1, got %d", g.MaxVisitedStates)
	}
	if g.MaxExpansions < 1 {
		return nil, types.NewInvalidInput("maxExpansions must be >= 1, got %d", g.MaxExpansions)
	}
	if g.TimeBudgetMs != nil && *g.TimeBudgetMs < 1 {
		return nil, types.NewInvalidInput("timeBudgetMs must be >= 1 when set, got %d", *g.TimeBudgetMs)
	}
	c.Guards = g
	return c, nil
}

// MinSpend returns spendAmount * (1 - minTolerance) at spendAmount's scale.
func (c *Config) MinSpend() (money.Money, error) {
	one, err := decimal.NewFromInt(1, c.MinTolerance.Scale())
	if err != nil {
		return money.Money{}, err
	}
	factor, err := one.Sub(c.MinTolerance, c.MinTolerance.Scale())
	if err != nil {
		return money.Money{}, err
	}
	amt, err := c.SpendAmount.Amount.Mul(factor, c.SpendAmount.Scale(), 4)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(c.SpendAmount.Currency, amt)
}

// MaxSpend returns spendAmount * (1 + maxTolerance) at spendAmount's scale.
func (c *Config) MaxSpend() (money.Money, error) {
	one, err := decimal.NewFromInt(1, c.MaxTolerance.Scale())
	if err != nil {
		return money.Money{}, err
	}
	factor, err := one.Add(c.MaxTolerance, c.MaxTolerance.Scale())
	if err != nil {
		return money.Money{}, err
	}
	amt, err := c.SpendAmount.Amount.Mul(factor, c.SpendAmount.Scale(), 4)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(c.SpendAmount.Currency, amt)
}

// WithTrace enables per-queue-pop diagnostic tracing: Run writes one line
// per expansion ("node,cost,hops,signature") to w. Pass nil to disable
// tracing (the default); off by default so it stays purely additive and
// never affects search determinism or performance.
func (c *Config) WithTrace(w io.Writer) *Config {
	c.TraceSink = w
	return c
}

// HeuristicTolerance is max(minTolerance, maxTolerance). No cap is applied
// here; WithTolerance keeps both inputs below 1. Run does not consult it:
// candidates are filtered only against MinSpend/MaxSpend during
// materialization.
func (c *Config) HeuristicTolerance() decimal.Decimal {
	return decimal.Max(c.MinTolerance, c.MaxTolerance)
}
