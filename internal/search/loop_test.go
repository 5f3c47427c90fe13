package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/types"
)

func order(t *testing.T, side types.Side, base, quote money.Currency, rate, min, max string) types.Order {
	t.Helper()
	effRate, err := money.NewExchangeRate(base, quote, decimal.MustNewFromString(rate, 8))
	require.NoError(t, err)
	return types.Order{
		Side:  side,
		Base:  base,
		Quote: quote,
		Bounds: types.Bounds{
			Min: mustMoneyT(t, base, min),
			Max: mustMoneyT(t, base, max),
		},
		EffectiveRate: effRate,
	}
}

func TestRunFindsDirectPath(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "EUR", "0.9", "0", "1000"),
	})
	require.NoError(t, err)

	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.05", 8), decimal.MustNewFromString("0.05", 8))
	require.NoError(t, err)
	_, err = cfg.WithHops(1, 3)
	require.NoError(t, err)

	outcome, err := Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
	require.False(t, outcome.Results.IsEmpty())

	best, ok := outcome.Results.First()
	require.True(t, ok)
	assert.Equal(t, money.Currency("EUR"), best.TotalReceived.Currency)
}

func TestRunPrefersDirectOverBridgedPath(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "EUR", "1.0", "0", "1000"),
		order(t, types.SideBuy, "USD", "GBP", "0.5", "0", "1000"),
		order(t, types.SideBuy, "GBP", "EUR", "1.5", "0", "1000"),
	})
	require.NoError(t, err)

	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.1", 8), decimal.MustNewFromString("0.1", 8))
	require.NoError(t, err)
	_, err = cfg.WithHops(1, 2)
	require.NoError(t, err)
	_, err = cfg.WithResultLimit(5)
	require.NoError(t, err)

	outcome, err := Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
	require.False(t, outcome.Results.IsEmpty())

	best, ok := outcome.Results.First()
	require.True(t, ok)
	assert.Len(t, best.Legs, 1, "the single-hop direct order should cost less than bridging through GBP")
}

func TestRunExcludesPathsOutsideHopWindow(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "GBP", "0.5", "0", "1000"),
		order(t, types.SideBuy, "GBP", "EUR", "1.5", "0", "1000"),
	})
	require.NoError(t, err)

	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.2", 8), decimal.MustNewFromString("0.2", 8))
	require.NoError(t, err)
	_, err = cfg.WithHops(1, 1)
	require.NoError(t, err)

	outcome, err := Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
	assert.True(t, outcome.Results.IsEmpty(), "EUR is only reachable in 2 hops, outside the configured [1,1] window")
}

func TestRunGuardReportReflectsExpansionLimit(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "EUR", "0.9", "0", "1000"),
	})
	require.NoError(t, err)

	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithGuards(GuardLimits{MaxVisitedStates: 10, MaxExpansions: 1})
	require.NoError(t, err)

	outcome, err := Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
	assert.True(t, outcome.Guards.ExpansionLimitReached)
	assert.True(t, outcome.Guards.AnyLimitReached())
}

func TestRunWithTraceWritesOneLinePerPop(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "EUR", "0.9", "0", "1000"),
	})
	require.NoError(t, err)

	var buf strings.Builder
	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.05", 8), decimal.MustNewFromString("0.05", 8))
	require.NoError(t, err)
	cfg.WithTrace(&buf)

	outcome, err := Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
	require.False(t, outcome.Results.IsEmpty())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.NotEmpty(t, lines)
	assert.Len(t, lines, outcome.Guards.Expansions, "one trace line per queue pop")
	for _, line := range lines {
		assert.Len(t, strings.Split(line, ","), 4, "each trace line is node,cost,hops,signature")
	}
}

func TestRunWithoutTraceWritesNothing(t *testing.T) {
	g, err := graph.Build([]types.Order{
		order(t, types.SideBuy, "USD", "EUR", "0.9", "0", "1000"),
	})
	require.NoError(t, err)

	cfg := NewConfig(mustMoneyT(t, "USD", "100"))
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.05", 8), decimal.MustNewFromString("0.05", 8))
	require.NoError(t, err)
	assert.Nil(t, cfg.TraceSink)

	_, err = Run(g, cfg, "USD", "EUR", nil)
	require.NoError(t, err)
}
