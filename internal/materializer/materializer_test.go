package materializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/types"
)

const scale = int32(8)

func mustMoney(t *testing.T, ccy money.Currency, amount string) money.Money {
	t.Helper()
	m, err := money.New(ccy, decimal.MustNewFromString(amount, scale))
	require.NoError(t, err)
	return m
}

func buyEdge(t *testing.T, base, quote money.Currency, rate, min, max string, fee types.FeePolicy) *graph.Edge {
	t.Helper()
	rateDec := decimal.MustNewFromString(rate, scale)
	effRate, err := money.NewExchangeRate(base, quote, rateDec)
	require.NoError(t, err)
	order := types.Order{
		Side:  types.SideBuy,
		Base:  base,
		Quote: quote,
		Bounds: types.Bounds{
			Min: mustMoney(t, base, min),
			Max: mustMoney(t, base, max),
		},
		EffectiveRate: effRate,
		FeePolicy:     fee,
	}
	require.NoError(t, order.Validate())
	built, err := graph.Build([]types.Order{order})
	require.NoError(t, err)
	es := built.Edges(base)
	require.Len(t, es, 1)
	return es[0]
}

func sellEdge(t *testing.T, base, quote money.Currency, rate, min, max string, fee types.FeePolicy) *graph.Edge {
	t.Helper()
	rateDec := decimal.MustNewFromString(rate, scale)
	effRate, err := money.NewExchangeRate(base, quote, rateDec)
	require.NoError(t, err)
	order := types.Order{
		Side:  types.SideSell,
		Base:  base,
		Quote: quote,
		Bounds: types.Bounds{
			Min: mustMoney(t, base, min),
			Max: mustMoney(t, base, max),
		},
		EffectiveRate: effRate,
		FeePolicy:     fee,
	}
	require.NoError(t, order.Validate())
	built, err := graph.Build([]types.Order{order})
	require.NoError(t, err)
	es := built.Edges(quote)
	require.Len(t, es, 1)
	return es[0]
}

func TestMaterializeSingleBuyLegNoFee(t *testing.T) {
	e := buyEdge(t, "USD", "EUR", "0.9", "0", "1000", nil)
	spend := mustMoney(t, "USD", "100")
	out, err := Materialize(Params{
		Path:        []*graph.Edge{e},
		SpendAmount: spend,
		MinSpend:    mustMoney(t, "USD", "95"),
		MaxSpend:    mustMoney(t, "USD", "105"),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "EUR", string(out.TotalReceived.Currency))
	assert.True(t, out.TotalSpent.Amount.LessOrEqual(mustMoney(t, "USD", "105").Amount))
	assert.Len(t, out.Legs, 1)
}

func TestMaterializeBuyLegWithQuoteFeeReducesReceived(t *testing.T) {
	fee := types.PercentageQuoteFee{Rate: decimal.MustNewFromString("0.01", scale)}
	e := buyEdge(t, "USD", "EUR", "1", "0", "1000", fee)
	spend := mustMoney(t, "USD", "100")
	out, err := Materialize(Params{
		Path:        []*graph.Edge{e},
		SpendAmount: spend,
		MinSpend:    mustMoney(t, "USD", "90"),
		MaxSpend:    mustMoney(t, "USD", "110"),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	// the first leg spends up to the 110 USD ceiling, so the raw quote is
	// 110 EUR; the 1% quote fee should reduce received below 110.
	assert.True(t, out.TotalReceived.Amount.LessThan(decimal.MustNewFromString("110", scale)))
	assert.Len(t, out.FeeBreakdown, 1)
}

func TestMaterializeRejectsOutOfTolerance(t *testing.T) {
	// order capacity tops out at 50, far under the configured min spend.
	e := buyEdge(t, "USD", "EUR", "1", "0", "50", nil)
	spend := mustMoney(t, "USD", "100")
	out, err := Materialize(Params{
		Path:        []*graph.Edge{e},
		SpendAmount: spend,
		MinSpend:    mustMoney(t, "USD", "95"),
		MaxSpend:    mustMoney(t, "USD", "105"),
	})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMaterializeSellLegMatchesUpstreamQuoteWithinTolerance(t *testing.T) {
	e := sellEdge(t, "BTC", "USD", "20000", "0", "10", nil)
	spend := mustMoney(t, "USD", "5000")
	out, err := Materialize(Params{
		Path:        []*graph.Edge{e},
		SpendAmount: spend,
		MinSpend:    mustMoney(t, "USD", "4900"),
		MaxSpend:    mustMoney(t, "USD", "5100"),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "BTC", string(out.TotalReceived.Currency))
}

func TestMaterializeEmptyPathIsInvalidInput(t *testing.T) {
	_, err := Materialize(Params{Path: nil})
	require.Error(t, err)
}
