package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
)

func TestConfigDefaults(t *testing.T) {
	spend, err := money.New("USD", decimal.MustNewFromString("100", 8))
	require.NoError(t, err)
	cfg := NewConfig(spend)
	assert.Equal(t, 1, cfg.MinHops)
	assert.Equal(t, 1, cfg.MaxHops)
	assert.Equal(t, 1, cfg.ResultLimit)
	assert.Equal(t, DefaultMaxExpansions, cfg.Guards.MaxExpansions)
}

func TestConfigWithToleranceRejectsOutOfRange(t *testing.T) {
	spend, err := money.New("USD", decimal.MustNewFromString("100", 8))
	require.NoError(t, err)
	cfg := NewConfig(spend)

	_, err = cfg.WithTolerance(decimal.MustNewFromString("-0.1", 8), decimal.MustNewFromString("0.1", 8))
	assert.Error(t, err)

	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.1", 8), decimal.MustNewFromString("1", 8))
	assert.Error(t, err)
}

func TestConfigWithHopsRejectsInvertedWindow(t *testing.T) {
	spend, err := money.New("USD", decimal.MustNewFromString("100", 8))
	require.NoError(t, err)
	cfg := NewConfig(spend)

	_, err = cfg.WithHops(3, 2)
	assert.Error(t, err)

	_, err = cfg.WithHops(0, 2)
	assert.Error(t, err)
}

func TestConfigMinMaxSpend(t *testing.T) {
	spend, err := money.New("USD", decimal.MustNewFromString("100", 8))
	require.NoError(t, err)
	cfg := NewConfig(spend)
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.1", 8), decimal.MustNewFromString("0.2", 8))
	require.NoError(t, err)

	min, err := cfg.MinSpend()
	require.NoError(t, err)
	max, err := cfg.MaxSpend()
	require.NoError(t, err)

	assert.True(t, min.Amount.Equal(decimal.MustNewFromString("90", 8)))
	assert.True(t, max.Amount.Equal(decimal.MustNewFromString("120", 8)))
}

func TestConfigHeuristicToleranceIsMax(t *testing.T) {
	spend, err := money.New("USD", decimal.MustNewFromString("100", 8))
	require.NoError(t, err)
	cfg := NewConfig(spend)
	_, err = cfg.WithTolerance(decimal.MustNewFromString("0.1", 8), decimal.MustNewFromString("0.3", 8))
	require.NoError(t, err)

	assert.True(t, cfg.HeuristicTolerance().Equal(decimal.MustNewFromString("0.3", 8)))
}
