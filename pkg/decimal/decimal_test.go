package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromString_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		in    string
		scale int32
		want  string
	}{
		{"1.005", 2, "1.01"},
		{"1.004", 2, "1.00"},
		{"1.025", 2, "1.03"},
		{"0.5", 0, "1"},
		{"2.5", 0, "3"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			d, err := NewFromString(c.in, c.scale)
			require.NoError(t, err)
			assert.Equal(t, c.want, d.String())
		})
	}
}

func TestNewFromString_RejectsScaleOutOfRange(t *testing.T) {
	_, err := NewFromString("1.0", -1)
	assert.Error(t, err)
	_, err = NewFromString("1.0", MaxScale+1)
	assert.Error(t, err)
}

func TestArithmeticRespectsRequestedScale(t *testing.T) {
	a := MustNewFromString("10.12345", 5)
	b := MustNewFromString("0.00005", 5)

	sum, err := a.Add(b, 2)
	require.NoError(t, err)
	assert.Equal(t, "10.12", sum.String())

	diff, err := a.Sub(b, 5)
	require.NoError(t, err)
	assert.Equal(t, "10.12340", diff.String())
}

func TestMulWithExtraDigits(t *testing.T) {
	a := MustNewFromString("0.900", 3)
	b := MustNewFromString("150.000", 3)
	product, err := a.Mul(b, 18, 2)
	require.NoError(t, err)
	assert.True(t, product.Equal(MustNewFromString("135", 18)))
}

func TestDivByZeroErrors(t *testing.T) {
	a := MustNewFromString("1", 18)
	zero := Zero(18)
	_, err := a.Div(zero, 18, 4)
	assert.Error(t, err)
}

func TestEqualityIgnoresScaleMetadata(t *testing.T) {
	a := MustNewFromString("1.50", 2)
	b := MustNewFromString("1.500000", 6)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Cmp(b))
}

func TestCmpOrdering(t *testing.T) {
	a := MustNewFromString("1.00", 2)
	b := MustNewFromString("2.00", 2)
	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.LessOrEqual(a))
}

func TestMaxMin(t *testing.T) {
	a := MustNewFromString("1.00", 2)
	b := MustNewFromString("2.00", 2)
	assert.True(t, Max(a, b).Equal(b))
	assert.True(t, Min(a, b).Equal(a))
}

func TestRescale(t *testing.T) {
	a := MustNewFromString("1.005", 3)
	r, err := a.Rescale(2)
	require.NoError(t, err)
	assert.Equal(t, "1.01", r.String())
}
