package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), MAD)
	require.NoError(t, err)
	assert.Equal(t, MAD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyMADFromFloat(200)
	b := NewMoneyMADFromFloat(35)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(235)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(165)))

	doubled := a.MultiplyByInt(2)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(400)))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := NewMoneyMADFromFloat(100)
	b, err := NewMoney(decimal.NewFromInt(100), EUR)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)

	_, err = a.Subtract(b)
	assert.Error(t, err)

	_, err = a.GreaterThan(b)
	assert.Error(t, err)
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyMADFromFloat(100)
	b := NewMoneyMADFromFloat(50)

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyMADFromFloat(100)))
	assert.False(t, a.Equals(b))
	assert.True(t, ZeroMAD().IsZero())
	assert.True(t, NewMoneyMADFromFloat(-1).IsNegative())
}

func TestMoneyDisplay(t *testing.T) {
	m := NewMoneyMADFromFloat(249)
	assert.Equal(t, "249,00 DHS", m.Display())
	assert.Equal(t, "249.00 MAD", m.String())
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyMADFromString("19.90")
	require.NoError(t, err)
	assert.Equal(t, "19,90 DHS", m.Display())

	_, err = NewMoneyMADFromString("not-a-number")
	assert.Error(t, err)
}
