package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency Currency
		wantErr  bool
	}{
		{
			name:     "valid MXN amount",
			amount:   decimal.NewFromFloat(100.50),
			currency: MXN,
			wantErr:  false,
		},
		{
			name:     "zero amount is valid",
			amount:   decimal.Zero,
			currency: USD,
			wantErr:  false,
		},
		{
			name:     "negative amount is valid",
			amount:   decimal.NewFromFloat(-25.00),
			currency: MXN,
			wantErr:  false,
		},
		{
			name:     "empty currency rejected",
			amount:   decimal.NewFromFloat(10),
			currency: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Amount().Equal(tt.amount))
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyMXNFromFloat(100.00)
	b := NewMoneyMXNFromFloat(33.33)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "133.33", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "66.67", diff.StringFixed(2))

	prod := a.Multiply(decimal.NewFromInt(3))
	assert.Equal(t, "300.00", prod.StringFixed(2))

	_, err = a.Add(Zero(USD))
	assert.Error(t, err, "mixed currencies must be rejected")
}

func TestMoneyDivideByZero(t *testing.T) {
	m := NewMoneyMXNFromFloat(50)
	_, err := m.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoneyAllocate(t *testing.T) {
	m := NewMoneyMXNFromFloat(100.00)

	parts, err := m.Allocate(3)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	total := ZeroMXN()
	for _, p := range parts {
		total = total.MustAdd(p)
	}
	assert.True(t, total.Equals(m), "allocated parts must sum to the original amount")
}

func TestMoneyAllocateByWeights(t *testing.T) {
	m := NewMoneyMXNFromFloat(10.00)

	t.Run("proportional split sums to total", func(t *testing.T) {
		weights := []decimal.Decimal{
			decimal.NewFromInt(1),
			decimal.NewFromInt(1),
			decimal.NewFromInt(1),
		}
		parts, err := m.AllocateByWeights(weights)
		require.NoError(t, err)
		require.Len(t, parts, 3)

		total := ZeroMXN()
		for _, p := range parts {
			total = total.MustAdd(p)
		}
		assert.True(t, total.Equals(m))
	})

	t.Run("zero weight receives nothing", func(t *testing.T) {
		weights := []decimal.Decimal{
			decimal.NewFromInt(3),
			decimal.Zero,
			decimal.NewFromInt(1),
		}
		parts, err := m.AllocateByWeights(weights)
		require.NoError(t, err)
		assert.True(t, parts[1].IsZero())
		assert.Equal(t, "7.50", parts[0].StringFixed(2))
		assert.Equal(t, "2.50", parts[2].StringFixed(2))
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		_, err := m.AllocateByWeights([]decimal.Decimal{decimal.NewFromInt(-1)})
		assert.Error(t, err)
	})
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyMXNFromFloat(42.75)

	data, err := m.MarshalJSON()
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, m.Equals(decoded))
}
