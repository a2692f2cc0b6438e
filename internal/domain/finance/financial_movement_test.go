package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveChannel(t *testing.T) {
	tests := []struct {
		method PaymentMethod
		want   Channel
	}{
		{PaymentMethodCash, ChannelRegister},
		{PaymentMethodCashOnDelivery, ChannelRegister},
		{PaymentMethodTransfer, ChannelBank},
		{PaymentMethodCard, ChannelBank},
		{PaymentMethodCheck, ChannelBank},
		{PaymentMethodStoreCredit, ChannelNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.ResolveChannel())
		})
	}
}

func TestNewFinancialMovement(t *testing.T) {
	branchID := uuid.New()
	shiftID := uuid.New()

	t.Run("cash movement", func(t *testing.T) {
		m, err := NewFinancialMovement(branchID, ClassificationCostOfGoods,
			PaymentMethodCash, decimal.NewFromInt(-185), decimal.Zero,
			"PO:PO-2026-00001", &shiftID, nil, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, ChannelRegister, m.Channel())
		assert.Equal(t, "185", m.Amount().String())
	})

	t.Run("zero-delta store credit movement", func(t *testing.T) {
		m, err := NewFinancialMovement(branchID, ClassificationCostOfGoods,
			PaymentMethodStoreCredit, decimal.Zero, decimal.Zero,
			"PO:PO-2026-00002", nil, nil, uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, ChannelNone, m.Channel())
		assert.True(t, m.Amount().IsZero())
	})

	t.Run("both deltas non-zero rejected", func(t *testing.T) {
		_, err := NewFinancialMovement(branchID, ClassificationCostOfGoods,
			PaymentMethodCash, decimal.NewFromInt(-10), decimal.NewFromInt(-10),
			"PO:PO-2026-00003", nil, nil, uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("unknown payment method rejected", func(t *testing.T) {
		_, err := NewFinancialMovement(branchID, ClassificationCostOfGoods,
			PaymentMethod("BARTER"), decimal.Zero, decimal.Zero,
			"PO:PO-2026-00004", nil, nil, uuid.New(), uuid.New())
		assert.Error(t, err)
	})
}

func TestCashShiftLifecycle(t *testing.T) {
	shift, err := OpenCashShift(uuid.New(), uuid.New(), decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, shift.IsOpen())

	require.NoError(t, shift.Close(uuid.New(), decimal.NewFromInt(720)))
	assert.False(t, shift.IsOpen())
	assert.NotNil(t, shift.ClosedAt)

	// Closing twice is an invalid-state error
	assert.Error(t, shift.Close(uuid.New(), decimal.NewFromInt(720)))
}

func TestNewAllocationRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		rec, err := NewAllocationRecord(uuid.New(), uuid.New(), uuid.New(),
			decimal.NewFromInt(120), []uuid.UUID{uuid.New()}, nil)
		require.NoError(t, err)
		assert.Len(t, rec.LotIDs, 1)
	})

	t.Run("requires positive amount", func(t *testing.T) {
		_, err := NewAllocationRecord(uuid.New(), uuid.New(), uuid.New(),
			decimal.Zero, []uuid.UUID{uuid.New()}, nil)
		assert.Error(t, err)
	})

	t.Run("requires at least one lot", func(t *testing.T) {
		_, err := NewAllocationRecord(uuid.New(), uuid.New(), uuid.New(),
			decimal.NewFromInt(50), nil, nil)
		assert.Error(t, err)
	})
}
