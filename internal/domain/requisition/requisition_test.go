package requisition

import (
	"testing"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequisition(t *testing.T) *Requisition {
	t.Helper()
	req, err := NewRequisition("REQ-2026-00001", uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	return req
}

func TestMarkConverted(t *testing.T) {
	req := newTestRequisition(t)
	require.NoError(t, req.AddLine(uuid.New(), nil, decimal.NewFromInt(10), nil))

	require.NoError(t, req.MarkConverted())
	assert.Equal(t, StatusConverted, req.Status)

	// Converting twice is an invalid-state error
	err := req.MarkConverted()
	require.Error(t, err)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_STATE", de.Code)
}

func TestRecordLineReception(t *testing.T) {
	req := newTestRequisition(t)
	require.NoError(t, req.AddLine(uuid.New(), nil, decimal.NewFromInt(10), nil))
	lineID := req.Lines[0].ID

	require.NoError(t, req.RecordLineReception(lineID, decimal.NewFromInt(4)))
	require.NoError(t, req.RecordLineReception(lineID, decimal.NewFromInt(3)))
	assert.Equal(t, "7", req.Lines[0].ReceivedQuantity.String())
	assert.Equal(t, "3", req.Lines[0].Pending().String())

	t.Run("rejects unknown line", func(t *testing.T) {
		err := req.RecordLineReception(uuid.New(), decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		err := req.RecordLineReception(lineID, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestRefreshStatusAfterReception(t *testing.T) {
	t.Run("all lines fulfilled completes the requisition", func(t *testing.T) {
		req := newTestRequisition(t)
		require.NoError(t, req.AddLine(uuid.New(), nil, decimal.NewFromInt(10), nil))
		require.NoError(t, req.AddLine(uuid.New(), nil, decimal.NewFromInt(5), nil))

		require.NoError(t, req.RecordLineReception(req.Lines[0].ID, decimal.NewFromInt(10)))
		require.NoError(t, req.RecordLineReception(req.Lines[1].ID, decimal.NewFromInt(5)))
		req.RefreshStatusAfterReception()

		assert.Equal(t, StatusCompleted, req.Status)
	})

	t.Run("short line leaves the requisition received", func(t *testing.T) {
		req := newTestRequisition(t)
		require.NoError(t, req.AddLine(uuid.New(), nil, decimal.NewFromInt(10), nil))

		require.NoError(t, req.RecordLineReception(req.Lines[0].ID, decimal.NewFromInt(6)))
		req.RefreshStatusAfterReception()

		assert.Equal(t, StatusReceived, req.Status)
	})
}

func TestNewLineReception(t *testing.T) {
	_, err := NewLineReception(uuid.New(), uuid.New(), decimal.NewFromInt(3))
	assert.NoError(t, err)

	_, err = NewLineReception(uuid.New(), uuid.New(), decimal.Zero)
	assert.Error(t, err)
}
