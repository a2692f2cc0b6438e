package purchasing

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationInput describes the lots and amount to distribute extra landed
// costs over after a reception.
type AllocationInput struct {
	BranchID        uuid.UUID
	PurchaseOrderID uuid.UUID
	ReceptionID     uuid.UUID
	Amount          decimal.Decimal
	LotIDs          []uuid.UUID
	PackagedLotIDs  []uuid.UUID
}

// CostAllocator triggers cost allocation for a reception. Implementations
// run inside the reception's transaction: a failed allocation rolls the
// whole reception back.
type CostAllocator interface {
	Allocate(ctx context.Context, repos TransactionalRepositories, input AllocationInput) (*finance.AllocationRecord, error)
}

// RecordingCostAllocator persists the allocation handoff record. The
// distribution across lot costs is performed by the external costing
// workflow that consumes these records.
type RecordingCostAllocator struct{}

// NewRecordingCostAllocator creates a RecordingCostAllocator
func NewRecordingCostAllocator() *RecordingCostAllocator {
	return &RecordingCostAllocator{}
}

// Allocate writes the allocation record through the transactional repository
func (a *RecordingCostAllocator) Allocate(ctx context.Context, repos TransactionalRepositories, input AllocationInput) (*finance.AllocationRecord, error) {
	record, err := finance.NewAllocationRecord(
		input.BranchID,
		input.PurchaseOrderID,
		input.ReceptionID,
		input.Amount,
		input.LotIDs,
		input.PackagedLotIDs,
	)
	if err != nil {
		return nil, err
	}
	if err := repos.AllocationRepo().Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

var _ CostAllocator = (*RecordingCostAllocator)(nil)
