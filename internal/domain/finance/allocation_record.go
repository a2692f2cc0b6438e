package finance

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationRecord registers extra landed costs (freight, customs) to be
// distributed across the lots created by one reception. The distribution
// algorithm itself runs in a separate costing workflow; this record is the
// durable handoff to it.
type AllocationRecord struct {
	shared.BaseEntity
	BranchID        uuid.UUID
	PurchaseOrderID uuid.UUID
	ReceptionID     uuid.UUID
	Amount          decimal.Decimal
	LotIDs          []uuid.UUID
	PackagedLotIDs  []uuid.UUID
}

// NewAllocationRecord creates an allocation record for a reception
func NewAllocationRecord(
	branchID, purchaseOrderID, receptionID uuid.UUID,
	amount decimal.Decimal,
	lotIDs, packagedLotIDs []uuid.UUID,
) (*AllocationRecord, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "allocation amount must be positive")
	}
	if len(lotIDs) == 0 && len(packagedLotIDs) == 0 {
		return nil, shared.NewDomainError("VALIDATION", "allocation requires at least one lot")
	}
	return &AllocationRecord{
		BaseEntity:      shared.NewBaseEntity(),
		BranchID:        branchID,
		PurchaseOrderID: purchaseOrderID,
		ReceptionID:     receptionID,
		Amount:          amount,
		LotIDs:          lotIDs,
		PackagedLotIDs:  packagedLotIDs,
	}, nil
}
