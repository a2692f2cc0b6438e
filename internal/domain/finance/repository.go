package finance

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FinancialMovementRepository persists financial movements
type FinancialMovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialMovement, error)
	FindByReference(ctx context.Context, reference string) ([]FinancialMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]FinancialMovement, error)
	Save(ctx context.Context, movement *FinancialMovement) error
}

// CashShiftRepository persists cash-register shifts
type CashShiftRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashShift, error)
	FindOpenByBranch(ctx context.Context, branchID uuid.UUID) (*CashShift, error)
	Save(ctx context.Context, shift *CashShift) error
}

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BankAccount, error)
	Save(ctx context.Context, account *BankAccount) error
}

// AllocationRecordRepository persists cost-allocation handoff records
type AllocationRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AllocationRecord, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]AllocationRecord, error)
	Save(ctx context.Context, record *AllocationRecord) error
}
