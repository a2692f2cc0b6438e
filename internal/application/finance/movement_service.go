package finance

import (
	"context"
	"fmt"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementService is the read surface over the financial-movement ledger
// and the references the posting validations need.
type MovementService struct {
	movements finance.FinancialMovementRepository
	shifts    finance.CashShiftRepository
	accounts  finance.BankAccountRepository
}

// NewMovementService creates a MovementService
func NewMovementService(
	movements finance.FinancialMovementRepository,
	shifts finance.CashShiftRepository,
	accounts finance.BankAccountRepository,
) *MovementService {
	return &MovementService{movements: movements, shifts: shifts, accounts: accounts}
}

// GetMovement returns one movement by ID
func (s *MovementService) GetMovement(ctx context.Context, id uuid.UUID) (*finance.FinancialMovement, error) {
	return s.movements.FindByID(ctx, id)
}

// ListMovements lists movements with filtering and pagination
func (s *MovementService) ListMovements(ctx context.Context, filter shared.Filter) ([]finance.FinancialMovement, error) {
	return s.movements.FindAll(ctx, filter)
}

// ListMovementsForOrder returns the movements posted for a purchase order,
// oldest first. Receptions stamp the order number into the reference.
func (s *MovementService) ListMovementsForOrder(ctx context.Context, orderNumber string) ([]finance.FinancialMovement, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION", "order number is required")
	}
	return s.movements.FindByReference(ctx, fmt.Sprintf("PO:%s", orderNumber))
}

// GetOpenShift returns the open cash shift for a branch
func (s *MovementService) GetOpenShift(ctx context.Context, branchID uuid.UUID) (*finance.CashShift, error) {
	return s.shifts.FindOpenByBranch(ctx, branchID)
}

// ListBankAccounts lists bank accounts
func (s *MovementService) ListBankAccounts(ctx context.Context, filter shared.Filter) ([]finance.BankAccount, error) {
	return s.accounts.FindAll(ctx, filter)
}
