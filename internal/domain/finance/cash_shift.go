package finance

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftStatus is the lifecycle state of a cash-register shift
type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "OPEN"
	ShiftStatusClosed ShiftStatus = "CLOSED"
)

// CashShift is one opening-to-closing session of a branch's cash register.
// Register-channel movements must land on the branch's open shift.
type CashShift struct {
	shared.BaseAggregateRoot
	BranchID       uuid.UUID
	OpenedBy       uuid.UUID
	OpenedAt       time.Time
	ClosedAt       *time.Time
	ClosedBy       *uuid.UUID
	Status         ShiftStatus
	OpeningBalance decimal.Decimal
	ClosingBalance *decimal.Decimal
}

// OpenCashShift opens a new shift for a branch
func OpenCashShift(branchID, openedBy uuid.UUID, openingBalance decimal.Decimal) (*CashShift, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "shift requires a branch")
	}
	if openedBy == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "shift requires an opening user")
	}
	if openingBalance.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "opening balance cannot be negative")
	}
	return &CashShift{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		OpenedBy:          openedBy,
		OpenedAt:          time.Now(),
		Status:            ShiftStatusOpen,
		OpeningBalance:    openingBalance,
	}, nil
}

// IsOpen returns true while the shift accepts movements
func (s *CashShift) IsOpen() bool {
	return s.Status == ShiftStatusOpen
}

// Close closes the shift with a counted closing balance
func (s *CashShift) Close(closedBy uuid.UUID, closingBalance decimal.Decimal) error {
	if !s.IsOpen() {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = ShiftStatusClosed
	s.ClosedAt = &now
	s.ClosedBy = &closedBy
	s.ClosingBalance = &closingBalance
	s.UpdatedAt = now
	return nil
}

// BankAccount is a bank account movements can post against
type BankAccount struct {
	shared.BaseAggregateRoot
	Name    string
	Number  string
	Bank    string
	Balance decimal.Decimal
	Active  bool
}

// NewBankAccount creates a bank account
func NewBankAccount(name, number, bank string, balance decimal.Decimal) (*BankAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "bank account name is required")
	}
	return &BankAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Number:            number,
		Bank:              bank,
		Balance:           balance,
		Active:            true,
	}, nil
}
