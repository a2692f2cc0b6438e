package finance

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementClassification categorizes a financial movement
type MovementClassification string

const (
	// ClassificationCostOfGoods marks movements produced by purchase receptions
	ClassificationCostOfGoods MovementClassification = "COST_OF_GOODS"
)

// FinancialMovement records one signed cash/bank delta tied to a business event.
// Exactly one of DeltaCash and DeltaBank is non-zero, or both are zero for
// methods such as store credit that touch neither balance.
type FinancialMovement struct {
	shared.BaseAggregateRoot
	BranchID       uuid.UUID
	Classification MovementClassification
	PaymentMethod  PaymentMethod
	DeltaCash      decimal.Decimal
	DeltaBank      decimal.Decimal
	Reference      string // e.g. "PO:PO-2026-00042"
	CashShiftID    *uuid.UUID
	BankAccountID  *uuid.UUID
	SupplierID     uuid.UUID
	UserID         uuid.UUID
}

// NewFinancialMovement creates a movement, enforcing the delta invariant
func NewFinancialMovement(
	branchID uuid.UUID,
	classification MovementClassification,
	method PaymentMethod,
	deltaCash, deltaBank decimal.Decimal,
	reference string,
	cashShiftID, bankAccountID *uuid.UUID,
	supplierID, userID uuid.UUID,
) (*FinancialMovement, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "movement requires a branch")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION", "unknown payment method")
	}
	if !deltaCash.IsZero() && !deltaBank.IsZero() {
		return nil, shared.NewDomainError("VALIDATION", "movement cannot affect cash and bank at once")
	}

	m := &FinancialMovement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		Classification:    classification,
		PaymentMethod:     method,
		DeltaCash:         deltaCash,
		DeltaBank:         deltaBank,
		Reference:         reference,
		CashShiftID:       cashShiftID,
		BankAccountID:     bankAccountID,
		SupplierID:        supplierID,
		UserID:            userID,
	}
	m.AddDomainEvent(NewFinancialMovementRecordedEvent(m))
	return m, nil
}

// Amount returns the movement's monetary magnitude
func (m *FinancialMovement) Amount() decimal.Decimal {
	if !m.DeltaCash.IsZero() {
		return m.DeltaCash.Abs()
	}
	return m.DeltaBank.Abs()
}

// Channel returns the channel this movement posted to
func (m *FinancialMovement) Channel() Channel {
	switch {
	case !m.DeltaCash.IsZero():
		return ChannelRegister
	case !m.DeltaBank.IsZero():
		return ChannelBank
	default:
		return ChannelNone
	}
}
