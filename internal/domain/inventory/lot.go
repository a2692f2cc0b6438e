package inventory

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot is a batch of stock held in the product's base unit of measure.
// Creation is append-only; the quantity is later decremented by
// consumption workflows.
type Lot struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	BranchID    uuid.UUID
	Quantity    decimal.Decimal // Base units
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	ReceivedAt  time.Time
	ExpiryDate  *time.Time
	ReceptionID *uuid.UUID // Reception event that created this lot, for audit
	LotCode     string
}

// NewLot creates a new base-unit lot
func NewLot(
	productID, branchID uuid.UUID,
	quantity, unitCost decimal.Decimal,
	expiryDate *time.Time,
	receptionID *uuid.UUID,
	lotCode string,
) (*Lot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "lot requires a product")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "lot requires a branch")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "lot quantity must be positive")
	}
	return &Lot{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		BranchID:    branchID,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   quantity.Mul(unitCost),
		ReceivedAt:  time.Now(),
		ExpiryDate:  expiryDate,
		ReceptionID: receptionID,
		LotCode:     lotCode,
	}, nil
}

// IsExpired returns true if the lot has passed its expiry date
func (l *Lot) IsExpired() bool {
	if l.ExpiryDate == nil {
		return false
	}
	return l.ExpiryDate.Before(time.Now())
}

// Deduct reduces the lot quantity, returning the actual quantity deducted
func (l *Lot) Deduct(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.Quantity) {
		deducted := l.Quantity
		l.Quantity = decimal.Zero
		l.Touch()
		return deducted
	}
	l.Quantity = l.Quantity.Sub(quantity)
	l.Touch()
	return quantity
}

// HasStock returns true if the lot has remaining quantity
func (l *Lot) HasStock() bool {
	return l.Quantity.IsPositive()
}

// PackagedLot is a batch of stock held in presentation units.
// Quantity counts packages, not base units; the presentation's factor
// converts between the two.
type PackagedLot struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	PresentationID uuid.UUID
	BranchID       uuid.UUID
	Quantity       decimal.Decimal // Presentation units (packages)
	UnitCost       decimal.Decimal // Cost per package
	TotalCost      decimal.Decimal
	ReceivedAt     time.Time
	ExpiryDate     *time.Time
	ReceptionID    *uuid.UUID
	LotCode        string
}

// NewPackagedLot creates a new packaged lot
func NewPackagedLot(
	productID, presentationID, branchID uuid.UUID,
	quantity, unitCost decimal.Decimal,
	expiryDate *time.Time,
	receptionID *uuid.UUID,
	lotCode string,
) (*PackagedLot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "packaged lot requires a product")
	}
	if presentationID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "packaged lot requires a presentation")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "packaged lot requires a branch")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "packaged lot quantity must be positive")
	}
	return &PackagedLot{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		PresentationID: presentationID,
		BranchID:       branchID,
		Quantity:       quantity,
		UnitCost:       unitCost,
		TotalCost:      quantity.Mul(unitCost),
		ReceivedAt:     time.Now(),
		ExpiryDate:     expiryDate,
		ReceptionID:    receptionID,
		LotCode:        lotCode,
	}, nil
}

// IsExpired returns true if the packaged lot has passed its expiry date
func (l *PackagedLot) IsExpired() bool {
	if l.ExpiryDate == nil {
		return false
	}
	return l.ExpiryDate.Before(time.Now())
}

// Deduct reduces the packaged quantity, returning the actual quantity deducted
func (l *PackagedLot) Deduct(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.Quantity) {
		deducted := l.Quantity
		l.Quantity = decimal.Zero
		l.Touch()
		return deducted
	}
	l.Quantity = l.Quantity.Sub(quantity)
	l.Touch()
	return quantity
}

// HasStock returns true if the packaged lot has remaining quantity
func (l *PackagedLot) HasStock() bool {
	return l.Quantity.IsPositive()
}
