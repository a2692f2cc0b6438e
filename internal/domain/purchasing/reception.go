package purchasing

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceptionMode selects how delivered quantities are determined
type ReceptionMode string

const (
	// ModeAuto receives every line on the order in full, in one event
	ModeAuto ReceptionMode = "AUTO"
	// ModePartial receives only the lines and quantities the caller supplies
	ModePartial ReceptionMode = "PARTIAL"
)

// IsValid returns true if the mode is recognized
func (m ReceptionMode) IsValid() bool {
	return m == ModeAuto || m == ModePartial
}

// ReceptionLineItem records one line's receipt within a reception event.
// Exactly one of LotID and PackagedLotID is set, tying the line to the
// stock representation it received into.
type ReceptionLineItem struct {
	shared.BaseEntity
	ReceptionID        uuid.UUID
	PurchaseLineItemID uuid.UUID
	Quantity           decimal.Decimal
	UnitCost           decimal.Decimal
	ExpiryDate         *time.Time
	LotID              *uuid.UUID
	PackagedLotID      *uuid.UUID
	LotCode            string
}

// NewReceptionLineItem creates a reception line, enforcing the lot XOR invariant
func NewReceptionLineItem(
	receptionID, purchaseLineItemID uuid.UUID,
	quantity, unitCost decimal.Decimal,
	expiryDate *time.Time,
	lotID, packagedLotID *uuid.UUID,
	lotCode string,
) (*ReceptionLineItem, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "reception quantity must be positive")
	}
	if (lotID == nil) == (packagedLotID == nil) {
		return nil, shared.NewDomainError("VALIDATION", "reception line must reference exactly one lot kind")
	}
	return &ReceptionLineItem{
		BaseEntity:         shared.NewBaseEntity(),
		ReceptionID:        receptionID,
		PurchaseLineItemID: purchaseLineItemID,
		Quantity:           quantity,
		UnitCost:           unitCost,
		ExpiryDate:         expiryDate,
		LotID:              lotID,
		PackagedLotID:      packagedLotID,
		LotCode:            lotCode,
	}, nil
}

// IsPackaged returns true if the line received into packaged stock
func (l *ReceptionLineItem) IsPackaged() bool {
	return l.PackagedLotID != nil
}

// ReceptionEvent is one atomic act of recording delivered goods against a
// purchase order. Events are immutable once created; corrections are new
// events, never edits.
type ReceptionEvent struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID
	BranchID        uuid.UUID
	ReceivedBy      uuid.UUID
	Mode            ReceptionMode
	Notes           string
	Lines           []ReceptionLineItem
}

// NewReceptionEvent creates an empty reception event for an order
func NewReceptionEvent(purchaseOrderID, receivedBy uuid.UUID, mode ReceptionMode, notes string) (*ReceptionEvent, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "reception requires a purchase order")
	}
	if receivedBy == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "reception requires an acting user")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("VALIDATION", "unknown reception mode")
	}
	return &ReceptionEvent{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: purchaseOrderID,
		ReceivedBy:      receivedBy,
		Mode:            mode,
		Notes:           notes,
		Lines:           make([]ReceptionLineItem, 0),
	}, nil
}

// AddLine appends a line receipt to the event
func (e *ReceptionEvent) AddLine(line *ReceptionLineItem) {
	e.Lines = append(e.Lines, *line)
}

// TotalAmount returns the monetary total of the event (sum of qty * cost)
func (e *ReceptionEvent) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Quantity.Mul(line.UnitCost))
	}
	return total
}

// LotIDs returns the base lots created by this event
func (e *ReceptionEvent) LotIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for _, line := range e.Lines {
		if line.LotID != nil {
			ids = append(ids, *line.LotID)
		}
	}
	return ids
}

// PackagedLotIDs returns the packaged lots created by this event
func (e *ReceptionEvent) PackagedLotIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for _, line := range e.Lines {
		if line.PackagedLotID != nil {
			ids = append(ids, *line.PackagedLotID)
		}
	}
	return ids
}
