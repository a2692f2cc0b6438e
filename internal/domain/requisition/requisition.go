package requisition

import (
	"fmt"
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisitionStatus is the lifecycle state of a restock requisition
type RequisitionStatus string

const (
	// StatusPending means the requisition awaits conversion to a purchase order
	StatusPending RequisitionStatus = "PENDING"
	// StatusConverted means a purchase order was created from the requisition
	StatusConverted RequisitionStatus = "CONVERTED"
	// StatusReceived means goods arrived but some lines are short of their suggested quantity
	StatusReceived RequisitionStatus = "RECEIVED"
	// StatusCompleted means every line's received quantity meets its suggested quantity
	StatusCompleted RequisitionStatus = "COMPLETED"
)

// IsValid returns true if the status is recognized
func (s RequisitionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConverted, StatusReceived, StatusCompleted:
		return true
	}
	return false
}

// CanConvert returns true if a purchase order may be created from this status
func (s RequisitionStatus) CanConvert() bool {
	return s == StatusPending
}

// RequisitionLine is one requested product on a requisition
type RequisitionLine struct {
	shared.BaseEntity
	RequisitionID     uuid.UUID
	ProductID         uuid.UUID
	PresentationID    *uuid.UUID
	SuggestedQuantity decimal.Decimal
	ReceivedQuantity  decimal.Decimal
	ExpiryDate        *time.Time
}

// IsFulfilled returns true when the received quantity meets the suggestion
func (l *RequisitionLine) IsFulfilled() bool {
	return l.ReceivedQuantity.GreaterThanOrEqual(l.SuggestedQuantity)
}

// Pending returns the outstanding quantity, never negative
func (l *RequisitionLine) Pending() decimal.Decimal {
	pending := l.SuggestedQuantity.Sub(l.ReceivedQuantity)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// Requisition is an internal request to restock products at a branch
type Requisition struct {
	shared.BaseAggregateRoot
	Number      string
	BranchID    uuid.UUID
	RequestedBy uuid.UUID
	Status      RequisitionStatus
	Lines       []RequisitionLine
	Notes       string
}

// NewRequisition creates a pending requisition
func NewRequisition(number string, branchID, requestedBy uuid.UUID, notes string) (*Requisition, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "requisition requires a branch")
	}
	return &Requisition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		BranchID:          branchID,
		RequestedBy:       requestedBy,
		Status:            StatusPending,
		Lines:             make([]RequisitionLine, 0),
		Notes:             notes,
	}, nil
}

// AddLine appends a requested product line
func (r *Requisition) AddLine(productID uuid.UUID, presentationID *uuid.UUID, suggested decimal.Decimal, expiryDate *time.Time) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION", "requisition line requires a product")
	}
	if !suggested.IsPositive() {
		return shared.NewDomainError("VALIDATION", "suggested quantity must be positive")
	}
	line := RequisitionLine{
		BaseEntity:        shared.NewBaseEntity(),
		RequisitionID:     r.ID,
		ProductID:         productID,
		PresentationID:    presentationID,
		SuggestedQuantity: suggested,
		ReceivedQuantity:  decimal.Zero,
		ExpiryDate:        expiryDate,
	}
	r.Lines = append(r.Lines, line)
	r.Touch()
	return nil
}

// FindLine returns the line with the given id
func (r *Requisition) FindLine(lineID uuid.UUID) (*RequisitionLine, error) {
	for i := range r.Lines {
		if r.Lines[i].ID == lineID {
			return &r.Lines[i], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "requisition line not found")
}

// MarkConverted records that a purchase order was created from this requisition.
// A requisition converts at most once.
func (r *Requisition) MarkConverted() error {
	if !r.Status.CanConvert() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("requisition in %s status cannot be converted", r.Status))
	}
	r.Status = StatusConverted
	r.Touch()
	return nil
}

// RecordLineReception adds received quantity to a line. Counters only grow;
// corrections go through a compensating workflow.
func (r *Requisition) RecordLineReception(lineID uuid.UUID, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("VALIDATION", "received quantity must be positive")
	}
	line, err := r.FindLine(lineID)
	if err != nil {
		return err
	}
	line.ReceivedQuantity = line.ReceivedQuantity.Add(quantity)
	line.Touch()
	r.Touch()
	return nil
}

// RefreshStatusAfterReception derives the post-reception status: COMPLETED
// when every line is fulfilled, otherwise RECEIVED.
func (r *Requisition) RefreshStatusAfterReception() {
	allFulfilled := true
	for i := range r.Lines {
		if !r.Lines[i].IsFulfilled() {
			allFulfilled = false
			break
		}
	}
	if allFulfilled {
		r.Status = StatusCompleted
	} else {
		r.Status = StatusReceived
	}
	r.Touch()
}

// LineReception is an append-only linkage between a requisition line and
// one reception event, preserving the audit trail behind the counters.
type LineReception struct {
	shared.BaseEntity
	RequisitionLineID uuid.UUID
	ReceptionID       uuid.UUID
	Quantity          decimal.Decimal
}

// NewLineReception creates a linkage record
func NewLineReception(requisitionLineID, receptionID uuid.UUID, quantity decimal.Decimal) (*LineReception, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "linkage quantity must be positive")
	}
	return &LineReception{
		BaseEntity:        shared.NewBaseEntity(),
		RequisitionLineID: requisitionLineID,
		ReceptionID:       receptionID,
		Quantity:          quantity,
	}, nil
}
