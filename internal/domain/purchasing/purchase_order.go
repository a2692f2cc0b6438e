package purchasing

import (
	"fmt"
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusAwaitingDelivery  PurchaseOrderStatus = "AWAITING_DELIVERY"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusAwaitingDelivery, PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusAwaitingDelivery:
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // Terminal states for this flow
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusAwaitingDelivery || s == PurchaseOrderStatusPartiallyReceived
}

// DeriveStatus computes the status implied by the order-wide received and
// ordered totals. It is a pure function: recomputing from the same totals
// always yields the same status.
func DeriveStatus(received, ordered decimal.Decimal) PurchaseOrderStatus {
	switch {
	case received.GreaterThanOrEqual(ordered) && ordered.IsPositive():
		return PurchaseOrderStatusReceived
	case received.IsPositive():
		return PurchaseOrderStatusPartiallyReceived
	default:
		return PurchaseOrderStatusAwaitingDelivery
	}
}

// PurchaseLineItem is one ordered product on a purchase order. The line's
// quantity is expressed in its own unit: base units when PresentationID is
// nil, presentation units otherwise.
type PurchaseLineItem struct {
	shared.BaseEntity
	OrderID           uuid.UUID
	ProductID         uuid.UUID
	ProductName       string // Denormalized for display
	PresentationID    *uuid.UUID
	OrderedQuantity   decimal.Decimal
	ReceivedQuantity  decimal.Decimal // Recomputed from reception lines inside the transaction
	UnitCost          decimal.Decimal
	Amount            decimal.Decimal // OrderedQuantity * UnitCost
	ExpiryDate        *time.Time
	RequisitionLineID *uuid.UUID
}

// NewPurchaseLineItem creates a new purchase order line
func NewPurchaseLineItem(
	orderID, productID uuid.UUID,
	productName string,
	presentationID *uuid.UUID,
	quantity, unitCost decimal.Decimal,
	expiryDate *time.Time,
	requisitionLineID *uuid.UUID,
) (*PurchaseLineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "line requires a product")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION", "ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "unit cost cannot be negative")
	}

	return &PurchaseLineItem{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           orderID,
		ProductID:         productID,
		ProductName:       productName,
		PresentationID:    presentationID,
		OrderedQuantity:   quantity,
		ReceivedQuantity:  decimal.Zero,
		UnitCost:          unitCost,
		Amount:            quantity.Mul(unitCost),
		ExpiryDate:        expiryDate,
		RequisitionLineID: requisitionLineID,
	}, nil
}

// RemainingQuantity returns the quantity still to be received, never negative
func (i *PurchaseLineItem) RemainingQuantity() decimal.Decimal {
	remaining := i.OrderedQuantity.Sub(i.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseLineItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// CanReceive returns true if more goods can be received for this line
func (i *PurchaseLineItem) CanReceive() bool {
	return i.ReceivedQuantity.LessThan(i.OrderedQuantity)
}

// PurchaseOrder is the aggregate root for a supplier order. It is created
// when a requisition or sales order is converted to a purchase and mutated
// by every reception; once goods are received it is never deleted.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber   string
	SupplierID    uuid.UUID
	SupplierName  string // Denormalized for display
	BranchID      *uuid.UUID
	Status        PurchaseOrderStatus
	Items         []PurchaseLineItem
	TotalAmount   decimal.Decimal
	RequisitionID *uuid.UUID
	SalesOrderID  *uuid.UUID
	HasInvoice    bool
	Notes         string
	CancelledAt   *time.Time
	CancelReason  string
}

// NewPurchaseOrder creates a new purchase order awaiting delivery
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, branchID *uuid.UUID) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("VALIDATION", "order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("VALIDATION", "order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "supplier cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		BranchID:          branchID,
		Status:            PurchaseOrderStatusAwaitingDelivery,
		Items:             make([]PurchaseLineItem, 0),
		TotalAmount:       decimal.Zero,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds an ordered line to the order.
// Only allowed before any goods have arrived.
func (o *PurchaseOrder) AddLine(
	productID uuid.UUID,
	productName string,
	presentationID *uuid.UUID,
	quantity, unitCost decimal.Decimal,
	expiryDate *time.Time,
	requisitionLineID *uuid.UUID,
) (*PurchaseLineItem, error) {
	if o.Status != PurchaseOrderStatusAwaitingDelivery {
		return nil, shared.NewDomainError("INVALID_STATE", "cannot add lines once receiving has started")
	}

	item, err := NewPurchaseLineItem(o.ID, productID, productName, presentationID, quantity, unitCost, expiryDate, requisitionLineID)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.Touch()

	return item, nil
}

// FindLine returns the line with the given id
func (o *PurchaseOrder) FindLine(lineID uuid.UUID) *PurchaseLineItem {
	for idx := range o.Items {
		if o.Items[idx].ID == lineID {
			return &o.Items[idx]
		}
	}
	return nil
}

// ReceivableLines returns lines that can still receive goods
func (o *PurchaseOrder) ReceivableLines() []PurchaseLineItem {
	lines := make([]PurchaseLineItem, 0)
	for _, item := range o.Items {
		if item.CanReceive() {
			lines = append(lines, item)
		}
	}
	return lines
}

// ApplyReceivedQuantity records quantity received against a line, applying
// the over-receipt policy. Returns the quantity actually accepted, which
// under PolicyClamp may be less than requested.
func (o *PurchaseOrder) ApplyReceivedQuantity(lineID uuid.UUID, quantity decimal.Decimal, policy OverReceiptPolicy) (decimal.Decimal, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "receive quantity must be positive")
	}

	line := o.FindLine(lineID)
	if line == nil {
		return decimal.Zero, shared.NewDomainError("VALIDATION",
			fmt.Sprintf("line %s does not belong to order %s", lineID, o.OrderNumber))
	}

	accepted := quantity
	if line.ReceivedQuantity.Add(quantity).GreaterThan(line.OrderedQuantity) {
		switch policy {
		case PolicyReject:
			return decimal.Zero, shared.NewDomainError("OVER_RECEIPT",
				fmt.Sprintf("cannot receive %s, only %s remaining on line", quantity, line.RemainingQuantity()))
		case PolicyClamp:
			accepted = line.RemainingQuantity()
			if accepted.IsZero() {
				return decimal.Zero, shared.NewDomainError("OVER_RECEIPT", "line is already fully received")
			}
		case PolicyAllow:
			// Accept in full; the caller logs a warning.
		}
	}

	line.ReceivedQuantity = line.ReceivedQuantity.Add(accepted)
	line.Touch()
	o.Touch()

	return accepted, nil
}

// RefreshStatus derives the status from the order-wide totals after a
// reception and records the transition event when the status changes.
func (o *PurchaseOrder) RefreshStatus() error {
	derived := DeriveStatus(o.TotalReceivedQuantity(), o.TotalOrderedQuantity())
	if derived == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(derived) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("order in %s status cannot transition to %s", o.Status, derived))
	}
	o.Status = derived
	o.Touch()
	return nil
}

// Cancel cancels an order no goods have been received against
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION", "cancel reason is required")
	}
	if o.hasReceivedAnyGoods() {
		return shared.NewDomainError("INVALID_STATE", "cannot cancel order after goods have been received")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// MarkInvoiced flags the order as backed by a supplier invoice
func (o *PurchaseOrder) MarkInvoiced() {
	o.HasInvoice = true
	o.Touch()
}

// recalculateTotal recalculates the order total from its lines
func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// hasReceivedAnyGoods checks if any goods have been received
func (o *PurchaseOrder) hasReceivedAnyGoods() bool {
	for _, item := range o.Items {
		if item.ReceivedQuantity.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// TotalReceivedQuantity returns the order-wide cumulative received quantity
func (o *PurchaseOrder) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ReceivedQuantity)
	}
	return total
}

// TotalOrderedQuantity returns the order-wide ordered quantity
func (o *PurchaseOrder) TotalOrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.OrderedQuantity)
	}
	return total
}

// IsReceived returns true if the order is fully received
func (o *PurchaseOrder) IsReceived() bool {
	return o.Status == PurchaseOrderStatusReceived
}

// IsCancelled returns true if the order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.Status == PurchaseOrderStatusCancelled
}

// CanReceiveGoods returns true if the order can receive goods
func (o *PurchaseOrder) CanReceiveGoods() bool {
	return o.Status.CanReceive()
}
