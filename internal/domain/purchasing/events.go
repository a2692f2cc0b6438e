package purchasing

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return "PurchaseOrderCreated"
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseOrderCreated", "PurchaseOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		SupplierID:      o.SupplierID,
	}
}

// GoodsReceivedEvent is raised when a reception event is recorded
type GoodsReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID           `json:"order_id"`
	OrderNumber string              `json:"order_number"`
	ReceptionID uuid.UUID           `json:"reception_id"`
	ReceivedBy  uuid.UUID           `json:"received_by"`
	Mode        ReceptionMode       `json:"mode"`
	LineCount   int                 `json:"line_count"`
	Amount      decimal.Decimal     `json:"amount"`
	NewStatus   PurchaseOrderStatus `json:"new_status"`
}

// EventType returns the event type name
func (e *GoodsReceivedEvent) EventType() string {
	return "GoodsReceived"
}

// NewGoodsReceivedEvent creates a new GoodsReceivedEvent
func NewGoodsReceivedEvent(o *PurchaseOrder, reception *ReceptionEvent) *GoodsReceivedEvent {
	return &GoodsReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("GoodsReceived", "PurchaseOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		ReceptionID:     reception.ID,
		ReceivedBy:      reception.ReceivedBy,
		Mode:            reception.Mode,
		LineCount:       len(reception.Lines),
		Amount:          reception.TotalAmount(),
		NewStatus:       o.Status,
	}
}

// PurchaseOrderCancelledEvent is raised when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// EventType returns the event type name
func (e *PurchaseOrderCancelledEvent) EventType() string {
	return "PurchaseOrderCancelled"
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(o *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseOrderCancelled", "PurchaseOrder", o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		Reason:          o.CancelReason,
	}
}
