package purchasing

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiveLineInput is one delivered line in a PARTIAL reception
type ReceiveLineInput struct {
	LineItemID uuid.UUID        `json:"line_item_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"` // Overrides the ordered cost when set
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
	LotCode    string           `json:"lot_code,omitempty"`
}

// ReceiveRequest is the full input to one reception call
type ReceiveRequest struct {
	PurchaseOrderID uuid.UUID                `json:"purchase_order_id"`
	UserID          uuid.UUID                `json:"user_id"`
	Mode            purchasing.ReceptionMode `json:"mode"`
	SupplierID      *uuid.UUID               `json:"supplier_id,omitempty"`
	BranchID        *uuid.UUID               `json:"branch_id,omitempty"` // Overrides the order's branch
	Notes           string                   `json:"notes,omitempty"`
	PaymentMethod   finance.PaymentMethod    `json:"payment_method"`
	CashShiftID     *uuid.UUID               `json:"cash_shift_id,omitempty"`
	BankAccountID   *uuid.UUID               `json:"bank_account_id,omitempty"`
	ExtraCosts      decimal.Decimal          `json:"extra_costs"`
	IdempotencyKey  string                   `json:"idempotency_key,omitempty"`
	Lines           []ReceiveLineInput       `json:"lines,omitempty"` // Required for PARTIAL, ignored for AUTO
}

// ReceivedLineResult describes one line's outcome in a reception
type ReceivedLineResult struct {
	LineItemID     uuid.UUID       `json:"line_item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LotID          *uuid.UUID      `json:"lot_id,omitempty"`
	PackagedLotID  *uuid.UUID      `json:"packaged_lot_id,omitempty"`
	PresentationID *uuid.UUID      `json:"presentation_id,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
}

// ReceiveResult is the response to a reception call
type ReceiveResult struct {
	PurchaseOrderID     uuid.UUID                      `json:"purchase_order_id"`
	OrderNumber         string                         `json:"order_number"`
	Status              purchasing.PurchaseOrderStatus `json:"status"`
	TotalAmount         decimal.Decimal                `json:"total_amount"`
	ReceptionID         uuid.UUID                      `json:"reception_id"`
	FinancialMovementID uuid.UUID                      `json:"financial_movement_id"`
	AllocationRecordID  *uuid.UUID                     `json:"allocation_record_id,omitempty"`
	BranchID            uuid.UUID                      `json:"branch_id"`
	Lines               []ReceivedLineResult           `json:"lines"`
	ReceivedAmount      decimal.Decimal                `json:"received_amount"`
	Replayed            bool                           `json:"replayed,omitempty"` // True when served from the idempotency store
}

// HistoryLine summarizes one order line across all receptions
type HistoryLine struct {
	LineItemID     uuid.UUID       `json:"line_item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	PresentationID *uuid.UUID      `json:"presentation_id,omitempty"`
	Ordered        decimal.Decimal `json:"ordered"`
	Received       decimal.Decimal `json:"received"`
	Pending        decimal.Decimal `json:"pending"`
}

// HistoryReception summarizes one reception event
type HistoryReception struct {
	ReceptionID uuid.UUID                      `json:"reception_id"`
	ReceivedBy  uuid.UUID                      `json:"received_by"`
	ReceivedAt  time.Time                      `json:"received_at"`
	Mode        purchasing.ReceptionMode       `json:"mode"`
	Notes       string                         `json:"notes,omitempty"`
	Lines       []purchasing.ReceptionLineItem `json:"lines"`
}

// ReceptionHistory flattens all prior reception events for display
type ReceptionHistory struct {
	PurchaseOrderID uuid.UUID                      `json:"purchase_order_id"`
	OrderNumber     string                         `json:"order_number"`
	Status          purchasing.PurchaseOrderStatus `json:"status"`
	Lines           []HistoryLine                  `json:"lines"`
	Receptions      []HistoryReception             `json:"receptions"`
}

// CreateLineInput is one ordered line in a create-order request
type CreateLineInput struct {
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	PresentationID    *uuid.UUID      `json:"presentation_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	RequisitionLineID *uuid.UUID      `json:"requisition_line_id,omitempty"`
}

// CreateOrderRequest creates a purchase order, optionally from a source document
type CreateOrderRequest struct {
	SupplierID    uuid.UUID         `json:"supplier_id"`
	SupplierName  string            `json:"supplier_name"`
	BranchID      *uuid.UUID        `json:"branch_id,omitempty"`
	RequisitionID *uuid.UUID        `json:"requisition_id,omitempty"`
	SalesOrderID  *uuid.UUID        `json:"sales_order_id,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Lines         []CreateLineInput `json:"lines"`
}

// OrderLineResponse is one line in an order response
type OrderLineResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	PresentationID    *uuid.UUID      `json:"presentation_id,omitempty"`
	OrderedQuantity   decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Amount            decimal.Decimal `json:"amount"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	RequisitionLineID *uuid.UUID      `json:"requisition_line_id,omitempty"`
}

// OrderResponse is the purchase order representation returned upward
type OrderResponse struct {
	ID            uuid.UUID                      `json:"id"`
	OrderNumber   string                         `json:"order_number"`
	SupplierID    uuid.UUID                      `json:"supplier_id"`
	SupplierName  string                         `json:"supplier_name"`
	BranchID      *uuid.UUID                     `json:"branch_id,omitempty"`
	Status        purchasing.PurchaseOrderStatus `json:"status"`
	TotalAmount   decimal.Decimal                `json:"total_amount"`
	RequisitionID *uuid.UUID                     `json:"requisition_id,omitempty"`
	SalesOrderID  *uuid.UUID                     `json:"sales_order_id,omitempty"`
	HasInvoice    bool                           `json:"has_invoice"`
	Notes         string                         `json:"notes,omitempty"`
	CreatedAt     time.Time                      `json:"created_at"`
	Lines         []OrderLineResponse            `json:"lines"`
}

// ToOrderResponse maps a purchase order aggregate to its response form
func ToOrderResponse(o *purchasing.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, OrderLineResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			PresentationID:    item.PresentationID,
			OrderedQuantity:   item.OrderedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			UnitCost:          item.UnitCost,
			Amount:            item.Amount,
			ExpiryDate:        item.ExpiryDate,
			RequisitionLineID: item.RequisitionLineID,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		BranchID:      o.BranchID,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		RequisitionID: o.RequisitionID,
		SalesOrderID:  o.SalesOrderID,
		HasInvoice:    o.HasInvoice,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		Lines:         lines,
	}
}
