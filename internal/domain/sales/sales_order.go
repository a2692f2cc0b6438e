package sales

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a sales order, as far as the
// purchasing flow needs to see it
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConverted OrderStatus = "CONVERTED"
	// StatusReceived means the purchase backing this order has arrived
	StatusReceived  OrderStatus = "RECEIVED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderLine is one sold product on a sales order
type OrderLine struct {
	shared.BaseEntity
	SalesOrderID   uuid.UUID
	ProductID      uuid.UUID
	PresentationID *uuid.UUID
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
}

// SalesOrder is a customer order that may trigger a purchase
type SalesOrder struct {
	shared.BaseAggregateRoot
	Number     string
	BranchID   uuid.UUID
	CustomerID uuid.UUID
	Status     OrderStatus
	Lines      []OrderLine
	Total      decimal.Decimal
}

// MarkReceived records that goods purchased for this order have arrived.
// There is no partial state on the sales side.
func (o *SalesOrder) MarkReceived() {
	o.Status = StatusReceived
	o.Touch()
}

// LinesForProduct returns the order lines selling the given product
func (o *SalesOrder) LinesForProduct(productID uuid.UUID) []OrderLine {
	var matched []OrderLine
	for _, line := range o.Lines {
		if line.ProductID == productID {
			matched = append(matched, line)
		}
	}
	return matched
}
