package models

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AggregateModel
	Number     string                `gorm:"type:varchar(64);not null"`
	BranchID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID             `gorm:"type:uuid"`
	Status     sales.OrderStatus     `gorm:"type:varchar(32);not null"`
	Lines      []SalesOrderItemModel `gorm:"foreignKey:SalesOrderID;references:ID"`
	Total      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder entity.
func (m *SalesOrderModel) ToDomain() *sales.SalesOrder {
	order := &sales.SalesOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		BranchID:          m.BranchID,
		CustomerID:        m.CustomerID,
		Status:            m.Status,
		Total:             m.Total,
		Lines:             make([]sales.OrderLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		order.Lines[i] = *line.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain SalesOrder entity.
func (m *SalesOrderModel) FromDomain(o *sales.SalesOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Number = o.Number
	m.BranchID = o.BranchID
	m.CustomerID = o.CustomerID
	m.Status = o.Status
	m.Total = o.Total
	m.Lines = make([]SalesOrderItemModel, len(o.Lines))
	for i, line := range o.Lines {
		m.Lines[i] = *SalesOrderItemModelFromDomain(&line)
	}
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder entity.
func SalesOrderModelFromDomain(o *sales.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(o)
	return m
}

// SalesOrderItemModel is the persistence model for the OrderLine entity.
type SalesOrderItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SalesOrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PresentationID *uuid.UUID      `gorm:"type:uuid"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain OrderLine entity.
func (m *SalesOrderItemModel) ToDomain() *sales.OrderLine {
	line := &sales.OrderLine{
		SalesOrderID:   m.SalesOrderID,
		ProductID:      m.ProductID,
		PresentationID: m.PresentationID,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
	}
	line.ID = m.ID
	line.CreatedAt = m.CreatedAt
	line.UpdatedAt = m.UpdatedAt
	return line
}

// FromDomain populates the persistence model from a domain OrderLine entity.
func (m *SalesOrderItemModel) FromDomain(l *sales.OrderLine) {
	m.ID = l.ID
	m.SalesOrderID = l.SalesOrderID
	m.ProductID = l.ProductID
	m.PresentationID = l.PresentationID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// SalesOrderItemModelFromDomain creates a new persistence model from a domain OrderLine entity.
func SalesOrderItemModelFromDomain(l *sales.OrderLine) *SalesOrderItemModel {
	m := &SalesOrderItemModel{}
	m.FromDomain(l)
	return m
}
