package models

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	AggregateModel
	OrderNumber   string                         `gorm:"type:varchar(64);not null;uniqueIndex"`
	SupplierID    uuid.UUID                      `gorm:"type:uuid;not null;index"`
	SupplierName  string                         `gorm:"type:varchar(255);not null"`
	BranchID      *uuid.UUID                     `gorm:"type:uuid;index"`
	Status        purchasing.PurchaseOrderStatus `gorm:"type:varchar(32);not null"`
	Items         []PurchaseOrderItemModel       `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount   decimal.Decimal                `gorm:"type:decimal(18,4);not null;default:0"`
	RequisitionID *uuid.UUID                     `gorm:"type:uuid;index"`
	SalesOrderID  *uuid.UUID                     `gorm:"type:uuid;index"`
	HasInvoice    bool                           `gorm:"not null;default:false"`
	Notes         string                         `gorm:"type:text"`
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) ToDomain() *purchasing.PurchaseOrder {
	order := &purchasing.PurchaseOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		BranchID:          m.BranchID,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		RequisitionID:     m.RequisitionID,
		SalesOrderID:      m.SalesOrderID,
		HasInvoice:        m.HasInvoice,
		Notes:             m.Notes,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Items:             make([]purchasing.PurchaseLineItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain PurchaseOrder entity.
func (m *PurchaseOrderModel) FromDomain(o *purchasing.PurchaseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.SupplierID = o.SupplierID
	m.SupplierName = o.SupplierName
	m.BranchID = o.BranchID
	m.Status = o.Status
	m.TotalAmount = o.TotalAmount
	m.RequisitionID = o.RequisitionID
	m.SalesOrderID = o.SalesOrderID
	m.HasInvoice = o.HasInvoice
	m.Notes = o.Notes
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Items = make([]PurchaseOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *PurchaseOrderItemModelFromDomain(&item)
	}
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder entity.
func PurchaseOrderModelFromDomain(o *purchasing.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{}
	m.FromDomain(o)
	return m
}

// PurchaseOrderItemModel is the persistence model for the PurchaseLineItem entity.
type PurchaseOrderItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName       string          `gorm:"type:varchar(255);not null"`
	PresentationID    *uuid.UUID      `gorm:"type:uuid"`
	OrderedQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryDate        *time.Time
	RequisitionLineID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PurchaseLineItem entity.
func (m *PurchaseOrderItemModel) ToDomain() *purchasing.PurchaseLineItem {
	item := &purchasing.PurchaseLineItem{
		OrderID:           m.OrderID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		PresentationID:    m.PresentationID,
		OrderedQuantity:   m.OrderedQuantity,
		ReceivedQuantity:  m.ReceivedQuantity,
		UnitCost:          m.UnitCost,
		Amount:            m.Amount,
		ExpiryDate:        m.ExpiryDate,
		RequisitionLineID: m.RequisitionLineID,
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return item
}

// FromDomain populates the persistence model from a domain PurchaseLineItem entity.
func (m *PurchaseOrderItemModel) FromDomain(i *purchasing.PurchaseLineItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.PresentationID = i.PresentationID
	m.OrderedQuantity = i.OrderedQuantity
	m.ReceivedQuantity = i.ReceivedQuantity
	m.UnitCost = i.UnitCost
	m.Amount = i.Amount
	m.ExpiryDate = i.ExpiryDate
	m.RequisitionLineID = i.RequisitionLineID
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// PurchaseOrderItemModelFromDomain creates a new persistence model from a domain PurchaseLineItem entity.
func PurchaseOrderItemModelFromDomain(i *purchasing.PurchaseLineItem) *PurchaseOrderItemModel {
	m := &PurchaseOrderItemModel{}
	m.FromDomain(i)
	return m
}

// ReceptionModel is the persistence model for the ReceptionEvent entity.
type ReceptionModel struct {
	BaseModel
	PurchaseOrderID uuid.UUID                `gorm:"type:uuid;not null;index"`
	BranchID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	ReceivedBy      uuid.UUID                `gorm:"type:uuid;not null"`
	Mode            purchasing.ReceptionMode `gorm:"type:varchar(16);not null"`
	Notes           string                   `gorm:"type:text"`
	Lines           []ReceptionItemModel     `gorm:"foreignKey:ReceptionID;references:ID"`
}

// TableName returns the table name for GORM
func (ReceptionModel) TableName() string {
	return "receptions"
}

// ToDomain converts the persistence model to a domain ReceptionEvent entity.
func (m *ReceptionModel) ToDomain() *purchasing.ReceptionEvent {
	event := &purchasing.ReceptionEvent{
		BaseEntity:      m.BaseModel.ToDomain(),
		PurchaseOrderID: m.PurchaseOrderID,
		BranchID:        m.BranchID,
		ReceivedBy:      m.ReceivedBy,
		Mode:            m.Mode,
		Notes:           m.Notes,
		Lines:           make([]purchasing.ReceptionLineItem, len(m.Lines)),
	}
	for i, line := range m.Lines {
		event.Lines[i] = *line.ToDomain()
	}
	return event
}

// FromDomain populates the persistence model from a domain ReceptionEvent entity.
func (m *ReceptionModel) FromDomain(e *purchasing.ReceptionEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.PurchaseOrderID = e.PurchaseOrderID
	m.BranchID = e.BranchID
	m.ReceivedBy = e.ReceivedBy
	m.Mode = e.Mode
	m.Notes = e.Notes
	m.Lines = make([]ReceptionItemModel, len(e.Lines))
	for i, line := range e.Lines {
		m.Lines[i] = *ReceptionItemModelFromDomain(&line)
	}
}

// ReceptionModelFromDomain creates a new persistence model from a domain ReceptionEvent entity.
func ReceptionModelFromDomain(e *purchasing.ReceptionEvent) *ReceptionModel {
	m := &ReceptionModel{}
	m.FromDomain(e)
	return m
}

// ReceptionItemModel is the persistence model for the ReceptionLineItem entity.
type ReceptionItemModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceptionID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseLineItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryDate         *time.Time
	LotID              *uuid.UUID `gorm:"type:uuid"`
	PackagedLotID      *uuid.UUID `gorm:"type:uuid"`
	LotCode            string     `gorm:"type:varchar(64)"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceptionItemModel) TableName() string {
	return "reception_items"
}

// ToDomain converts the persistence model to a domain ReceptionLineItem entity.
func (m *ReceptionItemModel) ToDomain() *purchasing.ReceptionLineItem {
	line := &purchasing.ReceptionLineItem{
		ReceptionID:        m.ReceptionID,
		PurchaseLineItemID: m.PurchaseLineItemID,
		Quantity:           m.Quantity,
		UnitCost:           m.UnitCost,
		ExpiryDate:         m.ExpiryDate,
		LotID:              m.LotID,
		PackagedLotID:      m.PackagedLotID,
		LotCode:            m.LotCode,
	}
	line.ID = m.ID
	line.CreatedAt = m.CreatedAt
	line.UpdatedAt = m.UpdatedAt
	return line
}

// FromDomain populates the persistence model from a domain ReceptionLineItem entity.
func (m *ReceptionItemModel) FromDomain(l *purchasing.ReceptionLineItem) {
	m.ID = l.ID
	m.ReceptionID = l.ReceptionID
	m.PurchaseLineItemID = l.PurchaseLineItemID
	m.Quantity = l.Quantity
	m.UnitCost = l.UnitCost
	m.ExpiryDate = l.ExpiryDate
	m.LotID = l.LotID
	m.PackagedLotID = l.PackagedLotID
	m.LotCode = l.LotCode
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// ReceptionItemModelFromDomain creates a new persistence model from a domain ReceptionLineItem entity.
func ReceptionItemModelFromDomain(l *purchasing.ReceptionLineItem) *ReceptionItemModel {
	m := &ReceptionItemModel{}
	m.FromDomain(l)
	return m
}
