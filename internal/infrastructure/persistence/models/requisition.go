package models

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequisitionModel is the persistence model for the Requisition aggregate root.
type RequisitionModel struct {
	AggregateModel
	Number      string                       `gorm:"type:varchar(64);not null"`
	BranchID    uuid.UUID                    `gorm:"type:uuid;not null;index"`
	RequestedBy uuid.UUID                    `gorm:"type:uuid"`
	Status      requisition.RequisitionStatus `gorm:"type:varchar(32);not null"`
	Lines       []RequisitionItemModel       `gorm:"foreignKey:RequisitionID;references:ID"`
	Notes       string                       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RequisitionModel) TableName() string {
	return "requisitions"
}

// ToDomain converts the persistence model to a domain Requisition entity.
func (m *RequisitionModel) ToDomain() *requisition.Requisition {
	req := &requisition.Requisition{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		BranchID:          m.BranchID,
		RequestedBy:       m.RequestedBy,
		Status:            m.Status,
		Notes:             m.Notes,
		Lines:             make([]requisition.RequisitionLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		req.Lines[i] = *line.ToDomain()
	}
	return req
}

// FromDomain populates the persistence model from a domain Requisition entity.
func (m *RequisitionModel) FromDomain(r *requisition.Requisition) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Number = r.Number
	m.BranchID = r.BranchID
	m.RequestedBy = r.RequestedBy
	m.Status = r.Status
	m.Notes = r.Notes
	m.Lines = make([]RequisitionItemModel, len(r.Lines))
	for i, line := range r.Lines {
		m.Lines[i] = *RequisitionItemModelFromDomain(&line)
	}
}

// RequisitionModelFromDomain creates a new persistence model from a domain Requisition entity.
func RequisitionModelFromDomain(r *requisition.Requisition) *RequisitionModel {
	m := &RequisitionModel{}
	m.FromDomain(r)
	return m
}

// RequisitionItemModel is the persistence model for the RequisitionLine entity.
type RequisitionItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequisitionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	PresentationID    *uuid.UUID      `gorm:"type:uuid"`
	SuggestedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryDate        *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RequisitionItemModel) TableName() string {
	return "requisition_items"
}

// ToDomain converts the persistence model to a domain RequisitionLine entity.
func (m *RequisitionItemModel) ToDomain() *requisition.RequisitionLine {
	line := &requisition.RequisitionLine{
		RequisitionID:     m.RequisitionID,
		ProductID:         m.ProductID,
		PresentationID:    m.PresentationID,
		SuggestedQuantity: m.SuggestedQuantity,
		ReceivedQuantity:  m.ReceivedQuantity,
		ExpiryDate:        m.ExpiryDate,
	}
	line.ID = m.ID
	line.CreatedAt = m.CreatedAt
	line.UpdatedAt = m.UpdatedAt
	return line
}

// FromDomain populates the persistence model from a domain RequisitionLine entity.
func (m *RequisitionItemModel) FromDomain(l *requisition.RequisitionLine) {
	m.ID = l.ID
	m.RequisitionID = l.RequisitionID
	m.ProductID = l.ProductID
	m.PresentationID = l.PresentationID
	m.SuggestedQuantity = l.SuggestedQuantity
	m.ReceivedQuantity = l.ReceivedQuantity
	m.ExpiryDate = l.ExpiryDate
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// RequisitionItemModelFromDomain creates a new persistence model from a domain RequisitionLine entity.
func RequisitionItemModelFromDomain(l *requisition.RequisitionLine) *RequisitionItemModel {
	m := &RequisitionItemModel{}
	m.FromDomain(l)
	return m
}

// LineReceptionModel is the persistence model for requisition-line reception linkages.
type LineReceptionModel struct {
	BaseModel
	RequisitionLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceptionID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (LineReceptionModel) TableName() string {
	return "requisition_line_receptions"
}

// ToDomain converts the persistence model to a domain LineReception entity.
func (m *LineReceptionModel) ToDomain() *requisition.LineReception {
	return &requisition.LineReception{
		BaseEntity:        m.BaseModel.ToDomain(),
		RequisitionLineID: m.RequisitionLineID,
		ReceptionID:       m.ReceptionID,
		Quantity:          m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain LineReception entity.
func (m *LineReceptionModel) FromDomain(l *requisition.LineReception) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.RequisitionLineID = l.RequisitionLineID
	m.ReceptionID = l.ReceptionID
	m.Quantity = l.Quantity
}

// LineReceptionModelFromDomain creates a new persistence model from a domain LineReception entity.
func LineReceptionModelFromDomain(l *requisition.LineReception) *LineReceptionModel {
	m := &LineReceptionModel{}
	m.FromDomain(l)
	return m
}
