package models

import (
	"time"

	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotModel is the persistence model for base-unit lots.
type LotModel struct {
	BaseModel
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_lots_product_branch,priority:1"`
	BranchID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_lots_product_branch,priority:2"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAt time.Time       `gorm:"not null"`
	ExpiryDate *time.Time
	ReceptionID *uuid.UUID `gorm:"type:uuid;index"`
	LotCode     string     `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot entity.
func (m *LotModel) ToDomain() *inventory.Lot {
	return &inventory.Lot{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		BranchID:    m.BranchID,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		ReceivedAt:  m.ReceivedAt,
		ExpiryDate:  m.ExpiryDate,
		ReceptionID: m.ReceptionID,
		LotCode:     m.LotCode,
	}
}

// FromDomain populates the persistence model from a domain Lot entity.
func (m *LotModel) FromDomain(l *inventory.Lot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.BranchID = l.BranchID
	m.Quantity = l.Quantity
	m.UnitCost = l.UnitCost
	m.TotalCost = l.TotalCost
	m.ReceivedAt = l.ReceivedAt
	m.ExpiryDate = l.ExpiryDate
	m.ReceptionID = l.ReceptionID
	m.LotCode = l.LotCode
}

// LotModelFromDomain creates a new persistence model from a domain Lot entity.
func LotModelFromDomain(l *inventory.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}

// PackagedLotModel is the persistence model for presentation-unit lots.
type PackagedLotModel struct {
	BaseModel
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PresentationID uuid.UUID       `gorm:"type:uuid;not null;index:idx_packaged_lots_presentation_branch,priority:1"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_packaged_lots_presentation_branch,priority:2"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAt     time.Time       `gorm:"not null"`
	ExpiryDate     *time.Time
	ReceptionID    *uuid.UUID `gorm:"type:uuid;index"`
	LotCode        string     `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (PackagedLotModel) TableName() string {
	return "packaged_lots"
}

// ToDomain converts the persistence model to a domain PackagedLot entity.
func (m *PackagedLotModel) ToDomain() *inventory.PackagedLot {
	return &inventory.PackagedLot{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		PresentationID: m.PresentationID,
		BranchID:       m.BranchID,
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		TotalCost:      m.TotalCost,
		ReceivedAt:     m.ReceivedAt,
		ExpiryDate:     m.ExpiryDate,
		ReceptionID:    m.ReceptionID,
		LotCode:        m.LotCode,
	}
}

// FromDomain populates the persistence model from a domain PackagedLot entity.
func (m *PackagedLotModel) FromDomain(l *inventory.PackagedLot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.PresentationID = l.PresentationID
	m.BranchID = l.BranchID
	m.Quantity = l.Quantity
	m.UnitCost = l.UnitCost
	m.TotalCost = l.TotalCost
	m.ReceivedAt = l.ReceivedAt
	m.ExpiryDate = l.ExpiryDate
	m.ReceptionID = l.ReceptionID
	m.LotCode = l.LotCode
}

// PackagedLotModelFromDomain creates a new persistence model from a domain PackagedLot entity.
func PackagedLotModelFromDomain(l *inventory.PackagedLot) *PackagedLotModel {
	m := &PackagedLotModel{}
	m.FromDomain(l)
	return m
}
