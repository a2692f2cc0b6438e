package models

import (
	"github.com/goodsflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(255);not null"`
	Code        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Unit        string          `gorm:"type:varchar(32);not null"`
	DefaultCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Code:              m.Code,
		Unit:              m.Unit,
		DefaultCost:       m.DefaultCost,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Code = p.Code
	m.Unit = p.Unit
	m.DefaultCost = p.DefaultCost
	m.Active = p.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// PresentationModel is the persistence model for the Presentation entity.
type PresentationModel struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Factor      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DefaultCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PresentationModel) TableName() string {
	return "presentations"
}

// ToDomain converts the persistence model to a domain Presentation entity.
func (m *PresentationModel) ToDomain() *catalog.Presentation {
	return &catalog.Presentation{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		Name:        m.Name,
		Factor:      m.Factor,
		DefaultCost: m.DefaultCost,
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain Presentation entity.
func (m *PresentationModel) FromDomain(p *catalog.Presentation) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ProductID = p.ProductID
	m.Name = p.Name
	m.Factor = p.Factor
	m.DefaultCost = p.DefaultCost
	m.Active = p.Active
}

// PresentationModelFromDomain creates a new persistence model from a domain Presentation entity.
func PresentationModelFromDomain(p *catalog.Presentation) *PresentationModel {
	m := &PresentationModel{}
	m.FromDomain(p)
	return m
}
