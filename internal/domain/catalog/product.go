package catalog

import (
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a purchasable good in its base unit of measure
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Code        string
	Unit        string // Base unit of measure (kg, l, pz)
	DefaultCost decimal.Decimal
	Active      bool
}

// NewProduct creates a new product
func NewProduct(name, code, unit string, defaultCost decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "product name is required")
	}
	if unit == "" {
		return nil, shared.NewDomainError("VALIDATION", "product unit is required")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Unit:              unit,
		DefaultCost:       defaultCost,
		Active:            true,
	}, nil
}

// Presentation is a packaged representation of a product with a fixed
// conversion factor to base units (e.g. a 25 kg sack has factor 25).
type Presentation struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	Name        string
	Factor      decimal.Decimal // Base units per package
	DefaultCost decimal.Decimal
	Active      bool
}

// NewPresentation creates a new presentation for a product
func NewPresentation(productID uuid.UUID, name string, factor, defaultCost decimal.Decimal) (*Presentation, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "presentation requires a product")
	}
	if !factor.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION", "presentation factor must be positive")
	}
	return &Presentation{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		Name:        name,
		Factor:      factor,
		DefaultCost: defaultCost,
		Active:      true,
	}, nil
}

// BelongsTo returns true if the presentation packages the given product
func (p *Presentation) BelongsTo(productID uuid.UUID) bool {
	return p.ProductID == productID
}

// ToBaseUnits converts a quantity expressed in presentation units to base units
func (p *Presentation) ToBaseUnits(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(p.Factor)
}
