package catalog

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	shared.Repository[Product]
	FindByCode(ctx context.Context, code string) (*Product, error)
}

// PresentationRepository provides access to product presentations
type PresentationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Presentation, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Presentation, error)
	Save(ctx context.Context, presentation *Presentation) error
}
