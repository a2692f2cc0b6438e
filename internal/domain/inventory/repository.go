package inventory

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotRepository persists base-unit lots.
// Aggregation queries must see lots created within the same still-open
// transaction when reached through the transaction scope.
type LotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindByReception(ctx context.Context, receptionID uuid.UUID) ([]Lot, error)
	FindByProduct(ctx context.Context, productID, branchID uuid.UUID, filter shared.Filter) ([]Lot, error)
	Save(ctx context.Context, lot *Lot) error
	TotalQuantityForProduct(ctx context.Context, productID, branchID uuid.UUID) (decimal.Decimal, error)
}

// PackagedLotRepository persists presentation-unit lots
type PackagedLotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PackagedLot, error)
	FindByReception(ctx context.Context, receptionID uuid.UUID) ([]PackagedLot, error)
	FindByPresentation(ctx context.Context, presentationID, branchID uuid.UUID, filter shared.Filter) ([]PackagedLot, error)
	Save(ctx context.Context, lot *PackagedLot) error
	TotalQuantityForPresentation(ctx context.Context, presentationID, branchID uuid.UUID) (decimal.Decimal, error)
}
