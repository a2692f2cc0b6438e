package persistence

import (
	"context"
	"errors"

	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReception finds all lots created by a reception event
func (r *GormLotRepository) FindByReception(ctx context.Context, receptionID uuid.UUID) ([]inventory.Lot, error) {
	var lotModels []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("reception_id = ?", receptionID).
		Order("created_at ASC").
		Find(&lotModels).Error; err != nil {
		return nil, err
	}
	lots := make([]inventory.Lot, len(lotModels))
	for i, model := range lotModels {
		lots[i] = *model.ToDomain()
	}
	return lots, nil
}

// FindByProduct finds lots for a product within a branch
func (r *GormLotRepository) FindByProduct(ctx context.Context, productID, branchID uuid.UUID, filter shared.Filter) ([]inventory.Lot, error) {
	var lotModels []models.LotModel
	query := r.db.WithContext(ctx).Model(&models.LotModel{}).
		Where("product_id = ? AND branch_id = ?", productID, branchID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("received_at ASC")

	if err := query.Find(&lotModels).Error; err != nil {
		return nil, err
	}
	lots := make([]inventory.Lot, len(lotModels))
	for i, model := range lotModels {
		lots[i] = *model.ToDomain()
	}
	return lots, nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	model := models.LotModelFromDomain(lot)
	return r.db.WithContext(ctx).Save(model).Error
}

// TotalQuantityForProduct sums base-unit quantity across all lots of a product in a branch
func (r *GormLotRepository) TotalQuantityForProduct(ctx context.Context, productID, branchID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Ensure GormLotRepository implements LotRepository
var _ inventory.LotRepository = (*GormLotRepository)(nil)
