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

// GormPackagedLotRepository implements PackagedLotRepository using GORM
type GormPackagedLotRepository struct {
	db *gorm.DB
}

// NewGormPackagedLotRepository creates a new GormPackagedLotRepository
func NewGormPackagedLotRepository(db *gorm.DB) *GormPackagedLotRepository {
	return &GormPackagedLotRepository{db: db}
}

// FindByID finds a packaged lot by its ID
func (r *GormPackagedLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.PackagedLot, error) {
	var model models.PackagedLotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReception finds all packaged lots created by a reception event
func (r *GormPackagedLotRepository) FindByReception(ctx context.Context, receptionID uuid.UUID) ([]inventory.PackagedLot, error) {
	var lotModels []models.PackagedLotModel
	if err := r.db.WithContext(ctx).
		Where("reception_id = ?", receptionID).
		Order("created_at ASC").
		Find(&lotModels).Error; err != nil {
		return nil, err
	}
	lots := make([]inventory.PackagedLot, len(lotModels))
	for i, model := range lotModels {
		lots[i] = *model.ToDomain()
	}
	return lots, nil
}

// FindByPresentation finds packaged lots for a presentation within a branch
func (r *GormPackagedLotRepository) FindByPresentation(ctx context.Context, presentationID, branchID uuid.UUID, filter shared.Filter) ([]inventory.PackagedLot, error) {
	var lotModels []models.PackagedLotModel
	query := r.db.WithContext(ctx).Model(&models.PackagedLotModel{}).
		Where("presentation_id = ? AND branch_id = ?", presentationID, branchID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("received_at ASC")

	if err := query.Find(&lotModels).Error; err != nil {
		return nil, err
	}
	lots := make([]inventory.PackagedLot, len(lotModels))
	for i, model := range lotModels {
		lots[i] = *model.ToDomain()
	}
	return lots, nil
}

// Save creates or updates a packaged lot
func (r *GormPackagedLotRepository) Save(ctx context.Context, lot *inventory.PackagedLot) error {
	model := models.PackagedLotModelFromDomain(lot)
	return r.db.WithContext(ctx).Save(model).Error
}

// TotalQuantityForPresentation sums packaged quantity across lots of a presentation in a branch
func (r *GormPackagedLotRepository) TotalQuantityForPresentation(ctx context.Context, presentationID, branchID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PackagedLotModel{}).
		Where("presentation_id = ? AND branch_id = ?", presentationID, branchID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Ensure GormPackagedLotRepository implements PackagedLotRepository
var _ inventory.PackagedLotRepository = (*GormPackagedLotRepository)(nil)
