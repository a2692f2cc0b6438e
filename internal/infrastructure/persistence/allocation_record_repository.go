package persistence

import (
	"context"
	"errors"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRecordRepository implements AllocationRecordRepository using GORM.
// Allocation records are append-only handoffs to the costing pipeline.
type GormAllocationRecordRepository struct {
	db *gorm.DB
}

// NewGormAllocationRecordRepository creates a new GormAllocationRecordRepository
func NewGormAllocationRecordRepository(db *gorm.DB) *GormAllocationRecordRepository {
	return &GormAllocationRecordRepository{db: db}
}

// FindByID finds an allocation record by its ID
func (r *GormAllocationRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AllocationRecord, error) {
	var model models.AllocationRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lots").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchaseOrder finds all allocation records for a purchase order
func (r *GormAllocationRecordRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]finance.AllocationRecord, error) {
	var recordModels []models.AllocationRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Lots").
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]finance.AllocationRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save inserts an allocation record with its lot references
func (r *GormAllocationRecordRepository) Save(ctx context.Context, record *finance.AllocationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.AllocationRecordModelFromDomain(record)

		if err := tx.Omit("Lots").Create(model).Error; err != nil {
			return err
		}

		for i := range model.Lots {
			if err := tx.Create(&model.Lots[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormAllocationRecordRepository implements AllocationRecordRepository
var _ finance.AllocationRecordRepository = (*GormAllocationRecordRepository)(nil)
