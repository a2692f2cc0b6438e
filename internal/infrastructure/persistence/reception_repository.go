package persistence

import (
	"context"
	"errors"

	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceptionRepository implements ReceptionRepository using GORM.
// Reception events are append-only; Save only ever inserts.
type GormReceptionRepository struct {
	db *gorm.DB
}

// NewGormReceptionRepository creates a new GormReceptionRepository
func NewGormReceptionRepository(db *gorm.DB) *GormReceptionRepository {
	return &GormReceptionRepository{db: db}
}

// FindByID finds a reception event by its ID
func (r *GormReceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.ReceptionEvent, error) {
	var model models.ReceptionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchaseOrder finds all reception events for a purchase order, oldest first
func (r *GormReceptionRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]purchasing.ReceptionEvent, error) {
	var eventModels []models.ReceptionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]purchasing.ReceptionEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Save inserts a reception event with its lines
func (r *GormReceptionRepository) Save(ctx context.Context, event *purchasing.ReceptionEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ReceptionModelFromDomain(event)

		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}

		for i := range event.Lines {
			event.Lines[i].ReceptionID = event.ID
			lineModel := models.ReceptionItemModelFromDomain(&event.Lines[i])
			if err := tx.Create(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormReceptionRepository implements ReceptionRepository
var _ purchasing.ReceptionRepository = (*GormReceptionRepository)(nil)
