package persistence

import (
	"context"
	"errors"

	"github.com/goodsflow/backend/internal/domain/sales"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements sales.Repository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	var model models.SalesOrderModel
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

// Save creates or updates a sales order with its lines
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SalesOrderModelFromDomain(order)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		if order.ID != uuid.Nil {
			currentLineIDs := make([]uuid.UUID, len(order.Lines))
			for i, line := range order.Lines {
				currentLineIDs[i] = line.ID
			}

			if len(currentLineIDs) > 0 {
				if err := tx.Where("sales_order_id = ? AND id NOT IN ?", order.ID, currentLineIDs).
					Delete(&models.SalesOrderItemModel{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("sales_order_id = ?", order.ID).
					Delete(&models.SalesOrderItemModel{}).Error; err != nil {
					return err
				}
			}

			for i := range order.Lines {
				order.Lines[i].SalesOrderID = order.ID
				lineModel := models.SalesOrderItemModelFromDomain(&order.Lines[i])
				if err := tx.Save(lineModel).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Ensure GormSalesOrderRepository implements sales.Repository
var _ sales.Repository = (*GormSalesOrderRepository)(nil)
