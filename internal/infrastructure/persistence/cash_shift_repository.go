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

// GormCashShiftRepository implements CashShiftRepository using GORM
type GormCashShiftRepository struct {
	db *gorm.DB
}

// NewGormCashShiftRepository creates a new GormCashShiftRepository
func NewGormCashShiftRepository(db *gorm.DB) *GormCashShiftRepository {
	return &GormCashShiftRepository{db: db}
}

// FindByID finds a cash shift by its ID
func (r *GormCashShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashShift, error) {
	var model models.CashShiftModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByBranch finds the open shift for a branch. At most one shift
// per branch may be open at a time; the partial unique index enforces it.
func (r *GormCashShiftRepository) FindOpenByBranch(ctx context.Context, branchID uuid.UUID) (*finance.CashShift, error) {
	var model models.CashShiftModel
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND status = ?", branchID, finance.ShiftStatusOpen).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrShiftNotOpen
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cash shift
func (r *GormCashShiftRepository) Save(ctx context.Context, shift *finance.CashShift) error {
	model := models.CashShiftModelFromDomain(shift)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormCashShiftRepository implements CashShiftRepository
var _ finance.CashShiftRepository = (*GormCashShiftRepository)(nil)
