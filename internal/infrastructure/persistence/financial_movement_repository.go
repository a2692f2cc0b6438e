package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinancialMovementRepository implements FinancialMovementRepository using GORM.
// Movements form an append-only ledger; Save only ever inserts new rows.
type GormFinancialMovementRepository struct {
	db *gorm.DB
}

// NewGormFinancialMovementRepository creates a new GormFinancialMovementRepository
func NewGormFinancialMovementRepository(db *gorm.DB) *GormFinancialMovementRepository {
	return &GormFinancialMovementRepository{db: db}
}

// FindByID finds a financial movement by its ID
func (r *GormFinancialMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinancialMovement, error) {
	var model models.FinancialMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds all movements carrying the given reference
func (r *GormFinancialMovementRepository) FindByReference(ctx context.Context, reference string) ([]finance.FinancialMovement, error) {
	var movementModels []models.FinancialMovementModel
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}
	movements := make([]finance.FinancialMovement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements, nil
}

// FindAll finds movements with filtering and pagination
func (r *GormFinancialMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinancialMovement, error) {
	var movementModels []models.FinancialMovementModel

	query := r.db.WithContext(ctx).Model(&models.FinancialMovementModel{})

	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "classification":
			query = query.Where("classification = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "cash_shift_id":
			query = query.Where("cash_shift_id = ?", value)
		case "bank_account_id":
			query = query.Where("bank_account_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, FinancialMovementSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	movements := make([]finance.FinancialMovement, len(movementModels))
	for i, model := range movementModels {
		movements[i] = *model.ToDomain()
	}
	return movements, nil
}

// Save inserts a financial movement
func (r *GormFinancialMovementRepository) Save(ctx context.Context, movement *finance.FinancialMovement) error {
	model := models.FinancialMovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormFinancialMovementRepository implements FinancialMovementRepository
var _ finance.FinancialMovementRepository = (*GormFinancialMovementRepository)(nil)
