package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequisitionRepository implements requisition.Repository using GORM
type GormRequisitionRepository struct {
	db *gorm.DB
}

// NewGormRequisitionRepository creates a new GormRequisitionRepository
func NewGormRequisitionRepository(db *gorm.DB) *GormRequisitionRepository {
	return &GormRequisitionRepository{db: db}
}

// FindByID finds a requisition by its ID
func (r *GormRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	var model models.RequisitionModel
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

// FindByLineID finds the requisition owning the given line
func (r *GormRequisitionRepository) FindByLineID(ctx context.Context, lineID uuid.UUID) (*requisition.Requisition, error) {
	var item models.RequisitionItemModel
	if err := r.db.WithContext(ctx).
		First(&item, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, item.RequisitionID)
}

// FindAll finds requisitions with filtering and pagination
func (r *GormRequisitionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]requisition.Requisition, error) {
	var reqModels []models.RequisitionModel

	query := r.db.WithContext(ctx).Model(&models.RequisitionModel{})

	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, RequisitionSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Preload("Lines").Find(&reqModels).Error; err != nil {
		return nil, err
	}
	reqs := make([]requisition.Requisition, len(reqModels))
	for i, model := range reqModels {
		reqs[i] = *model.ToDomain()
	}
	return reqs, nil
}

// Save creates or updates a requisition with its lines
func (r *GormRequisitionRepository) Save(ctx context.Context, req *requisition.Requisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RequisitionModelFromDomain(req)

		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		if req.ID != uuid.Nil {
			currentLineIDs := make([]uuid.UUID, len(req.Lines))
			for i, line := range req.Lines {
				currentLineIDs[i] = line.ID
			}

			if len(currentLineIDs) > 0 {
				if err := tx.Where("requisition_id = ? AND id NOT IN ?", req.ID, currentLineIDs).
					Delete(&models.RequisitionItemModel{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("requisition_id = ?", req.ID).
					Delete(&models.RequisitionItemModel{}).Error; err != nil {
					return err
				}
			}

			for i := range req.Lines {
				req.Lines[i].RequisitionID = req.ID
				lineModel := models.RequisitionItemModelFromDomain(&req.Lines[i])
				if err := tx.Save(lineModel).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormRequisitionRepository) SaveWithLock(ctx context.Context, req *requisition.Requisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.RequisitionModel{}).
			Where("id = ?", req.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != req.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The requisition has been modified by another user")
		}

		req.Version++
		req.UpdatedAt = time.Now()

		result := tx.Model(&models.RequisitionModel{}).
			Where("id = ? AND version = ?", req.ID, currentVersion).
			Updates(map[string]interface{}{
				"number":       req.Number,
				"branch_id":    req.BranchID,
				"requested_by": req.RequestedBy,
				"status":       req.Status,
				"notes":        req.Notes,
				"version":      req.Version,
				"updated_at":   req.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The requisition has been modified by another user")
		}

		for i := range req.Lines {
			req.Lines[i].RequisitionID = req.ID
			lineModel := models.RequisitionItemModelFromDomain(&req.Lines[i])
			if err := tx.Save(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormRequisitionRepository implements requisition.Repository
var _ requisition.Repository = (*GormRequisitionRepository)(nil)

// GormLineReceptionRepository implements LineReceptionRepository using GORM.
// Linkage rows are append-only.
type GormLineReceptionRepository struct {
	db *gorm.DB
}

// NewGormLineReceptionRepository creates a new GormLineReceptionRepository
func NewGormLineReceptionRepository(db *gorm.DB) *GormLineReceptionRepository {
	return &GormLineReceptionRepository{db: db}
}

// FindByRequisitionLine finds all reception linkages for a requisition line
func (r *GormLineReceptionRepository) FindByRequisitionLine(ctx context.Context, lineID uuid.UUID) ([]requisition.LineReception, error) {
	var linkModels []models.LineReceptionModel
	if err := r.db.WithContext(ctx).
		Where("requisition_line_id = ?", lineID).
		Order("created_at ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}
	links := make([]requisition.LineReception, len(linkModels))
	for i, model := range linkModels {
		links[i] = *model.ToDomain()
	}
	return links, nil
}

// Save inserts a reception linkage
func (r *GormLineReceptionRepository) Save(ctx context.Context, linkage *requisition.LineReception) error {
	model := models.LineReceptionModelFromDomain(linkage)
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormLineReceptionRepository implements LineReceptionRepository
var _ requisition.LineReceptionRepository = (*GormLineReceptionRepository)(nil)
