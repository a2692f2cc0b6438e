package requisition

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists requisitions with their lines
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Requisition, error)
	FindByLineID(ctx context.Context, lineID uuid.UUID) (*Requisition, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Requisition, error)
	Save(ctx context.Context, req *Requisition) error
	SaveWithLock(ctx context.Context, req *Requisition) error
}

// LineReceptionRepository persists requisition-line reception linkages
type LineReceptionRepository interface {
	FindByRequisitionLine(ctx context.Context, lineID uuid.UUID) ([]LineReception, error)
	Save(ctx context.Context, linkage *LineReception) error
}
