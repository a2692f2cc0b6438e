package sales

import (
	"context"

	"github.com/google/uuid"
)

// Repository gives the purchasing flow read/status access to sales orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	Save(ctx context.Context, order *SalesOrder) error
}
