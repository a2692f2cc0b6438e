package purchasing

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository persists purchase orders with their lines
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	// SaveWithLock persists the order with an optimistic version check,
	// returning a concurrency conflict when another writer got there first.
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// ReceptionRepository persists reception events. Events are append-only.
type ReceptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReceptionEvent, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]ReceptionEvent, error)
	Save(ctx context.Context, event *ReceptionEvent) error
}
