package purchasing

import (
	"context"

	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatusCoordinator derives the purchase order's status after a reception
// and cascades the change to the source requisition and sales order. All
// cascades run synchronously inside the reception's transaction; atomicity
// across the three documents is a hard requirement.
type StatusCoordinator struct{}

// NewStatusCoordinator creates a StatusCoordinator
func NewStatusCoordinator() *StatusCoordinator {
	return &StatusCoordinator{}
}

// DeriveOrderStatus computes the status implied by the given totals
func (c *StatusCoordinator) DeriveOrderStatus(received, ordered decimal.Decimal) purchasing.PurchaseOrderStatus {
	return purchasing.DeriveStatus(received, ordered)
}

// CascadeAfterReception refreshes the order status from its transactional
// totals and propagates the reception to the order's source documents:
// the requisition becomes COMPLETED when every line met its suggestion
// (RECEIVED otherwise), and the sales order is unconditionally marked
// RECEIVED.
func (c *StatusCoordinator) CascadeAfterReception(
	ctx context.Context,
	repos TransactionalRepositories,
	order *purchasing.PurchaseOrder,
) error {
	log := logger.FromContext(ctx)

	if err := order.RefreshStatus(); err != nil {
		return err
	}

	if order.RequisitionID != nil {
		req, err := repos.RequisitionRepo().FindByID(ctx, *order.RequisitionID)
		if err != nil {
			return err
		}
		req.RefreshStatusAfterReception()
		if err := repos.RequisitionRepo().Save(ctx, req); err != nil {
			return err
		}
		log.Debug("requisition status cascaded",
			zap.String("requisition_id", req.ID.String()),
			zap.String("status", string(req.Status)))
	}

	if order.SalesOrderID != nil {
		so, err := repos.SalesOrderRepo().FindByID(ctx, *order.SalesOrderID)
		if err != nil {
			return err
		}
		so.MarkReceived()
		if err := repos.SalesOrderRepo().Save(ctx, so); err != nil {
			return err
		}
		log.Debug("sales order marked received",
			zap.String("sales_order_id", so.ID.String()))
	}

	return nil
}
