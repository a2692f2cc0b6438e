package purchasing

import (
	"context"
	"errors"

	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseOrderService manages the purchase order lifecycle outside of
// receiving: creation from source documents, lookup, listing, cancellation.
type PurchaseOrderService struct {
	scope  TransactionScope
	orders purchasing.PurchaseOrderRepository
	events shared.EventPublisher
}

// NewPurchaseOrderService creates a PurchaseOrderService. events may be nil
// when no event bus is configured.
func NewPurchaseOrderService(scope TransactionScope, orders purchasing.PurchaseOrderRepository, events shared.EventPublisher) *PurchaseOrderService {
	return &PurchaseOrderService{scope: scope, orders: orders, events: events}
}

// publishAfterCommit fires an aggregate's pending events once its
// transaction is done
func (s *PurchaseOrderService) publishAfterCommit(ctx context.Context, order *purchasing.PurchaseOrder) {
	if s.events == nil {
		return
	}
	pending := order.GetDomainEvents()
	if len(pending) == 0 {
		return
	}
	if err := s.events.Publish(ctx, pending...); err != nil {
		logger.FromContext(ctx).Warn("failed to publish domain events", zap.Error(err))
	}
	order.ClearDomainEvents()
}

// CreateOrder creates a purchase order. When the request names a source
// requisition, the requisition is marked converted in the same transaction;
// a source sales order is only referenced, its status changes on reception.
func (s *PurchaseOrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	log := logger.FromContext(ctx)

	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION", "order requires at least one line")
	}
	if req.RequisitionID != nil && req.SalesOrderID != nil {
		return nil, shared.NewDomainError("VALIDATION", "order cannot have two source documents")
	}

	var response *OrderResponse
	var created *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		orderNumber, err := repos.PurchaseOrderRepo().GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}

		order, err := purchasing.NewPurchaseOrder(orderNumber, req.SupplierID, req.SupplierName, req.BranchID)
		if err != nil {
			return err
		}
		created = order
		order.RequisitionID = req.RequisitionID
		order.SalesOrderID = req.SalesOrderID
		order.Notes = req.Notes

		for _, line := range req.Lines {
			unitCost, err := s.resolveLineCost(ctx, repos, line)
			if err != nil {
				return err
			}
			if _, err := order.AddLine(
				line.ProductID, line.ProductName, line.PresentationID,
				line.Quantity, unitCost, line.ExpiryDate, line.RequisitionLineID,
			); err != nil {
				return err
			}
		}

		if req.RequisitionID != nil {
			requisition, err := repos.RequisitionRepo().FindByID(ctx, *req.RequisitionID)
			if err != nil {
				return err
			}
			if err := requisition.MarkConverted(); err != nil {
				return err
			}
			if err := repos.RequisitionRepo().SaveWithLock(ctx, requisition); err != nil {
				return err
			}
		}

		if req.SalesOrderID != nil {
			if _, err := repos.SalesOrderRepo().FindByID(ctx, *req.SalesOrderID); err != nil {
				return err
			}
		}

		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		log.Info("purchase order created",
			zap.String("order_number", order.OrderNumber),
			zap.String("supplier_id", order.SupplierID.String()),
			zap.Int("lines", len(order.Items)))

		r := ToOrderResponse(order)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishAfterCommit(ctx, created)
	return response, nil
}

// resolveLineCost validates a line's presentation against the catalog and
// fills a missing unit cost from the catalog defaults: the presentation's
// package cost when the line has one, the product's base cost otherwise.
func (s *PurchaseOrderService) resolveLineCost(ctx context.Context, repos TransactionalRepositories, line CreateLineInput) (decimal.Decimal, error) {
	if line.PresentationID != nil {
		presentation, err := repos.PresentationRepo().FindByID(ctx, *line.PresentationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return decimal.Zero, shared.NewDomainError("VALIDATION",
					"presentation "+line.PresentationID.String()+" is not in the catalog")
			}
			return decimal.Zero, err
		}
		if !presentation.BelongsTo(line.ProductID) {
			return decimal.Zero, shared.NewDomainError("VALIDATION",
				"presentation "+presentation.ID.String()+" does not package product "+line.ProductID.String())
		}
		if !presentation.Active {
			return decimal.Zero, shared.NewDomainError("VALIDATION",
				"presentation "+presentation.ID.String()+" is inactive")
		}
		if line.UnitCost.IsZero() {
			return presentation.DefaultCost, nil
		}
		return line.UnitCost, nil
	}

	if line.UnitCost.IsZero() {
		product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return decimal.Zero, shared.NewDomainError("VALIDATION",
					"line needs a unit cost or a cataloged product")
			}
			return decimal.Zero, err
		}
		return product.DefaultCost, nil
	}
	return line.UnitCost, nil
}

// GetOrder returns one order with its lines
func (s *PurchaseOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrderByNumber returns one order looked up by its order number
func (s *PurchaseOrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns a page of orders matching the filter
func (s *PurchaseOrderService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CancelOrder cancels an order no goods have arrived against
func (s *PurchaseOrderService) CancelOrder(ctx context.Context, id uuid.UUID, reason string) (*OrderResponse, error) {
	log := logger.FromContext(ctx)

	var response *OrderResponse
	var cancelled *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(reason); err != nil {
			return err
		}
		cancelled = order
		if err := repos.PurchaseOrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		log.Info("purchase order cancelled",
			zap.String("order_number", order.OrderNumber),
			zap.String("reason", reason))

		r := ToOrderResponse(order)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishAfterCommit(ctx, cancelled)
	return response, nil
}
