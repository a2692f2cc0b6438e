package purchasing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	appfinance "github.com/goodsflow/backend/internal/application/finance"
	"github.com/goodsflow/backend/internal/domain/catalog"
	"github.com/goodsflow/backend/internal/domain/inventory"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/domain/requisition"
	"github.com/goodsflow/backend/internal/domain/sales"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/goodsflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceptionService executes receptions against purchase orders. Each call is
// one atomic unit of work: line counters, lot creation, status cascades, the
// financial posting, and the cost-allocation handoff commit together or not
// at all.
type ReceptionService struct {
	scope       TransactionScope
	coordinator *StatusCoordinator
	posting     *appfinance.PostingService
	allocator   CostAllocator
	results     shared.ResultStore
	metrics     *telemetry.BusinessMetrics
	events      shared.EventPublisher
	policy      purchasing.OverReceiptPolicy
	resultTTL   time.Duration
}

// NewReceptionService creates a ReceptionService. metrics and events may be
// nil when no telemetry or event bus is configured.
func NewReceptionService(
	scope TransactionScope,
	coordinator *StatusCoordinator,
	posting *appfinance.PostingService,
	allocator CostAllocator,
	results shared.ResultStore,
	metrics *telemetry.BusinessMetrics,
	events shared.EventPublisher,
	policy purchasing.OverReceiptPolicy,
	resultTTL time.Duration,
) *ReceptionService {
	return &ReceptionService{
		scope:       scope,
		coordinator: coordinator,
		posting:     posting,
		allocator:   allocator,
		results:     results,
		metrics:     metrics,
		events:      events,
		policy:      policy,
		resultTTL:   resultTTL,
	}
}

// receiveContext carries per-call caches so the same requisition or sales
// order is loaded at most once per reception.
type receiveContext struct {
	repos         TransactionalRepositories
	order         *purchasing.PurchaseOrder
	branchID      uuid.UUID
	requisitions  map[uuid.UUID]*requisition.Requisition // keyed by requisition id
	reqByLine     map[uuid.UUID]*requisition.Requisition // keyed by requisition line id
	presentations map[uuid.UUID]*catalog.Presentation
	salesOrder    *sales.SalesOrder
	salesLoaded   bool
}

// Receive executes one reception call end to end. When the request carries
// an idempotency key that was already processed, the stored first outcome is
// returned with Replayed set and nothing is re-executed.
func (s *ReceptionService) Receive(ctx context.Context, req ReceiveRequest) (*ReceiveResult, error) {
	log := logger.FromContext(ctx)

	if !req.Mode.IsValid() {
		return nil, shared.NewDomainError("VALIDATION", "unknown reception mode")
	}
	if req.Mode == purchasing.ModePartial && len(req.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION", "partial reception requires at least one line")
	}
	if req.UserID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "reception requires an acting user")
	}
	if req.ExtraCosts.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "extra costs cannot be negative")
	}

	if req.IdempotencyKey != "" && s.results != nil {
		payload, found, err := s.results.Get(ctx, req.IdempotencyKey)
		if err != nil {
			log.Warn("idempotency lookup failed, proceeding without replay",
				zap.String("key", req.IdempotencyKey), zap.Error(err))
		} else if found {
			var replayed ReceiveResult
			if err := json.Unmarshal(payload, &replayed); err != nil {
				return nil, shared.NewDomainError("INTERNAL", "stored reception outcome is unreadable")
			}
			replayed.Replayed = true
			log.Info("reception replayed from idempotency store",
				zap.String("key", req.IdempotencyKey),
				zap.String("reception_id", replayed.ReceptionID.String()))
			return &replayed, nil
		}
	}

	var result *ReceiveResult
	var pending []shared.DomainEvent
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var execErr error
		result, pending, execErr = s.receiveInTransaction(ctx, repos, req)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	// Events fire only after the transaction committed
	if s.events != nil && len(pending) > 0 {
		if pubErr := s.events.Publish(ctx, pending...); pubErr != nil {
			log.Warn("failed to publish domain events", zap.Error(pubErr))
		}
	}

	if req.IdempotencyKey != "" && s.results != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			if putErr := s.results.Put(ctx, req.IdempotencyKey, payload, s.resultTTL); putErr != nil {
				log.Warn("failed to store reception outcome",
					zap.String("key", req.IdempotencyKey), zap.Error(putErr))
			}
		}
	}

	if s.metrics != nil {
		s.metrics.RecordReception(ctx, result.BranchID.String(), string(req.Mode),
			result.ReceivedAmount, len(result.Lines))
	}

	return result, nil
}

// receiveInTransaction runs the per-line algorithm inside the open transaction
func (s *ReceptionService) receiveInTransaction(
	ctx context.Context,
	repos TransactionalRepositories,
	req ReceiveRequest,
) (*ReceiveResult, []shared.DomainEvent, error) {
	log := logger.FromContext(ctx)

	order, err := repos.PurchaseOrderRepo().FindByID(ctx, req.PurchaseOrderID)
	if err != nil {
		return nil, nil, err
	}
	if !order.CanReceiveGoods() {
		return nil, nil, shared.NewDomainError("INVALID_STATE",
			"order in "+order.Status.String()+" status cannot receive goods")
	}

	branchID, err := s.effectiveBranch(order, req.BranchID)
	if err != nil {
		return nil, nil, err
	}

	reception, err := purchasing.NewReceptionEvent(order.ID, req.UserID, req.Mode, req.Notes)
	if err != nil {
		return nil, nil, err
	}
	reception.BranchID = branchID

	rc := &receiveContext{
		repos:         repos,
		order:         order,
		branchID:      branchID,
		requisitions:  make(map[uuid.UUID]*requisition.Requisition),
		reqByLine:     make(map[uuid.UUID]*requisition.Requisition),
		presentations: make(map[uuid.UUID]*catalog.Presentation),
	}

	inputs, err := s.resolveLineInputs(order, req)
	if err != nil {
		return nil, nil, err
	}

	lineResults := make([]ReceivedLineResult, 0, len(inputs))
	for _, input := range inputs {
		lineResult, err := s.receiveLine(ctx, rc, reception, input)
		if err != nil {
			return nil, nil, err
		}
		if lineResult != nil {
			lineResults = append(lineResults, *lineResult)
		}
	}
	if len(reception.Lines) == 0 {
		return nil, nil, shared.NewDomainError("VALIDATION", "reception accepted no quantity on any line")
	}

	if err := repos.ReceptionRepo().Save(ctx, reception); err != nil {
		return nil, nil, err
	}

	// Persist accumulated requisition line counters before the cascade
	// re-reads them to derive statuses.
	for _, touched := range rc.requisitions {
		if err := repos.RequisitionRepo().SaveWithLock(ctx, touched); err != nil {
			return nil, nil, err
		}
	}

	if err := s.coordinator.CascadeAfterReception(ctx, repos, order); err != nil {
		return nil, nil, err
	}
	if err := repos.PurchaseOrderRepo().SaveWithLock(ctx, order); err != nil {
		return nil, nil, err
	}

	// The movement credits the order's supplier unless the call names a
	// different one, e.g. a drop-shipment billed through another vendor.
	supplierID := order.SupplierID
	if req.SupplierID != nil && *req.SupplierID != uuid.Nil {
		supplierID = *req.SupplierID
	}

	receivedAmount := reception.TotalAmount()
	movement, err := s.posting.PostReception(ctx,
		repos.CashShiftRepo(), repos.BankAccountRepo(), repos.MovementRepo(),
		appfinance.PostingInput{
			BranchID:      branchID,
			SupplierID:    supplierID,
			UserID:        req.UserID,
			PaymentMethod: req.PaymentMethod,
			Amount:        receivedAmount,
			OrderNumber:   order.OrderNumber,
			CashShiftID:   req.CashShiftID,
			BankAccountID: req.BankAccountID,
		})
	if err != nil {
		return nil, nil, err
	}

	var allocationID *uuid.UUID
	if req.ExtraCosts.IsPositive() {
		record, err := s.allocator.Allocate(ctx, repos, AllocationInput{
			BranchID:        branchID,
			PurchaseOrderID: order.ID,
			ReceptionID:     reception.ID,
			Amount:          req.ExtraCosts,
			LotIDs:          reception.LotIDs(),
			PackagedLotIDs:  reception.PackagedLotIDs(),
		})
		if err != nil {
			return nil, nil, err
		}
		allocationID = &record.ID
	}

	order.AddDomainEvent(purchasing.NewGoodsReceivedEvent(order, reception))
	pending := append(order.GetDomainEvents(), movement.GetDomainEvents()...)
	order.ClearDomainEvents()
	movement.ClearDomainEvents()

	log.Info("reception completed",
		zap.String("order_number", order.OrderNumber),
		zap.String("reception_id", reception.ID.String()),
		zap.String("mode", string(req.Mode)),
		zap.String("status", order.Status.String()),
		zap.Int("lines", len(reception.Lines)),
		zap.String("amount", receivedAmount.String()))

	return &ReceiveResult{
		PurchaseOrderID:     order.ID,
		OrderNumber:         order.OrderNumber,
		Status:              order.Status,
		TotalAmount:         order.TotalAmount,
		ReceptionID:         reception.ID,
		FinancialMovementID: movement.ID,
		AllocationRecordID:  allocationID,
		BranchID:            branchID,
		Lines:               lineResults,
		ReceivedAmount:      receivedAmount,
	}, pending, nil
}

// effectiveBranch picks the branch a reception stocks into: the explicit
// override when supplied, the order's branch otherwise.
func (s *ReceptionService) effectiveBranch(order *purchasing.PurchaseOrder, override *uuid.UUID) (uuid.UUID, error) {
	if override != nil && *override != uuid.Nil {
		return *override, nil
	}
	if order.BranchID == nil || *order.BranchID == uuid.Nil {
		return uuid.Nil, shared.NewDomainError("INVALID_STATE",
			"order has no branch and the reception supplied none")
	}
	return *order.BranchID, nil
}

// resolveLineInputs turns the request into concrete per-line inputs. AUTO
// receives every receivable line's full remaining quantity; PARTIAL takes
// the caller's lines verbatim.
func (s *ReceptionService) resolveLineInputs(order *purchasing.PurchaseOrder, req ReceiveRequest) ([]ReceiveLineInput, error) {
	if req.Mode == purchasing.ModePartial {
		seen := make(map[uuid.UUID]bool, len(req.Lines))
		for _, line := range req.Lines {
			if seen[line.LineItemID] {
				return nil, shared.NewDomainError("VALIDATION", "duplicate line in partial reception")
			}
			seen[line.LineItemID] = true
		}
		return req.Lines, nil
	}

	receivable := order.ReceivableLines()
	inputs := make([]ReceiveLineInput, 0, len(receivable))
	for _, line := range receivable {
		inputs = append(inputs, ReceiveLineInput{
			LineItemID: line.ID,
			Quantity:   line.RemainingQuantity(),
		})
	}
	return inputs, nil
}

// receiveLine applies one delivered line: counter update under the
// over-receipt policy, representation resolution, lot creation, and the
// requisition linkage.
func (s *ReceptionService) receiveLine(
	ctx context.Context,
	rc *receiveContext,
	reception *purchasing.ReceptionEvent,
	input ReceiveLineInput,
) (*ReceivedLineResult, error) {
	log := logger.FromContext(ctx)

	line := rc.order.FindLine(input.LineItemID)
	if line == nil {
		return nil, shared.NewDomainError("VALIDATION", "line does not belong to the order")
	}

	overBefore := line.ReceivedQuantity.Add(input.Quantity).GreaterThan(line.OrderedQuantity)
	accepted, err := rc.order.ApplyReceivedQuantity(line.ID, input.Quantity, s.policy)
	if err != nil {
		return nil, err
	}
	if overBefore && s.policy == purchasing.PolicyAllow {
		log.Warn("over-receipt accepted by policy",
			zap.String("line_id", line.ID.String()),
			zap.String("requested", input.Quantity.String()),
			zap.String("ordered", line.OrderedQuantity.String()))
	}

	unitCost := line.UnitCost
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}

	presentationID, err := s.resolvePresentation(ctx, rc, line, unitCost)
	if err != nil {
		return nil, err
	}

	expiry := s.resolveExpiry(ctx, rc, line, input.ExpiryDate)

	var lotID, packagedLotID *uuid.UUID
	if presentationID != nil {
		presentation, err := s.presentationFor(ctx, rc, *presentationID)
		if err != nil {
			return nil, err
		}
		if !presentation.BelongsTo(line.ProductID) {
			return nil, shared.NewDomainError("VALIDATION",
				"presentation "+presentation.ID.String()+" does not package product "+line.ProductID.String())
		}
		packaged, err := inventory.NewPackagedLot(
			line.ProductID, *presentationID, rc.branchID,
			accepted, unitCost, expiry, &reception.ID, input.LotCode)
		if err != nil {
			return nil, err
		}
		if err := rc.repos.PackagedLotRepo().Save(ctx, packaged); err != nil {
			return nil, err
		}
		packagedLotID = &packaged.ID
		log.Debug("packaged stock received",
			zap.String("presentation_id", presentation.ID.String()),
			zap.String("packages", accepted.String()),
			zap.String("base_units", presentation.ToBaseUnits(accepted).String()))
	} else {
		lot, err := inventory.NewLot(
			line.ProductID, rc.branchID,
			accepted, unitCost, expiry, &reception.ID, input.LotCode)
		if err != nil {
			return nil, err
		}
		if err := rc.repos.LotRepo().Save(ctx, lot); err != nil {
			return nil, err
		}
		lotID = &lot.ID
	}

	receptionLine, err := purchasing.NewReceptionLineItem(
		reception.ID, line.ID, accepted, unitCost, expiry, lotID, packagedLotID, input.LotCode)
	if err != nil {
		return nil, err
	}
	reception.AddLine(receptionLine)

	if line.RequisitionLineID != nil {
		if err := s.linkRequisitionLine(ctx, rc, reception, *line.RequisitionLineID, accepted); err != nil {
			return nil, err
		}
	}

	return &ReceivedLineResult{
		LineItemID:     line.ID,
		ProductID:      line.ProductID,
		Quantity:       accepted,
		UnitCost:       unitCost,
		LotID:          lotID,
		PackagedLotID:  packagedLotID,
		PresentationID: presentationID,
		ExpiryDate:     expiry,
	}, nil
}

// resolvePresentation decides which stock representation a line receives
// into. Priority: the line's explicit presentation, then the source
// requisition line's, then a unique sales-order line matching the product,
// quantity, and unit cost. No match or an ambiguous match falls back to the
// base representation.
func (s *ReceptionService) resolvePresentation(
	ctx context.Context,
	rc *receiveContext,
	line *purchasing.PurchaseLineItem,
	unitCost decimal.Decimal,
) (*uuid.UUID, error) {
	if line.PresentationID != nil {
		return line.PresentationID, nil
	}

	if line.RequisitionLineID != nil {
		req, err := s.requisitionForLine(ctx, rc, *line.RequisitionLineID)
		if err != nil {
			return nil, err
		}
		reqLine, err := req.FindLine(*line.RequisitionLineID)
		if err != nil {
			return nil, err
		}
		if reqLine.PresentationID != nil {
			return reqLine.PresentationID, nil
		}
	}

	if rc.order.SalesOrderID != nil {
		so, err := s.salesOrder(ctx, rc)
		if err != nil {
			return nil, err
		}
		var matches []*sales.OrderLine
		for _, candidate := range so.LinesForProduct(line.ProductID) {
			c := candidate
			if c.Quantity.Equal(line.OrderedQuantity) && c.UnitPrice.Equal(unitCost) {
				matches = append(matches, &c)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0].PresentationID, nil
		default:
			// Zero or multiple candidates: receive into base stock
			logger.FromContext(ctx).Debug("sales-order presentation match inconclusive",
				zap.String("line_id", line.ID.String()),
				zap.Int("candidates", len(matches)))
		}
	}

	return nil, nil
}

// resolveExpiry picks the expiry. Priority: the call's value, the order
// line's, then the source requisition line's. Missing everywhere means no
// expiry.
func (s *ReceptionService) resolveExpiry(
	ctx context.Context,
	rc *receiveContext,
	line *purchasing.PurchaseLineItem,
	callExpiry *time.Time,
) *time.Time {
	if callExpiry != nil {
		return callExpiry
	}
	if line.ExpiryDate != nil {
		return line.ExpiryDate
	}
	if line.RequisitionLineID != nil {
		req, err := s.requisitionForLine(ctx, rc, *line.RequisitionLineID)
		if err == nil {
			if reqLine, err := req.FindLine(*line.RequisitionLineID); err == nil {
				return reqLine.ExpiryDate
			}
		}
	}
	return nil
}

// linkRequisitionLine writes the linkage row and accumulates the received
// quantity on the source requisition line.
func (s *ReceptionService) linkRequisitionLine(
	ctx context.Context,
	rc *receiveContext,
	reception *purchasing.ReceptionEvent,
	requisitionLineID uuid.UUID,
	quantity decimal.Decimal,
) error {
	linkage, err := requisition.NewLineReception(requisitionLineID, reception.ID, quantity)
	if err != nil {
		return err
	}
	if err := rc.repos.LineReceptionRepo().Save(ctx, linkage); err != nil {
		return err
	}

	req, err := s.requisitionForLine(ctx, rc, requisitionLineID)
	if err != nil {
		return err
	}
	return req.RecordLineReception(requisitionLineID, quantity)
}

// requisitionForLine loads the requisition owning a line, caching it so all
// lines of the same requisition mutate one in-memory aggregate.
func (s *ReceptionService) requisitionForLine(ctx context.Context, rc *receiveContext, lineID uuid.UUID) (*requisition.Requisition, error) {
	if req, ok := rc.reqByLine[lineID]; ok {
		return req, nil
	}
	req, err := rc.repos.RequisitionRepo().FindByLineID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if cached, ok := rc.requisitions[req.ID]; ok {
		rc.reqByLine[lineID] = cached
		return cached, nil
	}
	rc.requisitions[req.ID] = req
	rc.reqByLine[lineID] = req
	return req, nil
}

// presentationFor resolves a presentation against the catalog, caching it
// for the call. A resolved reference the catalog does not know is a
// validation failure, whichever document it was inherited from.
func (s *ReceptionService) presentationFor(ctx context.Context, rc *receiveContext, id uuid.UUID) (*catalog.Presentation, error) {
	if presentation, ok := rc.presentations[id]; ok {
		return presentation, nil
	}
	presentation, err := rc.repos.PresentationRepo().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VALIDATION", "presentation "+id.String()+" is not in the catalog")
		}
		return nil, err
	}
	rc.presentations[id] = presentation
	return presentation, nil
}

// salesOrder loads the order's source sales order once per call
func (s *ReceptionService) salesOrder(ctx context.Context, rc *receiveContext) (*sales.SalesOrder, error) {
	if rc.salesLoaded {
		return rc.salesOrder, nil
	}
	so, err := rc.repos.SalesOrderRepo().FindByID(ctx, *rc.order.SalesOrderID)
	if err != nil {
		return nil, err
	}
	rc.salesOrder = so
	rc.salesLoaded = true
	return so, nil
}

// GetReceptionHistory returns every reception recorded for an order together
// with per-line cumulative totals.
func (s *ReceptionService) GetReceptionHistory(ctx context.Context, purchaseOrderID uuid.UUID) (*ReceptionHistory, error) {
	var history *ReceptionHistory
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByID(ctx, purchaseOrderID)
		if err != nil {
			return err
		}
		events, err := repos.ReceptionRepo().FindByPurchaseOrder(ctx, purchaseOrderID)
		if err != nil {
			return err
		}

		lines := make([]HistoryLine, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, HistoryLine{
				LineItemID:     item.ID,
				ProductID:      item.ProductID,
				ProductName:    item.ProductName,
				PresentationID: item.PresentationID,
				Ordered:        item.OrderedQuantity,
				Received:       item.ReceivedQuantity,
				Pending:        item.RemainingQuantity(),
			})
		}

		receptions := make([]HistoryReception, 0, len(events))
		for _, event := range events {
			receptions = append(receptions, HistoryReception{
				ReceptionID: event.ID,
				ReceivedBy:  event.ReceivedBy,
				ReceivedAt:  event.CreatedAt,
				Mode:        event.Mode,
				Notes:       event.Notes,
				Lines:       event.Lines,
			})
		}

		history = &ReceptionHistory{
			PurchaseOrderID: order.ID,
			OrderNumber:     order.OrderNumber,
			Status:          order.Status,
			Lines:           lines,
			Receptions:      receptions,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
