package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	apppurchasing "github.com/goodsflow/backend/internal/application/purchasing"
	"github.com/goodsflow/backend/internal/domain/finance"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader lets clients retry a reception safely; a replayed
// key returns the first execution's stored outcome.
const IdempotencyKeyHeader = "Idempotency-Key"

// ReceptionHandler handles goods reception API endpoints
type ReceptionHandler struct {
	BaseHandler
	receptionService *apppurchasing.ReceptionService
}

// NewReceptionHandler creates a new ReceptionHandler
func NewReceptionHandler(receptionService *apppurchasing.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{receptionService: receptionService}
}

// ReceiveLineRequest is one explicitly received line in a PARTIAL reception
type ReceiveLineRequest struct {
	LineItemID string           `json:"line_item_id" binding:"required,uuid"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost   *decimal.Decimal `json:"unit_cost"`
	ExpiryDate *time.Time       `json:"expiry_date"`
	LotCode    string           `json:"lot_code" binding:"max=64"`
}

// ReceiveRequest is the receive-goods request body
type ReceiveRequest struct {
	Mode          string               `json:"mode" binding:"required,oneof=AUTO PARTIAL"`
	PaymentMethod string               `json:"payment_method" binding:"required"`
	SupplierID    *string              `json:"supplier_id" binding:"omitempty,uuid"`
	BranchID      *string              `json:"branch_id" binding:"omitempty,uuid"`
	CashShiftID   *string              `json:"cash_shift_id" binding:"omitempty,uuid"`
	BankAccountID *string              `json:"bank_account_id" binding:"omitempty,uuid"`
	ExtraCosts    decimal.Decimal      `json:"extra_costs"`
	Notes         string               `json:"notes" binding:"max=2000"`
	Lines         []ReceiveLineRequest `json:"lines" binding:"omitempty,dive"`
}

// Receive receives goods against a purchase order. The whole reception --
// stock lots, status cascades, the financial movement, the allocation
// handoff -- commits or rolls back as one transaction.
func (h *ReceptionHandler) Receive(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := apppurchasing.ReceiveRequest{
		PurchaseOrderID: orderID,
		UserID:          userID,
		Mode:            purchasing.ReceptionMode(req.Mode),
		PaymentMethod:   finance.PaymentMethod(req.PaymentMethod),
		ExtraCosts:      req.ExtraCosts,
		Notes:           req.Notes,
		IdempotencyKey:  c.GetHeader(IdempotencyKeyHeader),
	}

	if appReq.SupplierID, err = parseOptionalUUID(req.SupplierID); err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}
	if appReq.BranchID, err = parseOptionalUUID(req.BranchID); err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	if appReq.BranchID == nil {
		if appReq.BranchID, err = getBranchID(c); err != nil {
			h.BadRequest(c, "Invalid branch ID in token")
			return
		}
	}
	if appReq.CashShiftID, err = parseOptionalUUID(req.CashShiftID); err != nil {
		h.BadRequest(c, "Invalid cash shift ID format")
		return
	}
	if appReq.BankAccountID, err = parseOptionalUUID(req.BankAccountID); err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	for _, line := range req.Lines {
		lineItemID, err := uuid.Parse(line.LineItemID)
		if err != nil {
			h.BadRequest(c, "Invalid line item ID format")
			return
		}
		appReq.Lines = append(appReq.Lines, apppurchasing.ReceiveLineInput{
			LineItemID: lineItemID,
			Quantity:   line.Quantity,
			UnitCost:   line.UnitCost,
			ExpiryDate: line.ExpiryDate,
			LotCode:    line.LotCode,
		})
	}

	result, err := h.receptionService.Receive(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Replayed {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// History returns all reception events for an order plus per-line totals
func (h *ReceptionHandler) History(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	history, err := h.receptionService.GetReceptionHistory(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
