package handler

import (
	"github.com/gin-gonic/gin"
	appfinance "github.com/goodsflow/backend/internal/application/finance"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
)

// FinanceHandler handles the financial read surface: movements, the open
// shift lookup, and bank accounts.
type FinanceHandler struct {
	BaseHandler
	movementService *appfinance.MovementService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(movementService *appfinance.MovementService) *FinanceHandler {
	return &FinanceHandler{movementService: movementService}
}

// ListMovements lists financial movements. A purchase_order_number query
// returns that order's ledger entries; otherwise standard filters apply.
func (h *FinanceHandler) ListMovements(c *gin.Context) {
	if orderNumber := c.Query("purchase_order_number"); orderNumber != "" {
		movements, err := h.movementService.ListMovementsForOrder(c.Request.Context(), orderNumber)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, movements)
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}
	if listReq.Page == 0 {
		listReq.Page = 1
	}
	if listReq.PageSize == 0 {
		listReq.PageSize = 20
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
		Filters:  make(map[string]interface{}),
	}

	if classification := c.Query("classification"); classification != "" {
		filter.Filters["classification"] = classification
	}
	if method := c.Query("payment_method"); method != "" {
		filter.Filters["payment_method"] = method
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		id, err := uuid.Parse(branchID)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		filter.Filters["branch_id"] = id
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		filter.Filters["supplier_id"] = id
	}

	movements, err := h.movementService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// GetMovement returns one financial movement by ID
func (h *FinanceHandler) GetMovement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	movement, err := h.movementService.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movement)
}

// GetOpenShift returns the open cash shift for a branch
func (h *FinanceHandler) GetOpenShift(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	shift, err := h.movementService.GetOpenShift(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shift)
}

// ListBankAccounts lists bank accounts
func (h *FinanceHandler) ListBankAccounts(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
		Filters:  make(map[string]interface{}),
	}
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active == "true"
	}

	accounts, err := h.movementService.ListBankAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, accounts)
}
