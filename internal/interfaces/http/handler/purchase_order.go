package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	apppurchasing "github.com/goodsflow/backend/internal/application/purchasing"
	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *apppurchasing.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *apppurchasing.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// CreateOrderLineRequest is one line in the create-order body
type CreateOrderLineRequest struct {
	ProductID         string          `json:"product_id" binding:"required,uuid"`
	ProductName       string          `json:"product_name" binding:"required,min=1,max=255"`
	PresentationID    *string         `json:"presentation_id" binding:"omitempty,uuid"`
	Quantity          decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost          decimal.Decimal `json:"unit_cost" binding:"required"`
	ExpiryDate        *time.Time      `json:"expiry_date"`
	RequisitionLineID *string         `json:"requisition_line_id" binding:"omitempty,uuid"`
}

// CreateOrderRequest is the create-order request body
type CreateOrderRequest struct {
	SupplierID    string                   `json:"supplier_id" binding:"required,uuid"`
	SupplierName  string                   `json:"supplier_name" binding:"required,min=1,max=255"`
	BranchID      *string                  `json:"branch_id" binding:"omitempty,uuid"`
	RequisitionID *string                  `json:"requisition_id" binding:"omitempty,uuid"`
	SalesOrderID  *string                  `json:"sales_order_id" binding:"omitempty,uuid"`
	Notes         string                   `json:"notes" binding:"max=2000"`
	Lines         []CreateOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CancelOrderRequest is the cancel-order request body
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// Create creates a purchase order, optionally sourced from a requisition
// or a sales order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	appReq := apppurchasing.CreateOrderRequest{
		SupplierID:   supplierID,
		SupplierName: req.SupplierName,
		Notes:        req.Notes,
	}

	if appReq.BranchID, err = parseOptionalUUID(req.BranchID); err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}
	if appReq.RequisitionID, err = parseOptionalUUID(req.RequisitionID); err != nil {
		h.BadRequest(c, "Invalid requisition ID format")
		return
	}
	if appReq.SalesOrderID, err = parseOptionalUUID(req.SalesOrderID); err != nil {
		h.BadRequest(c, "Invalid sales order ID format")
		return
	}
	if appReq.BranchID == nil {
		// The caller's branch applies when the body names none
		if appReq.BranchID, err = getBranchID(c); err != nil {
			h.BadRequest(c, "Invalid branch ID in token")
			return
		}
	}

	for _, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appLine := apppurchasing.CreateLineInput{
			ProductID:   productID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			ExpiryDate:  line.ExpiryDate,
		}
		if appLine.PresentationID, err = parseOptionalUUID(line.PresentationID); err != nil {
			h.BadRequest(c, "Invalid presentation ID format")
			return
		}
		if appLine.RequisitionLineID, err = parseOptionalUUID(line.RequisitionLineID); err != nil {
			h.BadRequest(c, "Invalid requisition line ID format")
			return
		}
		appReq.Lines = append(appReq.Lines, appLine)
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID retrieves a purchase order by its ID
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByOrderNumber retrieves a purchase order by its order number
func (h *PurchaseOrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetOrderByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List lists purchase orders with filtering and pagination
func (h *PurchaseOrderHandler) List(c *gin.Context) {
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

	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		filter.Filters["supplier_id"] = id
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		id, err := uuid.Parse(branchID)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		filter.Filters["branch_id"] = id
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Cancel cancels a purchase order that has not received goods yet
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// parseOptionalUUID parses an optional string UUID, treating empty as absent
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
