package handlers

import (
	"context"
	"net/http"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
)

// ==============================================
// SERVICE CONTRACT
// ==============================================

type OrderManager interface {
	CreateOrder(ctx context.Context, userID int, req dto.CreateOrderRequest) (*dto.OrderDTO, error)
	GetOrder(ctx context.Context, orderID int) (*dto.OrderDTO, error)
	ListOrders(ctx context.Context, userID int) ([]dto.OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, orderID int, req dto.UpdateOrderRequest) error
	CreateShipping(ctx context.Context, req dto.ShippingRequest) (*dto.ShippingDTO, error)
	GetShipping(ctx context.Context, orderID int) (*dto.ShippingDTO, error)
	CreatePayment(ctx context.Context, userID int, req dto.PaymentRequest) (*dto.PaymentDTO, error)
	ListPayments(ctx context.Context, userID int) ([]dto.PaymentDTO, error)
}

type OrderHandler struct {
	service OrderManager
}

func NewOrderHandler(service OrderManager) *OrderHandler {
	return &OrderHandler{service: service}
}

// ==============================================
// ORDERS
// ==============================================

// CreateOrder places an order for the caller. Line prices are snapshotted
// from the catalog server-side; the client never supplies amounts.
// POST /api/orders (authenticated)
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /api/orders/:id (authenticated)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders (authenticated)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PUT /api/orders/:id/status (authenticated)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	if err := h.service.UpdateOrderStatus(c.Request.Context(), id, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order status updated"})
}

// ==============================================
// SHIPPING
// ==============================================

// POST /api/shippings (authenticated)
func (h *OrderHandler) CreateShipping(c *gin.Context) {
	var req dto.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	sh, err := h.service.CreateShipping(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sh)
}

// GET /api/orders/:id/shipping (authenticated)
func (h *OrderHandler) GetShipping(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	sh, err := h.service.GetShipping(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sh)
}

// ==============================================
// PAYMENTS
// ==============================================

// POST /api/payments (authenticated)
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/payments (authenticated)
func (h *OrderHandler) ListPayments(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
