package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/shopspring/decimal"
)

const timeFormat = time.RFC3339

// ==============================================
// COLLABORATOR INTERFACES (for testing)
// ==============================================

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID int) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
	CreateShipping(ctx context.Context, s *models.Shipping) error
	GetShippingByOrder(ctx context.Context, orderID int) (*models.Shipping, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error)
}

type ProductReader interface {
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
}

// ==============================================
// ORDER SERVICE
// ==============================================

type OrderService struct {
	orders   OrderStore
	products ProductReader
}

func NewOrderService(orders OrderStore, products ProductReader) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// ==============================================
// ORDERS
// ==============================================

// CreateOrder builds an order from the requested items, snapshotting each
// product's current price. Item totals and the order total are derived,
// never taken from the client.
func (s *OrderService) CreateOrder(ctx context.Context, userID int, req dto.CreateOrderRequest) (*dto.OrderDTO, error) {
	order := &models.Order{
		UserID:      userID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, models.ErrInvalidQuantity
		}
		product, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			Price:      product.Price,
			TotalPrice: lineTotal,
		})
		order.TotalAmount = order.TotalAmount.Add(lineTotal)
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return orderToDTO(order), nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*dto.OrderDTO, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return orderToDTO(order), nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int) ([]dto.OrderDTO, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *orderToDTO(&orders[i]))
	}
	return out, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int, req dto.UpdateOrderRequest) error {
	if !models.ValidOrderStatus(req.Status) {
		return models.ErrInvalidStatus
	}
	return s.orders.UpdateOrderStatus(ctx, orderID, req.Status)
}

// ==============================================
// SHIPPING
// ==============================================

func (s *OrderService) CreateShipping(ctx context.Context, req dto.ShippingRequest) (*dto.ShippingDTO, error) {
	cost, err := decimal.NewFromString(req.Cost)
	if err != nil {
		return nil, fmt.Errorf("invalid cost %q: %w", req.Cost, err)
	}

	sh := &models.Shipping{
		OrderID: req.OrderID,
		Address: req.Address,
		Cost:    cost,
		TrackingNumber: sql.NullString{
			String: req.TrackingNumber,
			Valid:  req.TrackingNumber != "",
		},
	}
	if err := s.orders.CreateShipping(ctx, sh); err != nil {
		return nil, err
	}
	return shippingToDTO(sh), nil
}

func (s *OrderService) GetShipping(ctx context.Context, orderID int) (*dto.ShippingDTO, error) {
	sh, err := s.orders.GetShippingByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return shippingToDTO(sh), nil
}

// ==============================================
// PAYMENTS
// ==============================================

func (s *OrderService) CreatePayment(ctx context.Context, userID int, req dto.PaymentRequest) (*dto.PaymentDTO, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}

	p := &models.Payment{
		UserID:      userID,
		PaymentType: req.PaymentType,
		Amount:      amount,
	}
	if req.OrderID != 0 {
		p.OrderID = sql.NullInt32{Int32: int32(req.OrderID), Valid: true}
	}

	if err := s.orders.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	return paymentToDTO(p), nil
}

func (s *OrderService) ListPayments(ctx context.Context, userID int) ([]dto.PaymentDTO, error) {
	payments, err := s.orders.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToDTO(&payments[i]))
	}
	return out, nil
}

// ==============================================
// HELPERS
// ==============================================

func orderToDTO(order *models.Order) *dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price.String(),
			TotalPrice: item.TotalPrice.String(),
		})
	}
	return &dto.OrderDTO{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.String(),
		Items:       items,
		CreatedAt:   order.CreatedAt.Format(timeFormat),
	}
}

func shippingToDTO(sh *models.Shipping) *dto.ShippingDTO {
	out := &dto.ShippingDTO{
		ID:             sh.ID,
		OrderID:        sh.OrderID,
		Address:        sh.Address,
		Cost:           sh.Cost.String(),
		TrackingNumber: sh.TrackingNumber.String,
	}
	if sh.ShippedAt.Valid {
		out.ShippedAt = sh.ShippedAt.Time.Format(timeFormat)
	}
	if sh.DeliveredAt.Valid {
		out.DeliveredAt = sh.DeliveredAt.Time.Format(timeFormat)
	}
	return out
}

func paymentToDTO(p *models.Payment) *dto.PaymentDTO {
	out := &dto.PaymentDTO{
		ID:          p.ID,
		PaymentType: p.PaymentType,
		Amount:      p.Amount.String(),
		CreatedAt:   p.CreatedAt.Format(timeFormat),
	}
	if p.OrderID.Valid {
		out.OrderID = int(p.OrderID.Int32)
	}
	return out
}
