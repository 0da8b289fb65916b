package service

import (
	"context"
	"testing"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/digistore/api/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==============================================
// MOCKS
// ==============================================

type MockOrderStore struct {
	CreateOrderFunc       func(ctx context.Context, order *models.Order) error
	GetOrderByIDFunc      func(ctx context.Context, orderID int) (*models.Order, error)
	ListOrdersByUserFunc  func(ctx context.Context, userID int) ([]models.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, orderID int, status string) error
	CreateShippingFunc    func(ctx context.Context, s *models.Shipping) error
	GetShippingByOrderFunc func(ctx context.Context, orderID int) (*models.Shipping, error)
	CreatePaymentFunc     func(ctx context.Context, p *models.Payment) error
	ListPaymentsByUserFunc func(ctx context.Context, userID int) ([]models.Payment, error)
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	order.ID = 1
	return nil
}

func (m *MockOrderStore) GetOrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	if m.GetOrderByIDFunc != nil {
		return m.GetOrderByIDFunc(ctx, orderID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *MockOrderStore) ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	if m.ListOrdersByUserFunc != nil {
		return m.ListOrdersByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderStore) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, orderID, status)
	}
	return nil
}

func (m *MockOrderStore) CreateShipping(ctx context.Context, s *models.Shipping) error {
	if m.CreateShippingFunc != nil {
		return m.CreateShippingFunc(ctx, s)
	}
	s.ID = 1
	return nil
}

func (m *MockOrderStore) GetShippingByOrder(ctx context.Context, orderID int) (*models.Shipping, error) {
	if m.GetShippingByOrderFunc != nil {
		return m.GetShippingByOrderFunc(ctx, orderID)
	}
	return nil, repository.ErrRecordNotFound
}

func (m *MockOrderStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *MockOrderStore) ListPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	if m.ListPaymentsByUserFunc != nil {
		return m.ListPaymentsByUserFunc(ctx, userID)
	}
	return nil, nil
}

type MockProductReader struct {
	GetProductByIDFunc func(ctx context.Context, id int) (*models.Product, error)
}

func (m *MockProductReader) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, id)
	}
	return nil, repository.ErrRecordNotFound
}

// ==============================================
// CREATE ORDER
// ==============================================

func TestCreateOrder_DerivesTotalsFromCatalog(t *testing.T) {
	prices := map[int]string{
		1: "19.99",
		2: "5.50",
	}
	products := &MockProductReader{
		GetProductByIDFunc: func(ctx context.Context, id int) (*models.Product, error) {
			price, ok := prices[id]
			if !ok {
				return nil, repository.ErrRecordNotFound
			}
			d, err := decimal.NewFromString(price)
			require.NoError(t, err)
			return &models.Product{ID: id, Price: d}, nil
		},
	}

	var stored *models.Order
	orders := &MockOrderStore{
		CreateOrderFunc: func(ctx context.Context, order *models.Order) error {
			order.ID = 42
			stored = order
			return nil
		},
	}
	svc := NewOrderService(orders, products)

	resp, err := svc.CreateOrder(context.Background(), 7, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 2}, // 39.98
			{ProductID: 2, Quantity: 3}, // 16.50
		},
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("56.48")),
		"got total %s", stored.TotalAmount)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "19.99", resp.Items[0].Price)
	assert.Equal(t, "39.98", resp.Items[0].TotalPrice)
	assert.Equal(t, "56.48", resp.TotalAmount)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc := NewOrderService(&MockOrderStore{}, &MockProductReader{})

	_, err := svc.CreateOrder(context.Background(), 7, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: 404, Quantity: 1}},
	})
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(&MockOrderStore{}, &MockProductReader{})

	err := svc.UpdateOrderStatus(context.Background(), 1, dto.UpdateOrderRequest{Status: "teleported"})
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestUpdateOrderStatus_PassesThrough(t *testing.T) {
	var gotStatus string
	orders := &MockOrderStore{
		UpdateOrderStatusFunc: func(ctx context.Context, orderID int, status string) error {
			gotStatus = status
			return nil
		},
	}
	svc := NewOrderService(orders, &MockProductReader{})

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), 1, dto.UpdateOrderRequest{Status: "shipped"}))
	assert.Equal(t, "shipped", gotStatus)
}

// ==============================================
// PAYMENTS
// ==============================================

func TestCreatePayment_ParsesAmount(t *testing.T) {
	var stored *models.Payment
	orders := &MockOrderStore{
		CreatePaymentFunc: func(ctx context.Context, p *models.Payment) error {
			p.ID = 5
			stored = p
			return nil
		},
	}
	svc := NewOrderService(orders, &MockProductReader{})

	resp, err := svc.CreatePayment(context.Background(), 7, dto.PaymentRequest{
		OrderID:     42,
		PaymentType: "card",
		Amount:      "56.48",
	})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("56.48")))
	assert.Equal(t, "card", resp.PaymentType)
}

func TestCreatePayment_RejectsBadAmount(t *testing.T) {
	svc := NewOrderService(&MockOrderStore{}, &MockProductReader{})

	_, err := svc.CreatePayment(context.Background(), 7, dto.PaymentRequest{
		PaymentType: "card",
		Amount:      "lots",
	})
	assert.Error(t, err)
}
