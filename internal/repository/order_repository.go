package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/digistore/api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ==============================================
// ORDER REPOSITORY
// ==============================================

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// ==============================================
// ORDERS
// ==============================================

// CreateOrder inserts the order and its items in one transaction. The order
// total is computed by the service before the call; items carry unit price
// snapshots taken from the catalog at order time.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (user_id, status, total_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, modified_at
	`

	err = tx.QueryRow(ctx, query, order.UserID, order.Status, order.TotalAmount).
		Scan(&order.ID, &order.CreatedAt, &order.ModifiedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRow(ctx, itemQuery,
			item.OrderID, item.ProductID, item.Quantity, item.Price, item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, created_at, modified_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.listOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *OrderRepository) listOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, created_at, modified_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
			&order.CreatedAt, &order.ModifiedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	query := `
		UPDATE orders
		SET status = $1, modified_at = now()
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ==============================================
// SHIPPING
// ==============================================

func (r *OrderRepository) CreateShipping(ctx context.Context, s *models.Shipping) error {
	query := `
		INSERT INTO shippings (order_id, address, cost, tracking_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, s.OrderID, s.Address, s.Cost, s.TrackingNumber).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to create shipping: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetShippingByOrder(ctx context.Context, orderID int) (*models.Shipping, error) {
	query := `
		SELECT id, order_id, address, cost, tracking_number, shipped_at, delivered_at
		FROM shippings
		WHERE order_id = $1
	`

	var s models.Shipping
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&s.ID, &s.OrderID, &s.Address, &s.Cost, &s.TrackingNumber, &s.ShippedAt, &s.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get shipping: %w", err)
	}
	return &s, nil
}

// ==============================================
// PAYMENTS
// ==============================================

func (r *OrderRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, order_id, payment_type, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, p.UserID, p.OrderID, p.PaymentType, p.Amount).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *OrderRepository) ListPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	query := `
		SELECT id, user_id, order_id, payment_type, amount, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.OrderID, &p.PaymentType, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
