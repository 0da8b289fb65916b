package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ==============================================
// ORDER MODELS
// ==============================================

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the order status constants.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	Status      string          `db:"status"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	ModifiedAt  time.Time       `db:"modified_at"`
	Items       []OrderItem     `db:"-"`
}

// OrderItem holds a unit price snapshot; TotalPrice = Quantity * Price.
type OrderItem struct {
	ID         int             `db:"id"`
	OrderID    int             `db:"order_id"`
	ProductID  int             `db:"product_id"`
	Quantity   int             `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	TotalPrice decimal.Decimal `db:"total_price"`
}

type Shipping struct {
	ID             int             `db:"id"`
	OrderID        int             `db:"order_id"`
	Address        string          `db:"address"`
	Cost           decimal.Decimal `db:"cost"`
	TrackingNumber sql.NullString  `db:"tracking_number"`
	ShippedAt      sql.NullTime    `db:"shipped_at"`
	DeliveredAt    sql.NullTime    `db:"delivered_at"`
}

type Payment struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	OrderID     sql.NullInt32   `db:"order_id"`
	PaymentType string          `db:"payment_type"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
}
