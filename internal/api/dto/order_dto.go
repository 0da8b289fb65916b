package dto

// ==============================================
// ORDER DTOs
// ==============================================

type OrderItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=pending shipped delivered cancelled"`
}

type OrderItemDTO struct {
	ID         int    `json:"id"`
	ProductID  int    `json:"product_id"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	TotalPrice string `json:"total_price"`
}

type OrderDTO struct {
	ID          int            `json:"id"`
	UserID      int            `json:"user_id"`
	Status      string         `json:"status"`
	TotalAmount string         `json:"total_amount"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   string         `json:"created_at"`
}

// ==============================================
// SHIPPING / PAYMENT DTOs
// ==============================================

type ShippingRequest struct {
	OrderID        int    `json:"order_id" binding:"required"`
	Address        string `json:"address" binding:"required"`
	Cost           string `json:"cost" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type ShippingDTO struct {
	ID             int    `json:"id"`
	OrderID        int    `json:"order_id"`
	Address        string `json:"address"`
	Cost           string `json:"cost"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ShippedAt      string `json:"shipped_at,omitempty"`
	DeliveredAt    string `json:"delivered_at,omitempty"`
}

type PaymentRequest struct {
	OrderID     int    `json:"order_id"`
	PaymentType string `json:"payment_type" binding:"required,max=20"`
	Amount      string `json:"amount" binding:"required"`
}

type PaymentDTO struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id,omitempty"`
	PaymentType string `json:"payment_type"`
	Amount      string `json:"amount"`
	CreatedAt   string `json:"created_at"`
}

// ==============================================
// AUDIT LOG DTO
// ==============================================

type AuditLogDTO struct {
	ID        int64  `json:"id"`
	UserID    int    `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	Action    string `json:"action"`
	ModelName string `json:"model_name"`
	RecordID  int64  `json:"record_id"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}
