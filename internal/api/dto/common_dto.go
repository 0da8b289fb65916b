package dto

// ==============================================
// COMMON RESPONSE DTOs
// ==============================================

// ErrorResponse - standard error format: human message + machine code.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// MessageResponse - generic acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationRequest - common pagination parameters.
type PaginationRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}
