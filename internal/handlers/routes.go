package handlers

import (
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything RegisterRoutes needs to wire the API surface.
type Handlers struct {
	Auth         *AuthHandler
	Verification *VerificationHandler
	Catalog      *CatalogHandler
	Orders       *OrderHandler
	Audit        *AuditHandler
	Health       *HealthHandler
}

// RegisterRoutes mounts all endpoints on the engine. Credential endpoints
// sit behind the rate limiter; everything that acts on behalf of a user
// sits behind bearer auth.
func RegisterRoutes(r *gin.Engine, h Handlers, tokens *auth.TokenManager, lmt *limiter.Limiter) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Readiness)

	api := r.Group("/api")

	throttle := middleware.RateLimit(lmt)
	authed := middleware.RequireAuth(tokens)

	// Session lifecycle.
	a := api.Group("/auth")
	a.POST("/register", throttle, h.Auth.Register)
	a.POST("/login", throttle, h.Auth.Login)
	a.POST("/refresh", h.Auth.Refresh)
	a.POST("/logout", h.Auth.Logout)

	// Contact verification. Issuance requires a session; redemption only
	// requires the code itself.
	a.POST("/verify-email", authed, throttle, h.Verification.SendEmailVerification)
	a.PUT("/verify-email", throttle, h.Verification.VerifyEmail)
	a.POST("/verify-sms", authed, throttle, h.Verification.SendSMSVerification)
	a.PUT("/verify-sms", throttle, h.Verification.VerifySMS)

	// Catalog.
	api.GET("/categories", h.Catalog.ListCategories)
	api.POST("/categories", authed, h.Catalog.CreateCategory)
	api.GET("/subcategories", h.Catalog.ListSubCategories)
	api.POST("/subcategories", authed, h.Catalog.CreateSubCategory)
	api.PUT("/subcategories/:id", authed, h.Catalog.UpdateSubCategory)
	api.DELETE("/subcategories/:id", authed, h.Catalog.DeleteSubCategory)

	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/products/:id/reviews", h.Catalog.ListReviews)
	api.POST("/products", authed, h.Catalog.CreateProduct)
	api.PUT("/products/:id", authed, h.Catalog.UpdateProduct)
	api.DELETE("/products/:id", authed, h.Catalog.DeleteProduct)

	api.POST("/reviews", authed, h.Catalog.CreateReview)

	api.GET("/wishlist", authed, h.Catalog.ListWishlist)
	api.POST("/wishlist", authed, h.Catalog.AddToWishlist)

	api.GET("/addresses", authed, h.Catalog.ListAddresses)
	api.POST("/addresses", authed, h.Catalog.CreateAddress)
	api.PUT("/addresses/:id", authed, h.Catalog.UpdateAddress)
	api.DELETE("/addresses/:id", authed, h.Catalog.DeleteAddress)

	// Orders, shipping, payments.
	api.GET("/orders", authed, h.Orders.ListOrders)
	api.POST("/orders", authed, h.Orders.CreateOrder)
	api.GET("/orders/:id", authed, h.Orders.GetOrder)
	api.PUT("/orders/:id/status", authed, h.Orders.UpdateOrderStatus)
	api.GET("/orders/:id/shipping", authed, h.Orders.GetShipping)
	api.POST("/shippings", authed, h.Orders.CreateShipping)

	api.GET("/payments", authed, h.Orders.ListPayments)
	api.POST("/payments", authed, h.Orders.CreatePayment)

	// Audit trail.
	api.GET("/audit-logs", authed, h.Audit.ListAuditLogs)
}
