package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/middleware"
	"github.com/digistore/api/internal/models"
	"github.com/gin-gonic/gin"
)

// ==============================================
// SERVICE CONTRACT
// ==============================================

type CatalogManager interface {
	CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context) ([]dto.CategoryDTO, error)
	CreateSubCategory(ctx context.Context, req dto.SubCategoryRequest) (*dto.SubCategoryDTO, error)
	ListSubCategories(ctx context.Context) ([]dto.SubCategoryDTO, error)
	UpdateSubCategory(ctx context.Context, id int, req dto.SubCategoryRequest) (*dto.SubCategoryDTO, error)
	DeleteSubCategory(ctx context.Context, id int) error
	CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductDTO, error)
	GetProduct(ctx context.Context, id int) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context, page, perPage int) ([]dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, id int, req dto.ProductRequest) (*dto.ProductDTO, error)
	DeleteProduct(ctx context.Context, id int) error
	CreateReview(ctx context.Context, userID int, req dto.ReviewRequest) (*dto.ReviewDTO, error)
	ListReviews(ctx context.Context, productID int) ([]dto.ReviewDTO, error)
	AddToWishlist(ctx context.Context, userID int, req dto.WishlistRequest) (*dto.WishlistDTO, error)
	ListWishlist(ctx context.Context, userID int) ([]dto.WishlistDTO, error)
	CreateAddress(ctx context.Context, userID int, req dto.AddressRequest) (*dto.AddressDTO, error)
	ListAddresses(ctx context.Context, userID int) ([]dto.AddressDTO, error)
	UpdateAddress(ctx context.Context, userID, id int, req dto.AddressRequest) (*dto.AddressDTO, error)
	DeleteAddress(ctx context.Context, userID, id int) error
}

type CatalogHandler struct {
	service CatalogManager
}

func NewCatalogHandler(service CatalogManager) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ==============================================
// CATEGORIES
// ==============================================

// POST /api/categories (authenticated)
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ==============================================
// SUBCATEGORIES
// ==============================================

// POST /api/subcategories (authenticated)
func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req dto.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	sc, err := h.service.CreateSubCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// GET /api/subcategories
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	scs, err := h.service.ListSubCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scs)
}

// PUT /api/subcategories/:id (authenticated)
func (h *CatalogHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	sc, err := h.service.UpdateSubCategory(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

// DELETE /api/subcategories/:id (authenticated)
func (h *CatalogHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSubCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Subcategory deleted"})
}

// ==============================================
// PRODUCTS
// ==============================================

// POST /api/products (authenticated)
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/products?page=&per_page=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var pg dto.PaginationRequest
	if err := c.ShouldBindQuery(&pg); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	products, err := h.service.ListProducts(c.Request.Context(), pg.Page, pg.PerPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// PUT /api/products/:id (authenticated)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	p, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/products/:id (authenticated)
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted"})
}

// ==============================================
// REVIEWS
// ==============================================

// POST /api/reviews (authenticated)
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	rv, err := h.service.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// GET /api/products/:id/reviews
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ==============================================
// WISHLIST
// ==============================================

// POST /api/wishlist (authenticated)
func (h *CatalogHandler) AddToWishlist(c *gin.Context) {
	var req dto.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	item, err := h.service.AddToWishlist(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /api/wishlist (authenticated)
func (h *CatalogHandler) ListWishlist(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	items, err := h.service.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ==============================================
// ADDRESSES
// ==============================================

// POST /api/addresses (authenticated)
func (h *CatalogHandler) CreateAddress(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	addr, err := h.service.CreateAddress(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

// GET /api/addresses (authenticated)
func (h *CatalogHandler) ListAddresses(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	addrs, err := h.service.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, addrs)
}

// PUT /api/addresses/:id (authenticated)
func (h *CatalogHandler) UpdateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), models.ErrCodeValidationFailed)
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	addr, err := h.service.UpdateAddress(c.Request.Context(), userID, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

// DELETE /api/addresses/:id (authenticated)
func (h *CatalogHandler) DeleteAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Address deleted"})
}

// ==============================================
// SHARED HELPERS
// ==============================================

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" parameter", models.ErrCodeValidationFailed)
		return 0, false
	}
	return id, true
}

// callerID extracts the authenticated user's id from the request context.
func callerID(c *gin.Context) (int, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required", models.ErrCodeInvalidToken)
		return 0, false
	}
	return claims.UserID, true
}
