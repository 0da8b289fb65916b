package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/digistore/api/internal/api/dto"
	"github.com/digistore/api/internal/models"
	"github.com/shopspring/decimal"
)

// ==============================================
// COLLABORATOR INTERFACE (for testing)
// ==============================================

type CatalogStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateSubCategory(ctx context.Context, sc *models.SubCategory) error
	ListSubCategories(ctx context.Context) ([]models.SubCategory, error)
	UpdateSubCategory(ctx context.Context, sc *models.SubCategory) error
	DeleteSubCategory(ctx context.Context, id int) error
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
	CreateReview(ctx context.Context, rv *models.Review) error
	ListReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error)
	AddWishlistItem(ctx context.Context, w *models.WishlistItem) error
	ListWishlistByUser(ctx context.Context, userID int) ([]models.WishlistItem, error)
	CreateAddress(ctx context.Context, a *models.Address) error
	ListAddressesByUser(ctx context.Context, userID int) ([]models.Address, error)
	UpdateAddress(ctx context.Context, a *models.Address) error
	DeleteAddress(ctx context.Context, id, userID int) error
}

// ==============================================
// CATALOG SERVICE
// ==============================================

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// ==============================================
// CATEGORIES
// ==============================================

func (s *CatalogService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryDTO, error) {
	c := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: nullString(req.Description),
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return categoryToDTO(c), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToDTO(&categories[i]))
	}
	return out, nil
}

// ==============================================
// SUBCATEGORIES
// ==============================================

func (s *CatalogService) CreateSubCategory(ctx context.Context, req dto.SubCategoryRequest) (*dto.SubCategoryDTO, error) {
	sc := &models.SubCategory{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: nullString(req.Description),
	}
	if err := s.store.CreateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	return subCategoryToDTO(sc), nil
}

func (s *CatalogService) ListSubCategories(ctx context.Context) ([]dto.SubCategoryDTO, error) {
	subcategories, err := s.store.ListSubCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubCategoryDTO, 0, len(subcategories))
	for i := range subcategories {
		out = append(out, *subCategoryToDTO(&subcategories[i]))
	}
	return out, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id int, req dto.SubCategoryRequest) (*dto.SubCategoryDTO, error) {
	sc := &models.SubCategory{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: nullString(req.Description),
	}
	if err := s.store.UpdateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	return subCategoryToDTO(sc), nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id int) error {
	return s.store.DeleteSubCategory(ctx, id)
}

// ==============================================
// PRODUCTS
// ==============================================

func (s *CatalogService) CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductDTO, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return productToDTO(p), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*dto.ProductDTO, error) {
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToDTO(p), nil
}

func (s *CatalogService) ListProducts(ctx context.Context, page, perPage int) ([]dto.ProductDTO, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	products, err := s.store.ListProducts(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *productToDTO(&products[i]))
	}
	return out, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req dto.ProductRequest) (*dto.ProductDTO, error) {
	p, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return productToDTO(p), nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	return s.store.DeleteProduct(ctx, id)
}

// ==============================================
// REVIEWS
// ==============================================

func (s *CatalogService) CreateReview(ctx context.Context, userID int, req dto.ReviewRequest) (*dto.ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, models.ErrInvalidRating
	}
	rv := &models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   nullString(req.Comment),
	}
	if err := s.store.CreateReview(ctx, rv); err != nil {
		return nil, err
	}
	return reviewToDTO(rv), nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID int) ([]dto.ReviewDTO, error) {
	reviews, err := s.store.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, *reviewToDTO(&reviews[i]))
	}
	return out, nil
}

// ==============================================
// WISHLISTS
// ==============================================

func (s *CatalogService) AddToWishlist(ctx context.Context, userID int, req dto.WishlistRequest) (*dto.WishlistDTO, error) {
	w := &models.WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Notes:     nullString(req.Notes),
	}
	if err := s.store.AddWishlistItem(ctx, w); err != nil {
		return nil, err
	}
	return wishlistToDTO(w), nil
}

func (s *CatalogService) ListWishlist(ctx context.Context, userID int) ([]dto.WishlistDTO, error) {
	items, err := s.store.ListWishlistByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WishlistDTO, 0, len(items))
	for i := range items {
		out = append(out, *wishlistToDTO(&items[i]))
	}
	return out, nil
}

// ==============================================
// ADDRESSES
// ==============================================

func (s *CatalogService) CreateAddress(ctx context.Context, userID int, req dto.AddressRequest) (*dto.AddressDTO, error) {
	a := &models.Address{
		UserID:      userID,
		Address:     nullString(req.Address),
		City:        req.City,
		Landmark:    req.Landmark,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.store.CreateAddress(ctx, a); err != nil {
		return nil, err
	}
	return addressToDTO(a), nil
}

func (s *CatalogService) ListAddresses(ctx context.Context, userID int) ([]dto.AddressDTO, error) {
	addresses, err := s.store.ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressDTO, 0, len(addresses))
	for i := range addresses {
		out = append(out, *addressToDTO(&addresses[i]))
	}
	return out, nil
}

func (s *CatalogService) UpdateAddress(ctx context.Context, userID, id int, req dto.AddressRequest) (*dto.AddressDTO, error) {
	a := &models.Address{
		ID:          id,
		UserID:      userID,
		Address:     nullString(req.Address),
		City:        req.City,
		Landmark:    req.Landmark,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.store.UpdateAddress(ctx, a); err != nil {
		return nil, err
	}
	return addressToDTO(a), nil
}

func (s *CatalogService) DeleteAddress(ctx context.Context, userID, id int) error {
	return s.store.DeleteAddress(ctx, id, userID)
}

// ==============================================
// HELPERS
// ==============================================

func productFromRequest(req dto.ProductRequest) (*models.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", req.Price, err)
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Product{
		Name:          req.Name,
		Description:   nullString(req.Description),
		Summary:       nullString(req.Summary),
		Price:         price,
		Img:           nullString(req.Img),
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Tags:          tags,
	}, nil
}

func categoryToDTO(c *models.Category) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description.String,
	}
}

func subCategoryToDTO(sc *models.SubCategory) *dto.SubCategoryDTO {
	return &dto.SubCategoryDTO{
		ID:          sc.ID,
		CategoryID:  sc.CategoryID,
		Name:        sc.Name,
		Slug:        sc.Slug,
		Description: sc.Description.String,
	}
}

func productToDTO(p *models.Product) *dto.ProductDTO {
	return &dto.ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description.String,
		Summary:       p.Summary.String,
		Price:         p.Price.String(),
		Img:           p.Img.String,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		Tags:          p.Tags,
	}
}

func reviewToDTO(rv *models.Review) *dto.ReviewDTO {
	return &dto.ReviewDTO{
		ID:        rv.ID,
		ProductID: rv.ProductID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment.String,
		CreatedAt: rv.CreatedAt.Format(timeFormat),
	}
}

func wishlistToDTO(w *models.WishlistItem) *dto.WishlistDTO {
	return &dto.WishlistDTO{
		ID:        w.ID,
		ProductID: w.ProductID,
		Notes:     w.Notes.String,
		CreatedAt: w.CreatedAt.Format(timeFormat),
	}
}

func addressToDTO(a *models.Address) *dto.AddressDTO {
	return &dto.AddressDTO{
		ID:          a.ID,
		Address:     a.Address.String,
		City:        a.City,
		Landmark:    a.Landmark,
		PostalCode:  a.PostalCode,
		PhoneNumber: a.PhoneNumber,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
