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
// ERRORS
// ==============================================

var (
	ErrRecordNotFound = errors.New("record not found")
)

// ==============================================
// CATALOG REPOSITORY
// ==============================================

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ==============================================
// CATEGORIES
// ==============================================

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, c.Name, c.Slug, c.Description).Scan(&c.ID); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, description FROM categories ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ==============================================
// SUBCATEGORIES
// ==============================================

func (r *CatalogRepository) CreateSubCategory(ctx context.Context, sc *models.SubCategory) error {
	query := `
		INSERT INTO sub_categories (category_id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.db.QueryRow(ctx, query, sc.CategoryID, sc.Name, sc.Slug, sc.Description).Scan(&sc.ID); err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	query := `SELECT id, category_id, name, slug, description FROM sub_categories ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []models.SubCategory
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.Description); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sc)
	}
	return subcategories, rows.Err()
}

func (r *CatalogRepository) UpdateSubCategory(ctx context.Context, sc *models.SubCategory) error {
	query := `
		UPDATE sub_categories
		SET category_id = $1, name = $2, slug = $3, description = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query, sc.CategoryID, sc.Name, sc.Slug, sc.Description, sc.ID)
	if err != nil {
		return fmt.Errorf("failed to update subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteSubCategory(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ==============================================
// PRODUCTS
// ==============================================

const productColumns = `id, name, description, summary, price, img, category_id, sub_category_id, tags`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Summary,
		&p.Price,
		&p.Img,
		&p.CategoryID,
		&p.SubCategoryID,
		&p.Tags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, summary, price, img, category_id, sub_category_id, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Summary, p.Price, p.Img, p.CategoryID, p.SubCategoryID, p.Tags,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *CatalogRepository) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Summary, &p.Price,
			&p.Img, &p.CategoryID, &p.SubCategoryID, &p.Tags,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, summary = $3, price = $4, img = $5,
		    category_id = $6, sub_category_id = $7, tags = $8
		WHERE id = $9
	`

	tag, err := r.db.Exec(ctx, query,
		p.Name, p.Description, p.Summary, p.Price, p.Img, p.CategoryID, p.SubCategoryID, p.Tags, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ==============================================
// REVIEWS
// ==============================================

func (r *CatalogRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, rv.ProductID, rv.UserID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListReviewsByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// ==============================================
// WISHLISTS
// ==============================================

func (r *CatalogRepository) AddWishlistItem(ctx context.Context, w *models.WishlistItem) error {
	query := `
		INSERT INTO wishlists (user_id, product_id, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, w.UserID, w.ProductID, w.Notes).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListWishlistByUser(ctx context.Context, userID int) ([]models.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, notes, created_at, deleted_at
		FROM wishlists
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var w models.WishlistItem
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductID, &w.Notes, &w.CreatedAt, &w.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

// ==============================================
// ADDRESSES
// ==============================================

func (r *CatalogRepository) CreateAddress(ctx context.Context, a *models.Address) error {
	query := `
		INSERT INTO addresses (user_id, address, city, landmark, postal_code, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query, a.UserID, a.Address, a.City, a.Landmark, a.PostalCode, a.PhoneNumber).
		Scan(&a.ID, &a.CreatedAt, &a.ModifiedAt)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListAddressesByUser(ctx context.Context, userID int) ([]models.Address, error) {
	query := `
		SELECT id, user_id, address, city, landmark, postal_code, phone_number, created_at, modified_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		err := rows.Scan(&a.ID, &a.UserID, &a.Address, &a.City, &a.Landmark,
			&a.PostalCode, &a.PhoneNumber, &a.CreatedAt, &a.ModifiedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *CatalogRepository) UpdateAddress(ctx context.Context, a *models.Address) error {
	query := `
		UPDATE addresses
		SET address = $1, city = $2, landmark = $3, postal_code = $4, phone_number = $5, modified_at = now()
		WHERE id = $6 AND user_id = $7
	`

	tag, err := r.db.Exec(ctx, query, a.Address, a.City, a.Landmark, a.PostalCode, a.PhoneNumber, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteAddress(ctx context.Context, id, userID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}
