package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ==============================================
// CATALOG MODELS
// ==============================================

type Category struct {
	ID          int            `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
}

type SubCategory struct {
	ID          int            `db:"id"`
	CategoryID  int            `db:"category_id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description sql.NullString `db:"description"`
}

// Product is a catalog entry. Price is stored as numeric, never float.
type Product struct {
	ID            int             `db:"id"`
	Name          string          `db:"name"`
	Description   sql.NullString  `db:"description"`
	Summary       sql.NullString  `db:"summary"`
	Price         decimal.Decimal `db:"price"`
	Img           sql.NullString  `db:"img"`
	CategoryID    int             `db:"category_id"`
	SubCategoryID int             `db:"sub_category_id"`
	Tags          []string        `db:"tags"`
}

// ==============================================
// CUSTOMER PROFILE MODELS
// ==============================================

type Address struct {
	ID          int            `db:"id"`
	UserID      int            `db:"user_id"`
	Address     sql.NullString `db:"address"`
	City        string         `db:"city"`
	Landmark    string         `db:"landmark"`
	PostalCode  string         `db:"postal_code"`
	PhoneNumber string         `db:"phone_number"`
	CreatedAt   time.Time      `db:"created_at"`
	ModifiedAt  time.Time      `db:"modified_at"`
}

type Review struct {
	ID        int            `db:"id"`
	ProductID int            `db:"product_id"`
	UserID    int            `db:"user_id"`
	Rating    int            `db:"rating"` // 1..5
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
}

type WishlistItem struct {
	ID        int            `db:"id"`
	UserID    int            `db:"user_id"`
	ProductID int            `db:"product_id"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
	DeletedAt sql.NullTime   `db:"deleted_at"`
}
