package dto

// ==============================================
// CATALOG DTOs
// ==============================================

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=255"`
	Description string `json:"description"`
}

type CategoryDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type SubCategoryRequest struct {
	CategoryID  int    `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=255"`
	Description string `json:"description"`
}

type SubCategoryDTO struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type ProductRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Description   string   `json:"description"`
	Summary       string   `json:"summary"`
	Price         string   `json:"price" binding:"required"` // decimal string, e.g. "1999.99"
	Img           string   `json:"img"`
	CategoryID    int      `json:"category_id" binding:"required"`
	SubCategoryID int      `json:"sub_category_id" binding:"required"`
	Tags          []string `json:"tags"`
}

type ProductDTO struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	Price         string   `json:"price"`
	Img           string   `json:"img,omitempty"`
	CategoryID    int      `json:"category_id"`
	SubCategoryID int      `json:"sub_category_id"`
	Tags          []string `json:"tags"`
}

// ==============================================
// CUSTOMER PROFILE DTOs
// ==============================================

type AddressRequest struct {
	Address     string `json:"address"`
	City        string `json:"city" binding:"required,max=20"`
	Landmark    string `json:"landmark" binding:"max=30"`
	PostalCode  string `json:"postal_code" binding:"required,max=10"`
	PhoneNumber string `json:"phone_number" binding:"required,max=11"`
}

type AddressDTO struct {
	ID          int    `json:"id"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city"`
	Landmark    string `json:"landmark"`
	PostalCode  string `json:"postal_code"`
	PhoneNumber string `json:"phone_number"`
}

type ReviewRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ReviewDTO struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	UserID    int    `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

type WishlistRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Notes     string `json:"notes"`
}

type WishlistDTO struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}
