package model

import "time"

// Product is a catalog item belonging to exactly one category.
// Image holds the object storage key of the uploaded product image,
// never raw bytes.
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	CategoryID  string     `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the product has been soft-deleted.
func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}
