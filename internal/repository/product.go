package repository

import (
	"context"
	"time"

	"catalogapi/internal/model"
)

// ProductRepository defines data access for products using SQL queries only.
// Reads exclude soft-deleted rows; missing rows surface as sql.ErrNoRows.
type ProductRepository interface {
	// Create inserts a new product row and returns the stored record.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// FindByID returns a live product by its ID.
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// List returns all live products in insertion order.
	List(ctx context.Context) ([]model.Product, error)

	// Update persists field changes on a live product and returns the stored record.
	Update(ctx context.Context, p *model.Product) (*model.Product, error)

	// SoftDelete marks a live product deleted at the given time.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
