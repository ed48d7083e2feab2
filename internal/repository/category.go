package repository

import (
	"context"
	"time"

	"catalogapi/internal/model"
)

// CategoryRepository defines data access for categories using SQL queries only.
// No business logic here — strictly persistence operations.
//
// All read methods exclude soft-deleted rows. Missing or soft-deleted rows
// surface as sql.ErrNoRows; the service layer translates that into its own
// not-found error.
type CategoryRepository interface {
	// Create inserts a new category row and returns the stored record.
	Create(ctx context.Context, cat *model.Category) (*model.Category, error)

	// FindByID returns a live category by its ID.
	FindByID(ctx context.Context, id string) (*model.Category, error)

	// List returns all live categories in insertion order.
	List(ctx context.Context) ([]model.Category, error)

	// Update persists title changes on a live category and returns the stored record.
	Update(ctx context.Context, cat *model.Category) (*model.Category, error)

	// SoftDelete marks a live category deleted at the given time. The row is
	// retained; it returns sql.ErrNoRows if no live row matched.
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// Exists reports whether a live category with the given ID is present.
	// Used for referential integrity checks on product writes.
	Exists(ctx context.Context, id string) (bool, error)
}
