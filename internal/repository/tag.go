package repository

import (
	"context"
	"time"

	"catalogapi/internal/model"
)

// TagRepository defines data access for tags using SQL queries only.
// Reads exclude soft-deleted rows; missing rows surface as sql.ErrNoRows.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) (*model.Tag, error)
	FindByID(ctx context.Context, id string) (*model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) (*model.Tag, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
