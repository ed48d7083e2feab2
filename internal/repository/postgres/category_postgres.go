package postgres

import (
	"context"
	"database/sql"
	"time"

	"catalogapi/internal/model"
	"catalogapi/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Soft deletion is expressed as a deleted_at timestamp; every read filters on
// deleted_at IS NULL so logically removed rows behave as if absent.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

// Create inserts a new category row and returns the stored record.
func (r *CategoryPostgres) Create(ctx context.Context, cat *model.Category) (*model.Category, error) {
	const q = `
		INSERT INTO categories (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		cat.ID,
		cat.Title,
		cat.CreatedAt,
		cat.UpdatedAt,
	)
	return scanCategory(row)
}

// FindByID fetches a single live category by its ID.
func (r *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.Category, error) {
	const q = `
		SELECT id, title, created_at, updated_at, deleted_at
		FROM categories
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanCategory(r.db.QueryRowContext(ctx, q, id))
}

// List returns all live categories in insertion order.
func (r *CategoryPostgres) List(ctx context.Context) ([]model.Category, error) {
	const q = `
		SELECT id, title, created_at, updated_at, deleted_at
		FROM categories
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists title changes on a live category. A soft-deleted or missing
// row yields sql.ErrNoRows.
func (r *CategoryPostgres) Update(ctx context.Context, cat *model.Category) (*model.Category, error) {
	const q = `
		UPDATE categories
		SET title = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, title, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q, cat.ID, cat.Title, cat.UpdatedAt)
	return scanCategory(row)
}

// SoftDelete stamps deleted_at on a live category. The row itself stays in
// place so out-of-band tooling can still inspect or restore it.
func (r *CategoryPostgres) SoftDelete(ctx context.Context, id string, at time.Time) error {
	const q = `
		UPDATE categories
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Exists reports whether a live category with the given ID is present.
func (r *CategoryPostgres) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanCategory(row *sql.Row) (*model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
