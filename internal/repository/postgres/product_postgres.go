package postgres

import (
	"context"
	"database/sql"
	"time"

	"catalogapi/internal/model"
	"catalogapi/internal/repository"
)

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
// The image column holds an object storage key, never file content.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

// Create inserts a new product row and returns the stored record.
// The category FK is enforced by the schema as well; the service checks it
// first so a dangling reference surfaces as a field error, not a driver error.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, title, description, image, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, description, image, category_id, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Title,
		p.Description,
		p.Image,
		p.CategoryID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProduct(row)
}

// FindByID fetches a single live product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `
		SELECT id, title, description, image, category_id, created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// List returns all live products in insertion order.
func (r *ProductPostgres) List(ctx context.Context) ([]model.Product, error) {
	const q = `
		SELECT id, title, description, image, category_id, created_at, updated_at, deleted_at
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists field changes on a live product.
func (r *ProductPostgres) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		UPDATE products
		SET title = $2, description = $3, image = $4, category_id = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, title, description, image, category_id, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Title,
		p.Description,
		p.Image,
		p.CategoryID,
		p.UpdatedAt,
	)
	return scanProduct(row)
}

// SoftDelete stamps deleted_at on a live product.
func (r *ProductPostgres) SoftDelete(ctx context.Context, id string, at time.Time) error {
	const q = `
		UPDATE products
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

func scanProduct(row *sql.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
