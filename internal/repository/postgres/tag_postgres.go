package postgres

import (
	"context"
	"database/sql"
	"time"

	"catalogapi/internal/model"
	"catalogapi/internal/repository"
)

// TagPostgres is a PostgreSQL implementation of repository.TagRepository.
type TagPostgres struct {
	db *sql.DB
}

// NewTagPostgres creates a new TagPostgres repository.
func NewTagPostgres(db *sql.DB) *TagPostgres {
	return &TagPostgres{db: db}
}

var _ repository.TagRepository = (*TagPostgres)(nil)

func (r *TagPostgres) Create(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	const q = `
		INSERT INTO tags (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q, tag.ID, tag.Title, tag.CreatedAt, tag.UpdatedAt)
	return scanTag(row)
}

func (r *TagPostgres) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	const q = `
		SELECT id, title, created_at, updated_at, deleted_at
		FROM tags
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanTag(r.db.QueryRowContext(ctx, q, id))
}

func (r *TagPostgres) List(ctx context.Context) ([]model.Tag, error) {
	const q = `
		SELECT id, title, created_at, updated_at, deleted_at
		FROM tags
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tag, 0)
	for rows.Next() {
		var tg model.Tag
		if err := rows.Scan(&tg.ID, &tg.Title, &tg.CreatedAt, &tg.UpdatedAt, &tg.DeletedAt); err != nil {
			return nil, err
		}
		items = append(items, tg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TagPostgres) Update(ctx context.Context, tag *model.Tag) (*model.Tag, error) {
	const q = `
		UPDATE tags
		SET title = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, title, created_at, updated_at, deleted_at
	`
	row := r.db.QueryRowContext(ctx, q, tag.ID, tag.Title, tag.UpdatedAt)
	return scanTag(row)
}

func (r *TagPostgres) SoftDelete(ctx context.Context, id string, at time.Time) error {
	const q = `
		UPDATE tags
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

func scanTag(row *sql.Row) (*model.Tag, error) {
	var tg model.Tag
	if err := row.Scan(&tg.ID, &tg.Title, &tg.CreatedAt, &tg.UpdatedAt, &tg.DeletedAt); err != nil {
		return nil, err
	}
	return &tg, nil
}
