package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"catalogapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func categoryRows(c *model.Category) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at", "deleted_at"}).
		AddRow(c.ID, c.Title, c.CreatedAt, c.UpdatedAt, c.DeletedAt)
}

func TestCategoryPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	cat := &model.Category{
		ID:        "test-uuid",
		Title:     "some title",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(cat.ID, cat.Title, cat.CreatedAt, cat.UpdatedAt).
		WillReturnRows(categoryRows(cat))

	result, err := repo.Create(ctx, cat)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, cat.ID, result.ID)
	assert.Equal(t, "some title", result.Title)
	assert.Nil(t, result.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("test-id").
			WillReturnRows(categoryRows(&model.Category{ID: "test-id", Title: "t", CreatedAt: now, UpdatedAt: now}))

		cat, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, cat)
		assert.Equal(t, "test-id", cat.ID)
	})

	t.Run("not found", func(t *testing.T) {
		// Soft-deleted rows take this same path: the WHERE clause filters
		// them out and the driver reports no rows.
		mock.ExpectQuery("SELECT (.+) FROM categories WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		cat, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, cat)
	})
}

func TestCategoryPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at", "deleted_at"}).
		AddRow("id-1", "first", now, now, nil).
		AddRow("id-2", "second", now, now, nil)

	mock.ExpectQuery("SELECT (.+) FROM categories WHERE deleted_at IS NULL ORDER BY created_at").
		WillReturnRows(rows)

	items, err := repo.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	cat := &model.Category{ID: "test-id", Title: "updated title", CreatedAt: now, UpdatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE categories SET title = (.+) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(cat.ID, cat.Title, cat.UpdatedAt).
			WillReturnRows(categoryRows(cat))

		updated, err := repo.Update(ctx, cat)

		assert.NoError(t, err)
		assert.Equal(t, "test-id", updated.ID)
		assert.Equal(t, "updated title", updated.Title)
	})

	t.Run("missing or soft-deleted row", func(t *testing.T) {
		mock.ExpectQuery("UPDATE categories SET title = (.+) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(cat.ID, cat.Title, cat.UpdatedAt).
			WillReturnError(sql.ErrNoRows)

		updated, err := repo.Update(ctx, cat)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, updated)
	})
}

func TestCategoryPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("stamps the row instead of removing it", func(t *testing.T) {
		mock.ExpectExec("UPDATE categories SET deleted_at = (.+) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("test-id", at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SoftDelete(ctx, "test-id", at)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no live row", func(t *testing.T) {
		mock.ExpectExec("UPDATE categories SET deleted_at = (.+) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("gone", at).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(ctx, "gone", at)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestCategoryPostgres_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCategoryPostgres(db)
	ctx := context.Background()

	t.Run("live row", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("test-id").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.Exists(ctx, "test-id")

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := repo.Exists(ctx, "missing")

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
