package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalogapi/internal/model"
	"catalogapi/internal/repository"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Title string `form:"title" json:"title" validate:"required"`
}

// CategoryService defines the use cases for handling categories.
type CategoryService interface {
	// List returns all live categories in insertion order.
	List(ctx context.Context) ([]model.Category, error)

	// Get returns a single live category by its ID.
	Get(ctx context.Context, id string) (*model.Category, error)

	// Store validates the input and creates a new category.
	// Invalid input yields a *ValidationError and writes nothing.
	Store(ctx context.Context, in CategoryInput) (*model.Category, error)

	// Update validates the input and mutates an existing category.
	// The identifier is preserved across the update.
	Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error)

	// Delete soft-deletes a category by ID. The row is retained.
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) Store(ctx context.Context, in CategoryInput) (*model.Category, error) {
	if fields := checkFields(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	cat := &model.Category{
		ID:        uuid.New().String(),
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("store category: %w", err)
	}
	return stored, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if fields := checkFields(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cat.Title = in.Title
	cat.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, cat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
