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

// TagInput carries the writable fields of a tag.
type TagInput struct {
	Title string `form:"title" json:"title" validate:"required"`
}

// TagService defines the use cases for handling tags. Same contract as
// CategoryService minus the product relation.
type TagService interface {
	List(ctx context.Context) ([]model.Tag, error)
	Get(ctx context.Context, id string) (*model.Tag, error)
	Store(ctx context.Context, in TagInput) (*model.Tag, error)
	Update(ctx context.Context, id string, in TagInput) (*model.Tag, error)
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService constructs a new TagService.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Get(ctx context.Context, id string) (*model.Tag, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Store(ctx context.Context, in TagInput) (*model.Tag, error) {
	if fields := checkFields(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	tag := &model.Tag{
		ID:        uuid.New().String(),
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("store tag: %w", err)
	}
	return stored, nil
}

func (s *tagService) Update(ctx context.Context, id string, in TagInput) (*model.Tag, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if fields := checkFields(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tag.Title = in.Title
	tag.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return updated, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
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
