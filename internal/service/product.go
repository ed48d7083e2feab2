package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"catalogapi/internal/model"
	"catalogapi/internal/repository"
	"catalogapi/internal/storage"
)

// ProductInput carries the writable text fields of a product. The image file
// travels separately as an ImageUpload since it is streamed, not form text.
type ProductInput struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description" validate:"required"`
	CategoryID  string `form:"category_id" json:"category_id" validate:"required,uuid"`
}

// ImageUpload wraps an uploaded image as streaming content plus metadata.
// The original filename is used only to extract the extension; the stored
// object key is UUID + extension under the products/ prefix.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// ProductService defines the use cases for handling products.
type ProductService interface {
	// List returns all live products in insertion order.
	List(ctx context.Context) ([]model.Product, error)

	// Get returns a single live product by its ID.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Store validates the input, uploads the image to object storage, and
	// creates the product with the returned storage key as its image
	// reference. The object is rolled back if the DB insert fails. A nil
	// image or a category_id not resolving to a live category are field
	// errors, reported together with any other failing field.
	Store(ctx context.Context, in ProductInput, image *ImageUpload) (*model.Product, error)

	// Update validates the input, uploads the replacement image, and mutates
	// an existing product. The previous image object is retained.
	Update(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*model.Product, error)

	// Delete soft-deletes a product by ID. The row and its image object are retained.
	Delete(ctx context.Context, id string) error

	// ImageURL returns a short-lived presigned URL for the product's image
	// object, so callers fetch image bytes from storage directly.
	ImageURL(ctx context.Context, id string) (string, error)
}

type productService struct {
	store      storage.Storage
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductService constructs a new ProductService.
func NewProductService(store storage.Storage, repo repository.ProductRepository, categories repository.CategoryRepository) ProductService {
	return &productService{store: store, repo: repo, categories: categories}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) Store(ctx context.Context, in ProductInput, image *ImageUpload) (*model.Product, error) {
	if err := s.checkProduct(ctx, in, image); err != nil {
		return nil, err
	}

	info, key, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Image:       info.Key,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("store product: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("store product: %w", err)
	}
	return stored, nil
}

func (s *productService) Update(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*model.Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.checkProduct(ctx, in, image); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	info, key, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	p.Title = in.Title
	p.Description = in.Description
	p.Image = info.Key // previous object is retained, no cleanup
	p.CategoryID = in.CategoryID
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("update product: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
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

func (s *productService) ImageURL(ctx context.Context, id string) (string, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, p.Image, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign image: %w", err)
	}
	return u, nil
}

// checkProduct accumulates every field failure before any write: struct rules,
// image presence, and the category reference resolving to a live row.
func (s *productService) checkProduct(ctx context.Context, in ProductInput, image *ImageUpload) error {
	fields := checkFields(in)
	if fields == nil {
		fields = make(map[string]string)
	}

	if image == nil || image.Reader == nil {
		fields["image"] = "the image field is required"
	}

	// Only hit the DB when the submitted id is well-formed.
	if _, bad := fields["category_id"]; !bad {
		ok, err := s.categories.Exists(ctx, in.CategoryID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !ok {
			fields["category_id"] = "the selected category does not exist"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *productService) uploadImage(ctx context.Context, image *ImageUpload) (storage.ObjectInfo, string, error) {
	ext := filepath.Ext(image.Filename)
	key := filepath.ToSlash(filepath.Join("products", uuid.New().String()+ext))

	ct := image.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	info, err := s.store.Put(ctx, key, image.Reader, storage.PutObjectOptions{
		Size:        image.Size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": image.Filename,
		},
	})
	if err != nil {
		return storage.ObjectInfo{}, "", err
	}
	return info, key, nil
}
