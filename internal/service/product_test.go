package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"catalogapi/internal/model"
	repoMocks "catalogapi/internal/repository/mocks"
	"catalogapi/internal/storage"
	storeMocks "catalogapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testCategoryID = "1b4e28ba-2fa1-4d2a-883f-0016d3cca427"

func testImage() *ImageUpload {
	return &ImageUpload{
		Reader:      strings.NewReader("fake image bytes"),
		Filename:    "my_image.jpg",
		ContentType: "image/jpeg",
		Size:        16,
	}
}

func validProductInput() ProductInput {
	return ProductInput{
		Title:       "some title",
		Description: "some desc",
		CategoryID:  testCategoryID,
	}
}

func TestProductService_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads image then creates record with storage key", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mCats.On("Exists", ctx, testCategoryID).Return(true, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/") && strings.HasSuffix(key, ".jpg")
		}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{Key: "products/generated.jpg"}, nil)
		mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.Title == "some title" &&
				p.Description == "some desc" &&
				p.Image == "products/generated.jpg" &&
				p.CategoryID == testCategoryID &&
				p.ID != ""
		})).Return(&model.Product{ID: "prod-id", Image: "products/generated.jpg"}, nil)

		p, err := svc.Store(ctx, validProductInput(), testImage())

		assert.NoError(t, err)
		assert.Equal(t, "prod-id", p.ID)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
		mCats.AssertExpectations(t)
	})

	t.Run("all failing fields are reported together", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		p, err := svc.Store(ctx, ProductInput{}, nil)

		assert.Nil(t, p)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "title")
		assert.Contains(t, verr.Fields, "description")
		assert.Contains(t, verr.Fields, "image")
		assert.Contains(t, verr.Fields, "category_id")
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing image is a field error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mCats.On("Exists", ctx, testCategoryID).Return(true, nil)

		p, err := svc.Store(ctx, validProductInput(), nil)

		assert.Nil(t, p)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "image")
		assert.NotContains(t, verr.Fields, "title")
	})

	t.Run("dangling category reference is a field error, not a storage fault", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mCats.On("Exists", ctx, testCategoryID).Return(false, nil)

		p, err := svc.Store(ctx, validProductInput(), testImage())

		assert.Nil(t, p)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "category_id")
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed category id skips the existence lookup", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		in := validProductInput()
		in.CategoryID = "not-a-uuid"

		p, err := svc.Store(ctx, in, testImage())

		assert.Nil(t, p)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "category_id")
		mCats.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("db failure rolls back the uploaded object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mCats.On("Exists", ctx, testCategoryID).Return(true, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "products/generated.jpg"}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/")
		})).Return(nil)

		p, err := svc.Store(ctx, validProductInput(), testImage())

		assert.Nil(t, p)
		assert.Error(t, err)
		mStore.AssertExpectations(t)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces image reference and preserves the identifier", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		existing := &model.Product{ID: "prod-id", Title: "old", Description: "old", Image: "products/old.jpg", CategoryID: testCategoryID}
		mCats.On("Exists", ctx, testCategoryID).Return(true, nil)
		mRepo.On("FindByID", ctx, "prod-id").Return(existing, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "products/new.jpg"}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.ID == "prod-id" && p.Title == "upd title" && p.Image == "products/new.jpg"
		})).Return(&model.Product{ID: "prod-id", Title: "upd title", Image: "products/new.jpg"}, nil)

		in := validProductInput()
		in.Title = "upd title"
		p, err := svc.Update(ctx, "prod-id", in, testImage())

		assert.NoError(t, err)
		assert.Equal(t, "prod-id", p.ID)
		assert.Equal(t, "products/new.jpg", p.Image)
		// Previous object is retained: no Delete on the old key
		mStore.AssertNotCalled(t, "Delete", mock.Anything, "products/old.jpg")
	})

	t.Run("missing record yields not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mCats.On("Exists", ctx, testCategoryID).Return(true, nil)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		p, err := svc.Update(ctx, "missing", validProductInput(), testImage())

		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_ImageURL(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns the stored object key", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mRepo.On("FindByID", ctx, "prod-id").
			Return(&model.Product{ID: "prod-id", Image: "products/abc.jpg"}, nil)
		mStore.On("PresignGet", ctx, "products/abc.jpg", 15*time.Minute).
			Return("https://storage.example/products/abc.jpg?sig=x", nil)

		u, err := svc.ImageURL(ctx, "prod-id")

		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example/products/abc.jpg?sig=x", u)
	})

	t.Run("missing product yields not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.ImageURL(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes and keeps the image object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mRepo.On("SoftDelete", ctx, "prod-id", mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, svc.Delete(ctx, "prod-id"))
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProductRepository)
		mCats := new(repoMocks.MockCategoryRepository)
		svc := NewProductService(mStore, mRepo, mCats)

		mRepo.On("SoftDelete", ctx, "missing", mock.AnythingOfType("time.Time")).Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})
}
