package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"catalogapi/internal/model"
	repoMocks "catalogapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTagService_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		mRepo := new(repoMocks.MockTagRepository)
		svc := NewTagService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(tg *model.Tag) bool {
			return tg.Title == "some title" && tg.ID != ""
		})).Return(&model.Tag{ID: "tag-id", Title: "some title"}, nil)

		tg, err := svc.Store(ctx, TagInput{Title: "some title"})

		assert.NoError(t, err)
		assert.Equal(t, "some title", tg.Title)
		mRepo.AssertExpectations(t)
	})

	t.Run("empty title is rejected and nothing is written", func(t *testing.T) {
		mRepo := new(repoMocks.MockTagRepository)
		svc := NewTagService(mRepo)

		tg, err := svc.Store(ctx, TagInput{Title: ""})

		assert.Nil(t, tg)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "title")
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTagService_Update(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockTagRepository)
	svc := NewTagService(mRepo)

	existing := &model.Tag{ID: "tag-id", Title: "old title"}
	mRepo.On("FindByID", ctx, "tag-id").Return(existing, nil)
	mRepo.On("Update", ctx, mock.MatchedBy(func(tg *model.Tag) bool {
		return tg.ID == "tag-id" && tg.Title == "updated title"
	})).Return(&model.Tag{ID: "tag-id", Title: "updated title"}, nil)

	tg, err := svc.Update(ctx, "tag-id", TagInput{Title: "updated title"})

	assert.NoError(t, err)
	assert.Equal(t, "tag-id", tg.ID)
	assert.Equal(t, "updated title", tg.Title)
}

func TestTagService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes by id", func(t *testing.T) {
		mRepo := new(repoMocks.MockTagRepository)
		svc := NewTagService(mRepo)

		mRepo.On("SoftDelete", ctx, "tag-id", mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, svc.Delete(ctx, "tag-id"))
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockTagRepository)
		svc := NewTagService(mRepo)

		mRepo.On("SoftDelete", ctx, "missing", mock.AnythingOfType("time.Time")).Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})
}
