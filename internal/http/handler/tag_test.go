package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalogapi/internal/model"
	"catalogapi/internal/service"
	serviceMocks "catalogapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListTags(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Get("/tags", ListTags(mockSvc))

	items := []model.Tag{{ID: uuid.New().String(), Title: "sale"}}
	mockSvc.On("List", mock.Anything).Return(items, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.Tag `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Data, 1)
	mockSvc.AssertExpectations(t)
}

func TestGetTag(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Get("/tags/:id", GetTag(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Tag{ID: id, Title: "sale"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "tag not found", res.Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestStoreTag(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Post("/tags", StoreTag(mockSvc))

	t.Run("success", func(t *testing.T) {
		created := &model.Tag{ID: uuid.New().String(), Title: "sale"}
		mockSvc.On("Store", mock.Anything, service.TagInput{Title: "sale"}).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"title":"sale"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		verr := &service.ValidationError{Fields: map[string]string{"title": "the title field is required"}}
		mockSvc.On("Store", mock.Anything, service.TagInput{}).Return(nil, verr).Once()

		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateTag(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Patch("/tags/:id", UpdateTag(mockSvc))

	id := uuid.New().String()
	updated := &model.Tag{ID: id, Title: "clearance"}
	mockSvc.On("Update", mock.Anything, id, service.TagInput{Title: "clearance"}).Return(updated, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/tags/"+id, strings.NewReader(`{"title":"clearance"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteTag(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Delete("/tags/:id", DeleteTag(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/tags/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
