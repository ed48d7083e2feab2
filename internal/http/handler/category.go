package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"catalogapi/internal/service"
)

// ListCategories handles GET /categories. Soft-deleted records never appear.
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// GetCategory handles GET /categories/:id.
func GetCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		cat, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "category not found")
		}
		return c.JSON(cat)
	}
}

// NewCategoryForm handles GET /categories/create: an empty input scaffold
// for the external presentation layer to render.
func NewCategoryForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(service.CategoryInput{})
	}
}

// EditCategoryForm handles GET /categories/:id/edit: the record as an input scaffold.
func EditCategoryForm(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		cat, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "category not found")
		}
		return c.JSON(fiber.Map{"id": cat.ID, "title": cat.Title})
	}
}

// StoreCategory handles POST /categories.
func StoreCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CategoryInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cat, err := svc.Store(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err, "category not found")
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// UpdateCategory handles PATCH /categories/:id.
func UpdateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.CategoryInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		cat, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return respondServiceError(c, err, "category not found")
		}
		return c.JSON(cat)
	}
}

// DeleteCategory handles DELETE /categories/:id. Deletion is soft: the row
// is stamped, not removed.
func DeleteCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondServiceError(c, err, "category not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
