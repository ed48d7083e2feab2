package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"catalogapi/internal/service"
)

// ListTags handles GET /tags.
func ListTags(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// GetTag handles GET /tags/:id.
func GetTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		tag, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "tag not found")
		}
		return c.JSON(tag)
	}
}

// NewTagForm handles GET /tags/create.
func NewTagForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(service.TagInput{})
	}
}

// EditTagForm handles GET /tags/:id/edit.
func EditTagForm(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		tag, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "tag not found")
		}
		return c.JSON(fiber.Map{"id": tag.ID, "title": tag.Title})
	}
}

// StoreTag handles POST /tags.
func StoreTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.TagInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		tag, err := svc.Store(c.UserContext(), in)
		if err != nil {
			return respondServiceError(c, err, "tag not found")
		}
		return c.Status(fiber.StatusCreated).JSON(tag)
	}
}

// UpdateTag handles PATCH /tags/:id.
func UpdateTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.TagInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		tag, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return respondServiceError(c, err, "tag not found")
		}
		return c.JSON(tag)
	}
}

// DeleteTag handles DELETE /tags/:id.
func DeleteTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondServiceError(c, err, "tag not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
