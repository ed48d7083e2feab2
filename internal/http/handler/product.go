package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"catalogapi/internal/service"
)

// ListProducts handles GET /products.
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// GetProduct handles GET /products/:id.
func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.JSON(p)
	}
}

// NewProductForm handles GET /products/create.
func NewProductForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(service.ProductInput{})
	}
}

// EditProductForm handles GET /products/:id/edit.
func EditProductForm(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.JSON(fiber.Map{
			"id":          p.ID,
			"title":       p.Title,
			"description": p.Description,
			"image":       p.Image,
			"category_id": p.CategoryID,
		})
	}
}

// StoreProduct handles POST /products (multipart/form-data, file field: image).
// A missing image part is passed through as nil so the service reports it
// alongside any other failing field.
func StoreProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, image, errResp := parseProductForm(c)
		if errResp != nil {
			return errResp(c)
		}
		if image != nil {
			defer image.close()
		}

		p, err := svc.Store(c.UserContext(), in, image.upload())
		if err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdateProduct handles PATCH /products/:id. The replacement image is
// required; the previous object is retained in storage.
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		in, image, errResp := parseProductForm(c)
		if errResp != nil {
			return errResp(c)
		}
		if image != nil {
			defer image.close()
		}

		p, err := svc.Update(c.UserContext(), id, in, image.upload())
		if err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.JSON(p)
	}
}

// DeleteProduct handles DELETE /products/:id.
func DeleteProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ProductImage handles GET /products/:id/image. Redirects to a short-lived
// presigned storage URL instead of proxying the bytes.
func ProductImage(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.ImageURL(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err, "product not found")
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// openedImage pairs the service upload with its underlying file handle so the
// handler can close it after the service consumed the stream.
type openedImage struct {
	up     *service.ImageUpload
	closer interface{ Close() error }
}

func (o *openedImage) upload() *service.ImageUpload {
	if o == nil {
		return nil
	}
	return o.up
}

func (o *openedImage) close() {
	if o != nil && o.closer != nil {
		_ = o.closer.Close()
	}
}

func parseProductForm(c *fiber.Ctx) (service.ProductInput, *openedImage, func(*fiber.Ctx) error) {
	in := service.ProductInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		CategoryID:  c.FormValue("category_id"),
	}

	fh, err := c.FormFile("image")
	if err != nil {
		// Absent file part: the service reports it as a field error.
		return in, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return in, nil, func(c *fiber.Ctx) error {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded image")
		}
	}

	ct := fh.Header.Get("Content-Type")
	image := &openedImage{
		up: &service.ImageUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
		},
		closer: f,
	}
	return in, image, nil
}
