package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"catalogapi/internal/http/middleware"
	"catalogapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
//
// Reads are public; every write and form endpoint requires an authenticated
// caller, uniformly for all three resources. Handlers stay thin: parsing and
// status selection here, everything else in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, catSvc service.CategoryService, prodSvc service.ProductService, tagSvc service.TagService) {
	requireAuth := middleware.RequireAuth()

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health: readiness checks DB connectivity, liveness checks nothing
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	categories := app.Group("/categories")
	categories.Get("/", ListCategories(catSvc))
	categories.Get("/create", requireAuth, NewCategoryForm())
	categories.Post("/", requireAuth, StoreCategory(catSvc))
	categories.Get("/:id", GetCategory(catSvc))
	categories.Get("/:id/edit", requireAuth, EditCategoryForm(catSvc))
	categories.Patch("/:id", requireAuth, UpdateCategory(catSvc))
	categories.Delete("/:id", requireAuth, DeleteCategory(catSvc))

	tags := app.Group("/tags")
	tags.Get("/", ListTags(tagSvc))
	tags.Get("/create", requireAuth, NewTagForm())
	tags.Post("/", requireAuth, StoreTag(tagSvc))
	tags.Get("/:id", GetTag(tagSvc))
	tags.Get("/:id/edit", requireAuth, EditTagForm(tagSvc))
	tags.Patch("/:id", requireAuth, UpdateTag(tagSvc))
	tags.Delete("/:id", requireAuth, DeleteTag(tagSvc))

	products := app.Group("/products")
	products.Get("/", ListProducts(prodSvc))
	products.Get("/create", requireAuth, NewProductForm())
	products.Post("/", requireAuth, StoreProduct(prodSvc))
	products.Get("/:id", GetProduct(prodSvc))
	products.Get("/:id/image", ProductImage(prodSvc))
	products.Get("/:id/edit", requireAuth, EditProductForm(prodSvc))
	products.Patch("/:id", requireAuth, UpdateProduct(prodSvc))
	products.Delete("/:id", requireAuth, DeleteProduct(prodSvc))
}
