package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"capsterapi/internal/auth"
	"capsterapi/internal/http/middleware"
	"capsterapi/internal/model"
	"capsterapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, verifier *auth.Verifier, contentSvc service.ContentService, bookingSvc service.BookingService, dirSvc service.DirectoryService) {
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

	// Health endpoints: /health checks DB connectivity, /healthz is liveness only
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Stateless captioning endpoint, no auth and no persistence
	app.Post("/api/generate-content", GenerateContent(contentSvc))

	// Public directory
	app.Get("/technicians", Technicians(dirSvc))
	app.Get("/technicians/:id/posts", TechnicianPortfolio(contentSvc))
	app.Get("/services", Services(dirSvc))

	// Technician-only content pipeline
	posts := app.Group("/posts", middleware.Authenticate(verifier), middleware.RequireRole(model.RoleTechnician))
	posts.Post("/", UploadPost(contentSvc))
	posts.Post("/:id/publish", PublishPost(contentSvc))

	// Any signed-in principal
	authed := middleware.Authenticate(verifier)
	app.Post("/bookings", authed, CreateBooking(bookingSvc))
	app.Get("/bookings", authed, ListBookings(bookingSvc))
	app.Get("/me", authed, Me(dirSvc))
}
