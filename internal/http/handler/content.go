package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"capsterapi/internal/inference"
	"capsterapi/internal/service"
)

// generateContentRequest is the body of POST /api/generate-content.
type generateContentRequest struct {
	ImageURL string `json:"image_url"`
}

// GenerateContent captions an already-public image URL without persisting
// anything. This route predates the posts pipeline and keeps its original
// bare {"error": ...} body shape for compatibility with existing clients.
func GenerateContent(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateContentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.ImageURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image_url is required"})
		}

		res, err := svc.GenerateFromURL(c.UserContext(), req.ImageURL)
		if err != nil {
			if errors.Is(err, inference.ErrMissingToken) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "AI service credential is not configured"})
			}
			var upstream *inference.UpstreamError
			if errors.As(err, &upstream) {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": upstream.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate content"})
		}

		return c.JSON(res)
	}
}
