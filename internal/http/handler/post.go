package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"capsterapi/internal/http/middleware"
	"capsterapi/internal/service"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// publishPostRequest is the body of POST /posts/:id/publish.
type publishPostRequest struct {
	SelectedCaption string `json:"selected_caption" validate:"required"`
}

// UploadPost runs the upload half of the content pipeline for the signed-in
// technician (multipart/form-data, field name: file).
func UploadPost(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		post, err := svc.Generate(c.UserContext(), sess, f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotTechnician):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "only technicians can upload posts")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	}
}

// PublishPost attaches the selected caption to a generated post owned by the
// signed-in technician and marks it completed.
func PublishPost(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req publishPostRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "selected_caption is required")
		}

		post, err := svc.Publish(c.UserContext(), sess, id, req.SelectedCaption)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrPostNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "post not found")
			case errors.Is(err, service.ErrNotOwner):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "post belongs to another technician")
			case errors.Is(err, service.ErrCaptionNotOffered):
				return writeError(c, fiber.StatusBadRequest, "CAPTION_NOT_OFFERED", "caption is not one of the generated candidates")
			case errors.Is(err, service.ErrNotPublishable):
				return writeError(c, fiber.StatusConflict, "NOT_PUBLISHABLE", "post is not in a publishable state")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(post)
	}
}
