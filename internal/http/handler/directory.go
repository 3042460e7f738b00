package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"capsterapi/internal/http/middleware"
	"capsterapi/internal/service"
)

// Technicians lists all technicians with their profile data.
func Technicians(svc service.DirectoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Technicians(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// Services lists the active service catalog.
func Services(svc service.DirectoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Services(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// TechnicianPortfolio lists a technician's completed posts, newest first,
// with limit & offset pagination.
func TechnicianPortfolio(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Portfolio(c.UserContext(), id, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// Me returns the signed-in principal's profile.
func Me(svc service.DirectoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}

		profile, err := svc.Me(c.UserContext(), sess)
		if err != nil {
			if errors.Is(err, service.ErrProfileNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "profile not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(profile)
	}
}
