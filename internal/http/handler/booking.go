package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"capsterapi/internal/http/middleware"
	"capsterapi/internal/service"
)

// CreateBooking books an appointment for the signed-in customer.
func CreateBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}

		var in service.CreateBookingInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "technician_id, service_id and booking_time are required")
		}

		booking, err := svc.Create(c.UserContext(), sess, in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTechnicianNotFound):
				return writeError(c, fiber.StatusNotFound, "TECHNICIAN_NOT_FOUND", "technician not found")
			case errors.Is(err, service.ErrServiceUnavailable):
				return writeError(c, fiber.StatusBadRequest, "SERVICE_UNAVAILABLE", "service is not offered")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(booking)
	}
}

// ListBookings returns the signed-in customer's bookings with limit & offset.
func ListBookings(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := middleware.SessionFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session")
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListByCustomer(c.UserContext(), sess, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
