package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

var (
	ErrNotSignedIn        = errors.New("sign in to book an appointment")
	ErrServiceUnavailable = errors.New("service is not offered")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrProfileNotFound    = errors.New("profile not found")
)

// CreateBookingInput is the payload for booking an appointment.
type CreateBookingInput struct {
	TechnicianID string    `json:"technician_id" validate:"required,uuid"`
	ServiceID    string    `json:"service_id" validate:"required,uuid"`
	BookingTime  time.Time `json:"booking_time" validate:"required"`
	Notes        string    `json:"notes" validate:"max=500"`
}

// BookingListResult is the service-level DTO for paginated bookings.
type BookingListResult struct {
	Items []model.Booking `json:"data"`
	Total int             `json:"total"`
}

// BookingService defines the use cases around appointments.
type BookingService interface {
	// Create books an appointment for the signed-in customer with status
	// 'scheduled'. The service must be active and the technician must exist.
	Create(ctx context.Context, sess model.Session, in CreateBookingInput) (*model.Booking, error)

	// ListByCustomer returns the signed-in customer's bookings.
	ListByCustomer(ctx context.Context, sess model.Session, limit, offset int) (*BookingListResult, error)
}

type bookingService struct {
	bookings    repository.BookingRepository
	technicians repository.TechnicianRepository
	services    repository.ServiceRepository
}

// NewBookingService constructs a new BookingService.
func NewBookingService(bookings repository.BookingRepository, technicians repository.TechnicianRepository, services repository.ServiceRepository) BookingService {
	return &bookingService{bookings: bookings, technicians: technicians, services: services}
}

func (s *bookingService) Create(ctx context.Context, sess model.Session, in CreateBookingInput) (*model.Booking, error) {
	if sess.UserID == "" {
		return nil, ErrNotSignedIn
	}

	svc, err := s.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceUnavailable
		}
		return nil, fmt.Errorf("look up service: %w", err)
	}
	if !svc.IsActive {
		return nil, ErrServiceUnavailable
	}

	if _, err := s.technicians.FindByUserID(ctx, in.TechnicianID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTechnicianNotFound
		}
		return nil, fmt.Errorf("look up technician: %w", err)
	}

	booking, err := s.bookings.Create(ctx, &model.Booking{
		ID:           uuid.New().String(),
		CustomerID:   sess.UserID,
		TechnicianID: in.TechnicianID,
		ServiceID:    in.ServiceID,
		BookingTime:  in.BookingTime,
		Status:       model.BookingScheduled,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListByCustomer(ctx context.Context, sess model.Session, limit, offset int) (*BookingListResult, error) {
	if sess.UserID == "" {
		return nil, ErrNotSignedIn
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.bookings.ListByCustomer(ctx, sess.UserID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BookingListResult{Items: res.Items, Total: res.Total}, nil
}
