package repository

import (
	"context"

	"capsterapi/internal/model"
)

// BookingRepository defines data access for appointments.
type BookingRepository interface {
	// Create inserts a new booking row and returns the stored record.
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)

	// ListByCustomer returns a customer's bookings, newest first.
	ListByCustomer(ctx context.Context, customerID string, pq PageQuery) (*PageResult[model.Booking], error)
}

// TechnicianRepository defines read access to the technician directory.
type TechnicianRepository interface {
	// List returns all technicians joined with their profiles.
	List(ctx context.Context) ([]model.Technician, error)

	// FindByUserID returns one technician by profile ID.
	FindByUserID(ctx context.Context, userID string) (*model.Technician, error)
}

// ServiceRepository defines read access to the bookable services catalog.
type ServiceRepository interface {
	// ListActive returns services currently offered.
	ListActive(ctx context.Context) ([]model.Service, error)

	// FindByID returns one service by ID.
	FindByID(ctx context.Context, id string) (*model.Service, error)
}

// ProfileRepository defines read access to account profiles.
type ProfileRepository interface {
	// FindByID returns one profile by ID.
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}
