package model

import "time"

// BookingStatus is the lifecycle state of an appointment.
type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

// Booking is an appointment made by a customer with a technician for a
// specific service at a specific time.
type Booking struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customer_id"`
	TechnicianID string        `json:"technician_id"`
	ServiceID    string        `json:"service_id"`
	BookingTime  time.Time     `json:"booking_time"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Service is a bookable barbershop service.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int64     `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
