package postgres

import (
	"context"
	"database/sql"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

// BookingPostgres is a PostgreSQL implementation of repository.BookingRepository.
type BookingPostgres struct {
	db *sql.DB
}

// NewBookingPostgres creates a new BookingPostgres repository.
func NewBookingPostgres(db *sql.DB) *BookingPostgres {
	return &BookingPostgres{db: db}
}

var _ repository.BookingRepository = (*BookingPostgres)(nil)

const bookingColumns = `id, customer_id, technician_id, service_id, booking_time, status, notes, created_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.TechnicianID,
		&b.ServiceID,
		&b.BookingTime,
		&b.Status,
		&b.Notes,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new booking row and returns the stored record.
func (r *BookingPostgres) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	const q = `
		INSERT INTO bookings (id, customer_id, technician_id, service_id, booking_time, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns
	row := r.db.QueryRowContext(ctx, q,
		b.ID,
		b.CustomerID,
		b.TechnicianID,
		b.ServiceID,
		b.BookingTime,
		b.Status,
		b.Notes,
		b.CreatedAt,
	)
	return scanBooking(row)
}

// ListByCustomer returns a customer's bookings using LIMIT/OFFSET pagination and a total count.
func (r *BookingPostgres) ListByCustomer(ctx context.Context, customerID string, pq repository.PageQuery) (*repository.PageResult[model.Booking], error) {
	const qCount = `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, customerID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_time DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, customerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Booking]{Items: items, Total: total}, nil
}
