package postgres

import (
	"context"
	"database/sql"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

// ServicePostgres is a PostgreSQL implementation of repository.ServiceRepository.
type ServicePostgres struct {
	db *sql.DB
}

// NewServicePostgres creates a new ServicePostgres repository.
func NewServicePostgres(db *sql.DB) *ServicePostgres {
	return &ServicePostgres{db: db}
}

var _ repository.ServiceRepository = (*ServicePostgres)(nil)

const serviceColumns = `id, name, duration_minutes, price, is_active, created_at`

func scanService(row interface{ Scan(dest ...any) error }) (*model.Service, error) {
	var s model.Service
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActive returns services currently offered.
func (r *ServicePostgres) ListActive(ctx context.Context) ([]model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE is_active = true ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single service by its ID.
func (r *ServicePostgres) FindByID(ctx context.Context, id string) (*model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.db.QueryRowContext(ctx, q, id))
}

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

// FindByID fetches a single profile by its ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT id, full_name, role, avatar_url, created_at FROM profiles WHERE id = $1`
	var p model.Profile
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID,
		&p.FullName,
		&p.Role,
		&p.AvatarURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
