package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

// TechnicianPostgres is a PostgreSQL implementation of repository.TechnicianRepository.
type TechnicianPostgres struct {
	db *sql.DB
}

// NewTechnicianPostgres creates a new TechnicianPostgres repository.
func NewTechnicianPostgres(db *sql.DB) *TechnicianPostgres {
	return &TechnicianPostgres{db: db}
}

var _ repository.TechnicianRepository = (*TechnicianPostgres)(nil)

const technicianColumns = `t.user_id, t.specialty, t.rating, t.bio, t.availability, t.created_at,
		p.id, p.full_name, p.role, p.avatar_url, p.created_at`

func scanTechnician(row interface{ Scan(dest ...any) error }) (*model.Technician, error) {
	var t model.Technician
	var p model.Profile
	var availability pq.StringArray
	if err := row.Scan(
		&t.UserID,
		&t.Specialty,
		&t.Rating,
		&t.Bio,
		&availability,
		&t.CreatedAt,
		&p.ID,
		&p.FullName,
		&p.Role,
		&p.AvatarURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	t.Availability = []string(availability)
	t.Profile = &p
	return &t, nil
}

// List returns all technicians joined with their profiles, best rated first.
func (r *TechnicianPostgres) List(ctx context.Context) ([]model.Technician, error) {
	const q = `
		SELECT ` + technicianColumns + `
		FROM technicians t
		JOIN profiles p ON p.id = t.user_id
		ORDER BY t.rating DESC, t.user_id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserID fetches a single technician by profile ID.
func (r *TechnicianPostgres) FindByUserID(ctx context.Context, userID string) (*model.Technician, error) {
	const q = `
		SELECT ` + technicianColumns + `
		FROM technicians t
		JOIN profiles p ON p.id = t.user_id
		WHERE t.user_id = $1
	`
	return scanTechnician(r.db.QueryRowContext(ctx, q, userID))
}
