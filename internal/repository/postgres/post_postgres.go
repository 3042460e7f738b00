package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

// PostPostgres is a PostgreSQL implementation of repository.PostRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PostPostgres struct {
	db *sql.DB
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db *sql.DB) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

const postColumns = `id, technician_id, customer_id, booking_id, raw_image_url, enhanced_image_url,
		generated_captions, selected_caption, ai_status, style_tags, created_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*model.Post, error) {
	var p model.Post
	var captions, tags pq.StringArray
	if err := row.Scan(
		&p.ID,
		&p.TechnicianID,
		&p.CustomerID,
		&p.BookingID,
		&p.RawImageURL,
		&p.EnhancedImageURL,
		&captions,
		&p.SelectedCaption,
		&p.AIStatus,
		&tags,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.GeneratedCaptions = []string(captions)
	p.StyleTags = []string(tags)
	return &p, nil
}

// Create inserts a new post row and returns the stored record.
func (r *PostPostgres) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	const q = `
		INSERT INTO posts (id, technician_id, customer_id, booking_id, raw_image_url, ai_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, q,
		post.ID,
		post.TechnicianID,
		post.CustomerID,
		post.BookingID,
		post.RawImageURL,
		post.AIStatus,
		post.CreatedAt,
	)
	return scanPost(row)
}

// FindByID fetches a single post by its ID.
func (r *PostPostgres) FindByID(ctx context.Context, id string) (*model.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRowContext(ctx, q, id))
}

// AttachGeneration records the inference result and moves the row to 'generated'.
func (r *PostPostgres) AttachGeneration(ctx context.Context, id, enhancedImageURL string, captions []string) (*model.Post, error) {
	const q = `
		UPDATE posts
		SET enhanced_image_url = $2, generated_captions = $3, ai_status = 'generated'
		WHERE id = $1
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, q, id, enhancedImageURL, pq.StringArray(captions))
	return scanPost(row)
}

// Publish sets the selected caption and completes the post. The status guard
// in the WHERE clause makes the transition atomic per call; a row not in
// 'generated' yields sql.ErrNoRows.
func (r *PostPostgres) Publish(ctx context.Context, id, selectedCaption string) (*model.Post, error) {
	const q = `
		UPDATE posts
		SET selected_caption = $2, ai_status = 'completed'
		WHERE id = $1 AND ai_status = 'generated'
		RETURNING ` + postColumns
	row := r.db.QueryRowContext(ctx, q, id, selectedCaption)
	return scanPost(row)
}

// MarkFailed moves a post to 'failed'. Missing rows are not an error.
func (r *PostPostgres) MarkFailed(ctx context.Context, id string) error {
	const q = `UPDATE posts SET ai_status = 'failed' WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ListCompletedByTechnician returns published posts using LIMIT/OFFSET pagination and a total count.
func (r *PostPostgres) ListCompletedByTechnician(ctx context.Context, technicianID string, pq repository.PageQuery) (*repository.PageResult[model.Post], error) {
	const qCount = `SELECT COUNT(*) FROM posts WHERE technician_id = $1 AND ai_status = 'completed'`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, technicianID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE technician_id = $1 AND ai_status = 'completed'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, technicianID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Post]{Items: items, Total: total}, nil
}
