package repository

import (
	"context"

	"capsterapi/internal/model"
)

// PostRepository defines data access for generative content posts using SQL
// queries only. No business logic here — strictly persistence operations.
// Rows are mutated only by the flow that created them, so every operation is
// a single-row statement and no locking discipline is needed.
type PostRepository interface {
	// Create inserts a new post row with status 'processing' and the raw
	// image URL set. Returns the stored post including DB-assigned values.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// FindByID returns a post by its ID.
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// AttachGeneration records a successful inference result: the enhanced
	// image URL and the candidate captions, moving status to 'generated'.
	AttachGeneration(ctx context.Context, id, enhancedImageURL string, captions []string) (*model.Post, error)

	// Publish sets the selected caption and moves status to 'completed'.
	// The update only matches rows in status 'generated'; sql.ErrNoRows
	// therefore means the post is missing or not publishable.
	Publish(ctx context.Context, id, selectedCaption string) (*model.Post, error)

	// MarkFailed moves a post to status 'failed'. Best-effort after an
	// inference failure; the row and the raw upload are retained.
	MarkFailed(ctx context.Context, id string) error

	// ListCompletedByTechnician returns a technician's published portfolio,
	// newest first, with a total count.
	ListCompletedByTechnician(ctx context.Context, technicianID string, pq PageQuery) (*PageResult[model.Post], error)
}
