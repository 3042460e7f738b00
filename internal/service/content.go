package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"capsterapi/internal/inference"
	"capsterapi/internal/model"
	"capsterapi/internal/repository"
	"capsterapi/internal/storage"
)

var (
	ErrNotTechnician     = errors.New("only technicians can upload generative content")
	ErrReaderNil         = errors.New("reader is nil")
	ErrIDRequired        = errors.New("id is required")
	ErrPostNotFound      = errors.New("post not found")
	ErrNotOwner          = errors.New("post belongs to another technician")
	ErrCaptionRequired   = errors.New("a caption must be selected")
	ErrCaptionNotOffered = errors.New("caption is not one of the generated candidates")
	ErrNotPublishable    = errors.New("post is not in a publishable state")
)

// PortfolioResult is the service-level DTO for a technician's published posts.
type PortfolioResult struct {
	Items []model.Post `json:"data"`
	Total int          `json:"total"`
}

// ContentService owns the generative content pipeline: raw upload to object
// storage, caption inference, and publication of the selected caption. It is
// the single canonical implementation of the upload/caption/publish flow.
type ContentService interface {
	// Generate runs the upload half of the pipeline for a technician: store
	// the raw bytes, create the post row, request captions, and attach the
	// result. The inference call is issued only after the raw image is
	// durably stored and its public URL resolved.
	Generate(ctx context.Context, sess model.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Post, error)

	// GenerateFromURL requests captions for an already-public image URL
	// without touching storage or the database.
	GenerateFromURL(ctx context.Context, imageURL string) (*inference.CaptionResult, error)

	// Publish attaches the selected caption to a generated post and marks it
	// completed. The caption must be one of the candidates attached at
	// generation time.
	Publish(ctx context.Context, sess model.Session, postID, caption string) (*model.Post, error)

	// Portfolio returns a technician's completed posts, newest first.
	Portfolio(ctx context.Context, technicianID string, limit, offset int) (*PortfolioResult, error)
}

// contentService is a concrete implementation of ContentService.
type contentService struct {
	store   storage.Storage
	posts   repository.PostRepository
	gateway inference.Gateway
}

// NewContentService constructs a new ContentService.
func NewContentService(store storage.Storage, posts repository.PostRepository, gateway inference.Gateway) ContentService {
	return &contentService{store: store, posts: posts, gateway: gateway}
}

func (s *contentService) Generate(ctx context.Context, sess model.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Post, error) {
	// Role guard first: a rejected principal causes zero side effects.
	if !sess.IsTechnician() {
		return nil, ErrNotTechnician
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	// Caller-chosen key, unique per upload: {ownerId}/{timestamp}_{suffix}.
	key := fmt.Sprintf("%s/%d_%s", sess.UserID, time.Now().UnixMilli(), filepath.Base(originalFilename))

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rawURL := s.store.PublicURL(key)

	post, err := s.posts.Create(ctx, &model.Post{
		ID:           uuid.New().String(),
		TechnicianID: sess.UserID,
		RawImageURL:  rawURL,
		AIStatus:     model.AIStatusProcessing,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// The stored object is kept; a stranded upload is accepted over a
		// compensating delete that could itself fail.
		return nil, fmt.Errorf("create post: %w", err)
	}

	res, err := s.gateway.RequestCaption(ctx, rawURL)
	if err != nil {
		// Best effort: the row stays behind as 'failed' with the raw image
		// URL intact. No retry and no cleanup.
		_ = s.posts.MarkFailed(ctx, post.ID)
		return nil, fmt.Errorf("generate captions: %w", err)
	}

	updated, err := s.posts.AttachGeneration(ctx, post.ID, res.EnhancedImage, res.Captions)
	if err != nil {
		return nil, fmt.Errorf("save generation result: %w", err)
	}
	return updated, nil
}

func (s *contentService) GenerateFromURL(ctx context.Context, imageURL string) (*inference.CaptionResult, error) {
	return s.gateway.RequestCaption(ctx, imageURL)
}

func (s *contentService) Publish(ctx context.Context, sess model.Session, postID, caption string) (*model.Post, error) {
	if postID == "" {
		return nil, ErrIDRequired
	}
	if caption == "" {
		return nil, ErrCaptionRequired
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.TechnicianID != sess.UserID {
		return nil, ErrNotOwner
	}
	if !captionOffered(post.GeneratedCaptions, caption) {
		return nil, ErrCaptionNotOffered
	}

	published, err := s.posts.Publish(ctx, postID, caption)
	if err != nil {
		// The repository's status guard matched no row: the post was never
		// generated, already completed, or failed.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPublishable
		}
		return nil, err
	}
	return published, nil
}

func (s *contentService) Portfolio(ctx context.Context, technicianID string, limit, offset int) (*PortfolioResult, error) {
	if technicianID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.posts.ListCompletedByTechnician(ctx, technicianID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PortfolioResult{Items: res.Items, Total: res.Total}, nil
}

func captionOffered(candidates []string, caption string) bool {
	for _, c := range candidates {
		if c == caption {
			return true
		}
	}
	return false
}
