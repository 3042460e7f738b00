package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"capsterapi/internal/inference"
	"capsterapi/internal/model"
	"capsterapi/internal/service"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Generate(ctx context.Context, sess model.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.Post, error) {
	args := m.Called(ctx, sess, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockContentService) GenerateFromURL(ctx context.Context, imageURL string) (*inference.CaptionResult, error) {
	args := m.Called(ctx, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inference.CaptionResult), args.Error(1)
}

func (m *MockContentService) Publish(ctx context.Context, sess model.Session, postID, caption string) (*model.Post, error) {
	args := m.Called(ctx, sess, postID, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockContentService) Portfolio(ctx context.Context, technicianID string, limit, offset int) (*service.PortfolioResult, error) {
	args := m.Called(ctx, technicianID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PortfolioResult), args.Error(1)
}
