package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) AttachGeneration(ctx context.Context, id, enhancedImageURL string, captions []string) (*model.Post, error) {
	args := m.Called(ctx, id, enhancedImageURL, captions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Publish(ctx context.Context, id, selectedCaption string) (*model.Post, error) {
	args := m.Called(ctx, id, selectedCaption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) MarkFailed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListCompletedByTechnician(ctx context.Context, technicianID string, pq repository.PageQuery) (*repository.PageResult[model.Post], error) {
	args := m.Called(ctx, technicianID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Post]), args.Error(1)
}
