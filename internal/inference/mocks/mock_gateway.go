package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"capsterapi/internal/inference"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) RequestCaption(ctx context.Context, imageURL string) (*inference.CaptionResult, error) {
	args := m.Called(ctx, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inference.CaptionResult), args.Error(1)
}
