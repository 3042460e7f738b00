package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"capsterapi/internal/model"
	"capsterapi/internal/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, sess model.Session, in service.CreateBookingInput) (*model.Booking, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) ListByCustomer(ctx context.Context, sess model.Session, limit, offset int) (*service.BookingListResult, error) {
	args := m.Called(ctx, sess, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingListResult), args.Error(1)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) Technicians(ctx context.Context) ([]model.Technician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Technician), args.Error(1)
}

func (m *MockDirectoryService) Services(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockDirectoryService) Me(ctx context.Context, sess model.Session) (*model.Profile, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
