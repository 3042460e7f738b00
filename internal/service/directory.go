package service

import (
	"context"
	"database/sql"
	"errors"

	"capsterapi/internal/model"
	"capsterapi/internal/repository"
)

// DirectoryService exposes the read-only views the app renders: the capster
// directory, the services catalog, and the caller's own profile.
type DirectoryService interface {
	Technicians(ctx context.Context) ([]model.Technician, error)
	Services(ctx context.Context) ([]model.Service, error)
	Me(ctx context.Context, sess model.Session) (*model.Profile, error)
}

type directoryService struct {
	technicians repository.TechnicianRepository
	services    repository.ServiceRepository
	profiles    repository.ProfileRepository
}

// NewDirectoryService constructs a new DirectoryService.
func NewDirectoryService(technicians repository.TechnicianRepository, services repository.ServiceRepository, profiles repository.ProfileRepository) DirectoryService {
	return &directoryService{technicians: technicians, services: services, profiles: profiles}
}

func (s *directoryService) Technicians(ctx context.Context) ([]model.Technician, error) {
	return s.technicians.List(ctx)
}

func (s *directoryService) Services(ctx context.Context) ([]model.Service, error) {
	return s.services.ListActive(ctx)
}

func (s *directoryService) Me(ctx context.Context, sess model.Session) (*model.Profile, error) {
	if sess.UserID == "" {
		return nil, ErrNotSignedIn
	}
	profile, err := s.profiles.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
