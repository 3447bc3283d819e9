package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/settings"
)

type settingsStore interface {
	locationState
	Status() settings.LoadStatus
	SetCommunity(ctx context.Context, communityID string) (settings.Snapshot, error)
	SetArea(ctx context.Context, areaID string) (settings.Snapshot, error)
	SaveLocation(ctx context.Context, loc models.UserLocation) (settings.Snapshot, error)
	ClearLocation(ctx context.Context) (settings.Snapshot, error)
}

// LocationService exposes the community registry and the location state
type LocationService interface {
	SearchCommunities(query string) []models.Community
	GetCommunity(id string) (models.Community, bool)
	Get(ctx context.Context) dto.LocationResponse
	SaveLocation(ctx context.Context, req *dto.SaveLocationRequest) (dto.LocationResponse, error)
	ClearLocation(ctx context.Context) (dto.LocationResponse, error)
	SetCommunity(ctx context.Context, communityID string) (dto.LocationResponse, error)
	SetArea(ctx context.Context, areaID string) (dto.LocationResponse, error)
}

type locationServiceImpl struct {
	store  settingsStore
	reg    *registry.Registry
	logger zerolog.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(store settingsStore, reg *registry.Registry, logger zerolog.Logger) LocationService {
	return &locationServiceImpl{
		store:  store,
		reg:    reg,
		logger: logger,
	}
}

// SearchCommunities matches name, city and country; empty returns all
func (s *locationServiceImpl) SearchCommunities(query string) []models.Community {
	out := s.reg.Search(query)
	if out == nil {
		out = []models.Community{}
	}
	return out
}

// GetCommunity returns one community by id
func (s *locationServiceImpl) GetCommunity(id string) (models.Community, bool) {
	return s.reg.Get(id)
}

// Get returns the current location state
func (s *locationServiceImpl) Get(ctx context.Context) dto.LocationResponse {
	return s.toResponse(s.store.Current())
}

// SaveLocation confirms a location and follows it to its community
func (s *locationServiceImpl) SaveLocation(ctx context.Context, req *dto.SaveLocationRequest) (dto.LocationResponse, error) {
	snap, err := s.store.SaveLocation(ctx, models.UserLocation{
		Country: req.Country,
		City:    req.City,
		Area:    req.Area,
		Source:  req.Source,
	})
	if err != nil {
		return dto.LocationResponse{}, err
	}
	s.logger.Info().
		Str("country", req.Country).
		Str("city", req.City).
		Str("communityId", snap.CommunityID).
		Msg("Location confirmed")
	return s.toResponse(snap), nil
}

// ClearLocation forgets the confirmed location
func (s *locationServiceImpl) ClearLocation(ctx context.Context) (dto.LocationResponse, error) {
	snap, err := s.store.ClearLocation(ctx)
	if err != nil {
		return dto.LocationResponse{}, err
	}
	return s.toResponse(snap), nil
}

// SetCommunity switches the selected community
func (s *locationServiceImpl) SetCommunity(ctx context.Context, communityID string) (dto.LocationResponse, error) {
	snap, err := s.store.SetCommunity(ctx, communityID)
	if err != nil {
		return dto.LocationResponse{}, err
	}
	return s.toResponse(snap), nil
}

// SetArea narrows the current community to an area
func (s *locationServiceImpl) SetArea(ctx context.Context, areaID string) (dto.LocationResponse, error) {
	snap, err := s.store.SetArea(ctx, areaID)
	if err != nil {
		return dto.LocationResponse{}, err
	}
	return s.toResponse(snap), nil
}

func (s *locationServiceImpl) toResponse(snap settings.Snapshot) dto.LocationResponse {
	community, ok := s.reg.Get(snap.CommunityID)
	if !ok {
		community = s.reg.DefaultCommunity()
	}
	return dto.LocationResponse{
		CommunityID: snap.CommunityID,
		AreaID:      snap.AreaID,
		Location:    snap.Location,
		Confirmed:   snap.Confirmed,
		Community:   community,
		LoadStatus:  string(s.store.Status()),
	}
}
