package services

import (
	"context"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/scope"
)

// directory serves a read-only mock dataset through the scope filter
type directory[T any] struct {
	items []T
	acc   scope.Accessor[T]
	reg   *registry.Registry
	state locationState
}

func (d directory[T]) list(q scope.Query) (dto.ListResponse[T], error) {
	q, err := resolveScope(d.reg, d.state, q)
	if err != nil {
		return dto.ListResponse[T]{}, err
	}
	return listResponse(scope.Filter(d.reg, d.items, q, d.acc), q), nil
}

// GroupService lists community interest groups
type GroupService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.Group], error)
}

type groupServiceImpl struct {
	dir directory[models.Group]
}

// NewGroupService creates a GroupService over a fixed set of groups
func NewGroupService(groups []models.Group, reg *registry.Registry, state locationState) GroupService {
	return &groupServiceImpl{dir: directory[models.Group]{items: groups, acc: scope.Groups, reg: reg, state: state}}
}

func (s *groupServiceImpl) List(_ context.Context, q scope.Query) (dto.ListResponse[models.Group], error) {
	return s.dir.list(q)
}

// StudentHubService lists students hub help requests
type StudentHubService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.HelpRequest], error)
}

type studentHubServiceImpl struct {
	dir directory[models.HelpRequest]
}

// NewStudentHubService creates a StudentHubService over a fixed set of requests
func NewStudentHubService(requests []models.HelpRequest, reg *registry.Registry, state locationState) StudentHubService {
	return &studentHubServiceImpl{dir: directory[models.HelpRequest]{items: requests, acc: scope.HelpRequests, reg: reg, state: state}}
}

func (s *studentHubServiceImpl) List(_ context.Context, q scope.Query) (dto.ListResponse[models.HelpRequest], error) {
	return s.dir.list(q)
}

// MarketplaceService lists marketplace offers
type MarketplaceService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.Listing], error)
}

type marketplaceServiceImpl struct {
	dir directory[models.Listing]
}

// NewMarketplaceService creates a MarketplaceService over a fixed set of listings
func NewMarketplaceService(listings []models.Listing, reg *registry.Registry, state locationState) MarketplaceService {
	return &marketplaceServiceImpl{dir: directory[models.Listing]{items: listings, acc: scope.Listings, reg: reg, state: state}}
}

func (s *marketplaceServiceImpl) List(_ context.Context, q scope.Query) (dto.ListResponse[models.Listing], error) {
	return s.dir.list(q)
}
