// Package services holds the feature logic behind the HTTP controllers.
package services

import (
	"strings"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/scope"
	"github.com/yigit/diasporahub/internal/app/settings"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
)

// publisher pushes change notifications to connected clients
type publisher interface {
	Publish(channel, eventType string, payload any)
}

// locationState is the read side of the settings store
type locationState interface {
	Current() settings.Snapshot
}

// nopPublisher drops every notification
type nopPublisher struct{}

func (nopPublisher) Publish(string, string, any) {}

// resolveScope fills an incoming list query from the current location state.
// A community given without an area widens to "all" unless it is the
// current community.
func resolveScope(reg *registry.Registry, state locationState, q scope.Query) (scope.Query, error) {
	current := state.Current()
	q.CommunityID = strings.TrimSpace(q.CommunityID)
	q.AreaID = strings.TrimSpace(q.AreaID)

	switch {
	case q.CommunityID == "":
		q.CommunityID = current.CommunityID
		if q.AreaID == "" {
			q.AreaID = current.AreaID
		}
	case q.AreaID == "" && q.CommunityID == current.CommunityID:
		q.AreaID = current.AreaID
	case q.AreaID == "":
		q.AreaID = models.AreaAll
	}

	if _, ok := reg.Get(q.CommunityID); !ok {
		return scope.Query{}, apperrors.ErrUnknownCommunity
	}
	if !reg.AreaBelongs(q.CommunityID, q.AreaID) {
		return scope.Query{}, apperrors.ErrUnknownArea
	}
	return q, nil
}

// requireText trims value and rejects it when nothing is left
func requireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperrors.NewValidationError(field, field+" must not be blank")
	}
	return v, nil
}

// placement picks the community and area a new record is filed under
func placement(reg *registry.Registry, state locationState, communityID, areaID string) (string, string, error) {
	q, err := resolveScope(reg, state, scope.Query{CommunityID: communityID, AreaID: areaID})
	if err != nil {
		return "", "", err
	}
	if q.AreaID == models.AreaAll {
		q.AreaID = ""
	}
	return q.CommunityID, q.AreaID, nil
}

func listResponse[T any](items []T, q scope.Query) dto.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return dto.ListResponse[T]{
		Items: items,
		Scope: dto.Scope{
			CommunityID: q.CommunityID,
			AreaID:      q.AreaID,
			Category:    q.Category,
			Search:      strings.TrimSpace(q.Search),
		},
	}
}
