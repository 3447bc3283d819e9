package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/app/repositories"
	"github.com/yigit/diasporahub/internal/app/scope"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/ical"
)

// EventService defines the interface for local event operations
type EventService interface {
	List(ctx context.Context, q scope.Query) (dto.ListResponse[models.LocalEvent], error)
	Get(ctx context.Context, id string) (models.LocalEvent, error)
	Create(ctx context.Context, req *dto.CreateEventRequest) (models.LocalEvent, error)
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context, id string) (filename string, body []byte, err error)
}

type eventServiceImpl struct {
	eventRepo       *repositories.EventRepository
	reg             *registry.Registry
	state           locationState
	loc             *time.Location
	defaultDuration time.Duration
	logger          zerolog.Logger
}

// NewEventService creates a new EventService. Event times without an offset
// are read in loc; events without an end last defaultDuration.
func NewEventService(
	eventRepo *repositories.EventRepository,
	reg *registry.Registry,
	state locationState,
	loc *time.Location,
	defaultDuration time.Duration,
	logger zerolog.Logger,
) EventService {
	if loc == nil {
		loc = time.UTC
	}
	if defaultDuration <= 0 {
		defaultDuration = ical.DefaultDuration
	}
	return &eventServiceImpl{
		eventRepo:       eventRepo,
		reg:             reg,
		state:           state,
		loc:             loc,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

func (s *eventServiceImpl) List(ctx context.Context, q scope.Query) (dto.ListResponse[models.LocalEvent], error) {
	q, err := resolveScope(s.reg, s.state, q)
	if err != nil {
		return dto.ListResponse[models.LocalEvent]{}, err
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		return dto.ListResponse[models.LocalEvent]{}, fmt.Errorf("error listing events: %w", err)
	}
	return listResponse(scope.Filter(s.reg, events, q, scope.Events), q), nil
}

func (s *eventServiceImpl) Get(ctx context.Context, id string) (models.LocalEvent, error) {
	return s.eventRepo.Get(ctx, id)
}

// Create validates the event times and stores the event
func (s *eventServiceImpl) Create(ctx context.Context, req *dto.CreateEventRequest) (models.LocalEvent, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return models.LocalEvent{}, err
	}
	start, err := ical.ParseStart(req.StartISO, s.loc)
	if err != nil {
		return models.LocalEvent{}, apperrors.NewValidationError("startISO", "startISO must be an ISO date or date-time")
	}
	if strings.TrimSpace(req.EndISO) != "" {
		end, err := ical.ParseStart(req.EndISO, s.loc)
		if err != nil {
			return models.LocalEvent{}, apperrors.NewValidationError("endISO", "endISO must be an ISO date or date-time")
		}
		if end.Before(start) {
			return models.LocalEvent{}, apperrors.NewValidationError("endISO", "endISO must not be before startISO")
		}
	}

	communityID, areaID, err := placement(s.reg, s.state, req.CommunityID, req.AreaID)
	if err != nil {
		return models.LocalEvent{}, err
	}

	event, err := s.eventRepo.Create(ctx, models.LocalEvent{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		CommunityID: communityID,
		AreaID:      areaID,
		Venue:       strings.TrimSpace(req.Venue),
		StartISO:    strings.TrimSpace(req.StartISO),
		EndISO:      strings.TrimSpace(req.EndISO),
		Organizer:   strings.TrimSpace(req.Organizer),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create event")
		return models.LocalEvent{}, err
	}

	s.logger.Info().Str("eventId", event.ID).Str("communityId", communityID).Msg("Event created")
	return event, nil
}

func (s *eventServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("eventId", id).Msg("Event deleted")
	return nil
}

// Calendar renders one event as an .ics attachment
func (s *eventServiceImpl) Calendar(ctx context.Context, id string) (string, []byte, error) {
	event, err := s.eventRepo.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	start, err := ical.ParseStart(event.StartISO, s.loc)
	if err != nil {
		s.logger.Warn().Err(err).Str("eventId", id).Msg("Stored event has an unreadable start")
		return "", nil, apperrors.NewBadRequestError("event has no valid start time")
	}
	end := start.Add(s.defaultDuration)
	if event.EndISO != "" {
		if t, err := ical.ParseStart(event.EndISO, s.loc); err == nil && !t.Before(start) {
			end = t
		}
	}

	location := event.Venue
	if community, ok := s.reg.Get(event.CommunityID); ok && location == "" {
		location = community.City + ", " + community.Country
	}

	body := ical.Marshal(ical.Event{
		UID:         event.ID + "@diasporahub",
		Title:       event.Title,
		Description: event.Description,
		Location:    location,
		Start:       start,
		End:         end,
	})
	return ical.Filename(event.Title), body, nil
}
