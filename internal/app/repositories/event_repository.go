package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

const eventsKey = "events"

// EventRepository persists community events on the device
type EventRepository struct {
	events collection[models.LocalEvent]
	now    func() time.Time
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(kv *kvstore.Store) *EventRepository {
	return &EventRepository{
		events: collection[models.LocalEvent]{kv: kv, key: eventsKey},
		now:    time.Now,
	}
}

func (r *EventRepository) List(ctx context.Context) ([]models.LocalEvent, error) {
	return r.events.load(ctx)
}

func (r *EventRepository) Get(ctx context.Context, id string) (models.LocalEvent, error) {
	items, err := r.events.load(ctx)
	if err != nil {
		return models.LocalEvent{}, err
	}
	for _, e := range items {
		if e.ID == id {
			return e, nil
		}
	}
	return models.LocalEvent{}, apperrors.ErrEventNotFound
}

// Create appends a new event and assigns its id
func (r *EventRepository) Create(ctx context.Context, e models.LocalEvent) (models.LocalEvent, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()
	err := r.events.update(ctx, func(items []models.LocalEvent) ([]models.LocalEvent, error) {
		return append(items, e), nil
	})
	if err != nil {
		return models.LocalEvent{}, err
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.events.update(ctx, func(items []models.LocalEvent) ([]models.LocalEvent, error) {
		for i, e := range items {
			if e.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.ErrEventNotFound
	})
}

// Seed stores the given events if the device has none yet
func (r *EventRepository) Seed(ctx context.Context, events []models.LocalEvent) (bool, error) {
	return r.events.seed(ctx, events)
}
