// Package settings holds the user's location state: the selected community,
// the area remembered per community, and the confirmed location.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
	"github.com/yigit/diasporahub/internal/pkg/logger"
)

const (
	// Key is where the settings envelope lives in the key-value store
	Key = "settings.v1"
	// SchemaVersion is the envelope version written by this package
	SchemaVersion = 1
)

// Settings is the persisted envelope
type Settings struct {
	SchemaVersion     int                  `json:"schemaVersion"`
	CommunityID       string               `json:"communityId"`
	AreaByCommunity   map[string]string    `json:"areaByCommunity"`
	Location          *models.UserLocation `json:"location,omitempty"`
	LocationConfirmed bool                 `json:"locationConfirmed"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// AreaID is the area selected for the current community
func (s Settings) AreaID() string {
	if a, ok := s.AreaByCommunity[s.CommunityID]; ok && a != "" {
		return a
	}
	return models.AreaAll
}

func (s Settings) clone() Settings {
	out := s
	out.AreaByCommunity = make(map[string]string, len(s.AreaByCommunity))
	for k, v := range s.AreaByCommunity {
		out.AreaByCommunity[k] = v
	}
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	return out
}

func (s Settings) snapshot() Snapshot {
	c := s.clone()
	return Snapshot{
		CommunityID: c.CommunityID,
		AreaID:      c.AreaID(),
		Location:    c.Location,
		Confirmed:   c.LocationConfirmed,
	}
}

// LoadStatus tells the caller what Load found
type LoadStatus string

const (
	StatusStored           LoadStatus = "stored"
	StatusDefaulted        LoadStatus = "defaulted"
	StatusRecovered        LoadStatus = "recovered"
	StatusUnknownCommunity LoadStatus = "unknown_community"
)

// LoadResult is the outcome of reading persisted settings
type LoadResult struct {
	Settings Settings   `json:"settings"`
	Status   LoadStatus `json:"status"`
}

// Snapshot is the read model handed to views
type Snapshot struct {
	CommunityID string               `json:"communityId"`
	AreaID      string               `json:"areaId"`
	Location    *models.UserLocation `json:"location,omitempty"`
	Confirmed   bool                 `json:"locationConfirmed"`
}

// ChangeReason names the operation that produced a Change
type ChangeReason string

const (
	ReasonCommunity       ChangeReason = "community"
	ReasonArea            ChangeReason = "area"
	ReasonLocationSaved   ChangeReason = "location_saved"
	ReasonLocationCleared ChangeReason = "location_cleared"
)

// Change is delivered to subscribers after every successful write
type Change struct {
	Reason   ChangeReason `json:"reason"`
	Previous Snapshot     `json:"previous"`
	Current  Snapshot     `json:"current"`
}

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	GetJSON(ctx context.Context, key string, dst any) error
	PutJSON(ctx context.Context, key string, v any) error
}

// Store is the single writer of location state
type Store struct {
	kv  kvStore
	reg *registry.Registry
	now func() time.Time

	mu      sync.Mutex
	current Settings
	// status describes current: what Load found, or stored after a write
	status LoadStatus

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New creates a store that starts on the registry's default community.
// Call Load to pick up persisted state.
func New(kv kvStore, reg *registry.Registry) *Store {
	s := &Store{
		kv:   kv,
		reg:  reg,
		now:  time.Now,
		subs: make(map[int]func(Change)),
	}
	s.current = s.defaults()
	s.status = StatusDefaulted
	return s
}

func (s *Store) defaults() Settings {
	return Settings{
		SchemaVersion:   SchemaVersion,
		CommunityID:     s.reg.DefaultCommunity().ID,
		AreaByCommunity: map[string]string{},
	}
}

// Load reads the persisted envelope, importing legacy keys on first run.
// It never fails; Status reports whether defaults had to be used.
func (s *Store) Load(ctx context.Context) LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored Settings
	status := StatusStored

	err := s.kv.GetJSON(ctx, Key, &stored)
	var decodeErr *kvstore.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, kvstore.ErrNotFound):
		legacy, found, lerr := s.importLegacy(ctx)
		if lerr != nil {
			logger.Warn().Err(lerr).Msg("Failed to import legacy location keys")
		}
		if !found {
			s.current, s.status = s.defaults(), StatusDefaulted
			return LoadResult{Settings: s.current.clone(), Status: s.status}
		}
		stored = legacy
	case errors.As(err, &decodeErr):
		logger.Warn().Err(err).Str("key", Key).Msg("Stored settings are corrupt, resetting to defaults")
		s.current, s.status = s.defaults(), StatusRecovered
		if perr := s.kv.PutJSON(ctx, Key, s.current); perr != nil {
			logger.Error().Err(perr).Msg("Failed to overwrite corrupt settings")
		}
		return LoadResult{Settings: s.current.clone(), Status: s.status}
	default:
		logger.Error().Err(err).Str("key", Key).Msg("Failed to read settings, using defaults")
		s.current, s.status = s.defaults(), StatusRecovered
		return LoadResult{Settings: s.current.clone(), Status: s.status}
	}

	if stored.AreaByCommunity == nil {
		stored.AreaByCommunity = map[string]string{}
	}
	stored.SchemaVersion = SchemaVersion

	if _, ok := s.reg.Get(stored.CommunityID); !ok {
		logger.Warn().
			Str("communityId", stored.CommunityID).
			Str("fallback", s.reg.DefaultCommunity().ID).
			Msg("Stored community is not in the registry")
		stored.CommunityID = s.reg.DefaultCommunity().ID
		status = StatusUnknownCommunity
	}
	for communityID, areaID := range stored.AreaByCommunity {
		if !s.reg.AreaBelongs(communityID, areaID) {
			delete(stored.AreaByCommunity, communityID)
		}
	}

	s.current, s.status = stored, status
	return LoadResult{Settings: s.current.clone(), Status: s.status}
}

// Current returns the in-memory state
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.snapshot()
}

// Status reports how the in-memory state was obtained. Any successful write
// makes it StatusStored.
func (s *Store) Status() LoadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetCommunity switches the selected community. The area last chosen for it
// is restored; communities without areas always use "all".
func (s *Store) SetCommunity(ctx context.Context, communityID string) (Snapshot, error) {
	c, ok := s.reg.Get(communityID)
	if !ok {
		return Snapshot{}, apperrors.ErrUnknownCommunity
	}
	return s.write(ctx, ReasonCommunity, func(next *Settings) error {
		next.CommunityID = c.ID
		if !c.HasAreas() {
			next.AreaByCommunity[c.ID] = models.AreaAll
		}
		return nil
	})
}

// SetArea selects an area inside the current community
func (s *Store) SetArea(ctx context.Context, areaID string) (Snapshot, error) {
	if areaID == "" {
		areaID = models.AreaAll
	}
	return s.write(ctx, ReasonArea, func(next *Settings) error {
		if !s.reg.AreaBelongs(next.CommunityID, areaID) {
			return apperrors.ErrUnknownArea
		}
		next.AreaByCommunity[next.CommunityID] = areaID
		return nil
	})
}

// SaveLocation records a confirmed location and moves to its community when
// the city is one the registry knows
func (s *Store) SaveLocation(ctx context.Context, loc models.UserLocation) (Snapshot, error) {
	if loc.Source == "" {
		loc.Source = models.LocationSourceManual
	}
	if !loc.Source.Valid() {
		return Snapshot{}, apperrors.NewValidationError("source", "must be one of ip, manual")
	}
	loc.ConfirmedAt = s.now().UTC()

	return s.write(ctx, ReasonLocationSaved, func(next *Settings) error {
		if c, ok := s.reg.FindByCity(loc.Country, loc.City); ok {
			next.CommunityID = c.ID
			switch {
			case !c.HasAreas():
				next.AreaByCommunity[c.ID] = models.AreaAll
				loc.Area = ""
			case loc.Area != "" && s.reg.AreaBelongs(c.ID, loc.Area):
				next.AreaByCommunity[c.ID] = loc.Area
			default:
				loc.Area = ""
			}
		}
		next.Location = &loc
		next.LocationConfirmed = true
		return nil
	})
}

// ClearLocation forgets the confirmed location but keeps the community
func (s *Store) ClearLocation(ctx context.Context) (Snapshot, error) {
	return s.write(ctx, ReasonLocationCleared, func(next *Settings) error {
		next.Location = nil
		next.LocationConfirmed = false
		return nil
	})
}

// Subscribe registers fn for every successful write. fn runs synchronously
// on the writer's goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) write(ctx context.Context, reason ChangeReason, mutate func(next *Settings) error) (Snapshot, error) {
	s.mu.Lock()
	prev := s.current
	next := prev.clone()
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return Snapshot{}, err
	}
	next.SchemaVersion = SchemaVersion
	next.UpdatedAt = s.now().UTC()

	if err := s.kv.PutJSON(ctx, Key, next); err != nil {
		s.mu.Unlock()
		logger.Error().Err(err).Str("reason", string(reason)).Msg("Failed to persist settings")
		return Snapshot{}, fmt.Errorf("failed to persist settings: %w", err)
	}
	s.current = next
	s.status = StatusStored
	change := Change{Reason: reason, Previous: prev.snapshot(), Current: next.snapshot()}
	s.mu.Unlock()

	s.notify(change)
	return change.Current, nil
}

func (s *Store) notify(change Change) {
	s.subsMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}
