package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
	"github.com/yigit/diasporahub/internal/pkg/logger"
)

// Keys written by schema version 0, one value per key
const (
	legacyLocationKey  = "diaspora.location"
	legacyCommunityKey = "diaspora.communityId"
	legacyAreaPrefix   = "diaspora.area."
	legacyConfirmedKey = "diaspora.locationConfirmed"
)

// importLegacy folds the v0 keys into a v1 envelope, persists it and removes
// the old keys. found is false when no v0 key exists.
func (s *Store) importLegacy(ctx context.Context) (Settings, bool, error) {
	out := s.defaults()
	var consumed []string

	if raw, err := s.kv.Get(ctx, legacyCommunityKey); err == nil {
		consumed = append(consumed, legacyCommunityKey)
		if id := legacyString(raw); id != "" {
			out.CommunityID = id
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		return Settings{}, false, err
	}

	areaKeys, err := s.kv.Keys(ctx, legacyAreaPrefix)
	if err != nil {
		return Settings{}, false, err
	}
	for _, key := range areaKeys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		consumed = append(consumed, key)
		if area := legacyString(raw); area != "" {
			out.AreaByCommunity[strings.TrimPrefix(key, legacyAreaPrefix)] = area
		}
	}

	var loc models.UserLocation
	if err := s.kv.GetJSON(ctx, legacyLocationKey, &loc); err == nil {
		consumed = append(consumed, legacyLocationKey)
		if loc.Source == "" {
			loc.Source = models.LocationSourceManual
		}
		out.Location = &loc
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		consumed = append(consumed, legacyLocationKey)
		logger.Warn().Err(err).Msg("Dropping unreadable legacy location")
	}

	if raw, err := s.kv.Get(ctx, legacyConfirmedKey); err == nil {
		consumed = append(consumed, legacyConfirmedKey)
		switch legacyString(raw) {
		case "true", "1", "yes":
			out.LocationConfirmed = true
		}
	}

	if len(consumed) == 0 {
		return Settings{}, false, nil
	}
	if out.Location == nil {
		out.LocationConfirmed = false
	}

	out.UpdatedAt = s.now().UTC()
	if err := s.kv.PutJSON(ctx, Key, out); err != nil {
		return out, true, err
	}
	for _, key := range consumed {
		if err := s.kv.Delete(ctx, key); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to remove legacy key")
		}
	}
	logger.Info().Int("keys", len(consumed)).Msg("Migrated legacy location keys to settings.v1")
	return out, true, nil
}

// legacyString accepts both raw and JSON-quoted string values
func legacyString(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
