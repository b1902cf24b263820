package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/mediatypes"
	"autodelete-after-play/internal/metrics"
)

// Backend persists settings as string pairs.
type Backend interface {
	AllSettings(ctx context.Context) (map[string]string, error)
	SetSettings(ctx context.Context, values map[string]string) error
}

// Store is the process-wide settings holder.
type Store struct {
	backend  Backend
	defaults Settings
	log      logging.Sink

	// writeMu serializes Load and Update so a read-modify-write cycle
	// always starts from the last persisted values.
	writeMu sync.Mutex

	mu      sync.RWMutex
	current Settings
}

// NewStore creates a store that starts with defaults. Call Load to read
// the persisted values.
func NewStore(backend Backend, defaults Settings) *Store {
	return &Store{
		backend:  backend,
		defaults: defaults,
		log:      logging.For("settings"),
		current:  defaults,
	}
}

// Load replaces the current settings with the persisted ones. Keys that are
// missing or cannot be parsed keep their default. A backend failure leaves
// the defaults in place; the error is logged and returned.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	loaded := s.defaults

	stored, err := s.backend.AllSettings(ctx)
	if err != nil {
		metrics.SettingsLoadErrors.Inc()
		s.log.Error("Failed to load settings, using defaults: %v", err)
		s.set(loaded)
		return fmt.Errorf("load settings: %w", err)
	}

	var bad int
	parseInt := func(key string, dst *int) {
		if v, ok := stored[key]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				bad++
				s.log.Error("Invalid value %q for %s, using default %d", v, key, *dst)
				return
			}
			*dst = n
		}
	}
	parseBool := func(key string, dst *bool) {
		if v, ok := stored[key]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				bad++
				s.log.Error("Invalid value %q for %s, using default %v", v, key, *dst)
				return
			}
			*dst = b
		}
	}

	parseInt(KeyPercentPlayed, &loaded.PercentPlayedRequired)
	if v, ok := stored[KeyFolderPaths]; ok {
		loaded.AutoDeleteFolderPaths = v
	}
	parseBool(KeyRecycle, &loaded.MoveToRecycleBin)
	parseBool(KeyDeleteVideo, &loaded.DeleteVideo)
	parseBool(KeyDeleteAudio, &loaded.DeleteAudio)
	parseBool(KeyDeleteImage, &loaded.DeleteImage)

	if err := loaded.Validate(); err != nil {
		bad++
		s.log.Error("Stored settings rejected, using default percentage: %v", err)
		loaded.PercentPlayedRequired = s.defaults.PercentPlayedRequired
	}

	if bad > 0 {
		metrics.SettingsLoadErrors.Inc()
	}

	s.set(loaded)
	s.log.Info("Settings loaded: %d%% required, folders=%q, trash=%v, video=%v, audio=%v, image=%v",
		loaded.PercentPlayedRequired, loaded.AutoDeleteFolderPaths, loaded.MoveToRecycleBin,
		loaded.DeleteVideo, loaded.DeleteAudio, loaded.DeleteImage)
	return nil
}

// Update applies change to a copy of the current settings, then validates
// and persists the result and makes it current. Updates run one at a time,
// so concurrent partial changes do not overwrite each other. An error from
// change is returned as is and nothing is saved.
func (s *Store) Update(ctx context.Context, change func(*Settings) error) (Settings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Get()
	if err := change(&next); err != nil {
		return Settings{}, err
	}
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}

	if err := s.backend.SetSettings(ctx, encode(next)); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.set(next)
	s.log.Info("Settings saved: %d%% required, folders=%q, trash=%v",
		next.PercentPlayedRequired, next.AutoDeleteFolderPaths, next.MoveToRecycleBin)
	return next, nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Policy implements autodelete.ConfigProvider.
func (s *Store) Policy() autodelete.PolicyConfig {
	return s.Get().Policy()
}

// MediaFlags implements autodelete.ConfigProvider.
func (s *Store) MediaFlags() mediatypes.Flags {
	return s.Get().MediaFlags()
}

func (s *Store) set(next Settings) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

func encode(s Settings) map[string]string {
	return map[string]string{
		KeyPercentPlayed: strconv.Itoa(s.PercentPlayedRequired),
		KeyFolderPaths:   s.AutoDeleteFolderPaths,
		KeyRecycle:       strconv.FormatBool(s.MoveToRecycleBin),
		KeyDeleteVideo:   strconv.FormatBool(s.DeleteVideo),
		KeyDeleteAudio:   strconv.FormatBool(s.DeleteAudio),
		KeyDeleteImage:   strconv.FormatBool(s.DeleteImage),
	}
}
