package settings

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/database"
	"autodelete-after-play/internal/mediatypes"
)

type memoryBackend struct {
	values  map[string]string
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryBackend) AllSettings(context.Context) (map[string]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *memoryBackend) SetSettings(_ context.Context, values map[string]string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	for k, v := range values {
		m.values[k] = v
	}
	m.saves++
	return nil
}

var _ autodelete.ConfigProvider = (*Store)(nil)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 80, d.PercentPlayedRequired)
	assert.Equal(t, "", d.AutoDeleteFolderPaths)
	assert.True(t, d.MoveToRecycleBin)
	assert.Equal(t, mediatypes.Flags{Video: true, Audio: true, Image: true}, d.MediaFlags())
}

func TestSplitFolders(t *testing.T) {
	assert.Nil(t, SplitFolders(""))
	assert.Nil(t, SplitFolders(" ; ;"))
	assert.Equal(t, []string{"/media/movies", "/media/shows"}, SplitFolders("/media/movies; /media/shows ;"))
}

func TestSettingsPolicy(t *testing.T) {
	s := Settings{
		PercentPlayedRequired: 65,
		AutoDeleteFolderPaths: "/media/movies;/media/shows",
		MoveToRecycleBin:      false,
	}
	assert.Equal(t, autodelete.PolicyConfig{
		MinPlayedPercent:   65,
		AllowedFolderPaths: []string{"/media/movies", "/media/shows"},
		RecycleEnabled:     false,
	}, s.Policy())
}

func TestValidate(t *testing.T) {
	for _, pct := range []int{0, 1, 80, 100} {
		s := Defaults()
		s.PercentPlayedRequired = pct
		assert.NoError(t, s.Validate(), "percent %d", pct)
	}
	for _, pct := range []int{-1, 101, 1000} {
		s := Defaults()
		s.PercentPlayedRequired = pct
		assert.ErrorIs(t, s.Validate(), ErrInvalid, "percent %d", pct)
	}
}

func TestStore_LoadEmptyKeepsDefaults(t *testing.T) {
	store := NewStore(&memoryBackend{}, Defaults())

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, Defaults(), store.Get())
}

func TestStore_LoadStoredValues(t *testing.T) {
	backend := &memoryBackend{values: map[string]string{
		KeyPercentPlayed: "90",
		KeyFolderPaths:   "/media/movies",
		KeyRecycle:       "false",
		KeyDeleteAudio:   "false",
	}}
	store := NewStore(backend, Defaults())

	require.NoError(t, store.Load(context.Background()))

	got := store.Get()
	assert.Equal(t, 90, got.PercentPlayedRequired)
	assert.Equal(t, "/media/movies", got.AutoDeleteFolderPaths)
	assert.False(t, got.MoveToRecycleBin)
	assert.True(t, got.DeleteVideo)
	assert.False(t, got.DeleteAudio)
	assert.True(t, got.DeleteImage)

	assert.Equal(t, []string{"/media/movies"}, store.Policy().AllowedFolderPaths)
	assert.False(t, store.MediaFlags().Allows(mediatypes.MediaTypeAudio))
}

func TestStore_LoadMalformedValuesFallBack(t *testing.T) {
	backend := &memoryBackend{values: map[string]string{
		KeyPercentPlayed: "lots",
		KeyRecycle:       "maybe",
		KeyDeleteImage:   "false",
	}}
	store := NewStore(backend, Defaults())

	require.NoError(t, store.Load(context.Background()))

	got := store.Get()
	assert.Equal(t, 80, got.PercentPlayedRequired)
	assert.True(t, got.MoveToRecycleBin)
	assert.False(t, got.DeleteImage)
}

func TestStore_LoadOutOfRangePercent(t *testing.T) {
	backend := &memoryBackend{values: map[string]string{KeyPercentPlayed: "250"}}
	store := NewStore(backend, Defaults())

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, 80, store.Get().PercentPlayedRequired)
}

func TestStore_LoadBackendFailureUsesDefaults(t *testing.T) {
	seed := Defaults()
	seed.PercentPlayedRequired = 70
	store := NewStore(&memoryBackend{loadErr: errors.New("disk gone")}, seed)

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Equal(t, seed, store.Get())
}

func TestStore_Update(t *testing.T) {
	backend := &memoryBackend{}
	store := NewStore(backend, Defaults())

	got, err := store.Update(context.Background(), func(s *Settings) error {
		s.PercentPlayedRequired = 50
		s.AutoDeleteFolderPaths = "/a;/b"
		s.DeleteVideo = false
		return nil
	})
	require.NoError(t, err)

	want := Defaults()
	want.PercentPlayedRequired = 50
	want.AutoDeleteFolderPaths = "/a;/b"
	want.DeleteVideo = false
	assert.Equal(t, want, got)
	assert.Equal(t, want, store.Get())
	assert.Equal(t, "50", backend.values[KeyPercentPlayed])
	assert.Equal(t, "/a;/b", backend.values[KeyFolderPaths])
	assert.Equal(t, "false", backend.values[KeyDeleteVideo])
	assert.Equal(t, "true", backend.values[KeyRecycle])
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	backend := &memoryBackend{}
	store := NewStore(backend, Defaults())

	_, err := store.Update(context.Background(), func(s *Settings) error {
		s.PercentPlayedRequired = 101
		return nil
	})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Zero(t, backend.saves)
	assert.Equal(t, Defaults(), store.Get())
}

func TestStore_UpdateChangeErrorSavesNothing(t *testing.T) {
	backend := &memoryBackend{}
	store := NewStore(backend, Defaults())
	errBody := errors.New("bad body")

	_, err := store.Update(context.Background(), func(s *Settings) error {
		s.PercentPlayedRequired = 10
		return errBody
	})

	assert.ErrorIs(t, err, errBody)
	assert.Zero(t, backend.saves)
	assert.Equal(t, 80, store.Get().PercentPlayedRequired)
}

func TestStore_UpdateBackendFailureKeepsCurrent(t *testing.T) {
	store := NewStore(&memoryBackend{saveErr: errors.New("read-only")}, Defaults())

	_, err := store.Update(context.Background(), func(s *Settings) error {
		s.PercentPlayedRequired = 10
		return nil
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.Equal(t, 80, store.Get().PercentPlayedRequired)
}

func TestStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	seed := Defaults()
	seed.PercentPlayedRequired = 0
	store := NewStore(&memoryBackend{}, seed)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(context.Background(), func(s *Settings) error {
				s.PercentPlayedRequired++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, store.Get().PercentPlayedRequired)
}

func TestStore_RoundTripThroughDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db, Defaults())
	next := Settings{
		PercentPlayedRequired: 95,
		AutoDeleteFolderPaths: "/media/movies;/media/shows",
		MoveToRecycleBin:      false,
		DeleteVideo:           true,
		DeleteAudio:           false,
		DeleteImage:           false,
	}
	_, err = store.Update(ctx, func(s *Settings) error {
		*s = next
		return nil
	})
	require.NoError(t, err)

	reloaded := NewStore(db, Defaults())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, next, reloaded.Get())
}
