package autodelete

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autodelete-after-play/internal/mediatypes"
	"autodelete-after-play/internal/playback"
)

var t0 = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func newTestListener(r Remover, cfg staticConfig) (*Listener, *recordingObserver) {
	obs := &recordingObserver{}
	e, _ := newTestEngine(r, WithObserver(obs))
	l := NewListener(playback.NewTracker(), e, cfg,
		WithListenerLogger(discardLog{}),
		WithListenerObserver(obs),
		WithClock(func() time.Time { return t0 }),
	)
	return l, obs
}

func allTypes(policy PolicyConfig) staticConfig {
	return staticConfig{policy: policy, flags: mediatypes.Flags{Video: true, Audio: true, Image: true}}
}

func TestListener_UnderThresholdKeepsFile(t *testing.T) {
	r := &scriptedRemover{trash: true}
	l, _ := newTestListener(r, allTypes(PolicyConfig{MinPlayedPercent: 80, RecycleEnabled: true}))

	require.True(t, l.OnPlaybackStarted(Notification{ResourceID: "R1", MediaType: "video", Path: "/media/movies/a.mkv", At: t0}))
	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID:      "R1",
		MediaType:       "video",
		Path:            "/media/movies/a.mkv",
		DurationSeconds: 1000,
		At:              t0.Add(500 * time.Second),
	})

	assert.True(t, res.Matched)
	assert.Equal(t, int64(500), res.ElapsedSeconds)
	assert.False(t, res.Outcome.WillDelete)
	assert.Equal(t, ReasonUnderPlayed, res.Outcome.Reason)
	assert.Empty(t, r.trashCalls)
	assert.Empty(t, r.permanentCalls)
	assert.Empty(t, l.PendingSessions())
}

func TestListener_OverThresholdMovesToTrash(t *testing.T) {
	r := &scriptedRemover{trash: true}
	l, obs := newTestListener(r, allTypes(PolicyConfig{MinPlayedPercent: 80, RecycleEnabled: true}))

	l.OnPlaybackStarted(Notification{ResourceID: "R2", MediaType: "video", Path: "/media/movies/b.mkv", At: t0})
	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID:      "R2",
		MediaType:       "video",
		Path:            "/media/movies/b.mkv",
		DurationSeconds: 1000,
		At:              t0.Add(900 * time.Second),
	})

	assert.True(t, res.Matched)
	assert.Equal(t, int64(900), res.ElapsedSeconds)
	assert.True(t, res.Outcome.WillDelete)
	assert.True(t, res.Outcome.UsedRecycle)
	assert.True(t, res.Outcome.Succeeded)
	assert.Equal(t, []string{"/media/movies/b.mkv"}, r.trashCalls)

	assert.Equal(t, []string{"video"}, obs.starts)
	assert.Equal(t, []bool{true}, obs.stops)
	assert.Equal(t, []int{1, 0}, obs.pending)
}

func TestListener_DisabledMediaTypeIgnored(t *testing.T) {
	r := &scriptedRemover{trash: true}
	cfg := staticConfig{
		policy: PolicyConfig{MinPlayedPercent: 80},
		flags:  mediatypes.Flags{Video: true, Audio: false, Image: true},
	}
	l, obs := newTestListener(r, cfg)

	assert.False(t, l.OnPlaybackStarted(Notification{ResourceID: "A1", MediaType: "audio", Path: "/music/x.mp3", At: t0}))
	assert.Empty(t, l.PendingSessions())

	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID: "A1", MediaType: "audio", Path: "/music/x.mp3", DurationSeconds: 100, At: t0.Add(time.Hour),
	})
	assert.True(t, res.Ignored)
	assert.False(t, res.Matched)
	assert.Empty(t, r.permanentCalls)
	assert.Equal(t, []string{"audio/start", "audio/stop"}, obs.ignored)
}

func TestListener_MediaTypeFromExtension(t *testing.T) {
	r := &scriptedRemover{}
	cfg := staticConfig{
		policy: PolicyConfig{MinPlayedPercent: 50},
		flags:  mediatypes.Flags{Video: false, Audio: true, Image: true},
	}
	l, _ := newTestListener(r, cfg)

	assert.False(t, l.OnPlaybackStarted(Notification{ResourceID: "V", Path: "/media/a.mp4"}))
	assert.True(t, l.OnPlaybackStarted(Notification{ResourceID: "S", Path: "/music/a.flac"}))
}

func TestListener_StopWithoutStart(t *testing.T) {
	r := &scriptedRemover{trash: true}
	l, obs := newTestListener(r, allTypes(DefaultPolicy()))

	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID: "ghost", MediaType: "video", Path: "/m/ghost.mkv", DurationSeconds: 10,
	})

	assert.False(t, res.Matched)
	assert.False(t, res.Outcome.WillDelete)
	assert.Equal(t, ReasonNotPlayed, res.Outcome.Reason)
	assert.Empty(t, r.trashCalls)
	assert.Equal(t, []bool{false}, obs.stops)
}

func TestListener_SecondStopIsUnmatched(t *testing.T) {
	r := &scriptedRemover{trash: true}
	l, _ := newTestListener(r, allTypes(PolicyConfig{MinPlayedPercent: 80, RecycleEnabled: true}))

	l.OnPlaybackStarted(Notification{ResourceID: "R", MediaType: "video", Path: "/m/a.mkv", At: t0})
	stop := Notification{ResourceID: "R", MediaType: "video", Path: "/m/a.mkv", DurationSeconds: 100, At: t0.Add(99 * time.Second)}

	first := l.OnPlaybackStopped(context.Background(), stop)
	second := l.OnPlaybackStopped(context.Background(), stop)

	assert.True(t, first.Outcome.Succeeded)
	assert.False(t, second.Matched)
	assert.Len(t, r.trashCalls, 1)
}

func TestListener_NotAFile(t *testing.T) {
	r := &scriptedRemover{trash: true}
	l, obs := newTestListener(r, allTypes(PolicyConfig{MinPlayedPercent: 10}))

	l.OnPlaybackStarted(Notification{ResourceID: "stream", MediaType: "video", At: t0})
	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID: "stream", MediaType: "video", DurationSeconds: 100, At: t0.Add(90 * time.Second),
	})

	assert.True(t, res.Matched)
	assert.Equal(t, ReasonNotAFile, res.Outcome.Reason)
	assert.False(t, res.Outcome.WillDelete)
	assert.Empty(t, l.PendingSessions(), "session is consumed")
	assert.Empty(t, r.trashCalls)
	assert.Equal(t, []string{"not_a_file"}, obs.decisions)
}

func TestListener_ZeroTimestampUsesClock(t *testing.T) {
	l, _ := newTestListener(&scriptedRemover{}, allTypes(DefaultPolicy()))

	l.OnPlaybackStarted(Notification{ResourceID: "R", MediaType: "video", Path: "/m/a.mkv"})

	sessions := l.PendingSessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, t0, sessions[0].StartTime)
}

func TestListener_Shutdown(t *testing.T) {
	l, obs := newTestListener(&scriptedRemover{}, allTypes(DefaultPolicy()))

	l.OnPlaybackStarted(Notification{ResourceID: "a", MediaType: "video", Path: "/m/a.mkv"})
	l.OnPlaybackStarted(Notification{ResourceID: "b", MediaType: "video", Path: "/m/b.mkv"})
	require.Len(t, l.PendingSessions(), 2)

	l.Shutdown()

	assert.Empty(t, l.PendingSessions())
	assert.Equal(t, 0, obs.pending[len(obs.pending)-1])
}

func TestListener_TrashSupported(t *testing.T) {
	l, _ := newTestListener(&scriptedRemover{trash: true}, allTypes(DefaultPolicy()))
	assert.True(t, l.TrashSupported())

	l, _ = newTestListener(&scriptedRemover{trash: false}, allTypes(DefaultPolicy()))
	assert.False(t, l.TrashSupported())
}

func TestListener_RelativePathIsNotAFile(t *testing.T) {
	r := &scriptedRemover{}
	l, _ := newTestListener(r, allTypes(PolicyConfig{MinPlayedPercent: 10}))

	l.OnPlaybackStarted(Notification{ResourceID: "rel", MediaType: "video", Path: "movies/a.mkv", At: t0})
	res := l.OnPlaybackStopped(context.Background(), Notification{
		ResourceID: "rel", MediaType: "video", Path: "movies/a.mkv", DurationSeconds: 100, At: t0.Add(90 * time.Second),
	})

	assert.Equal(t, ReasonNotAFile, res.Outcome.Reason)
	assert.Empty(t, r.permanentCalls)
}
