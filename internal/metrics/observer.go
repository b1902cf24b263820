package metrics

import (
	"time"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/filesystem"
)

// filesystemObserver implements filesystem.Observer with the Prometheus
// metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver returns an observer recording filesystem metrics.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveOperation(volume, operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(volume, operation).Observe(durationSeconds)
	if err != nil {
		FilesystemOperationErrors.WithLabelValues(volume, operation).Inc()
	}
}

func (o *filesystemObserver) ObserveStaleError(volume, operation string) {
	FilesystemStaleErrors.WithLabelValues(volume, operation).Inc()
}

// autodeleteObserver implements autodelete.Observer.
type autodeleteObserver struct{}

// NewAutodeleteObserver returns an observer recording playback and
// deletion metrics.
func NewAutodeleteObserver() autodelete.Observer {
	return &autodeleteObserver{}
}

func (o *autodeleteObserver) ObserveStart(mediaType string) {
	PlaybackStartsTotal.WithLabelValues(mediaType).Inc()
}

func (o *autodeleteObserver) ObserveIgnored(mediaType, event string) {
	PlaybackIgnoredTotal.WithLabelValues(mediaType, event).Inc()
}

func (o *autodeleteObserver) ObserveStop(matched bool, elapsedSeconds int64) {
	if !matched {
		PlaybackStopsTotal.WithLabelValues("unmatched").Inc()
		return
	}
	PlaybackStopsTotal.WithLabelValues("matched").Inc()
	PlaybackPlayedSeconds.Observe(float64(elapsedSeconds))
}

func (o *autodeleteObserver) ObservePending(n int) {
	PlaybackSessionsPending.Set(float64(n))
}

func (o *autodeleteObserver) ObserveDecision(decision string) {
	DeletionDecisionsTotal.WithLabelValues(decision).Inc()
}

func (o *autodeleteObserver) ObserveAttempt(method string) {
	DeletionAttemptsTotal.WithLabelValues(method).Inc()
}

func (o *autodeleteObserver) ObserveResult(method string, succeeded bool, duration time.Duration) {
	DeletionDuration.WithLabelValues(method).Observe(duration.Seconds())
	if succeeded {
		DeletionSuccessTotal.WithLabelValues(method).Inc()
		return
	}
	DeletionFailuresTotal.WithLabelValues(method).Inc()
}
