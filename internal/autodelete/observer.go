package autodelete

import "time"

// Observer records session and deletion metrics. The Prometheus
// implementation lives in the metrics package to keep this package free of
// instrumentation imports.
type Observer interface {
	ObserveStart(mediaType string)
	ObserveIgnored(mediaType, event string)
	ObserveStop(matched bool, elapsedSeconds int64)
	ObservePending(n int)

	ObserveDecision(decision string)
	ObserveAttempt(method string)
	ObserveResult(method string, succeeded bool, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveStart(string)                       {}
func (nopObserver) ObserveIgnored(string, string)             {}
func (nopObserver) ObserveStop(bool, int64)                   {}
func (nopObserver) ObservePending(int)                        {}
func (nopObserver) ObserveDecision(string)                    {}
func (nopObserver) ObserveAttempt(string)                     {}
func (nopObserver) ObserveResult(string, bool, time.Duration) {}
