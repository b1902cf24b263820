package autodelete

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"autodelete-after-play/internal/mediatypes"
)

var errBusy = errors.New("file in use")

// scriptedRemover fails the first failures calls of each operation and
// succeeds afterwards.
type scriptedRemover struct {
	mu        sync.Mutex
	trash     bool
	failures  int
	err       error
	panicWith interface{}

	trashCalls     []string
	permanentCalls []string
}

func (r *scriptedRemover) SupportsTrash() bool { return r.trash }

func (r *scriptedRemover) MoveToTrash(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trashCalls = append(r.trashCalls, path)
	return r.result(len(r.trashCalls))
}

func (r *scriptedRemover) DeletePermanently(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permanentCalls = append(r.permanentCalls, path)
	return r.result(len(r.permanentCalls))
}

func (r *scriptedRemover) result(call int) error {
	if r.panicWith != nil {
		panic(r.panicWith)
	}
	if call <= r.failures {
		if r.err != nil {
			return r.err
		}
		return fmt.Errorf("attempt %d: %w", call, errBusy)
	}
	return nil
}

// recordingSleeper captures the waits requested by the engine.
type recordingSleeper struct {
	mu     sync.Mutex
	waits  []time.Duration
	cancel context.CancelFunc
	// cancelAfter cancels the context on the given wait (1-indexed).
	cancelAfter int
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	n := len(s.waits)
	s.mu.Unlock()

	if s.cancel != nil && n == s.cancelAfter {
		s.cancel()
	}
	return ctx.Err()
}

// recordingObserver stores the observations made by the engine and listener.
type recordingObserver struct {
	mu        sync.Mutex
	starts    []string
	ignored   []string
	stops     []bool
	pending   []int
	decisions []string
	attempts  []string
	results   []string
}

func (o *recordingObserver) ObserveStart(mt string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.starts = append(o.starts, mt)
}

func (o *recordingObserver) ObserveIgnored(mt, event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ignored = append(o.ignored, mt+"/"+event)
}

func (o *recordingObserver) ObserveStop(matched bool, _ int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stops = append(o.stops, matched)
}

func (o *recordingObserver) ObservePending(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, n)
}

func (o *recordingObserver) ObserveDecision(d string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decisions = append(o.decisions, d)
}

func (o *recordingObserver) ObserveAttempt(method string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts = append(o.attempts, method)
}

func (o *recordingObserver) ObserveResult(method string, succeeded bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, fmt.Sprintf("%s:%v", method, succeeded))
}

// discardLog is a logging.Sink that drops everything.
type discardLog struct{}

func (discardLog) Debug(string, ...interface{}) {}
func (discardLog) Info(string, ...interface{})  {}
func (discardLog) Warn(string, ...interface{})  {}
func (discardLog) Error(string, ...interface{}) {}

// recordingLog keeps formatted messages per level.
type recordingLog struct {
	mu   sync.Mutex
	warn []string
	info []string
}

func (l *recordingLog) Debug(string, ...interface{}) {}
func (l *recordingLog) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}
func (l *recordingLog) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *recordingLog) Error(string, ...interface{}) {}

// staticConfig is a fixed ConfigProvider.
type staticConfig struct {
	policy PolicyConfig
	flags  mediatypes.Flags
}

func (c staticConfig) Policy() PolicyConfig         { return c.policy }
func (c staticConfig) MediaFlags() mediatypes.Flags { return c.flags }

// newTestEngine builds an engine whose waits are recorded instead of slept.
func newTestEngine(r Remover, opts ...Option) (*Engine, *recordingSleeper) {
	s := &recordingSleeper{}
	opts = append([]Option{WithLogger(discardLog{})}, opts...)
	e := NewEngine(r, opts...)
	e.sleep = s.sleep
	return e, s
}
