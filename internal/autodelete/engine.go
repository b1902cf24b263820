package autodelete

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"autodelete-after-play/internal/logging"
)

// Retry defaults for a delete operation.
const (
	DefaultMaxAttempts   = 10
	DefaultRetryInterval = 1000 * time.Millisecond
)

const (
	methodTrash     = "trash"
	methodPermanent = "permanent"
)

// Remover is the platform's file removal capability.
type Remover interface {
	SupportsTrash() bool
	MoveToTrash(path string) error
	DeletePermanently(path string) error
}

// RetryConfig bounds the delete retry loop.
type RetryConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

// DefaultRetryConfig returns 10 attempts spaced 1000ms apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultRetryInterval,
	}
}

// Outcome is the transient result of one evaluation.
type Outcome struct {
	WillDelete  bool  `json:"willDelete"`
	UsedRecycle bool  `json:"usedRecycle"`
	Succeeded   bool  `json:"succeeded"`
	Attempts    int   `json:"attempts"`
	LastError   error `json:"-"`

	Reason             Reason `json:"reason,omitempty"`
	ElapsedSeconds     int64  `json:"elapsedSeconds"`
	MinRequiredSeconds int64  `json:"minRequiredSeconds"`
}

// Engine evaluates the deletion policy for a finished play and removes the
// file when the policy allows it.
type Engine struct {
	remover  Remover
	retry    RetryConfig
	log      logging.Sink
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRetry overrides the retry bounds.
func WithRetry(cfg RetryConfig) Option {
	return func(e *Engine) {
		if cfg.MaxAttempts < 1 {
			cfg.MaxAttempts = 1
		}
		if cfg.Interval < 0 {
			cfg.Interval = 0
		}
		e.retry = cfg
	}
}

// WithLogger sets the logging sink.
func WithLogger(l logging.Sink) Option {
	return func(e *Engine) { e.log = l }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// NewEngine creates an engine that removes files through remover.
func NewEngine(remover Remover, opts ...Option) *Engine {
	e := &Engine{
		remover:  remover,
		retry:    DefaultRetryConfig(),
		log:      logging.For("autodelete"),
		observer: nopObserver{},
		sleep:    sleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TrashSupported reports whether the remover can move files to the trash.
func (e *Engine) TrashSupported() bool {
	return e.remover.SupportsTrash()
}

// EvaluateAndApply decides whether filePath should be deleted after a play
// of elapsedSeconds out of fullDurationSeconds and, if so, deletes it.
//
// The caller must only invoke this for media types enabled in the settings.
// Filesystem errors are retried without distinction and never returned;
// they end up in Outcome.LastError. The wait between attempts ends early
// when ctx is cancelled.
func (e *Engine) EvaluateAndApply(ctx context.Context, filePath string, elapsedSeconds, fullDurationSeconds int64, cfg PolicyConfig) Outcome {
	d := Decide(filePath, elapsedSeconds, fullDurationSeconds, cfg)
	out := Outcome{
		Reason:             d.Reason,
		ElapsedSeconds:     d.ElapsedSeconds,
		MinRequiredSeconds: d.MinRequiredSeconds,
	}

	switch d.Reason {
	case ReasonNotPlayed:
		e.observer.ObserveDecision(string(ReasonNotPlayed))
		return out
	case ReasonUnderPlayed:
		e.log.Debug("File '%s' played %d seconds, needs more than %d (%d%% of %d seconds)",
			filePath, elapsedSeconds, d.MinRequiredSeconds, cfg.MinPlayedPercent, fullDurationSeconds)
		e.observer.ObserveDecision(string(ReasonUnderPlayed))
		return out
	case ReasonFolderNotAllowed:
		e.log.Debug("The file '%s' won't be deleted because it is not part of the defined folders (%s)",
			filePath, strings.Join(cfg.AllowedFolderPaths, ";"))
		e.observer.ObserveDecision(string(ReasonFolderNotAllowed))
		return out
	}

	out.WillDelete = true
	out.UsedRecycle = cfg.RecycleEnabled && e.remover.SupportsTrash()
	e.apply(ctx, filePath, &out)

	if out.Succeeded {
		e.observer.ObserveDecision("deleted")
		if out.UsedRecycle {
			e.log.Info("Moved file '%s' to the trash after having played it for %d seconds. Minimum play length for deleting is %d seconds (%d%% of %d seconds)",
				filePath, elapsedSeconds, d.MinRequiredSeconds, cfg.MinPlayedPercent, fullDurationSeconds)
		} else {
			e.log.Info("Permanently deleted file '%s' after having played it for %d seconds. Minimum play length for deleting is %d seconds (%d%% of %d seconds)",
				filePath, elapsedSeconds, d.MinRequiredSeconds, cfg.MinPlayedPercent, fullDurationSeconds)
		}
		return out
	}

	e.observer.ObserveDecision("failed")
	if out.UsedRecycle {
		e.log.Warn("Failed to move file '%s' to the trash after %d attempts: %v", filePath, out.Attempts, out.LastError)
	} else {
		e.log.Warn("Failed to permanently delete file '%s' after %d attempts: %v", filePath, out.Attempts, out.LastError)
	}
	return out
}

// apply runs the delete loop and fills in Succeeded, Attempts and LastError.
func (e *Engine) apply(ctx context.Context, filePath string, out *Outcome) {
	method := methodPermanent
	op := e.remover.DeletePermanently
	if out.UsedRecycle {
		method = methodTrash
		op = e.remover.MoveToTrash
	}

	start := e.now()
	defer func() {
		e.observer.ObserveResult(method, out.Succeeded, e.now().Sub(start))
	}()

	for attempt := 1; attempt <= e.retry.MaxAttempts; attempt++ {
		out.Attempts = attempt
		e.observer.ObserveAttempt(method)

		err := safeCall(op, filePath)
		if err == nil {
			out.Succeeded = true
			out.LastError = nil
			if attempt > 1 {
				e.log.Info("Delete of '%s' succeeded on attempt %d/%d", filePath, attempt, e.retry.MaxAttempts)
			}
			return
		}
		out.LastError = err

		if attempt == e.retry.MaxAttempts {
			return
		}

		e.log.Debug("Delete of '%s' failed (attempt %d/%d), retrying in %v: %v",
			filePath, attempt, e.retry.MaxAttempts, e.retry.Interval, err)
		if sleepErr := e.sleep(ctx, e.retry.Interval); sleepErr != nil {
			out.LastError = errors.Join(err, sleepErr)
			return
		}
	}
}

// safeCall keeps a panicking remover from escaping into the host callback.
func safeCall(op func(string) error, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return op(path)
}

// PanicError wraps a value recovered from a panicking Remover.
type PanicError struct {
	Value interface{}
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("remover panicked: %v", p.Value)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
