package filesystem

import (
	"errors"
	"os"
	"syscall"
	"time"
)

// StaleRetry bounds the retries of a stat that hit a stale NFS handle.
type StaleRetry struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultStaleRetry returns 3 retries with backoff from 50ms to 500ms.
func DefaultStaleRetry() StaleRetry {
	return StaleRetry{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// isNFSStaleError reports whether err is ESTALE.
func isNFSStaleError(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}
	return false
}

// lstat runs lstatFile and retries only on stale file handles. Other errors
// are returned immediately; the delete loop above this decides about those.
func (l *Local) lstat(path string) (os.FileInfo, error) {
	start := time.Now()
	volume := l.volumes.Resolve(path)
	backoff := l.stale.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= l.stale.MaxRetries; attempt++ {
		info, err := lstatFile(path)
		if err == nil {
			if attempt > 0 {
				l.log.Info("Stat succeeded on retry %d for %s", attempt, path)
			}
			l.observer.ObserveOperation(volume, "stat", time.Since(start).Seconds(), nil)
			return info, nil
		}
		lastErr = err

		if !isNFSStaleError(err) {
			break
		}
		l.observer.ObserveStaleError(volume, "stat")

		if attempt < l.stale.MaxRetries {
			l.log.Debug("Stale file handle for %s, retrying in %v (attempt %d/%d)",
				path, backoff, attempt+1, l.stale.MaxRetries)
			time.Sleep(backoff)
			backoff *= 2
			if backoff > l.stale.MaxBackoff {
				backoff = l.stale.MaxBackoff
			}
		}
	}

	l.observer.ObserveOperation(volume, "stat", time.Since(start).Seconds(), lastErr)
	return nil, lastErr
}
