package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"autodelete-after-play/internal/logging"
)

// ErrNotRegularFile is returned for directories and other non-file paths.
var ErrNotRegularFile = errors.New("not a regular file")

// maxTrashNames bounds the search for a free name in the trash.
const maxTrashNames = 10000

// os calls replaced in tests.
var (
	renameFile = os.Rename
	removeFile = os.Remove
	lstatFile  = os.Lstat
)

// Local removes files on the local filesystem. Trashed files follow the
// FreeDesktop.org trash layout: the file goes to <trash>/files and a
// matching <trash>/info/<name>.trashinfo records where it came from.
type Local struct {
	trashDir string
	volumes  *VolumeResolver
	observer Observer
	log      logging.Sink
	stale    StaleRetry
	now      func() time.Time
}

// LocalOption configures a Local remover.
type LocalOption func(*Local)

// WithVolumes sets the resolver used for metric labels.
func WithVolumes(vr *VolumeResolver) LocalOption {
	return func(l *Local) { l.volumes = vr }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) LocalOption {
	return func(l *Local) { l.observer = o }
}

// WithLogger sets the logging sink.
func WithLogger(s logging.Sink) LocalOption {
	return func(l *Local) { l.log = s }
}

// WithStaleRetry overrides the stale handle retry bounds.
func WithStaleRetry(r StaleRetry) LocalOption {
	return func(l *Local) { l.stale = r }
}

// NewLocal creates a remover. An empty trashDir disables the trash.
func NewLocal(trashDir string, opts ...LocalOption) *Local {
	l := &Local{
		trashDir: trashDir,
		observer: nopObserver{},
		log:      logging.For("filesystem"),
		stale:    DefaultStaleRetry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultTrashDir returns $XDG_DATA_HOME/Trash, falling back to
// ~/.local/share/Trash. It returns "" when neither can be determined.
func DefaultTrashDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".local", "share", "Trash")
}

// TrashDir returns the configured trash directory.
func (l *Local) TrashDir() string {
	return l.trashDir
}

func (l *Local) filesDir() string { return filepath.Join(l.trashDir, "files") }
func (l *Local) infoDir() string  { return filepath.Join(l.trashDir, "info") }

// SupportsTrash reports whether the trash directories exist or can be
// created.
func (l *Local) SupportsTrash() bool {
	if l.trashDir == "" {
		return false
	}
	if err := l.ensureTrash(); err != nil {
		l.log.Debug("Trash at %s is unavailable: %v", l.trashDir, err)
		return false
	}
	return true
}

func (l *Local) ensureTrash() error {
	for _, dir := range []string{l.filesDir(), l.infoDir()} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// MoveToTrash moves path into the trash.
func (l *Local) MoveToTrash(path string) (err error) {
	start := time.Now()
	volume := l.volumes.Resolve(path)
	// lstat counts its own stale handles.
	var statFailed bool
	defer func() {
		l.observer.ObserveOperation(volume, "trash", time.Since(start).Seconds(), err)
		if !statFailed && isNFSStaleError(err) {
			l.observer.ObserveStaleError(volume, "trash")
		}
	}()

	if l.trashDir == "" {
		return errors.New("no trash directory configured")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := l.lstat(abs)
	if err != nil {
		statFailed = true
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", abs, ErrNotRegularFile)
	}

	if err := l.ensureTrash(); err != nil {
		return fmt.Errorf("prepare trash: %w", err)
	}

	name, infoPath, err := l.reserveName(filepath.Base(abs))
	if err != nil {
		return err
	}

	if err := l.writeTrashInfo(infoPath, abs); err != nil {
		_ = os.Remove(infoPath)
		return err
	}

	dest := filepath.Join(l.filesDir(), name)
	if err := moveFile(abs, dest, info.Mode().Perm()); err != nil {
		_ = os.Remove(infoPath)
		return fmt.Errorf("move %s to trash: %w", abs, err)
	}

	l.log.Debug("Trashed %s as %s", abs, dest)
	return nil
}

// DeletePermanently removes path.
func (l *Local) DeletePermanently(path string) (err error) {
	start := time.Now()
	volume := l.volumes.Resolve(path)
	// lstat counts its own stale handles.
	var statFailed bool
	defer func() {
		l.observer.ObserveOperation(volume, "remove", time.Since(start).Seconds(), err)
		if !statFailed && isNFSStaleError(err) {
			l.observer.ObserveStaleError(volume, "remove")
		}
	}()

	info, err := l.lstat(path)
	if err != nil {
		statFailed = true
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	return removeFile(path)
}

// reserveName claims a free name in the trash by creating its .trashinfo
// file exclusively. Clashing names get a ".N" suffix before the extension.
func (l *Local) reserveName(base string) (name, infoPath string, err error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; i <= maxTrashNames; i++ {
		name = base
		if i > 1 {
			name = fmt.Sprintf("%s.%d%s", stem, i, ext)
		}

		if _, statErr := os.Lstat(filepath.Join(l.filesDir(), name)); statErr == nil {
			continue
		}

		infoPath = filepath.Join(l.infoDir(), name+".trashinfo")
		f, createErr := os.OpenFile(infoPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(createErr, fs.ErrExist) {
			continue
		}
		if createErr != nil {
			return "", "", fmt.Errorf("create trash info: %w", createErr)
		}
		if err := f.Close(); err != nil {
			return "", "", fmt.Errorf("create trash info: %w", err)
		}
		return name, infoPath, nil
	}
	return "", "", fmt.Errorf("no free trash name for %s", base)
}

func (l *Local) writeTrashInfo(infoPath, original string) error {
	content := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapeTrashPath(original), l.now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write trash info: %w", err)
	}
	return nil
}

// escapeTrashPath percent-encodes a path the way .trashinfo files expect,
// keeping the separators.
func escapeTrashPath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}

// moveFile renames src to dest, copying across devices when needed. On
// failure dest does not exist and src is untouched.
func moveFile(src, dest string, perm fs.FileMode) error {
	err := renameFile(src, dest)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dest, perm); err != nil {
		_ = os.Remove(dest)
		return err
	}
	if err := removeFile(src); err != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			return errors.Join(err, fmt.Errorf("remove copy %s: %w", dest, rmErr))
		}
		return err
	}
	return nil
}

func copyFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
