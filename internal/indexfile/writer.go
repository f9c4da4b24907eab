package indexfile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
	"github.com/Aman-CERP/meshidx/internal/mesh"
)

// Options controls how an index file is written.
type Options struct {
	// Atomic writes to a temp file and renames it over the destination.
	Atomic bool
	// Lock serializes writers of the same path on a lock file in LockDir.
	Lock bool
	// LockDir holds lock files. Empty means DefaultLockDir().
	LockDir string
	// Perm is the destination file mode.
	Perm os.FileMode
}

// DefaultOptions returns atomic, locked writes with 0644 permissions.
func DefaultOptions() Options {
	return Options{
		Atomic:  true,
		Lock:    true,
		LockDir: DefaultLockDir(),
		Perm:    0o644,
	}
}

// Result describes a completed write.
type Result struct {
	Path     string
	Records  int
	Bytes    int64
	Duration time.Duration
}

// Writer writes sequences to index files.
type Writer struct {
	opts   Options
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger uses slog.Default().
func NewWriter(opts Options, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	if opts.LockDir == "" {
		opts.LockDir = DefaultLockDir()
	}
	return &Writer{opts: opts, logger: logger}
}

// Write replaces the file at path with the encoded sequence.
// Filesystem failures, including failing to take the lock, are reported
// as IOFailure naming path. Cancellation returns ctx's error unchanged.
func (w *Writer) Write(ctx context.Context, path string, seq *mesh.Sequence) (Result, error) {
	start := time.Now()
	res := Result{Path: path, Records: seq.Len()}

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return res, meshErrors.IOFailure(path, err)
	}

	if w.opts.Lock {
		lock := NewPathLock(w.opts.LockDir, path)
		if err := w.acquire(lock, path); err != nil {
			return res, meshErrors.IOFailure(path, err).WithDetail("lock", lock.Path())
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				w.logger.Warn("failed to release output lock",
					slog.String("lock", lock.Path()),
					slog.String("error", err.Error()))
			}
		}()
	}

	var (
		n   int64
		err error
	)
	if w.opts.Atomic {
		n, err = w.writeAtomic(ctx, path, seq)
	} else {
		n, err = w.writeDirect(ctx, path, seq)
	}
	res.Bytes = n
	res.Duration = time.Since(start)
	if err != nil {
		if isCanceled(err) {
			return res, err
		}
		return res, meshErrors.IOFailure(path, err)
	}

	w.logger.Debug("index file written",
		slog.String("path", path),
		slog.Int("records", res.Records),
		slog.Int64("bytes", res.Bytes),
		slog.Bool("atomic", w.opts.Atomic),
		slog.Duration("duration", res.Duration))
	return res, nil
}

// acquire takes lock, logging when another writer already holds it.
func (w *Writer) acquire(lock *PathLock, path string) error {
	ok, err := lock.TryLock()
	if err != nil || ok {
		return err
	}
	w.logger.Info("waiting for another writer",
		slog.String("path", path),
		slog.String("lock", lock.Path()))
	return lock.Lock()
}

// writeAtomic streams into a pending file in the destination directory and
// renames it into place. The pending file is removed on every error path.
func (w *Writer) writeAtomic(ctx context.Context, path string, seq *mesh.Sequence) (int64, error) {
	pf, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = pf.Cleanup() }()

	if err := pf.Chmod(w.opts.Perm); err != nil {
		return 0, err
	}

	n, err := Encode(ctx, pf, seq)
	if err != nil {
		return n, err
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return n, err
	}
	return n, nil
}

// writeDirect truncates path and writes in place.
func (w *Writer) writeDirect(ctx context.Context, path string, seq *mesh.Sequence) (n int64, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, w.opts.Perm)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Encode(ctx, f, seq)
}

// WriteTo streams seq to an arbitrary writer, e.g. stdout.
func WriteTo(ctx context.Context, out io.Writer, seq *mesh.Sequence) (int64, error) {
	n, err := Encode(ctx, out, seq)
	if err != nil && !isCanceled(err) {
		return n, meshErrors.IOFailure("stdout", err)
	}
	return n, err
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
