package indexfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
	"github.com/Aman-CERP/meshidx/internal/mesh"
)

func gridSequence(t *testing.T) *mesh.Sequence {
	t.Helper()
	return mustSequence(t, mesh.TopologyGrid, mesh.Dimensions{SampleSize: 3, History: 1})
}

// testOptions returns the default options with locks kept in a temp dir.
func testOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.LockDir = t.TempDir()
	return opts
}

func requireIOFailure(t *testing.T, err error, path string) *meshErrors.MeshError {
	t.Helper()
	require.Error(t, err)
	me, ok := meshErrors.As(err)
	require.True(t, ok)
	require.Equal(t, meshErrors.ErrCodeIOFailure, me.Code)
	assert.Equal(t, path, me.Details["path"])
	assert.NotNil(t, me.Cause)
	return me
}

func TestWriter_WriteAtomic(t *testing.T) {
	// Given: an atomic writer and a fresh directory
	path := filepath.Join(t.TempDir(), "indices.txt")
	w := NewWriter(testOptions(t), nil)

	// When: writing the 3x1 grid
	res, err := w.Write(context.Background(), path, gridSequence(t))

	// Then: the file holds exactly the encoded triangles
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 3 4\n0 1 4\n1 4 5\n1 2 5\n", string(data))
	assert.Equal(t, 4, res.Records)
	assert.Equal(t, int64(len(data)), res.Bytes)
	assert.Equal(t, path, res.Path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriter_OverwritesExistingFile(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		t.Run(map[bool]string{true: "atomic", false: "direct"}[atomic], func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "indices.txt")
			require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("stale\n"), 100), 0o644))

			w := NewWriter(Options{Atomic: atomic, Lock: false}, nil)
			_, err := w.Write(context.Background(), path, gridSequence(t))
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "0 3 4\n0 1 4\n1 4 5\n1 2 5\n", string(data))
		})
	}
}

func TestWriter_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiral.txt")
	seq := mustSequence(t, mesh.TopologySpiral, mesh.Dimensions{SampleSize: 16, History: 8})
	w := NewWriter(testOptions(t), nil)

	_, err := w.Write(context.Background(), path, seq)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), path, seq)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriter_LeavesOnlyTheOutputFile(t *testing.T) {
	// Given: locked atomic writes, the default
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	w := NewWriter(testOptions(t), nil)

	// When: writing
	_, err := w.Write(context.Background(), path, gridSequence(t))
	require.NoError(t, err)

	// Then: no temp or lock file is left next to the output
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.txt", entries[0].Name())
}

func TestWriter_MissingDirectoryIsIOFailure(t *testing.T) {
	tests := []struct {
		name string
		opts func(t *testing.T) Options
	}{
		{"atomic", testOptions},
		{"direct", func(*testing.T) Options { return Options{Atomic: false} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing", "indices.txt")
			w := NewWriter(tt.opts(t), nil)

			_, err := w.Write(context.Background(), path, gridSequence(t))

			requireIOFailure(t, err, path)
		})
	}
}

func TestWriter_ReadOnlyDirectoryIsIOFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	// Given: an output directory that exists but cannot be written
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	path := filepath.Join(dir, "indices.txt")

	for _, atomic := range []bool{true, false} {
		opts := testOptions(t)
		opts.Atomic = atomic

		// When: writing with the default lock enabled
		_, err := NewWriter(opts, nil).Write(context.Background(), path, gridSequence(t))

		// Then: the failure is reported as IOFailure, not a lock error
		requireIOFailure(t, err, path)
	}
}

func TestWriter_LockFailureIsIOFailure(t *testing.T) {
	// Given: a lock directory that cannot be created (its parent is a file)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	opts := DefaultOptions()
	opts.LockDir = filepath.Join(blocker, "locks")
	path := filepath.Join(t.TempDir(), "indices.txt")

	// When: writing
	_, err := NewWriter(opts, nil).Write(context.Background(), path, gridSequence(t))

	// Then: IOFailure naming the output, with the lock file in the details
	me := requireIOFailure(t, err, path)
	assert.Contains(t, me.Details["lock"], opts.LockDir)
	assert.NoFileExists(t, path)
}

func TestWriter_ReleasesLock(t *testing.T) {
	opts := testOptions(t)
	path := filepath.Join(t.TempDir(), "indices.txt")
	w := NewWriter(opts, nil)

	_, err := w.Write(context.Background(), path, gridSequence(t))
	require.NoError(t, err)

	lock := NewPathLock(opts.LockDir, path)
	acquired, err := lock.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired, "lock should be free after Write returns")
	require.NoError(t, lock.Unlock())
}

func TestWriter_CanceledAtomicWriteKeepsOldFile(t *testing.T) {
	// Given: an existing file and a canceled context
	dir := t.TempDir()
	path := filepath.Join(dir, "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
	seq := mustSequence(t, mesh.TopologyPoints, mesh.Dimensions{SampleSize: 1 << 40, History: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When: writing atomically
	_, err := NewWriter(testOptions(t), nil).Write(ctx, path, seq)

	// Then: cancellation is returned as-is and nothing is replaced or left behind
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, meshErrors.GetCode(err))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteTo_Stream(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteTo(context.Background(), &buf, gridSequence(t))

	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}

func TestWriteTo_FailureIsIOFailure(t *testing.T) {
	_, err := WriteTo(context.Background(), failingWriter{}, gridSequence(t))

	assert.Equal(t, meshErrors.ErrCodeIOFailure, meshErrors.GetCode(err))
}
