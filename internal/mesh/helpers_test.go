package mesh

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// collect runs gen for d and drains the sequence, failing the test on error.
func collect[T any](t *testing.T, gen func(Dimensions) (iter.Seq[T], error), d Dimensions) []T {
	t.Helper()
	seq, err := gen(d)
	require.NoError(t, err)
	return slices.Collect(seq)
}

// requireInvalidDimension asserts err is InvalidDimension and returns the
// offending parameter name.
func requireInvalidDimension(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	me, ok := meshErrors.As(err)
	require.True(t, ok)
	require.Equal(t, meshErrors.ErrCodeInvalidDimension, me.Code)
	return me.Details["parameter"]
}
