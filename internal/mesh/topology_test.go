package mesh

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

func TestNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"fan", "grid", "points", "spiral"}, Names())
}

func TestLookup_CaseInsensitive(t *testing.T) {
	topo, err := Lookup("GRID")

	require.NoError(t, err)
	assert.Equal(t, TopologyGrid, topo.Name)
	assert.Equal(t, KindTriangles, topo.Kind)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("torus")

	require.Error(t, err)
	assert.Equal(t, meshErrors.ErrCodeInvalidInput, meshErrors.GetCode(err))
	me, _ := meshErrors.As(err)
	assert.Contains(t, me.Suggestion, "spiral")
}

// records drains seq into a flat list of indices.
func records(seq *Sequence) []int {
	var out []int
	if seq.Kind == KindPoints {
		return slices.Collect(seq.Points)
	}
	for tri := range seq.Triangles {
		out = append(out, tri[:]...)
	}
	return out
}

func TestTopology_LenMatchesIteration(t *testing.T) {
	for _, topo := range All() {
		for s := 1; s <= 5; s++ {
			for h := 1; h <= 5; h++ {
				d := Dimensions{SampleSize: s, History: h}
				seq, err := topo.Generate(d)
				require.NoError(t, err, "%s %v", topo.Name, d)

				n := 0
				if seq.Kind == KindPoints {
					for range seq.Points {
						n++
					}
				} else {
					for range seq.Triangles {
						n++
					}
				}
				assert.Equal(t, n, seq.Len(), "%s %v", topo.Name, d)
				assert.Equal(t, topo.Count(d), seq.Len(), "%s %v", topo.Name, d)
				assert.Equal(t, topo.Kind, seq.Kind)
				assert.Equal(t, d, seq.Dimensions)
			}
		}
	}
}

func TestTopology_GeneratePoints(t *testing.T) {
	topo, err := Lookup(TopologyPoints)
	require.NoError(t, err)

	seq, err := topo.Generate(Dimensions{SampleSize: 2, History: 2})

	require.NoError(t, err)
	assert.Equal(t, KindPoints, seq.Kind)
	assert.Equal(t, []int{0, 1, 2, 3}, records(seq))
	assert.Nil(t, seq.Triangles)
}

func TestTopology_GeneratePropagatesErrors(t *testing.T) {
	tests := []struct {
		topology string
		d        Dimensions
	}{
		{TopologyFan, Dimensions{SampleSize: 4, History: 0}},
		{TopologySpiral, Dimensions{SampleSize: 0, History: 4}},
		{TopologyGrid, Dimensions{SampleSize: 4, History: -1}},
		{TopologyPoints, Dimensions{SampleSize: -4, History: 1}},
		{TopologyPoints, Dimensions{SampleSize: 1 << 62, History: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.topology+" "+tt.d.String(), func(t *testing.T) {
			topo, err := Lookup(tt.topology)
			require.NoError(t, err)

			seq, err := topo.Generate(tt.d)

			assert.Nil(t, seq)
			requireInvalidDimension(t, err)
			assert.Equal(t, 0, topo.Count(tt.d))
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	d := Dimensions{SampleSize: 6, History: 4}

	for _, topo := range All() {
		seq, err := topo.Generate(d)
		require.NoError(t, err)

		assert.Equal(t, records(seq), records(seq), topo.Name)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "triangles", KindTriangles.String())
	assert.Equal(t, "points", KindPoints.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
