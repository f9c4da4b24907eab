package mesh

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// Topology names.
const (
	TopologyGrid   = "grid"
	TopologyFan    = "fan"
	TopologyPoints = "points"
	TopologySpiral = "spiral"
)

// Topology is a named index generator.
type Topology struct {
	Name        string
	Kind        Kind
	Description string
	// Formula is a one-line summary of the emitted records, for help output.
	Formula string

	triangles func(Dimensions) (iter.Seq[Triangle], error)
	points    func(Dimensions) (iter.Seq[int], error)
	count     func(Dimensions) int
}

// Generate validates d and returns the topology's lazy record sequence.
func (t Topology) Generate(d Dimensions) (*Sequence, error) {
	seq := &Sequence{Kind: t.Kind, Dimensions: d}
	var err error
	switch t.Kind {
	case KindPoints:
		seq.Points, err = t.points(d)
	default:
		seq.Triangles, err = t.triangles(d)
	}
	if err != nil {
		return nil, err
	}
	seq.count = t.count(d)
	return seq, nil
}

// Count returns the number of records Generate emits for d.
// It returns 0 for dimensions Generate would reject.
func (t Topology) Count(d Dimensions) int {
	if d.Validate() != nil {
		return 0
	}
	return t.count(d)
}

var registry = map[string]Topology{
	TopologyGrid: {
		Name:        TopologyGrid,
		Kind:        KindTriangles,
		Description: "3D spectrogram grid, two triangles per quad cell",
		Formula:     "base=r*s+v: (base, base+s, base+s+1) (base, base+1, base+1+s)",
		triangles:   Grid,
		count:       gridCount,
	},
	TopologyFan: {
		Name:        TopologyFan,
		Kind:        KindTriangles,
		Description: "circle, center fan plus radial quad strips (history = slice count)",
		Formula:     "(0, i, i+1); cur=p*slices+i: (cur, cur+slices, cur+slices+1) (cur, cur+1, cur+1+slices)",
		triangles:   Fan,
		count:       fanCount,
	},
	TopologyPoints: {
		Name:        TopologyPoints,
		Kind:        KindPoints,
		Description: "point cloud, one index per vertex",
		Formula:     "row*s+col",
		points:      Points,
		count:       pointsCount,
	},
	TopologySpiral: {
		Name:        TopologySpiral,
		Kind:        KindTriangles,
		Description: "spiral ribbon, two triangles per rung (samples = part count)",
		Formula:     "cur=p*2*parts+v: (cur, cur+1, cur+3) (cur, cur+3, cur+2)",
		triangles:   Spiral,
		count:       spiralCount,
	},
}

// Lookup returns the topology registered under name.
func Lookup(name string) (Topology, error) {
	t, ok := registry[strings.ToLower(name)]
	if !ok {
		return Topology{}, meshErrors.ValidationError(
			fmt.Sprintf("unknown topology %q", name), nil).
			WithSuggestion("use one of: " + strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names returns registered topology names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered topology sorted by name.
func All() []Topology {
	names := Names()
	out := make([]Topology, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}
