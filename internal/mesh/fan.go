package mesh

import (
	"iter"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// Fan yields a center fan followed by radial quad strips.
//
// History doubles as the slice count. The fan emits (0, i, i+1) for
// i in [1, slices]; its last triangle references vertex slices+1, which the
// vertex buffer is expected to provide as a copy of the first ring vertex.
// Then for each of (History*SampleSize)/slices passes, two triangles join
// every ring vertex to the next ring.
func Fan(d Dimensions) (iter.Seq[Triangle], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	slices := d.History
	if slices == 0 {
		return nil, meshErrors.InvalidDimension("history", slices, "fan slice count must be positive")
	}
	passes := (d.History * d.SampleSize) / slices
	return func(yield func(Triangle) bool) {
		for i := 1; i <= slices; i++ {
			if !yield(Triangle{0, i, i + 1}) {
				return
			}
		}
		for p := 0; p < passes; p++ {
			for i := 1; i <= slices; i++ {
				cur := p*slices + i
				if !yield(Triangle{cur, cur + slices, cur + slices + 1}) ||
					!yield(Triangle{cur, cur + 1, cur + 1 + slices}) {
					return
				}
			}
		}
	}, nil
}

func fanCount(d Dimensions) int {
	if d.History <= 0 || d.SampleSize < 0 {
		return 0
	}
	passes := (d.History * d.SampleSize) / d.History
	return d.History + passes*d.History*2
}
