package mesh

import (
	"iter"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// Spiral yields two triangles per rung of an unrolled spiral strip.
//
// SampleSize doubles as the part count. Each pass walks 2*parts vertices two
// at a time; with cur = p*2*parts + v it emits (cur, cur+1, cur+3) and
// (cur, cur+3, cur+2), joining four consecutive vertices.
func Spiral(d Dimensions) (iter.Seq[Triangle], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	parts := d.SampleSize
	if parts == 0 {
		return nil, meshErrors.InvalidDimension("samples", parts, "spiral part count must be positive")
	}
	stride := 2 * parts
	passes := (d.History * d.SampleSize) / stride
	return func(yield func(Triangle) bool) {
		for p := 0; p < passes; p++ {
			for v := 0; v < stride; v += 2 {
				cur := p*stride + v
				if !yield(Triangle{cur, cur + 1, cur + 3}) ||
					!yield(Triangle{cur, cur + 3, cur + 2}) {
					return
				}
			}
		}
	}, nil
}

func spiralCount(d Dimensions) int {
	if d.SampleSize <= 0 || d.History < 0 {
		return 0
	}
	passes := (d.History * d.SampleSize) / (2 * d.SampleSize)
	return passes * d.SampleSize * 2
}
