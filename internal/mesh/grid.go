package mesh

import "iter"

// Grid yields two triangles per quad cell of a row-major sample grid.
//
// For row r and column v (excluding the last column), with
// base = r*SampleSize + v, it emits
//
//	(base, base+SampleSize, base+SampleSize+1)
//	(base, base+1, base+1+SampleSize)
//
// The quads join row r to row r+1, so the vertex buffer must hold
// History+1 rows. SampleSize < 2 has no cells and yields no triangles.
func Grid(d Dimensions) (iter.Seq[Triangle], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s := d.SampleSize
	return func(yield func(Triangle) bool) {
		for r := 0; r < d.History; r++ {
			for v := 0; v < s-1; v++ {
				base := r*s + v
				if !yield(Triangle{base, base + s, base + s + 1}) ||
					!yield(Triangle{base, base + 1, base + 1 + s}) {
					return
				}
			}
		}
	}, nil
}

func gridCount(d Dimensions) int {
	if d.SampleSize < 2 || d.History <= 0 {
		return 0
	}
	return d.History * (d.SampleSize - 1) * 2
}
