package mesh

import "iter"

// Points yields row*SampleSize + col in row-major order.
// There is no triangulation; zero dimensions yield nothing.
func Points(d Dimensions) (iter.Seq[int], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(int) bool) {
		for row := 0; row < d.History; row++ {
			for col := 0; col < d.SampleSize; col++ {
				if !yield(row*d.SampleSize + col) {
					return
				}
			}
		}
	}, nil
}

func pointsCount(d Dimensions) int {
	if d.SampleSize <= 0 || d.History <= 0 {
		return 0
	}
	return d.History * d.SampleSize
}
