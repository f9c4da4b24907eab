package mesh

import (
	"fmt"
	"iter"
	"math"
	"math/bits"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// Dimensions are the two integers every generator consumes.
type Dimensions struct {
	// SampleSize is the row width (columns per row). The spiral topology
	// also uses it as its part count.
	SampleSize int
	// History is the row count. The fan topology also uses it as its slice count.
	History int
}

// maxExtent bounds (SampleSize+1)*(History+1). Every index and record count
// any topology produces is at most twice that plus a small constant, so
// dimensions under the bound never overflow int.
const maxExtent = (math.MaxInt - 3) / 2

// Validate rejects negative dimensions and dimensions whose indices would
// overflow int. Zero is legal and usually yields empty output; generators
// that divide by a dimension check for zero themselves.
func (d Dimensions) Validate() error {
	if d.SampleSize < 0 {
		return meshErrors.InvalidDimension("samples", d.SampleSize, "must be non-negative")
	}
	if d.History < 0 {
		return meshErrors.InvalidDimension("history", d.History, "must be non-negative")
	}
	if !d.fits() {
		if d.History > d.SampleSize {
			return meshErrors.InvalidDimension("history", d.History,
				fmt.Sprintf("vertex indices overflow with samples=%d", d.SampleSize))
		}
		return meshErrors.InvalidDimension("samples", d.SampleSize,
			fmt.Sprintf("vertex indices overflow with history=%d", d.History))
	}
	return nil
}

func (d Dimensions) fits() bool {
	if d.SampleSize == math.MaxInt || d.History == math.MaxInt {
		return false
	}
	hi, lo := bits.Mul(uint(d.SampleSize+1), uint(d.History+1))
	return hi == 0 && lo <= maxExtent
}

// String implements fmt.Stringer.
func (d Dimensions) String() string {
	return fmt.Sprintf("samples=%d history=%d", d.SampleSize, d.History)
}

// Triangle is an ordered index triple. Order encodes winding.
type Triangle [3]int

// Sequence is a lazily generated run of records. Exactly one of Triangles
// or Points is set, depending on Kind. Records are produced on iteration,
// so a Sequence can be walked more than once and never held in memory.
type Sequence struct {
	Kind       Kind
	Dimensions Dimensions
	Triangles  iter.Seq[Triangle]
	Points     iter.Seq[int]

	count int
}

// Len returns the number of records iteration yields.
func (s *Sequence) Len() int {
	return s.count
}

// Kind distinguishes triangle lists from point lists.
type Kind int

const (
	// KindTriangles marks a sequence of index triples.
	KindTriangles Kind = iota
	// KindPoints marks a sequence of single indices.
	KindPoints
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindTriangles:
		return "triangles"
	case KindPoints:
		return "points"
	default:
		return "unknown"
	}
}
