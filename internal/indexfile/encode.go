// Package indexfile writes index sequences to disk as plain text.
//
// A triangle record is three space-separated integers, a point record is a
// single integer. Every record ends with '\n'. There is no header or trailer.
package indexfile

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/Aman-CERP/meshidx/internal/mesh"
)

// cancelCheckInterval is how many records are written between context checks.
const cancelCheckInterval = 1 << 14

// Encode streams seq to w in generation order and returns the byte count.
// Records are produced and written one at a time; ctx is checked
// periodically so long runs can be interrupted.
func Encode(ctx context.Context, w io.Writer, seq *mesh.Sequence) (int64, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	cw := &countingWriter{w: bw}

	// Longest record: three 20-digit ints, two spaces, newline.
	buf := make([]byte, 0, 64)

	var (
		err     error
		records int
	)
	emit := func(rec []byte) bool {
		records++
		if records%cancelCheckInterval == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}
		_, err = cw.Write(rec)
		return err == nil
	}

	switch seq.Kind {
	case mesh.KindPoints:
		for p := range seq.Points {
			buf = strconv.AppendInt(buf[:0], int64(p), 10)
			buf = append(buf, '\n')
			if !emit(buf) {
				break
			}
		}
	default:
		for tri := range seq.Triangles {
			buf = appendTriangle(buf[:0], tri)
			if !emit(buf) {
				break
			}
		}
	}
	if err != nil {
		return cw.n, err
	}

	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func appendTriangle(buf []byte, tri mesh.Triangle) []byte {
	buf = strconv.AppendInt(buf, int64(tri[0]), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(tri[1]), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(tri[2]), 10)
	return append(buf, '\n')
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
