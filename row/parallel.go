package row

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/borchero/rowcodec/array"
)

// EncodeParallel behaves exactly like Encode but runs the encode pass with up
// to parallelism goroutines, one per column. Every column writes into
// disjoint byte positions dictated by the precomputed cursors, so the result
// is byte-identical to the serial path.
//
// The length pass stays single-threaded: it is a cheap column-major
// accumulation and the offsets prefix-sum is a natural barrier anyway.
func (e *Encoder) EncodeParallel(cols []array.Array, parallelism int) (*RowBuffer, error) {
	if parallelism <= 1 {
		return e.Encode(cols)
	}

	numRows, err := e.checkColumns(cols)
	if err != nil {
		return nil, err
	}

	// Per-column length vectors; column c's write cursors start at the row
	// start plus the sizes of all preceding columns.
	colLens := make([][]int, len(cols))
	offsets := make([]int, numRows+1)
	for c, col := range cols {
		colLens[c] = make([]int, numRows)
		if err := addColumnLengths(col, e.specs[c], e.specs[c].Opts, colLens[c]); err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
		for i := 0; i < numRows; i++ {
			offsets[i+1] += colLens[c][i]
		}
	}
	for i := 0; i < numRows; i++ {
		offsets[i+1] += offsets[i]
	}

	buf := make([]byte, offsets[numRows])

	var group errgroup.Group
	group.SetLimit(parallelism)

	cursors := make([]int, numRows)
	copy(cursors, offsets[:numRows])
	for c, col := range cols {
		c, col := c, col
		colCursors := make([]int, numRows)
		copy(colCursors, cursors)
		for i := 0; i < numRows; i++ {
			cursors[i] += colLens[c][i]
		}

		group.Go(func() error {
			if err := encodeColumn(buf, col, e.specs[c], e.specs[c].Opts, colCursors); err != nil {
				return fmt.Errorf("column %d: %w", c, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &RowBuffer{data: buf, offsets: offsets}, nil
}
