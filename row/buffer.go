package row

import (
	"bytes"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// RowBuffer holds the encoded rows: a flat byte buffer plus an offsets vector
// describing row boundaries. offsets[i] is the byte start of row i and
// offsets[NumRows()] is the total length, so row i is data[offsets[i]:offsets[i+1]].
//
// A RowBuffer is immutable after construction and safe for concurrent reads.
type RowBuffer struct {
	data    []byte
	offsets []int
}

// NewRowBuffer wraps an existing flat buffer and offsets vector.
func NewRowBuffer(data []byte, offsets []int) *RowBuffer {
	return &RowBuffer{data: data, offsets: offsets}
}

// NumRows returns the number of rows in the buffer.
func (b *RowBuffer) NumRows() int {
	return len(b.offsets) - 1
}

// Size returns the total number of encoded bytes.
func (b *RowBuffer) Size() int {
	return b.offsets[len(b.offsets)-1]
}

// Bytes returns the flat byte buffer. The slice must not be modified.
func (b *RowBuffer) Bytes() []byte {
	return b.data
}

// Offsets returns the row boundary vector. The slice must not be modified.
func (b *RowBuffer) Offsets() []int {
	return b.offsets
}

// Row returns the encoded bytes of row i. The slice aliases the buffer and
// must not be modified.
func (b *RowBuffer) Row(i int) []byte {
	return b.data[b.offsets[i]:b.offsets[i+1]]
}

// Rows returns one sub-slice per row, suitable for handing to the decoders,
// which advance each slice in place as columns are consumed.
func (b *RowBuffer) Rows() [][]byte {
	rows := make([][]byte, b.NumRows())
	for i := range rows {
		rows[i] = b.Row(i)
	}

	return rows
}

// Fingerprint returns the xxHash64 of row i's encoded bytes. Because the
// encoding of a value under fixed options is deterministic, the fingerprint
// is a stable 64-bit identity for the row's tuple, usable for hash
// partitioning and grouping.
func (b *RowBuffer) Fingerprint(i int) uint64 {
	return xxhash.Sum64(b.Row(i))
}

// Compare compares rows i and j byte-lexicographically. When no column uses
// the unordered variant, the result equals the tuple comparison of the
// original values under the per-column options.
func (b *RowBuffer) Compare(i, j int) int {
	return bytes.Compare(b.Row(i), b.Row(j))
}

// Less reports whether row i sorts before row j.
func (b *RowBuffer) Less(i, j int) bool {
	return b.Compare(i, j) < 0
}

// SortedIndices returns a permutation of row indices that sorts the rows.
// The sort is stable, so equal rows keep their input order.
func (b *RowBuffer) SortedIndices() []int {
	indices := make([]int, b.NumRows())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(x, y int) bool {
		return b.Less(indices[x], indices[y])
	})

	return indices
}
