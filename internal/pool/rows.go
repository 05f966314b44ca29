package pool

import "sync"

// rowSlicePool recycles the per-row cursor slices used by a decode pass.
// Disassembling a buffer needs one []byte header per row; for wide buffers
// decoded in a loop this is the dominant transient allocation.
var rowSlicePool = sync.Pool{
	New: func() any { return &[][]byte{} },
}

// GetRowSlices retrieves a [][]byte of the given length from the pool.
//
// The returned cleanup function must be called (typically with defer) to
// return the slice to the pool once the decode pass is complete.
func GetRowSlices(size int) ([][]byte, func()) {
	ptr, _ := rowSlicePool.Get().(*[][]byte)
	rows := *ptr

	if cap(rows) < size {
		rows = make([][]byte, size)
	} else {
		rows = rows[:size]
	}
	*ptr = rows

	cleanup := func() {
		clear(*ptr)
		rowSlicePool.Put(ptr)
	}

	return rows, cleanup
}
