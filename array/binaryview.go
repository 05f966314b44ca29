package array

// BinaryView stores variable-length byte sequences in a single contiguous
// buffer with per-row offsets, plus an optional validity bitmap. Null rows
// hold an empty placeholder value.
type BinaryView struct {
	data     []byte
	offsets  []int
	validity *Bitmap
}

var _ Array = (*BinaryView)(nil)

// Len returns the number of rows.
func (a *BinaryView) Len() int {
	return len(a.offsets) - 1
}

// IsNull reports whether row i is null.
func (a *BinaryView) IsNull(i int) bool {
	return a.validity != nil && !a.validity.Get(i)
}

// NullCount returns the number of null rows.
func (a *BinaryView) NullCount() int {
	if a.validity == nil {
		return 0
	}

	return a.validity.Len() - a.validity.SetCount()
}

// Value returns the bytes of row i. The returned slice aliases the array's
// buffer and must not be modified.
func (a *BinaryView) Value(i int) []byte {
	return a.data[a.offsets[i]:a.offsets[i+1]]
}

// String returns the value of row i as a string.
func (a *BinaryView) String(i int) string {
	return string(a.Value(i))
}

// Validity returns the validity bitmap, or nil when every row is valid.
func (a *BinaryView) Validity() *Bitmap {
	return a.validity
}

// BinaryViewBuilder accumulates variable-length values into a BinaryView.
// Validity is tracked separately by the caller and attached via Finish; this
// lets decoders defer bitmap allocation until the first null is seen.
type BinaryViewBuilder struct {
	data    []byte
	offsets []int
}

// NewBinaryViewBuilder creates a builder with row capacity for the given
// number of values and the given initial data capacity in bytes.
func NewBinaryViewBuilder(rows int, dataSize int) *BinaryViewBuilder {
	b := &BinaryViewBuilder{
		data:    make([]byte, 0, dataSize),
		offsets: make([]int, 1, rows+1),
	}

	return b
}

// AppendValue appends one value, copying its bytes into the builder's buffer.
func (b *BinaryViewBuilder) AppendValue(v []byte) {
	b.data = append(b.data, v...)
	b.offsets = append(b.offsets, len(b.data))
}

// AppendEmpty appends an empty placeholder value, used for null rows.
func (b *BinaryViewBuilder) AppendEmpty() {
	b.offsets = append(b.offsets, len(b.data))
}

// Len returns the number of values appended so far.
func (b *BinaryViewBuilder) Len() int {
	return len(b.offsets) - 1
}

// Finish returns the built array with the given validity bitmap (nil for an
// all-valid column). The builder must not be used again.
func (b *BinaryViewBuilder) Finish(validity *Bitmap) *BinaryView {
	return &BinaryView{data: b.data, offsets: b.offsets, validity: validity}
}

// NewBinaryView builds a BinaryView directly from values and an optional
// validity slice. A nil validity marks every row valid; a false entry marks
// the row null and its value is ignored.
func NewBinaryView(values [][]byte, validity []bool) *BinaryView {
	size := 0
	for _, v := range values {
		size += len(v)
	}

	b := NewBinaryViewBuilder(len(values), size)
	var bits *BitmapBuilder
	if validity != nil {
		bits = NewBitmapBuilder(len(values))
	}
	for i, v := range values {
		if validity != nil && !validity[i] {
			b.AppendEmpty()
			bits.Append(false)
			continue
		}
		b.AppendValue(v)
		if bits != nil {
			bits.Append(true)
		}
	}

	if bits == nil {
		return b.Finish(nil)
	}

	return b.Finish(bits.Finish())
}

// NewStringView builds a BinaryView from string values, with the same
// validity semantics as NewBinaryView.
func NewStringView(values []string, validity []bool) *BinaryView {
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = []byte(v)
	}

	return NewBinaryView(raw, validity)
}
