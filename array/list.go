package array

// List stores a nested list column: all element values concatenated into a
// single child array, with per-row offsets delimiting each list. Null rows
// hold an empty list placeholder.
type List struct {
	elems    Array
	offsets  []int
	validity *Bitmap
}

var _ Array = (*List)(nil)

// NewList builds a List from a flattened element array, row offsets
// (len = rows+1, offsets[i]..offsets[i+1] delimits row i) and an optional
// validity bitmap.
func NewList(elems Array, offsets []int, validity *Bitmap) *List {
	return &List{elems: elems, offsets: offsets, validity: validity}
}

// Len returns the number of rows.
func (a *List) Len() int {
	return len(a.offsets) - 1
}

// IsNull reports whether row i is null.
func (a *List) IsNull(i int) bool {
	return a.validity != nil && !a.validity.Get(i)
}

// NullCount returns the number of null rows.
func (a *List) NullCount() int {
	if a.validity == nil {
		return 0
	}

	return a.validity.Len() - a.validity.SetCount()
}

// Bounds returns the element range [start, end) of row i within Elems.
func (a *List) Bounds(i int) (int, int) {
	return a.offsets[i], a.offsets[i+1]
}

// Elems returns the flattened element array shared by all rows.
func (a *List) Elems() Array {
	return a.elems
}

// Offsets returns the row offset vector. The slice must not be modified.
func (a *List) Offsets() []int {
	return a.offsets
}

// Validity returns the validity bitmap, or nil when every row is valid.
func (a *List) Validity() *Bitmap {
	return a.validity
}
