package array

// Primitive stores fixed-width values of a single Go type with an optional
// validity bitmap. Null rows hold the zero value as a placeholder.
type Primitive[T any] struct {
	values   []T
	validity *Bitmap
}

var _ Array = (*Primitive[int64])(nil)

// NewPrimitive builds a Primitive array from values and an optional validity
// slice. A nil validity marks every row valid; a false entry marks the row
// null and its value is replaced with the zero value.
func NewPrimitive[T any](values []T, validity []bool) *Primitive[T] {
	a := &Primitive[T]{values: values}
	if validity == nil {
		return a
	}

	bits := NewBitmapBuilder(len(values))
	for i := range values {
		bits.Append(validity[i])
		if !validity[i] {
			var zero T
			values[i] = zero
		}
	}
	a.validity = bits.Finish()

	return a
}

// NewPrimitiveWithBitmap builds a Primitive array from values and an already
// built validity bitmap (nil for all-valid).
func NewPrimitiveWithBitmap[T any](values []T, validity *Bitmap) *Primitive[T] {
	return &Primitive[T]{values: values, validity: validity}
}

// Len returns the number of rows.
func (a *Primitive[T]) Len() int {
	return len(a.values)
}

// IsNull reports whether row i is null.
func (a *Primitive[T]) IsNull(i int) bool {
	return a.validity != nil && !a.validity.Get(i)
}

// NullCount returns the number of null rows.
func (a *Primitive[T]) NullCount() int {
	if a.validity == nil {
		return 0
	}

	return a.validity.Len() - a.validity.SetCount()
}

// Value returns the value of row i. The result for a null row is the zero
// value placeholder.
func (a *Primitive[T]) Value(i int) T {
	return a.values[i]
}

// Values returns the backing value slice. The slice must not be modified.
func (a *Primitive[T]) Values() []T {
	return a.values
}

// Validity returns the validity bitmap, or nil when every row is valid.
func (a *Primitive[T]) Validity() *Bitmap {
	return a.validity
}
