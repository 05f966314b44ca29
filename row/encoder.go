package row

import (
	"fmt"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/encoding"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
)

// Encoder assembles typed columns into a RowBuffer according to a fixed
// schema. An Encoder is stateless between calls and safe for concurrent use.
type Encoder struct {
	specs []ColumnSpec
}

// NewEncoder creates an encoder for the given schema.
func NewEncoder(specs []ColumnSpec) (*Encoder, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	return &Encoder{specs: specs}, nil
}

// Encode converts one value per row across all columns into a single
// contiguous byte sequence per row. Columns must match the schema's types
// (see the container conventions on the package documentation) and agree on
// row count.
//
// The returned buffer satisfies the ordering contract: lexicographic byte
// comparison of two rows equals tuple comparison of their values under the
// per-column options, provided no column is unordered.
func (e *Encoder) Encode(cols []array.Array) (*RowBuffer, error) {
	numRows, err := e.checkColumns(cols)
	if err != nil {
		return nil, err
	}

	// Length pass: column-major accumulation of per-row encoded sizes.
	offsets := make([]int, numRows+1)
	for c, col := range cols {
		if err := addColumnLengths(col, e.specs[c], e.specs[c].Opts, offsets[1:]); err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
	}
	for i := 0; i < numRows; i++ {
		offsets[i+1] += offsets[i]
	}

	// Encode pass: each column advances a shared copy of the row-start
	// cursors, so writes land in disjoint byte ranges.
	buf := make([]byte, offsets[numRows])
	cursors := make([]int, numRows)
	copy(cursors, offsets[:numRows])

	for c, col := range cols {
		if err := encodeColumn(buf, col, e.specs[c], e.specs[c].Opts, cursors); err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
	}

	return &RowBuffer{data: buf, offsets: offsets}, nil
}

// checkColumns validates column count and row-count agreement and returns the
// row count.
func (e *Encoder) checkColumns(cols []array.Array) (int, error) {
	if len(cols) != len(e.specs) {
		return 0, fmt.Errorf("schema has %d columns, got %d: %w", len(e.specs), len(cols), errs.ErrLengthMismatch)
	}

	numRows := 0
	for c, col := range cols {
		if c == 0 {
			numRows = col.Len()
			continue
		}
		if col.Len() != numRows {
			return 0, fmt.Errorf("column %d has %d rows, column 0 has %d: %w", c, col.Len(), numRows, errs.ErrLengthMismatch)
		}
	}

	return numRows, nil
}

// addColumnLengths adds the encoded size of every row of col to lens.
func addColumnLengths(col array.Array, spec ColumnSpec, opt format.Options, lens []int) error {
	switch spec.Type {
	case format.TypeString, format.TypeBinary:
		a, ok := col.(*array.BinaryView)
		if !ok {
			return typeError(spec, col)
		}
		for i := 0; i < a.Len(); i++ {
			lens[i] += encoding.VariableLength(len(a.Value(i)), a.IsNull(i), opt)
		}

		return nil

	case format.TypeList:
		a, ok := col.(*array.List)
		if !ok {
			return typeError(spec, col)
		}
		elemLens := make([]int, a.Elems().Len())
		if err := addColumnLengths(a.Elems(), *spec.Elem, opt, elemLens); err != nil {
			return err
		}
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				lens[i] += encoding.ListLength(nil, true)
				continue
			}
			start, end := a.Bounds(i)
			lens[i] += encoding.ListLength(elemLens[start:end], false)
		}

		return nil

	default:
		if err := checkFixedColumn(col, spec); err != nil {
			return err
		}
		size := encoding.FixedLength(spec.Type.Width())
		for i := 0; i < col.Len(); i++ {
			lens[i] += size
		}

		return nil
	}
}

// checkFixedColumn verifies that a fixed-width column's container matches its
// logical type.
func checkFixedColumn(col array.Array, spec ColumnSpec) error {
	ok := false
	switch spec.Type {
	case format.TypeBool:
		_, ok = col.(*array.Primitive[bool])
	case format.TypeInt8:
		_, ok = col.(*array.Primitive[int8])
	case format.TypeInt16:
		_, ok = col.(*array.Primitive[int16])
	case format.TypeInt32:
		_, ok = col.(*array.Primitive[int32])
	case format.TypeInt64:
		_, ok = col.(*array.Primitive[int64])
	case format.TypeUint8:
		_, ok = col.(*array.Primitive[uint8])
	case format.TypeUint16:
		_, ok = col.(*array.Primitive[uint16])
	case format.TypeUint32:
		_, ok = col.(*array.Primitive[uint32])
	case format.TypeUint64:
		_, ok = col.(*array.Primitive[uint64])
	case format.TypeFloat32:
		_, ok = col.(*array.Primitive[float32])
	case format.TypeFloat64:
		_, ok = col.(*array.Primitive[float64])
	}
	if !ok {
		return typeError(spec, col)
	}

	return nil
}

// encodeColumn writes one column into buf, advancing each row's cursor by the
// exact size the length pass reported for it.
func encodeColumn(buf []byte, col array.Array, spec ColumnSpec, opt format.Options, cursors []int) error {
	switch spec.Type {
	case format.TypeString, format.TypeBinary:
		a, ok := col.(*array.BinaryView)
		if !ok {
			return typeError(spec, col)
		}
		encoding.EncodeVariable(buf, a, opt, cursors)

		return nil

	case format.TypeList:
		a, ok := col.(*array.List)
		if !ok {
			return typeError(spec, col)
		}

		return encodeListColumn(buf, a, spec, opt, cursors)

	case format.TypeBool:
		a, ok := col.(*array.Primitive[bool])
		if !ok {
			return typeError(spec, col)
		}
		encoding.EncodeBool(buf, a, opt, cursors)

		return nil

	case format.TypeInt8:
		return encodeSignedColumn[int8](buf, col, spec, opt, cursors)
	case format.TypeInt16:
		return encodeSignedColumn[int16](buf, col, spec, opt, cursors)
	case format.TypeInt32:
		return encodeSignedColumn[int32](buf, col, spec, opt, cursors)
	case format.TypeInt64:
		return encodeSignedColumn[int64](buf, col, spec, opt, cursors)
	case format.TypeUint8:
		return encodeUnsignedColumn[uint8](buf, col, spec, opt, cursors)
	case format.TypeUint16:
		return encodeUnsignedColumn[uint16](buf, col, spec, opt, cursors)
	case format.TypeUint32:
		return encodeUnsignedColumn[uint32](buf, col, spec, opt, cursors)
	case format.TypeUint64:
		return encodeUnsignedColumn[uint64](buf, col, spec, opt, cursors)
	case format.TypeFloat32:
		return encodeFloatColumn[float32](buf, col, spec, opt, cursors)
	case format.TypeFloat64:
		return encodeFloatColumn[float64](buf, col, spec, opt, cursors)

	default:
		return fmt.Errorf("logical type 0x%02X: %w", uint8(spec.Type), errs.ErrUnsupportedType)
	}
}

func encodeSignedColumn[T encoding.SignedValue](buf []byte, col array.Array, spec ColumnSpec, opt format.Options, cursors []int) error {
	a, ok := col.(*array.Primitive[T])
	if !ok {
		return typeError(spec, col)
	}
	encoding.EncodeSigned(buf, a, opt, cursors)

	return nil
}

func encodeUnsignedColumn[T encoding.UnsignedValue](buf []byte, col array.Array, spec ColumnSpec, opt format.Options, cursors []int) error {
	a, ok := col.(*array.Primitive[T])
	if !ok {
		return typeError(spec, col)
	}
	encoding.EncodeUnsigned(buf, a, opt, cursors)

	return nil
}

func encodeFloatColumn[T encoding.FloatValue](buf []byte, col array.Array, spec ColumnSpec, opt format.Options, cursors []int) error {
	a, ok := col.(*array.Primitive[T])
	if !ok {
		return typeError(spec, col)
	}
	encoding.EncodeFloat(buf, a, opt, cursors)

	return nil
}

// encodeListColumn writes the list framing for every row, positions one write
// cursor per element, and then encodes the flattened element column in a
// single recursive pass.
func encodeListColumn(buf []byte, a *array.List, spec ColumnSpec, opt format.Options, cursors []int) error {
	elems := a.Elems()
	elemLens := make([]int, elems.Len())
	if err := addColumnLengths(elems, *spec.Elem, opt, elemLens); err != nil {
		return err
	}

	marker, term := encoding.ListMarkers(opt)
	sentinel := opt.NullSentinel()
	elemCursors := make([]int, elems.Len())

	for i := 0; i < a.Len(); i++ {
		cur := cursors[i]
		if a.IsNull(i) {
			buf[cur] = sentinel
			cursors[i] = cur + 1
			continue
		}

		start, end := a.Bounds(i)
		for j := start; j < end; j++ {
			buf[cur] = marker
			cur++
			elemCursors[j] = cur
			cur += elemLens[j]
		}
		buf[cur] = term
		cursors[i] = cur + 1
	}

	return encodeColumn(buf, elems, *spec.Elem, opt, elemCursors)
}
