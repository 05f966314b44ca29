package row

import (
	"fmt"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/encoding"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
	"github.com/borchero/rowcodec/internal/pool"
)

// Decoder disassembles encoded rows back into typed columns using the same
// schema and options the encoder was built with. A Decoder is stateless
// between calls and safe for concurrent use.
type Decoder struct {
	specs []ColumnSpec
}

// NewDecoder creates a decoder for the given schema.
func NewDecoder(specs []ColumnSpec) (*Decoder, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	return &Decoder{specs: specs}, nil
}

// Decode reconstructs one column container per schema column from the rows of
// buf. It fails with ErrSchemaMismatch when bytes remain after the last
// column, and with ErrRowTooShort when a row runs out of bytes first.
func (d *Decoder) Decode(buf *RowBuffer) ([]array.Array, error) {
	rows, cleanup := pool.GetRowSlices(buf.NumRows())
	defer cleanup()
	for i := range rows {
		rows[i] = buf.Row(i)
	}

	return d.DecodeRows(rows)
}

// DecodeRows reconstructs columns from one byte slice per row. Each slice is
// advanced in place as columns are consumed; on success every slice is empty.
func (d *Decoder) DecodeRows(rows [][]byte) ([]array.Array, error) {
	cols := make([]array.Array, len(d.specs))
	for c, spec := range d.specs {
		col, err := decodeColumn(rows, spec, spec.Opts)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
		cols[c] = col
	}

	for i, row := range rows {
		if len(row) != 0 {
			return nil, fmt.Errorf("row %d has %d trailing bytes: %w", i, len(row), errs.ErrSchemaMismatch)
		}
	}

	return cols, nil
}

// decodeColumn consumes one column's prefix from every row.
func decodeColumn(rows [][]byte, spec ColumnSpec, opt format.Options) (array.Array, error) {
	switch spec.Type {
	case format.TypeString:
		return encoding.DecodeString(rows, opt)
	case format.TypeBinary:
		return encoding.DecodeBinary(rows, opt)
	case format.TypeList:
		return decodeListColumn(rows, spec, opt)
	case format.TypeBool:
		return encoding.DecodeBool(rows, opt)
	case format.TypeInt8:
		return encoding.DecodeSigned[int8](rows, opt)
	case format.TypeInt16:
		return encoding.DecodeSigned[int16](rows, opt)
	case format.TypeInt32:
		return encoding.DecodeSigned[int32](rows, opt)
	case format.TypeInt64:
		return encoding.DecodeSigned[int64](rows, opt)
	case format.TypeUint8:
		return encoding.DecodeUnsigned[uint8](rows, opt)
	case format.TypeUint16:
		return encoding.DecodeUnsigned[uint16](rows, opt)
	case format.TypeUint32:
		return encoding.DecodeUnsigned[uint32](rows, opt)
	case format.TypeUint64:
		return encoding.DecodeUnsigned[uint64](rows, opt)
	case format.TypeFloat32:
		return encoding.DecodeFloat[float32](rows, opt)
	case format.TypeFloat64:
		return encoding.DecodeFloat[float64](rows, opt)
	default:
		return nil, fmt.Errorf("logical type 0x%02X: %w", uint8(spec.Type), errs.ErrUnsupportedType)
	}
}

// decodeListColumn scans the list framing of every row to slice out the
// element encodings, batch-decodes the flattened element column, and
// reassembles the per-row list boundaries.
func decodeListColumn(rows [][]byte, spec ColumnSpec, opt format.Options) (*array.List, error) {
	numRows := len(rows)
	counts := make([]int, numRows)
	var childRows [][]byte
	var validity *array.BitmapBuilder

	for i := 0; i < numRows; i++ {
		row := rows[i]
		pos := 0

		hdr, err := encoding.PeekListHeader(row, opt, true)
		if err != nil {
			return nil, err
		}

		null := hdr == encoding.ListHeaderNull
		if null {
			pos = 1
		} else {
			for hdr != encoding.ListHeaderEnd {
				pos++ // continuation marker
				n, err := encodedLengthOf(row[pos:], *spec.Elem, opt)
				if err != nil {
					return nil, err
				}
				childRows = append(childRows, row[pos:pos+n])
				pos += n
				counts[i]++

				hdr, err = encoding.PeekListHeader(row[pos:], opt, false)
				if err != nil {
					return nil, err
				}
			}
			pos++ // terminator
		}

		if null && validity == nil {
			validity = array.NewBitmapBuilder(numRows)
			validity.AppendN(i, true)
		}
		if validity != nil {
			validity.Append(!null)
		}
		rows[i] = row[pos:]
	}

	elems, err := decodeColumn(childRows, *spec.Elem, opt)
	if err != nil {
		return nil, err
	}

	offsets := make([]int, numRows+1)
	for i, n := range counts {
		offsets[i+1] = offsets[i] + n
	}

	if validity == nil {
		return array.NewList(elems, offsets, nil), nil
	}

	return array.NewList(elems, offsets, validity.Finish()), nil
}

// encodedLengthOf reports the total encoded size of the value at the start of
// row without decoding it, mirroring the per-type length functions.
func encodedLengthOf(row []byte, spec ColumnSpec, opt format.Options) (int, error) {
	switch spec.Type {
	case format.TypeString, format.TypeBinary:
		return encoding.EncodedVariableLength(row, opt)

	case format.TypeList:
		pos := 0
		hdr, err := encoding.PeekListHeader(row, opt, true)
		if err != nil {
			return 0, err
		}
		if hdr == encoding.ListHeaderNull {
			return 1, nil
		}
		for hdr != encoding.ListHeaderEnd {
			pos++
			n, err := encodedLengthOf(row[pos:], *spec.Elem, opt)
			if err != nil {
				return 0, err
			}
			pos += n

			hdr, err = encoding.PeekListHeader(row[pos:], opt, false)
			if err != nil {
				return 0, err
			}
		}

		return pos + 1, nil

	default:
		size := encoding.FixedLength(spec.Type.Width())
		if len(row) < size {
			return 0, fmt.Errorf("fixed-width block needs %d bytes, row has %d: %w", size, len(row), errs.ErrRowTooShort)
		}

		return size, nil
	}
}
