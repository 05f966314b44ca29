// Package rowcodec converts typed columns into order-preserving per-row byte
// sequences and back.
//
// Two encoded rows compare byte-lexicographically exactly as their original
// tuples compare under the per-column sort options (ascending/descending,
// nulls-first/nulls-last), which makes the encoded form a universal key for
// sorting, grouping, hashing, joining and distinct operations over arbitrary
// composite key types. The encoding is reversible: with the schema and options
// in hand, the decoder reconstructs the original columns, nulls included.
//
// # Basic Usage
//
// Encoding two columns into rows and sorting them bytewise:
//
//	import (
//	    "github.com/borchero/rowcodec"
//	    "github.com/borchero/rowcodec/array"
//	    "github.com/borchero/rowcodec/format"
//	    "github.com/borchero/rowcodec/row"
//	)
//
//	specs := []row.ColumnSpec{
//	    row.SortedSpec(format.TypeString, false, false),
//	    row.SortedSpec(format.TypeInt32, false, false),
//	}
//	cols := []array.Array{
//	    array.NewStringView([]string{"b", "a", "a"}, nil),
//	    array.NewPrimitive([]int32{0, 2, 1}, nil),
//	}
//
//	buf, _ := rowcodec.Encode(cols, specs)
//	order := buf.SortedIndices() // [2 1 0]: ("a",1) < ("a",2) < ("b",0)
//
// Decoding recovers the columns:
//
//	decoded, _ := rowcodec.Decode(buf, specs)
//
// # Container Conventions
//
// Each logical type pairs with one container from the array package:
//
//   - format.TypeString, format.TypeBinary: *array.BinaryView
//   - format.TypeBool: *array.Primitive[bool]
//   - integer and float types: *array.Primitive[T] of the matching Go type
//   - format.TypeList: *array.List
//
// # Package Structure
//
// This package provides thin wrappers around the row package, which hosts the
// row assembler and disassembler. The per-type codecs live in the encoding
// package, the column containers in the array package, and the categorical
// dictionary in the dict package.
package rowcodec

import (
	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/row"
)

// Encode assembles one encoded byte sequence per row from the given columns.
// Columns must follow the container conventions of the package documentation
// and agree on row count.
func Encode(cols []array.Array, specs []row.ColumnSpec) (*row.RowBuffer, error) {
	encoder, err := row.NewEncoder(specs)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(cols)
}

// Decode reconstructs the columns of buf using the same schema and options it
// was encoded with.
func Decode(buf *row.RowBuffer, specs []row.ColumnSpec) ([]array.Array, error) {
	decoder, err := row.NewDecoder(specs)
	if err != nil {
		return nil, err
	}

	return decoder.Decode(buf)
}
