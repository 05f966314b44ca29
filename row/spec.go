// Package row assembles typed columns into order-preserving per-row byte
// sequences and disassembles them back into columns.
//
// The Encoder computes every row's exact length up front, allocates the flat
// row buffer once, and then invokes the per-type encoders column by column;
// each encoder writes into disjoint byte ranges dictated by the precomputed
// cursors. The Decoder walks the columns in the same order, with each decoder
// consuming a prefix of every row's remaining bytes.
package row

import (
	"fmt"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
)

// ColumnSpec describes one column of the row schema: its logical type and its
// encoding options. The schema is external to the encoded bytes; encode and
// decode must be called with identical specs or the output is undefined.
//
// For list columns, Elem describes the element column. Elements are encoded
// with the list's own options; Elem.Opts is ignored.
type ColumnSpec struct {
	Type format.LogicalType
	Opts format.Options
	Elem *ColumnSpec
}

// SortedSpec returns a spec for a column taking part in ordered comparison.
func SortedSpec(t format.LogicalType, descending, nullsLast bool) ColumnSpec {
	var opts format.Options
	if descending {
		opts |= format.Descending
	}
	if nullsLast {
		opts |= format.NullsLast
	}

	return ColumnSpec{Type: t, Opts: opts}
}

// UnorderedSpec returns a spec for a column that only needs equality and
// hashing, selecting the cheaper invertible variant.
func UnorderedSpec(t format.LogicalType) ColumnSpec {
	return ColumnSpec{Type: t, Opts: format.Unordered}
}

// ListSpec returns a spec for a list column with the given element spec.
func ListSpec(elem ColumnSpec, opts format.Options) ColumnSpec {
	return ColumnSpec{Type: format.TypeList, Opts: opts, Elem: &elem}
}

// validateSpec checks that the spec names a supported type and that list
// specs carry an element spec.
func validateSpec(spec ColumnSpec) error {
	switch spec.Type {
	case format.TypeBool,
		format.TypeInt8, format.TypeInt16, format.TypeInt32, format.TypeInt64,
		format.TypeUint8, format.TypeUint16, format.TypeUint32, format.TypeUint64,
		format.TypeFloat32, format.TypeFloat64,
		format.TypeString, format.TypeBinary:
		return nil
	case format.TypeList:
		if spec.Elem == nil {
			return fmt.Errorf("list spec carries no element spec: %w", errs.ErrUnsupportedType)
		}

		return validateSpec(*spec.Elem)
	default:
		return fmt.Errorf("logical type 0x%02X: %w", uint8(spec.Type), errs.ErrUnsupportedType)
	}
}

// validateSpecs checks a full schema.
func validateSpecs(specs []ColumnSpec) error {
	for c, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return fmt.Errorf("column %d: %w", c, err)
		}
	}

	return nil
}

// typeError reports a mismatch between a column spec and the container the
// caller supplied for it.
func typeError(spec ColumnSpec, col array.Array) error {
	return fmt.Errorf("column of type %s got container %T: %w", spec.Type, col, errs.ErrSchemaMismatch)
}
