package format

// LogicalType identifies the logical type of a column. The codec dispatches
// on this value to pick the per-type encoder and decoder.
type LogicalType uint8

const (
	TypeBool    LogicalType = 0x1 // TypeBool represents a boolean column.
	TypeInt8    LogicalType = 0x2 // TypeInt8 represents a signed 8-bit integer column.
	TypeInt16   LogicalType = 0x3 // TypeInt16 represents a signed 16-bit integer column.
	TypeInt32   LogicalType = 0x4 // TypeInt32 represents a signed 32-bit integer column.
	TypeInt64   LogicalType = 0x5 // TypeInt64 represents a signed 64-bit integer column.
	TypeUint8   LogicalType = 0x6 // TypeUint8 represents an unsigned 8-bit integer column.
	TypeUint16  LogicalType = 0x7 // TypeUint16 represents an unsigned 16-bit integer column.
	TypeUint32  LogicalType = 0x8 // TypeUint32 represents an unsigned 32-bit integer column.
	TypeUint64  LogicalType = 0x9 // TypeUint64 represents an unsigned 64-bit integer column.
	TypeFloat32 LogicalType = 0xA // TypeFloat32 represents a 32-bit IEEE-754 float column.
	TypeFloat64 LogicalType = 0xB // TypeFloat64 represents a 64-bit IEEE-754 float column.
	TypeString  LogicalType = 0xC // TypeString represents a variable-length UTF-8 column.
	TypeBinary  LogicalType = 0xD // TypeBinary represents a variable-length binary column.
	TypeList    LogicalType = 0xE // TypeList represents a nested list column.
)

// Width returns the payload width in bytes for fixed-width types, or 0 for
// variable-length and nested types. The encoded size of a fixed-width value
// is always Width()+1 (one presence byte plus the payload).
func (t LogicalType) Width() int {
	switch t {
	case TypeBool, TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsFixedWidth reports whether the type encodes to a fixed number of bytes.
func (t LogicalType) IsFixedWidth() bool {
	return t.Width() > 0
}

func (t LogicalType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeUint8:
		return "Uint8"
	case TypeUint16:
		return "Uint16"
	case TypeUint32:
		return "Uint32"
	case TypeUint64:
		return "Uint64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeBinary:
		return "Binary"
	case TypeList:
		return "List"
	default:
		return "Unknown"
	}
}
