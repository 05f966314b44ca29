package encoding

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
)

// Fixed-width values encode as a presence byte followed by the value's
// order-preserving big-endian bit pattern. Nulls carry the null sentinel and a
// zeroed payload so every value of the type occupies the same 1+N bytes. For
// descending order the whole block, presence byte included, is bit-inverted.
const presentMarker = 0x01

// SignedValue is the constraint for signed integer columns.
type SignedValue interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedValue is the constraint for unsigned integer columns.
type UnsignedValue interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// FloatValue is the constraint for IEEE-754 float columns.
type FloatValue interface {
	~float32 | ~float64
}

// FixedLength returns the encoded size of a fixed-width value of the given
// payload width: one presence byte plus the payload, null or not.
func FixedLength(width int) int {
	return 1 + width
}

// widthOf returns the byte width of the generic value type.
func widthOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// signBit returns the sign-bit mask for a payload of the given width.
func signBit(width int) uint64 {
	return 1 << (8*width - 1)
}

// payloadMask returns the mask covering a payload of the given width.
func payloadMask(width int) uint64 {
	if width == 8 {
		return math.MaxUint64
	}

	return 1<<(8*width) - 1
}

// orderSigned maps a signed integer to an unsigned bit pattern whose natural
// order equals the signed order: flip the sign bit.
func orderSigned[T SignedValue](v T, width int) uint64 {
	return (uint64(v) & payloadMask(width)) ^ signBit(width)
}

// unorderSigned is the inverse of orderSigned.
func unorderSigned[T SignedValue](u uint64, width int) T {
	u ^= signBit(width)
	shift := 64 - 8*width

	return T(int64(u<<shift) >> shift) //nolint:gosec
}

// orderFloat maps a float to an unsigned bit pattern whose natural order
// equals the total order -inf < ... < -0 < +0 < ... < +inf, with NaNs
// comparing greatest: negative floats invert all bits, others flip the sign
// bit. The canonical NaN pattern has a clear sign bit, so it lands above +inf.
func orderFloat[T FloatValue](v T, width int) uint64 {
	if width == 4 {
		bits := math.Float32bits(float32(v))
		if bits&(1<<31) != 0 {
			bits = ^bits
		} else {
			bits |= 1 << 31
		}

		return uint64(bits)
	}

	bits := math.Float64bits(float64(v))
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}

	return bits
}

// unorderFloat is the inverse of orderFloat.
func unorderFloat[T FloatValue](u uint64, width int) T {
	if width == 4 {
		bits := uint32(u) //nolint:gosec
		if bits&(1<<31) != 0 {
			bits &^= 1 << 31
		} else {
			bits = ^bits
		}

		return T(math.Float32frombits(bits))
	}

	if u&(1<<63) != 0 {
		u &^= 1 << 63
	} else {
		u = ^u
	}

	return T(math.Float64frombits(u))
}

// putFixed writes one 1+width block at dst: the presence byte, the big-endian
// payload bits, and the descending inversion over the whole block.
func putFixed(dst []byte, bits uint64, width int, null bool, opt format.Options) {
	if null {
		dst[0] = opt.NullSentinel()
		bits = 0
	} else {
		dst[0] = presentMarker
	}

	for k := 0; k < width; k++ {
		dst[1+k] = byte(bits >> (8 * (width - 1 - k)))
	}

	if opt.IsDescending() {
		for k := 0; k <= width; k++ {
			dst[k] ^= 0xFF
		}
	}
}

// takeFixed reads one 1+width block from the start of row i, undoing the
// descending inversion. It returns the payload bits and whether the value is
// null, and advances the row slice past the block.
func takeFixed(rows [][]byte, i int, width int, opt format.Options) (uint64, bool, error) {
	row := rows[i]
	if len(row) < 1+width {
		return 0, false, fmt.Errorf("fixed-width block needs %d bytes, row has %d: %w", 1+width, len(row), errs.ErrRowTooShort)
	}

	invert := invertMask(opt)
	marker := row[0] ^ invert

	var bits uint64
	for k := 0; k < width; k++ {
		bits = bits<<8 | uint64(row[1+k]^invert)
	}
	rows[i] = row[1+width:]

	switch marker {
	case presentMarker:
		return bits, false, nil
	case opt.NullSentinel():
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("unexpected presence marker 0x%02X: %w", row[0], errs.ErrSchemaMismatch)
	}
}

// EncodeSigned writes one signed integer column into buf, advancing each
// row's cursor by FixedLength(width).
func EncodeSigned[T SignedValue](buf []byte, values *array.Primitive[T], opt format.Options, cursors []int) {
	width := widthOf[T]()
	for i := 0; i < values.Len(); i++ {
		null := values.IsNull(i)
		putFixed(buf[cursors[i]:], orderSigned(values.Value(i), width), width, null, opt)
		cursors[i] += 1 + width
	}
}

// EncodeUnsigned writes one unsigned integer column into buf, advancing each
// row's cursor by FixedLength(width).
func EncodeUnsigned[T UnsignedValue](buf []byte, values *array.Primitive[T], opt format.Options, cursors []int) {
	width := widthOf[T]()
	for i := 0; i < values.Len(); i++ {
		null := values.IsNull(i)
		putFixed(buf[cursors[i]:], uint64(values.Value(i)), width, null, opt)
		cursors[i] += 1 + width
	}
}

// EncodeFloat writes one float column into buf, advancing each row's cursor
// by FixedLength(width).
func EncodeFloat[T FloatValue](buf []byte, values *array.Primitive[T], opt format.Options, cursors []int) {
	width := widthOf[T]()
	for i := 0; i < values.Len(); i++ {
		null := values.IsNull(i)
		putFixed(buf[cursors[i]:], orderFloat(values.Value(i), width), width, null, opt)
		cursors[i] += 1 + width
	}
}

// EncodeBool writes one boolean column into buf, one payload byte per value
// (0x01 true, 0x00 false) plus the presence byte.
func EncodeBool(buf []byte, values *array.Primitive[bool], opt format.Options, cursors []int) {
	for i := 0; i < values.Len(); i++ {
		var bits uint64
		if values.Value(i) {
			bits = 1
		}
		putFixed(buf[cursors[i]:], bits, 1, values.IsNull(i), opt)
		cursors[i] += 2
	}
}

// decodeFixed runs the shared fixed-width decode loop: values are collected
// unconditionally (nulls as zero placeholders) and the validity bitmap is
// only materialised once the first null is seen.
func decodeFixed[T any](rows [][]byte, width int, opt format.Options, from func(uint64) T) (*array.Primitive[T], error) {
	numRows := len(rows)
	values := make([]T, 0, numRows)

	var validity *array.BitmapBuilder
	for i := 0; i < numRows; i++ {
		bits, null, err := takeFixed(rows, i, width, opt)
		if err != nil {
			return nil, err
		}

		if null && validity == nil {
			validity = array.NewBitmapBuilder(numRows)
			validity.AppendN(i, true)
		}
		if validity != nil {
			validity.Append(!null)
		}

		if null {
			var zero T
			values = append(values, zero)
			continue
		}
		values = append(values, from(bits))
	}

	if validity == nil {
		return array.NewPrimitiveWithBitmap(values, nil), nil
	}

	return array.NewPrimitiveWithBitmap(values, validity.Finish()), nil
}

// DecodeSigned decodes one signed integer column from rows, consuming a
// prefix of each row's slice.
func DecodeSigned[T SignedValue](rows [][]byte, opt format.Options) (*array.Primitive[T], error) {
	width := widthOf[T]()
	return decodeFixed(rows, width, opt, func(u uint64) T {
		return unorderSigned[T](u, width)
	})
}

// DecodeUnsigned decodes one unsigned integer column from rows, consuming a
// prefix of each row's slice.
func DecodeUnsigned[T UnsignedValue](rows [][]byte, opt format.Options) (*array.Primitive[T], error) {
	width := widthOf[T]()
	return decodeFixed(rows, width, opt, func(u uint64) T {
		return T(u) //nolint:gosec
	})
}

// DecodeFloat decodes one float column from rows, consuming a prefix of each
// row's slice.
func DecodeFloat[T FloatValue](rows [][]byte, opt format.Options) (*array.Primitive[T], error) {
	width := widthOf[T]()
	return decodeFixed(rows, width, opt, func(u uint64) T {
		return unorderFloat[T](u, width)
	})
}

// DecodeBool decodes one boolean column from rows, consuming a prefix of each
// row's slice.
func DecodeBool(rows [][]byte, opt format.Options) (*array.Primitive[bool], error) {
	return decodeFixed(rows, 1, opt, func(u uint64) bool {
		return u != 0
	})
}
