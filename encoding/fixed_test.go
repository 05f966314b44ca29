package encoding

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
)

// encodeFixedRows encodes one fixed-width column of width bytes per payload
// and returns the per-row blocks.
func encodeFixedRows(t *testing.T, encode func(buf []byte, cursors []int), numRows, width int) [][]byte {
	t.Helper()

	size := FixedLength(width)
	buf := make([]byte, numRows*size)
	cursors := make([]int, numRows)
	for i := range cursors {
		cursors[i] = i * size
	}
	encode(buf, cursors)

	rows := make([][]byte, numRows)
	for i := range rows {
		rows[i] = buf[i*size : (i+1)*size]
		require.Equal(t, (i+1)*size, cursors[i])
	}

	return rows
}

func TestEncodeSigned_OrderPreserved(t *testing.T) {
	values := []int32{math.MinInt32, -100, -1, 0, 1, 100, math.MaxInt32}
	col := array.NewPrimitive(values, nil)

	rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeSigned(buf, col, 0, cursors)
	}, len(values), 4)

	for i := 1; i < len(rows); i++ {
		require.Negative(t, bytes.Compare(rows[i-1], rows[i]))
	}
}

func TestEncodeUnsigned_OrderPreserved(t *testing.T) {
	values := []uint16{0, 1, 255, 256, math.MaxUint16}
	col := array.NewPrimitive(values, nil)

	rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeUnsigned(buf, col, 0, cursors)
	}, len(values), 2)

	for i := 1; i < len(rows); i++ {
		require.Negative(t, bytes.Compare(rows[i-1], rows[i]))
	}
}

func TestEncodeFloat_OrderPreserved(t *testing.T) {
	// NaN takes its canonical place above +Inf.
	values := []float64{
		math.Inf(-1), -math.MaxFloat64, -1.5, math.Copysign(0, -1),
		0, 1.5, math.MaxFloat64, math.Inf(1), math.NaN(),
	}
	col := array.NewPrimitive(values, nil)

	rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeFloat(buf, col, 0, cursors)
	}, len(values), 8)

	for i := 1; i < len(rows); i++ {
		require.Negative(t, bytes.Compare(rows[i-1], rows[i]))
	}
}

func TestEncodeFixed_DescendingDuality(t *testing.T) {
	values := []int64{math.MinInt64, -5, 0, 7, math.MaxInt64}
	col := array.NewPrimitive(values, nil)

	asc := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeSigned(buf, col, 0, cursors)
	}, len(values), 8)
	desc := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeSigned(buf, col, format.Descending, cursors)
	}, len(values), 8)

	for i := range asc {
		inverted := make([]byte, len(asc[i]))
		for j, b := range asc[i] {
			inverted[j] = ^b
		}
		require.Equal(t, desc[i], inverted)
	}

	// Descending reverses the bytewise order.
	for i := 1; i < len(desc); i++ {
		require.Positive(t, bytes.Compare(desc[i-1], desc[i]))
	}
}

func TestEncodeFixed_NullBlock(t *testing.T) {
	col := array.NewPrimitive([]int32{42, 0}, []bool{true, false})

	rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeSigned(buf, col, 0, cursors)
	}, 2, 4)

	// A null occupies the same 1+N bytes: sentinel plus zeroed payload.
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00}, rows[1])
	require.Equal(t, byte(presentMarker), rows[0][0])

	// Nulls-first: the null block sorts before any value block.
	require.Negative(t, bytes.Compare(rows[1], rows[0]))
}

func TestEncodeFixed_NullsLast(t *testing.T) {
	col := array.NewPrimitive([]int32{math.MaxInt32, 0}, []bool{true, false})

	rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
		EncodeSigned(buf, col, format.NullsLast, cursors)
	}, 2, 4)

	require.Equal(t, byte(0xFF), rows[1][0])
	require.Positive(t, bytes.Compare(rows[1], rows[0]))
}

func TestDecodeFixed_RoundTrip(t *testing.T) {
	t.Run("signed", func(t *testing.T) {
		values := []int16{math.MinInt16, -1, 0, 1, math.MaxInt16}
		for _, opt := range []format.Options{0, format.Descending, format.NullsLast, format.Descending | format.NullsLast} {
			col := array.NewPrimitive(append([]int16{}, values...), nil)
			rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
				EncodeSigned(buf, col, opt, cursors)
			}, len(values), 2)

			decoded, err := DecodeSigned[int16](rows, opt)
			require.NoError(t, err)
			require.Equal(t, values, decoded.Values())
			require.Nil(t, decoded.Validity())
		}
	})

	t.Run("unsigned with nulls", func(t *testing.T) {
		values := []uint64{1, 0, math.MaxUint64}
		validity := []bool{true, false, true}
		col := array.NewPrimitive(append([]uint64{}, values...), validity)
		rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
			EncodeUnsigned(buf, col, 0, cursors)
		}, len(values), 8)

		decoded, err := DecodeUnsigned[uint64](rows, 0)
		require.NoError(t, err)
		require.True(t, decoded.IsNull(1))
		require.Equal(t, uint64(1), decoded.Value(0))
		require.Equal(t, uint64(math.MaxUint64), decoded.Value(2))
	})

	t.Run("float32", func(t *testing.T) {
		values := []float32{float32(math.Inf(-1)), -2.5, 0, 3.5, float32(math.Inf(1))}
		col := array.NewPrimitive(append([]float32{}, values...), nil)
		rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
			EncodeFloat(buf, col, format.Descending, cursors)
		}, len(values), 4)

		decoded, err := DecodeFloat[float32](rows, format.Descending)
		require.NoError(t, err)
		require.Equal(t, values, decoded.Values())
	})

	t.Run("negative zero survives", func(t *testing.T) {
		col := array.NewPrimitive([]float64{math.Copysign(0, -1), 0}, nil)
		rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
			EncodeFloat(buf, col, 0, cursors)
		}, 2, 8)

		// -0.0 and +0.0 are distinct byte patterns, with -0.0 first.
		require.Negative(t, bytes.Compare(rows[0], rows[1]))

		decoded, err := DecodeFloat[float64](rows, 0)
		require.NoError(t, err)
		require.True(t, math.Signbit(decoded.Value(0)))
		require.False(t, math.Signbit(decoded.Value(1)))
	})

	t.Run("nan round trips", func(t *testing.T) {
		col := array.NewPrimitive([]float64{math.NaN()}, nil)
		rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
			EncodeFloat(buf, col, 0, cursors)
		}, 1, 8)

		decoded, err := DecodeFloat[float64](rows, 0)
		require.NoError(t, err)
		require.True(t, math.IsNaN(decoded.Value(0)))
	})

	t.Run("bool", func(t *testing.T) {
		values := []bool{false, true, false}
		validity := []bool{true, true, false}
		col := array.NewPrimitive(append([]bool{}, values...), validity)
		rows := encodeFixedRows(t, func(buf []byte, cursors []int) {
			EncodeBool(buf, col, 0, cursors)
		}, len(values), 1)

		// false < true bytewise.
		require.Negative(t, bytes.Compare(rows[0], rows[1]))

		decoded, err := DecodeBool(rows, 0)
		require.NoError(t, err)
		require.False(t, decoded.Value(0))
		require.True(t, decoded.Value(1))
		require.True(t, decoded.IsNull(2))
	})
}

func TestDecodeFixed_Errors(t *testing.T) {
	_, err := DecodeSigned[int32]([][]byte{{0x01, 0x00}}, 0)
	require.ErrorIs(t, err, errs.ErrRowTooShort)

	// 0x42 is neither the present marker nor a null sentinel.
	_, err = DecodeSigned[int8]([][]byte{{0x42, 0x00}}, 0)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestFixedLength(t *testing.T) {
	require.Equal(t, 5, FixedLength(format.TypeInt32.Width()))
	require.Equal(t, 9, FixedLength(format.TypeFloat64.Width()))
	require.Equal(t, 2, FixedLength(format.TypeBool.Width()))
}
