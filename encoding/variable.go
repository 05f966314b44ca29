package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/borchero/rowcodec/array"
	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
	"github.com/borchero/rowcodec/internal/pool"
)

// The ordered variable-length encoding relies on the fact that the bytes
// 0xFE and 0xFF never occur in UTF-8. Adding 2 to every payload byte shifts
// the occupied range to 0x02..0xFF, which reserves 0x00 and 0xFF as null
// sentinels and 0x01/0xFE as terminators. Because every shifted payload byte
// exceeds the ascending terminator, a string sorts before any longer string
// sharing its prefix. The binary variant uses the same layout and accepts
// only inputs whose bytes are <= 0xFD.
const (
	payloadShift   = 2
	terminatorAsc  = 0x01
	terminatorDesc = 0xFE
)

// unorderedNullLen is the length marker for a null value in the unordered
// variant, which is length-prefixed instead of terminator-delimited.
const unorderedNullLen = 0xFFFFFFFF

// terminator returns the terminator byte for the given options.
func terminator(opt format.Options) byte {
	if opt.IsDescending() {
		return terminatorDesc
	}

	return terminatorAsc
}

// invertMask returns 0xFF when every emitted byte must be bit-inverted for
// descending order, 0x00 otherwise.
func invertMask(opt format.Options) byte {
	if opt.IsDescending() {
		return 0xFF
	}

	return 0x00
}

// VariableLength returns the encoded size of a single variable-length value.
// valueLen is ignored for nulls.
//
// The ordered variant costs one byte of overhead: the terminator for non-null
// values, the sentinel for nulls. The unordered variant always carries a
// 4-byte length prefix.
func VariableLength(valueLen int, null bool, opt format.Options) int {
	if opt.IsUnordered() {
		if null {
			return 4
		}

		return 4 + valueLen
	}

	if null {
		return 1
	}

	return 1 + valueLen
}

// EncodeVariable writes one variable-length value per row of values into buf,
// each at the position given by its cursor. On return, cursors[i] has been
// advanced by exactly VariableLength(len(value), null, opt) for row i.
//
// The caller guarantees capacity via VariableLength; cells are written exactly
// once and never read back.
func EncodeVariable(buf []byte, values *array.BinaryView, opt format.Options, cursors []int) {
	if opt.IsUnordered() {
		encodeVariableUnordered(buf, values, cursors)
		return
	}

	sentinel := opt.NullSentinel()
	invert := invertMask(opt)

	for i := 0; i < values.Len(); i++ {
		dst := buf[cursors[i]:]

		if values.IsNull(i) {
			dst[0] = sentinel
			cursors[i]++
			continue
		}

		v := values.Value(i)
		for j := 0; j < len(v); j++ {
			dst[j] = invert ^ (v[j] + payloadShift)
		}
		dst[len(v)] = invert ^ terminatorAsc
		cursors[i] += 1 + len(v)
	}
}

func encodeVariableUnordered(buf []byte, values *array.BinaryView, cursors []int) {
	for i := 0; i < values.Len(); i++ {
		dst := buf[cursors[i]:]

		if values.IsNull(i) {
			binary.BigEndian.PutUint32(dst, unorderedNullLen)
			cursors[i] += 4
			continue
		}

		v := values.Value(i)
		binary.BigEndian.PutUint32(dst, uint32(len(v))) //nolint:gosec
		copy(dst[4:], v)
		cursors[i] += 4 + len(v)
	}
}

// EncodedVariableLength returns the total encoded size of the variable-length
// value at the start of row, without decoding it.
func EncodedVariableLength(row []byte, opt format.Options) (int, error) {
	if opt.IsUnordered() {
		if len(row) < 4 {
			return 0, fmt.Errorf("reading length prefix: %w", errs.ErrRowTooShort)
		}
		n := binary.BigEndian.Uint32(row)
		if n == unorderedNullLen {
			return 4, nil
		}

		return 4 + int(n), nil
	}

	if len(row) == 0 {
		return 0, fmt.Errorf("reading sentinel byte: %w", errs.ErrRowTooShort)
	}
	if row[0] == opt.NullSentinel() {
		return 1, nil
	}

	end := bytes.IndexByte(row, terminator(opt))
	if end < 0 {
		return 0, fmt.Errorf("missing terminator: %w", errs.ErrRowTooShort)
	}

	return end + 1, nil
}

// DecodeString decodes one UTF-8 column from rows, consuming a prefix of each
// row's slice. Decoded values are validated as UTF-8.
func DecodeString(rows [][]byte, opt format.Options) (*array.BinaryView, error) {
	return decodeVariable(rows, opt, true)
}

// DecodeBinary decodes one binary column from rows, consuming a prefix of
// each row's slice.
func DecodeBinary(rows [][]byte, opt format.Options) (*array.BinaryView, error) {
	return decodeVariable(rows, opt, false)
}

// decodeVariable runs the two-pass decode: the first loop assumes an all-valid
// column and pays no bitmap cost; upon the first null it backfills a validity
// bitmap and the second loop maintains it for the remaining rows.
func decodeVariable(rows [][]byte, opt format.Options, validateUTF8 bool) (*array.BinaryView, error) {
	numRows := len(rows)
	out := array.NewBinaryViewBuilder(numRows, numRows*8)

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)

	i := 0
	for ; i < numRows; i++ {
		null, err := peekVariableNull(rows[i], opt)
		if err != nil {
			return nil, err
		}
		if null {
			break
		}
		if err := decodeVariableValue(rows, i, opt, validateUTF8, scratch, out); err != nil {
			return nil, err
		}
	}

	if i == numRows {
		return out.Finish(nil), nil
	}

	validity := array.NewBitmapBuilder(numRows)
	validity.AppendN(i, true)
	validity.Append(false)
	out.AppendEmpty()
	consumeVariableNull(rows, i, opt)
	i++

	for ; i < numRows; i++ {
		null, err := peekVariableNull(rows[i], opt)
		if err != nil {
			return nil, err
		}
		validity.Append(!null)
		if null {
			out.AppendEmpty()
			consumeVariableNull(rows, i, opt)
			continue
		}
		if err := decodeVariableValue(rows, i, opt, validateUTF8, scratch, out); err != nil {
			return nil, err
		}
	}

	return out.Finish(validity.Finish()), nil
}

// peekVariableNull reports whether the value at the start of row i is null,
// without consuming it.
func peekVariableNull(row []byte, opt format.Options) (bool, error) {
	if opt.IsUnordered() {
		if len(row) < 4 {
			return false, fmt.Errorf("reading length prefix: %w", errs.ErrRowTooShort)
		}

		return binary.BigEndian.Uint32(row) == unorderedNullLen, nil
	}

	if len(row) == 0 {
		return false, fmt.Errorf("reading sentinel byte: %w", errs.ErrRowTooShort)
	}

	return row[0] == opt.NullSentinel(), nil
}

// consumeVariableNull advances row i past a null value.
func consumeVariableNull(rows [][]byte, i int, opt format.Options) {
	if opt.IsUnordered() {
		rows[i] = rows[i][4:]
		return
	}
	rows[i] = rows[i][1:]
}

// decodeVariableValue decodes the non-null value at the start of row i into
// out and advances the row slice past the value and its delimiter.
func decodeVariableValue(rows [][]byte, i int, opt format.Options, validateUTF8 bool, scratch *pool.ScratchBuffer, out *array.BinaryViewBuilder) error {
	row := rows[i]

	if opt.IsUnordered() {
		n := int(binary.BigEndian.Uint32(row))
		if len(row) < 4+n {
			return fmt.Errorf("value of %d bytes exceeds row remainder: %w", n, errs.ErrRowTooShort)
		}
		v := row[4 : 4+n]
		if validateUTF8 && !utf8.Valid(v) {
			return fmt.Errorf("decoded value of %d bytes: %w", n, errs.ErrInvalidUTF8)
		}
		out.AppendValue(v)
		rows[i] = row[4+n:]

		return nil
	}

	end := bytes.IndexByte(row, terminator(opt))
	if end < 0 {
		return fmt.Errorf("missing terminator: %w", errs.ErrRowTooShort)
	}

	invert := invertMask(opt)
	scratch.Reset()
	for _, b := range row[:end] {
		scratch.Append((invert ^ b) - payloadShift)
	}

	if validateUTF8 && !utf8.Valid(scratch.Bytes()) {
		return fmt.Errorf("decoded value of %d bytes: %w", scratch.Len(), errs.ErrInvalidUTF8)
	}
	out.AppendValue(scratch.Bytes())
	rows[i] = row[end+1:]

	return nil
}
