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

// Interner is the external categorical dictionary consumed by the categorical
// decoder. Insert returns the dense category code for the string, interning it
// on first sight. Insert errors (such as code-space exhaustion) propagate
// verbatim to the decoder's caller.
type Interner interface {
	Insert(s string) (uint32, error)
}

// CategoryCode is the constraint for the physical types a category code can
// materialise as.
type CategoryCode interface {
	~uint8 | ~uint16 | ~uint32
}

// DecodeCategorical decodes one UTF-8 column from rows exactly like
// DecodeString, but instead of materialising each string it interns it into
// dict and emits the returned category code. Null rows emit a zero code and
// a validity bit, with the same deferred bitmap allocation as the string
// decoder.
func DecodeCategorical[T CategoryCode](rows [][]byte, opt format.Options, dict Interner) (*array.Primitive[T], error) {
	numRows := len(rows)
	codes := make([]T, 0, numRows)

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
		code, err := internValue[T](rows, i, opt, scratch, dict)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	if i == numRows {
		return array.NewPrimitiveWithBitmap(codes, nil), nil
	}

	validity := array.NewBitmapBuilder(numRows)
	validity.AppendN(i, true)
	validity.Append(false)
	codes = append(codes, 0)
	consumeVariableNull(rows, i, opt)
	i++

	for ; i < numRows; i++ {
		null, err := peekVariableNull(rows[i], opt)
		if err != nil {
			return nil, err
		}
		validity.Append(!null)
		if null {
			codes = append(codes, 0)
			consumeVariableNull(rows, i, opt)
			continue
		}
		code, err := internValue[T](rows, i, opt, scratch, dict)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return array.NewPrimitiveWithBitmap(codes, validity.Finish()), nil
}

// internValue decodes the non-null string at the start of row i into scratch,
// interns it, and advances the row slice.
func internValue[T CategoryCode](rows [][]byte, i int, opt format.Options, scratch *pool.ScratchBuffer, dict Interner) (T, error) {
	row := rows[i]

	if opt.IsUnordered() {
		n := int(binary.BigEndian.Uint32(row))
		if len(row) < 4+n {
			return 0, fmt.Errorf("value of %d bytes exceeds row remainder: %w", n, errs.ErrRowTooShort)
		}
		v := row[4 : 4+n]
		if !utf8.Valid(v) {
			return 0, fmt.Errorf("decoded value of %d bytes: %w", n, errs.ErrInvalidUTF8)
		}
		code, err := dict.Insert(string(v))
		if err != nil {
			return 0, err
		}
		rows[i] = row[4+n:]

		return T(code), nil //nolint:gosec
	}

	end := bytes.IndexByte(row, terminator(opt))
	if end < 0 {
		return 0, fmt.Errorf("missing terminator: %w", errs.ErrRowTooShort)
	}

	invert := invertMask(opt)
	scratch.Reset()
	for _, b := range row[:end] {
		scratch.Append((invert ^ b) - payloadShift)
	}

	if !utf8.Valid(scratch.Bytes()) {
		return 0, fmt.Errorf("decoded value of %d bytes: %w", scratch.Len(), errs.ErrInvalidUTF8)
	}
	code, err := dict.Insert(scratch.String())
	if err != nil {
		return 0, err
	}
	rows[i] = row[end+1:]

	return T(code), nil //nolint:gosec
}
