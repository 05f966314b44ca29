// Package errs defines the sentinel errors returned by the rowcodec packages.
//
// All errors are wrapped with context via fmt.Errorf("...: %w", err) at the
// call site, so callers can match them with errors.Is.
package errs

import "errors"

var (
	// ErrSchemaMismatch indicates that bytes remained after all columns were
	// consumed, that a framing or presence byte is not one the column's
	// encoding uses, or that a column container does not match its spec. The
	// schema or options passed to the decoder do not match the ones used by
	// the encoder. A row that ends with columns remaining surfaces
	// ErrRowTooShort instead.
	ErrSchemaMismatch = errors.New("schema mismatch between encoded rows and column specs")

	// ErrRowTooShort indicates that a row's remaining bytes were exhausted
	// before a column value could be fully decoded, including a row that is
	// already empty when a further column is read.
	ErrRowTooShort = errors.New("encoded row too short")

	// ErrInvalidUTF8 indicates that a decoded string value is not valid UTF-8.
	// This only occurs when the encoded bytes were corrupted externally.
	ErrInvalidUTF8 = errors.New("decoded string is not valid UTF-8")

	// ErrUnsupportedType indicates a logical type the codec does not support.
	ErrUnsupportedType = errors.New("unsupported logical type")

	// ErrLengthMismatch indicates that the number of input columns does not
	// match the schema, or that input columns disagree on row count.
	ErrLengthMismatch = errors.New("input length mismatch")

	// ErrCodeSpaceExhausted indicates that a categorical dictionary ran out
	// of category codes for its physical type.
	ErrCodeSpaceExhausted = errors.New("categorical code space exhausted")
)
