// Package encoding implements the per-type order-preserving codecs that back
// the row assembler.
//
// Every encoder writes one value per input row into a caller-provided buffer
// at the position given by a per-row write cursor, then advances that cursor
// by the number of bytes written. Callers size the buffer up front using the
// matching length functions, so encoders never allocate or bounds-check on the
// hot path.
//
// Every decoder consumes a prefix of each row's remaining byte slice and
// advances the slice in place, so decoders for successive columns can be
// chained over the same row set.
//
// The encodings are designed so that lexicographic comparison of encoded rows
// equals tuple comparison of the original values under the per-column options,
// unless the unordered variant is selected.
package encoding
