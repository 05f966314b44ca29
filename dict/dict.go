// Package dict provides the categorical dictionary used by the categorical
// decoder variant: a mapping from distinct strings to dense small-integer
// category codes.
//
// Lookups are hash-consed on the xxHash64 of the string; hash collisions fall
// back to comparing the interned strings, so codes are always exact. Interned
// strings live for the lifetime of the dictionary.
package dict

import (
	"fmt"

	"github.com/borchero/rowcodec/errs"
	"github.com/cespare/xxhash/v2"
)

// Dict maps distinct strings to dense category codes, assigned in insertion
// order starting at 0.
//
// Dict is not safe for concurrent use.
type Dict struct {
	buckets map[uint64][]uint32
	values  []string
	limit   uint32
}

// New creates a dictionary that refuses to assign more than limit codes.
// The limit is typically the code space of the physical type the codes
// materialise as, e.g. 256 for uint8 categories.
func New(limit uint32) *Dict {
	return &Dict{
		buckets: make(map[uint64][]uint32),
		limit:   limit,
	}
}

// Insert returns the category code for s, interning it on first sight.
// It returns ErrCodeSpaceExhausted once the dictionary holds limit codes and
// s is not among them.
func (d *Dict) Insert(s string) (uint32, error) {
	h := xxhash.Sum64String(s)
	for _, code := range d.buckets[h] {
		if d.values[code] == s {
			return code, nil
		}
	}

	if uint32(len(d.values)) >= d.limit { //nolint:gosec
		return 0, fmt.Errorf("dictionary holds %d codes: %w", d.limit, errs.ErrCodeSpaceExhausted)
	}

	code := uint32(len(d.values)) //nolint:gosec
	d.values = append(d.values, s)
	d.buckets[h] = append(d.buckets[h], code)

	return code, nil
}

// Value returns the string interned for the given code.
func (d *Dict) Value(code uint32) string {
	return d.values[code]
}

// Len returns the number of distinct strings interned so far.
func (d *Dict) Len() int {
	return len(d.values)
}
