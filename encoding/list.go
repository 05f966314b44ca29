package encoding

import (
	"fmt"

	"github.com/borchero/rowcodec/errs"
	"github.com/borchero/rowcodec/format"
)

// Nested lists frame their elements: each element's encoding is preceded by a
// continuation marker and the list ends with a terminator. The marker exceeds
// the terminator, so a list sorts before any longer list sharing its prefix,
// and both stay clear of the reserved sentinel pair. A null list is the bare
// sentinel byte; an empty list is the bare terminator.
const (
	listItemMarker = 0x02
	listTerminator = 0x01
)

// ListMarkers returns the continuation marker and terminator bytes for the
// given options, with the descending inversion applied. The null sentinel is
// never inverted.
func ListMarkers(opt format.Options) (marker, term byte) {
	invert := invertMask(opt)
	return invert ^ listItemMarker, invert ^ listTerminator
}

// ListLength returns the encoded size of one list value given the encoded
// sizes of its elements: a marker per element plus the terminator, or the
// bare sentinel for nulls.
func ListLength(elemSizes []int, null bool) int {
	if null {
		return 1
	}

	size := 1
	for _, n := range elemSizes {
		size += 1 + n
	}

	return size
}

// ListHeader classifies the byte at the start of a list row segment.
type ListHeader uint8

const (
	ListHeaderNull ListHeader = iota // the list itself is null
	ListHeaderItem                   // an element encoding follows
	ListHeaderEnd                    // the list ends here
)

// PeekListHeader classifies the next framing byte of a list encoding.
// atStart guards the null sentinel, which is only valid as the first byte.
func PeekListHeader(row []byte, opt format.Options, atStart bool) (ListHeader, error) {
	if len(row) == 0 {
		return 0, fmt.Errorf("reading list framing byte: %w", errs.ErrRowTooShort)
	}

	if atStart && row[0] == opt.NullSentinel() {
		return ListHeaderNull, nil
	}

	marker, term := ListMarkers(opt)
	switch row[0] {
	case marker:
		return ListHeaderItem, nil
	case term:
		return ListHeaderEnd, nil
	default:
		return 0, fmt.Errorf("unexpected list framing byte 0x%02X: %w", row[0], errs.ErrSchemaMismatch)
	}
}
