package format

// Options is a packed field of per-column encoding flags.
//
// Bit 0 is the sort direction, 0 means ascending, 1 means descending.
// Bit 1 is the null position, 0 means nulls sort first, 1 means nulls sort last.
// Bit 2 selects the unordered variant, which is invertible and suitable for
// hashing and equality but not for ordered comparison.
// Bits 3-7 are reserved and must be zero.
type Options uint8

const (
	// Descending inverts the encoded bytes so that lexicographic byte order
	// equals descending value order.
	Descending Options = 0x01

	// NullsLast makes null values sort after every non-null value by using
	// 0xFF instead of 0x00 as the null sentinel. Fixed-width columns invert
	// their whole block under Descending, sentinel included, so for them the
	// null position is reversed when Descending is also set.
	NullsLast Options = 0x02

	// Unordered selects the cheaper invertible variant whose bytes are stable
	// for hashing and equality but carry no ordering guarantee.
	Unordered Options = 0x04
)

const (
	// NullSentinelFirst is the sentinel byte marking a null when nulls sort
	// first. Every non-null encoding starts with a byte >= 0x01, so 0x00
	// sorts before all of them.
	NullSentinelFirst = 0x00

	// NullSentinelLast is the sentinel byte marking a null when nulls sort
	// last. It exceeds every non-null first byte.
	NullSentinelLast = 0xFF
)

// IsDescending returns whether the descending flag is set.
func (o Options) IsDescending() bool {
	return o&Descending != 0
}

// IsNullsLast returns whether nulls sort after non-null values.
func (o Options) IsNullsLast() bool {
	return o&NullsLast != 0
}

// IsUnordered returns whether the unordered variant is selected.
func (o Options) IsUnordered() bool {
	return o&Unordered != 0
}

// NullSentinel returns the byte marking a null value in the first position of
// a column's encoding: 0xFF if nulls sort last, 0x00 otherwise.
//
// The sentinel is chosen from the reserved pair {0x00, 0xFF} and is never
// inverted for descending variable-length values, so it cannot collide with
// inverted payload bytes.
func (o Options) NullSentinel() byte {
	if o.IsNullsLast() {
		return NullSentinelLast
	}

	return NullSentinelFirst
}
