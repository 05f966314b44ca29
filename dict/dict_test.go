package dict

import (
	"fmt"
	"testing"

	"github.com/borchero/rowcodec/errs"
	"github.com/stretchr/testify/require"
)

func TestDict_Insert(t *testing.T) {
	d := New(16)

	a, err := d.Insert("apple")
	require.NoError(t, err)
	require.Equal(t, uint32(0), a)

	b, err := d.Insert("banana")
	require.NoError(t, err)
	require.Equal(t, uint32(1), b)

	// Repeated inserts return the original code.
	again, err := d.Insert("apple")
	require.NoError(t, err)
	require.Equal(t, a, again)

	require.Equal(t, 2, d.Len())
	require.Equal(t, "apple", d.Value(a))
	require.Equal(t, "banana", d.Value(b))
}

func TestDict_EmptyString(t *testing.T) {
	d := New(4)

	code, err := d.Insert("")
	require.NoError(t, err)
	require.Equal(t, uint32(0), code)
	require.Equal(t, "", d.Value(code))
}

func TestDict_CodeSpaceExhausted(t *testing.T) {
	d := New(3)
	for i := 0; i < 3; i++ {
		_, err := d.Insert(fmt.Sprintf("value-%d", i))
		require.NoError(t, err)
	}

	// Known strings still resolve after the limit is reached.
	code, err := d.Insert("value-1")
	require.NoError(t, err)
	require.Equal(t, uint32(1), code)

	_, err = d.Insert("one-too-many")
	require.ErrorIs(t, err, errs.ErrCodeSpaceExhausted)
	require.Equal(t, 3, d.Len())
}
