package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScratchBuffer(t *testing.T) {
	sb := GetScratch()
	defer PutScratch(sb)

	require.Equal(t, 0, sb.Len())

	sb.Append('a', 'b', 'c')
	require.Equal(t, 3, sb.Len())
	require.Equal(t, []byte("abc"), sb.Bytes())
	require.Equal(t, "abc", sb.String())

	sb.Reset()
	require.Equal(t, 0, sb.Len())
}

func TestPutScratch_DropsOversized(t *testing.T) {
	sb := &ScratchBuffer{B: make([]byte, 0, ScratchMaxThreshold+1)}
	PutScratch(sb) // must not panic, buffer is simply dropped

	PutScratch(nil) // nil is a no-op
}

func TestGetRowSlices(t *testing.T) {
	rows, cleanup := GetRowSlices(16)
	require.Len(t, rows, 16)
	for i := range rows {
		rows[i] = []byte{byte(i)}
	}
	cleanup()

	// A fresh slice from the pool must not leak previous row contents.
	rows2, cleanup2 := GetRowSlices(8)
	defer cleanup2()
	require.Len(t, rows2, 8)
	for _, r := range rows2 {
		require.Nil(t, r)
	}
}
