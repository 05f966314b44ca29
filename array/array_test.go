package array

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmapBuilder(t *testing.T) {
	b := NewBitmapBuilder(4)
	b.AppendN(70, true)
	b.Append(false)
	b.Append(true)
	require.Equal(t, 72, b.Len())

	bm := b.Finish()
	require.Equal(t, 72, bm.Len())
	require.Equal(t, 71, bm.SetCount())
	require.True(t, bm.Get(0))
	require.True(t, bm.Get(69))
	require.False(t, bm.Get(70))
	require.True(t, bm.Get(71))
}

func TestBinaryView_NoValidity(t *testing.T) {
	a := NewStringView([]string{"", "hello", "b"}, nil)
	require.Equal(t, 3, a.Len())
	require.Equal(t, 0, a.NullCount())
	require.False(t, a.IsNull(0))
	require.Equal(t, "", a.String(0))
	require.Equal(t, "hello", a.String(1))
	require.Equal(t, []byte("b"), a.Value(2))
	require.Nil(t, a.Validity())
}

func TestBinaryView_WithNulls(t *testing.T) {
	a := NewStringView([]string{"a", "ignored", "c"}, []bool{true, false, true})
	require.Equal(t, 3, a.Len())
	require.Equal(t, 1, a.NullCount())
	require.True(t, a.IsNull(1))
	require.Equal(t, "", a.String(1)) // null placeholder is empty
	require.Equal(t, "a", a.String(0))
	require.Equal(t, "c", a.String(2))
}

func TestBinaryViewBuilder_DeferredValidity(t *testing.T) {
	b := NewBinaryViewBuilder(3, 8)
	b.AppendValue([]byte("xy"))
	b.AppendEmpty()
	b.AppendValue([]byte("z"))
	require.Equal(t, 3, b.Len())

	bits := NewBitmapBuilder(3)
	bits.Append(true)
	bits.Append(false)
	bits.Append(true)

	a := b.Finish(bits.Finish())
	require.Equal(t, "xy", a.String(0))
	require.True(t, a.IsNull(1))
	require.Equal(t, "z", a.String(2))
}

func TestPrimitive(t *testing.T) {
	a := NewPrimitive([]int32{1, 2, 3}, []bool{true, false, true})
	require.Equal(t, 3, a.Len())
	require.Equal(t, 1, a.NullCount())
	require.True(t, a.IsNull(1))
	require.Equal(t, int32(0), a.Value(1)) // zeroed placeholder
	require.Equal(t, int32(3), a.Value(2))

	all := NewPrimitive([]float64{1.5, 2.5}, nil)
	require.Equal(t, 0, all.NullCount())
	require.Equal(t, []float64{1.5, 2.5}, all.Values())
}

func TestList(t *testing.T) {
	elems := NewPrimitive([]int64{1, 2, 3, 4}, nil)
	bits := NewBitmapBuilder(3)
	bits.Append(true)
	bits.Append(false)
	bits.Append(true)

	a := NewList(elems, []int{0, 2, 2, 4}, bits.Finish())
	require.Equal(t, 3, a.Len())
	require.True(t, a.IsNull(1))
	require.Equal(t, 1, a.NullCount())

	start, end := a.Bounds(2)
	require.Equal(t, 2, start)
	require.Equal(t, 4, end)
	require.Equal(t, elems, a.Elems())
}
