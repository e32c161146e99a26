package dfbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/datakit/internal/format"
)

func TestBytesLayout(t *testing.T) {
	f := File{
		Version: format.Version3,
		Items: []Item{
			{TypeID: 1, ID: 0, Data: []int32{5}},
			{TypeID: 1, ID: 1},
			{TypeID: 4, ID: 2, Data: []int32{6, 7}},
		},
		Data:     [][]byte{[]byte("ab"), []byte("cde")},
		Trailing: []byte{0xff},
	}
	b := MustBytes(t, f)

	h, err := format.ParseHeader(b)
	require.NoError(t, err)
	assert.EqualValues(t, 2, h.NumItemTypes)
	assert.EqualValues(t, 3, h.NumItems)
	assert.EqualValues(t, 2, h.NumData)
	assert.EqualValues(t, 3*format.ItemHeaderSize+3*format.WordSize, h.SizeItems)
	assert.EqualValues(t, 5, h.SizeData)
	assert.Equal(t, h.DeclaredSize(), int64(h.Size))
	assert.Equal(t, h.Size-h.SizeData, h.SwapLen)

	l, err := format.PlanLayout(h)
	require.NoError(t, err)
	assert.Equal(t, l.Total+1, int64(len(b)))
	assert.Equal(t, "abcde", string(b[l.DataStart:l.Total]))
}

func TestBytesOverrides(t *testing.T) {
	f := File{
		Swapped:     true,
		Items:       []Item{{TypeID: 0, ID: 0}},
		Types:       []format.ItemType{{TypeID: 9, Start: 0, Num: 1}},
		ItemOffsets: []int32{4},
		Header:      func(h *format.Header) { h.Size++ },
	}
	b := MustBytes(t, f)
	assert.Equal(t, format.MagicSwapped[:], b[:4])

	h, err := format.ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h.DeclaredSize()+1, int64(h.Size))

	idx := format.HeaderSize
	assert.EqualValues(t, 9, format.ReadI32(b, idx))
	assert.EqualValues(t, 4, format.ReadI32(b, idx+format.ItemTypeSize))
}
