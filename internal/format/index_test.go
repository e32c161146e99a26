package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/datakit/internal/buf"
)

// buildIndex assembles an index region for one type holding two items and
// two blobs, version 4.
func buildIndex(t *testing.T) *Index {
	t.Helper()
	h := Header{
		VersionHeader: VersionHeader{Magic: Magic, Version: Version4},
		SizeHeader: SizeHeader{
			NumItemTypes: 1,
			NumItems:     2,
			NumData:      2,
			SizeItems:    24,
			SizeData:     10,
		},
	}
	l, err := PlanLayout(h)
	require.NoError(t, err)
	words := []int32{
		5, 0, 2, // type 5, items [0,2)
		0, 12, // item offsets
		0, 4, // data offsets
		16, 6, // uncompressed sizes
		PackTypeAndID(5, 1), 4, 42, // item 0
		PackTypeAndID(5, 9), 4, -7, // item 1
	}
	region := make([]byte, len(words)*4)
	buf.PutWords(region, words)
	x, err := NewIndex(h, l, region)
	require.NoError(t, err)
	return x
}

func TestIndexAccessors(t *testing.T) {
	x := buildIndex(t)
	assert.Equal(t, 1, x.NumItemTypes())
	assert.Equal(t, 2, x.NumItems())
	assert.Equal(t, 2, x.NumData())
	assert.Equal(t, ItemType{TypeID: 5, Start: 0, Num: 2}, x.ItemType(0))
	assert.Equal(t, int32(12), x.ItemOffset(1))
	assert.Equal(t, int32(4), x.DataOffset(1))

	n, ok := x.UncompSize(0)
	require.True(t, ok)
	assert.Equal(t, int32(16), n)

	off, size := x.DataExtent(0)
	assert.Equal(t, [2]int32{0, 4}, [2]int32{off, size})
	off, size = x.DataExtent(1)
	assert.Equal(t, [2]int32{4, 6}, [2]int32{off, size}, "last blob ends at size_data")
}

func TestIndexItemRecords(t *testing.T) {
	x := buildIndex(t)
	h, ok := x.ItemHeaderAt(12)
	require.True(t, ok)
	assert.Equal(t, uint16(5), h.TypeID())
	assert.Equal(t, uint16(9), h.ID())
	assert.Equal(t, int32(4), h.Size)

	p, ok := x.ItemPayload(12, int(h.Size))
	require.True(t, ok)
	assert.Equal(t, []int32{-7}, p)

	_, ok = x.ItemHeaderAt(20)
	assert.False(t, ok, "header straddling the region end")
	_, ok = x.ItemHeaderAt(2)
	assert.False(t, ok, "unaligned offset")
	_, ok = x.ItemPayload(12, 8)
	assert.False(t, ok, "payload past the region end")
	_, ok = x.ItemPayload(0, 3)
	assert.False(t, ok, "payload size not a multiple of 4")
}

func TestNewIndexWrongRegionSize(t *testing.T) {
	h := sampleHeader()
	l, err := PlanLayout(h)
	require.NoError(t, err)
	_, err = NewIndex(h, l, make([]byte, l.IndexSize-4))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestIndexVersion3HasNoSizes(t *testing.T) {
	h := Header{VersionHeader: VersionHeader{Magic: Magic, Version: Version3},
		SizeHeader: SizeHeader{NumData: 1, SizeData: 3}}
	l, err := PlanLayout(h)
	require.NoError(t, err)
	x, err := NewIndex(h, l, make([]byte, l.IndexSize))
	require.NoError(t, err)

	_, ok := x.UncompSize(0)
	assert.False(t, ok, "version 3 has no uncompressed sizes")
	_, size := x.DataExtent(0)
	assert.Equal(t, int32(3), size)
}
