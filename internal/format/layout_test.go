package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLayoutVersion4(t *testing.T) {
	l, err := PlanLayout(sampleHeader())
	require.NoError(t, err)

	want := []Range{
		{Off: 0, Count: 2, Stride: 3},
		{Off: 6, Count: 3, Stride: 1},
		{Off: 9, Count: 1, Stride: 1},
		{Off: 10, Count: 1, Stride: 1},
		{Off: 11, Count: 9, Stride: 1},
	}
	got := []Range{l.ItemTypes, l.ItemOffsets, l.DataOffsets, l.UncompSizes, l.Items}
	assert.Equal(t, want, got)
	assert.Equal(t, int64(80), l.IndexSize)
	assert.Equal(t, int64(116), l.DataStart)
	assert.Equal(t, int64(136), l.Total)
}

func TestPlanLayoutVersion3HasNoSizeTable(t *testing.T) {
	h := sampleHeader()
	h.Version = Version3
	l, err := PlanLayout(h)
	require.NoError(t, err)
	assert.Zero(t, l.UncompSizes.Count)
	assert.Equal(t, 10, l.Items.Off)
	assert.Equal(t, int64(76), l.IndexSize)
}

func TestPlanLayoutOverflow(t *testing.T) {
	cases := []SizeHeader{
		{NumItemTypes: math.MaxInt32},
		{NumItems: math.MaxInt32, NumData: math.MaxInt32},
		{SizeItems: math.MaxInt32 - 3},
		{SizeData: math.MaxInt32},
		{SizeItems: 1 << 30, SizeData: 1 << 30},
	}
	for _, s := range cases {
		h := Header{VersionHeader: VersionHeader{Magic: Magic, Version: Version4}, SizeHeader: s}
		l, err := PlanLayout(h)
		if err == nil {
			require.LessOrEqual(t, l.Total, int64(math.MaxInt32), "%+v escaped 32 bits", s)
			continue
		}
		require.ErrorIs(t, err, ErrMalformedHeader, "%+v", s)
	}
}

func TestPlanLayoutLargestFit(t *testing.T) {
	h := Header{VersionHeader: VersionHeader{Magic: Magic, Version: Version3},
		SizeHeader: SizeHeader{SizeData: math.MaxInt32 - HeaderSize}}
	l, err := PlanLayout(h)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt32), l.Total)

	h.SizeData++
	_, err = PlanLayout(h)
	require.ErrorIs(t, err, ErrMalformedHeader, "one past the limit")
}

func TestCheckFileSize(t *testing.T) {
	l, err := PlanLayout(sampleHeader())
	require.NoError(t, err)

	require.NoError(t, l.CheckFileSize(l.Total), "exact size")
	require.NoError(t, l.CheckFileSize(l.Total+100), "trailing bytes")
	require.ErrorIs(t, l.CheckFileSize(l.Total-1), ErrTruncated, "short file")
}
