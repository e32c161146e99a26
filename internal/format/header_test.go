package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	return Header{
		VersionHeader: VersionHeader{Magic: Magic, Version: Version4},
		SizeHeader: SizeHeader{
			Size:         120,
			SwapLen:      100,
			NumItemTypes: 2,
			NumItems:     3,
			NumData:      1,
			SizeItems:    36,
			SizeData:     20,
		},
	}
}

func TestParseHeaderRoundTrip(t *testing.T) {
	for _, h := range []Header{
		sampleHeader(),
		{VersionHeader: VersionHeader{Magic: Magic, Version: Version3}},
		{VersionHeader: VersionHeader{Magic: Magic, Version: Version4, Swapped: true},
			SizeHeader: SizeHeader{Size: 7, SwapLen: 7, SizeItems: 4}},
	} {
		enc := h.Bytes()
		got, err := ParseHeader(enc)
		require.NoError(t, err, "%+v", h)
		require.Equal(t, h, got)
		require.Equal(t, enc, got.Bytes(), "re-encoding differs")
	}
}

func TestParseVersionHeaderMagic(t *testing.T) {
	b := sampleHeader().Bytes()
	_, err := ParseVersionHeader(b)
	require.NoError(t, err, "canonical magic")

	copy(b, MagicSwapped[:])
	v, err := ParseVersionHeader(b)
	require.NoError(t, err, "swapped magic")
	assert.True(t, v.Swapped)
	assert.Equal(t, Magic, v.Magic, "swapped magic is normalized")

	// Every single-bit flip of either accepted magic is rejected.
	for _, m := range [][4]byte{Magic, MagicSwapped} {
		for bit := 0; bit < 32; bit++ {
			bad := m
			bad[bit/8] ^= 1 << (bit % 8)
			copy(b, bad[:])
			_, err := ParseVersionHeader(b)
			require.ErrorIs(t, err, ErrSignatureMismatch, "magic %q", bad[:])
		}
	}
}

func TestParseVersionHeaderVersion(t *testing.T) {
	b := sampleHeader().Bytes()
	for _, v := range []int32{0, 1, 2, 5, -3} {
		PutI32(b, VersionOffset, v)
		_, err := ParseVersionHeader(b)
		require.ErrorIs(t, err, ErrUnsupportedVersion, "version %d", v)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	b := sampleHeader().Bytes()
	for _, n := range []int{0, 4, VersionHeaderSize - 1, VersionHeaderSize, HeaderSize - 1} {
		_, err := ParseHeader(b[:n])
		require.ErrorIs(t, err, ErrTruncated, "len %d", n)
	}
}

func TestSizeHeaderCheck(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SizeHeader)
		want   string
	}{
		{"negative size", func(s *SizeHeader) { s.Size = -1 }, "size is negative"},
		{"negative num_items", func(s *SizeHeader) { s.NumItems = -1 }, "num_items is negative"},
		{"negative size_data", func(s *SizeHeader) { s.SizeData = -8 }, "size_data is negative"},
		{"unaligned items", func(s *SizeHeader) { s.SizeItems = 30 }, "not divisible by 4"},
		{"swaplen too big", func(s *SizeHeader) { s.SwapLen = s.Size + 1 }, "less than swaplen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := sampleHeader()
			tc.mutate(&h.SizeHeader)
			_, err := ParseHeader(h.Bytes())
			require.ErrorIs(t, err, ErrMalformedHeader)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestReadHeader(t *testing.T) {
	h := sampleHeader()
	got, err := ReadHeader(bytes.NewReader(append(h.Bytes(), 0xAA, 0xBB)))
	require.NoError(t, err)
	require.Equal(t, h, got)

	_, err = ReadHeader(bytes.NewReader(h.Bytes()[:20]))
	require.ErrorIs(t, err, ErrTruncated, "short source")

	bad := h.Bytes()[:6]
	copy(bad, "XXXX")
	_, err = ReadHeader(bytes.NewReader(bad))
	require.ErrorIs(t, err, ErrTruncated, "short source with bad magic")
}

func TestDeclaredSize(t *testing.T) {
	h := sampleHeader()
	// 20 + 12*2 + 4*3 + 4*1 + 4*1 (v4) + 36 + 20
	assert.Equal(t, int64(120), h.DeclaredSize())
	h.Version = Version3
	assert.Equal(t, int64(116), h.DeclaredSize())
}

func TestItemHeaderPacking(t *testing.T) {
	for _, c := range []struct{ typ, id uint16 }{{0, 0}, {1, 2}, {0xFFFF, 0xFFFF}, {0x8000, 1}} {
		h := ItemHeader{TypeAndID: PackTypeAndID(c.typ, c.id)}
		assert.Equal(t, c.typ, h.TypeID())
		assert.Equal(t, c.id, h.ID())
	}
}
