package compress

import (
	"bytes"
	"errors"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("tile layer "), 64)
	z, err := Compress(src)
	require.NoError(t, err)
	require.Less(t, len(z), len(src))

	dst := make([]byte, len(src))
	n, err := Decompress(dst, z)
	require.NoError(t, err)
	require.Equal(t, len(src), n)
	require.Equal(t, src, dst)
}

func TestDecompressShortOutput(t *testing.T) {
	z, err := Compress([]byte("abc"))
	require.NoError(t, err)

	dst := make([]byte, 10)
	n, err := Decompress(dst, z)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestDecompressOverflow(t *testing.T) {
	z, err := Compress([]byte("abcdef"))
	require.NoError(t, err)

	_, err = Decompress(make([]byte, 4), z)
	require.True(t, errors.Is(err, ErrOutputOverflow), "got %v", err)
}

func TestDecompressEmpty(t *testing.T) {
	z, err := Compress(nil)
	require.NoError(t, err)

	n, err := Decompress(nil, z)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Decompress(make([]byte, 8), []byte("not a zlib stream"))
	require.Error(t, err)

	z, err := Compress([]byte("payload bytes"))
	require.NoError(t, err)
	z[len(z)-1] ^= 0xFF // corrupt adler32 trailer
	_, err = Decompress(make([]byte, 13), z)
	require.Error(t, err)
}

func TestUpdateCRC(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	require.Equal(t, uint32(0x414fa339), UpdateCRC(0, data))

	var crc uint32
	for i := 0; i < len(data); i += 5 {
		end := min(i+5, len(data))
		crc = UpdateCRC(crc, data[i:end])
	}
	require.Equal(t, crc32.ChecksumIEEE(data), crc)
}
