// Package compress wraps the zlib codec and the CRC-32 accumulator used for
// datafile blobs and whole-file checksums.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrOutputOverflow indicates the stream decompressed to more bytes than the
// destination can hold.
var ErrOutputOverflow = errors.New("compress: output exceeds destination")

// Decompress inflates the zlib stream src into dst and returns the number of
// bytes written. A stream shorter than dst is not an error; the caller
// compares n against the size it expected. A stream longer than dst fails
// with ErrOutputOverflow. The stream trailer checksum is always verified.
func Decompress(dst, src []byte) (int, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("zlib header: %w", err)
	}
	defer zr.Close()

	n, err := io.ReadFull(zr, dst)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, nil
	default:
		return n, fmt.Errorf("zlib stream: %w", err)
	}

	var extra [1]byte
	m, err := zr.Read(extra[:])
	if m > 0 {
		return n, ErrOutputOverflow
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("zlib stream: %w", err)
	}
	return n, nil
}

// Compress deflates src into a zlib stream at the default level.
func Compress(src []byte) ([]byte, error) {
	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
