package datafile

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/datakit/internal/compress"
)

// crcChunkSize is the read size used when checksumming the whole file.
const crcChunkSize = 64 << 10

// CRC returns the CRC-32 (IEEE, as zlib computes it) of the entire file,
// headers included. The file is read once; later calls return the stored
// value.
func (r *Reader) CRC() (uint32, error) {
	if err := r.ensureOpen(); err != nil {
		return 0, err
	}
	if r.crcValid {
		return r.crc, nil
	}

	chunk := make([]byte, crcChunkSize)
	var (
		crc uint32
		pos int64
	)
	for {
		n, err := r.src.ReadAt(chunk, pos)
		crc = compress.UpdateCRC(crc, chunk[:n])
		pos += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, wrapIOErr(fmt.Errorf("crc at %d: %w", pos, err))
		}
	}

	r.crc, r.crcValid = crc, true
	return crc, nil
}
