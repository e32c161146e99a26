package datafile

import (
	"fmt"

	"github.com/joshuapare/datakit/internal/compress"
	"github.com/joshuapare/datakit/pkg/types"
)

func (r *Reader) checkData(index int) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}
	if index < 0 || index >= r.idx.NumData() {
		return outOfRange("data", index, r.idx.NumData())
	}
	return nil
}

// DataLoad returns the contents of blob index, reading and (for version 4)
// inflating it on first use. Later calls return the cached buffer without
// touching the source until DataUnload or Close. A failed load is not
// cached. The returned slice must not be modified.
func (r *Reader) DataLoad(index int) ([]byte, error) {
	if err := r.checkData(index); err != nil {
		return nil, err
	}
	if b := r.blobs[index]; b != nil {
		return b, nil
	}

	off, size := r.idx.DataExtent(index)
	raw := make([]byte, size)
	if err := readFull(r.src, raw, r.idx.Layout.DataStart+int64(off)); err != nil {
		return nil, wrapFormatErr(fmt.Errorf("data %d: %w", index, err))
	}

	want, compressed := r.idx.UncompSize(index)
	if !compressed {
		r.blobs[index] = raw
		return raw, nil
	}

	if int(want) > r.opts.MaxDataSize {
		return nil, r.decompressErr(index, fmt.Sprintf("uncompressed size %d exceeds limit %d", want, r.opts.MaxDataSize), nil)
	}
	out := make([]byte, want)
	n, err := compress.Decompress(out, raw)
	if err != nil {
		return nil, r.decompressErr(index, "decompression error", err)
	}
	if n != int(want) {
		return nil, r.decompressErr(index, fmt.Sprintf("wrong size: got %d, wanted %d", n, want), nil)
	}
	r.blobs[index] = out
	return out, nil
}

func (r *Reader) decompressErr(index int, msg string, cause error) error {
	r.log.Error("data load", "index", index, "msg", msg, "err", cause)
	return &types.Error{
		Kind: types.ErrKindDataDecompress,
		Msg:  fmt.Sprintf("data %d: %s", index, msg),
		Err:  cause,
	}
}

// DataUnload drops the cached contents of blob index, if any.
func (r *Reader) DataUnload(index int) error {
	if err := r.checkData(index); err != nil {
		return err
	}
	r.blobs[index] = nil
	return nil
}

// DataSize returns the usable size of blob index without loading it: the
// recorded uncompressed size for version 4, the stored size otherwise.
func (r *Reader) DataSize(index int) (int, error) {
	if err := r.checkData(index); err != nil {
		return 0, err
	}
	if want, ok := r.idx.UncompSize(index); ok {
		return int(want), nil
	}
	_, size := r.idx.DataExtent(index)
	return int(size), nil
}

// DataCompressedSize returns the number of bytes blob index occupies in the file.
func (r *Reader) DataCompressedSize(index int) (int, error) {
	if err := r.checkData(index); err != nil {
		return 0, err
	}
	_, size := r.idx.DataExtent(index)
	return int(size), nil
}
