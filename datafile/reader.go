package datafile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/datakit/datafile/verify"
	"github.com/joshuapare/datakit/internal/format"
	"github.com/joshuapare/datakit/pkg/types"
)

// Reader serves items and blobs from one validated datafile. It is not safe
// for concurrent use; wrap it in a mutex if several goroutines share it.
type Reader struct {
	src  Source
	path string
	opts types.OpenOptions
	log  *slog.Logger

	idx     *format.Index
	fileLen int64

	blobs [][]byte // loaded blobs; nil means not loaded

	crc      uint32
	crcValid bool

	closed bool
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Open opens the datafile at path, validates its header and index region
// and returns a ready Reader. Nothing stays open when an error is returned.
func Open(path string, opts types.OpenOptions) (*Reader, error) {
	log := loggerFor(opts)
	var (
		src Source
		err error
	)
	if opts.Mmap {
		src, err = MapFile(path)
	} else {
		src, err = OpenFile(path)
	}
	if err != nil {
		log.Error("open datafile", "path", path, "err", err)
		return nil, wrapIOErr(fmt.Errorf("open %s: %w", path, err))
	}
	opts.Logger = log.With("path", path)
	r, err := OpenSource(src, opts)
	if err != nil {
		return nil, err
	}
	r.path = path
	return r, nil
}

// OpenBytes opens a datafile held in memory.
func OpenBytes(b []byte, opts types.OpenOptions) (*Reader, error) {
	return OpenSource(NewBytesSource(b), opts)
}

// OpenSource opens a datafile served by src. The Reader takes ownership of
// src; on error src has already been closed.
func OpenSource(src Source, opts types.OpenOptions) (*Reader, error) {
	log := loggerFor(opts)
	if opts.MaxDataSize <= 0 {
		opts.MaxDataSize = types.DefaultMaxDataSize
	}

	idx, fileLen, err := loadIndex(src, opts, log)
	if err != nil {
		_ = src.Close()
		kind := types.ErrKindIO
		var te *types.Error
		if errors.As(err, &te) {
			kind = te.Kind
		}
		log.Error("open datafile", "kind", kind.String(), "err", err)
		return nil, err
	}

	return &Reader{
		src:     src,
		opts:    opts,
		log:     log,
		idx:     idx,
		fileLen: fileLen,
		blobs:   make([][]byte, idx.NumData()),
	}, nil
}

// loadIndex runs header decoding, layout planning, the file length check,
// the index region read and structural validation, in that order.
func loadIndex(src Source, opts types.OpenOptions, log *slog.Logger) (*format.Index, int64, error) {
	h, err := format.ReadHeader(src)
	if err != nil {
		return nil, 0, wrapFormatErr(err)
	}
	log.Debug("datafile header",
		"version", h.Version,
		"swapped", h.Swapped,
		"size", h.Size,
		"swaplen", h.SwapLen,
		"num_item_types", h.NumItemTypes,
		"num_items", h.NumItems,
		"num_data", h.NumData,
		"size_items", h.SizeItems,
		"size_data", h.SizeData,
	)

	layout, err := format.PlanLayout(h)
	if err != nil {
		return nil, 0, wrapFormatErr(err)
	}
	fileLen, err := src.Len()
	if err != nil {
		return nil, 0, wrapIOErr(fmt.Errorf("file length: %w", err))
	}
	if err := layout.CheckFileSize(fileLen); err != nil {
		return nil, 0, wrapFormatErr(err)
	}

	region := make([]byte, layout.IndexSize)
	if err := readFull(src, region, format.HeaderSize); err != nil {
		return nil, 0, wrapFormatErr(fmt.Errorf("index region: %w", err))
	}
	idx, err := format.NewIndex(h, layout, region)
	if err != nil {
		return nil, 0, wrapFormatErr(err)
	}

	if err := verify.AllInvariants(idx); err != nil {
		return nil, 0, wrapFormatErr(err)
	}
	if opts.Strict {
		if err := verify.Strict(idx); err != nil {
			return nil, 0, wrapFormatErr(err)
		}
	}
	return idx, fileLen, nil
}

func loggerFor(opts types.OpenOptions) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return discardLogger
}

// Close releases cached blobs, the index buffer and the source. Calling
// Close again is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.blobs = nil
	r.idx.Release()
	if err := r.src.Close(); err != nil {
		return wrapIOErr(err)
	}
	return nil
}

func (r *Reader) ensureOpen() error {
	if r.closed {
		return types.ErrClosed
	}
	return nil
}

// Path returns the path passed to Open, or "" for other sources.
func (r *Reader) Path() string { return r.path }

// Info reports the header fields and planned layout.
func (r *Reader) Info() types.Info {
	h, l := r.idx.Header, r.idx.Layout
	return types.Info{
		Version:      h.Version,
		Swapped:      h.Swapped,
		Size:         h.Size,
		SwapLen:      h.SwapLen,
		NumItemTypes: int(h.NumItemTypes),
		NumItems:     int(h.NumItems),
		NumData:      int(h.NumData),
		SizeItems:    int(h.SizeItems),
		SizeData:     int(h.SizeData),
		IndexSize:    l.IndexSize,
		DataStart:    l.DataStart,
		FileSize:     r.fileLen,
	}
}

// Version returns the format version, 3 or 4.
func (r *Reader) Version() int32 { return r.idx.Header.Version }

// NumItemTypes returns the number of type table entries.
func (r *Reader) NumItemTypes() int { return r.idx.NumItemTypes() }

// NumItems returns the number of items.
func (r *Reader) NumItems() int { return r.idx.NumItems() }

// NumData returns the number of data blobs.
func (r *Reader) NumData() int { return r.idx.NumData() }

// ItemType returns type table entry index.
func (r *Reader) ItemType(index int) (types.ItemTypeRange, error) {
	if err := r.ensureOpen(); err != nil {
		return types.ItemTypeRange{}, err
	}
	if index < 0 || index >= r.idx.NumItemTypes() {
		return types.ItemTypeRange{}, outOfRange("item type", index, r.idx.NumItemTypes())
	}
	t := r.idx.ItemType(index)
	return types.ItemTypeRange{TypeID: uint16(t.TypeID), Start: int(t.Start), Num: int(t.Num)}, nil
}

// ItemRead returns item index. Item.Data aliases the index buffer.
func (r *Reader) ItemRead(index int) (types.Item, error) {
	if err := r.ensureOpen(); err != nil {
		return types.Item{}, err
	}
	if index < 0 || index >= r.idx.NumItems() {
		return types.Item{}, outOfRange("item", index, r.idx.NumItems())
	}
	off := int(r.idx.ItemOffset(index))
	h, ok := r.idx.ItemHeaderAt(off)
	if !ok {
		return types.Item{}, &types.Error{Kind: types.ErrKindMalformed, Msg: fmt.Sprintf("item %d header out of bounds", index)}
	}
	data, ok := r.idx.ItemPayload(off, int(h.Size))
	if !ok {
		return types.Item{}, &types.Error{Kind: types.ErrKindMalformed, Msg: fmt.Sprintf("item %d payload out of bounds", index)}
	}
	return types.Item{TypeID: h.TypeID(), ID: h.ID(), Data: data}, nil
}

// TypeIndexes returns the item index range of typeID. A type that is not
// present yields (-1, 0).
func (r *Reader) TypeIndexes(typeID uint16) (start, num int) {
	if r.closed {
		return -1, 0
	}
	for i := 0; i < r.idx.NumItemTypes(); i++ {
		if t := r.idx.ItemType(i); t.TypeID == int32(typeID) {
			return int(t.Start), int(t.Num)
		}
	}
	return -1, 0
}

// ItemFind returns the first item of typeID with the given id. A missing
// item is reported through found, not as an error.
func (r *Reader) ItemFind(typeID, id uint16) (item types.Item, found bool, err error) {
	if err := r.ensureOpen(); err != nil {
		return types.Item{}, false, err
	}
	start, num := r.TypeIndexes(typeID)
	for i := start; i < start+num; i++ {
		it, err := r.ItemRead(i)
		if err != nil {
			return types.Item{}, false, err
		}
		if it.ID == id {
			return it, true, nil
		}
	}
	return types.Item{}, false, nil
}
