package format

import (
	"fmt"

	"github.com/joshuapare/datakit/internal/buf"
)

// Index is the decoded index region: one contiguous word buffer plus the
// layout that slices it into tables. Accessors assume their argument was
// range-checked by the caller; item record accessors check bounds themselves
// because record offsets come from the file.
type Index struct {
	Header Header
	Layout Layout
	words  []int32
}

// NewIndex decodes region, which must be exactly l.IndexSize bytes.
func NewIndex(h Header, l Layout, region []byte) (*Index, error) {
	if int64(len(region)) != l.IndexSize {
		return nil, fmt.Errorf("index region: have %d bytes, need %d: %w", len(region), l.IndexSize, ErrTruncated)
	}
	return &Index{Header: h, Layout: l, words: buf.Words(region)}, nil
}

// NumItemTypes returns the number of type table entries.
func (x *Index) NumItemTypes() int { return x.Layout.ItemTypes.Count }

// NumItems returns the number of item records.
func (x *Index) NumItems() int { return x.Layout.ItemOffsets.Count }

// NumData returns the number of data blobs.
func (x *Index) NumData() int { return x.Layout.DataOffsets.Count }

// ItemType returns type table entry i.
func (x *Index) ItemType(i int) ItemType {
	w := x.words[x.Layout.ItemTypes.Off+i*ItemTypeWords:]
	return ItemType{TypeID: w[0], Start: w[1], Num: w[2]}
}

// ItemOffset returns the stored byte offset of item i within the item region.
func (x *Index) ItemOffset(i int) int32 {
	return x.words[x.Layout.ItemOffsets.Off+i]
}

// DataOffset returns the stored byte offset of blob i within the data region.
func (x *Index) DataOffset(i int) int32 {
	return x.words[x.Layout.DataOffsets.Off+i]
}

// UncompSize returns the recorded uncompressed size of blob i. ok is false
// for version 3 files, which have no size table.
func (x *Index) UncompSize(i int) (size int32, ok bool) {
	if x.Layout.UncompSizes.Count == 0 {
		return 0, false
	}
	return x.words[x.Layout.UncompSizes.Off+i], true
}

// DataExtent returns the on-disk byte range of blob i relative to the data
// region. The blob ends where the next one starts, or at SizeData.
func (x *Index) DataExtent(i int) (off, size int32) {
	off = x.DataOffset(i)
	end := x.Header.SizeData
	if i+1 < x.NumData() {
		end = x.DataOffset(i + 1)
	}
	return off, end - off
}

// ItemHeaderAt decodes the record header at byte offset off of the item
// region. ok is false when the header does not fit or off is unaligned.
func (x *Index) ItemHeaderAt(off int) (h ItemHeader, ok bool) {
	w, ok := x.itemWords(off, ItemHeaderSize)
	if !ok {
		return ItemHeader{}, false
	}
	return ItemHeader{TypeAndID: w[0], Size: w[1]}, true
}

// ItemPayload returns the payload words of the record at byte offset off,
// whose header declares size payload bytes. The slice aliases the index
// buffer.
func (x *Index) ItemPayload(off int, size int) ([]int32, bool) {
	if size < 0 || size%WordSize != 0 {
		return nil, false
	}
	return x.itemWords(off+ItemHeaderSize, size)
}

func (x *Index) itemWords(off, n int) ([]int32, bool) {
	if off < 0 || off%WordSize != 0 {
		return nil, false
	}
	if _, err := buf.CheckRange(int(x.Header.SizeItems), off, 1, n); err != nil {
		return nil, false
	}
	start := x.Layout.Items.Off + off/WordSize
	return x.words[start : start+n/WordSize : start+n/WordSize], true
}

// Release drops the word buffer. The Index must not be used afterwards.
func (x *Index) Release() { x.words = nil }
