package format

import (
	"fmt"

	"github.com/joshuapare/datakit/internal/buf"
)

// Range describes one table inside the index region in 32-bit words:
// Count elements of Stride words each, starting at word Off.
type Range struct {
	Off    int
	Count  int
	Stride int
}

// Words returns the number of words the table occupies.
func (r Range) Words() int { return r.Count * r.Stride }

// End returns the word offset one past the table.
func (r Range) End() int { return r.Off + r.Words() }

// Layout is the planned shape of a datafile, computed once from the header.
// Table ranges are relative to the start of the index region, which begins
// at HeaderSize in the file.
type Layout struct {
	ItemTypes   Range
	ItemOffsets Range
	DataOffsets Range
	UncompSizes Range // Count is zero for version 3
	Items       Range // Stride 1; Count is SizeItems/4

	IndexSize int64 // bytes in the index region
	DataStart int64 // file offset of the first data blob
	Total     int64 // minimum file length
}

// PlanLayout computes table positions and region sizes for h. Arithmetic is
// done in int64; any result that does not fit a signed 32-bit size field
// fails with ErrMalformedHeader.
func PlanLayout(h Header) (Layout, error) {
	numTypes := int64(h.NumItemTypes)
	numItems := int64(h.NumItems)
	numData := int64(h.NumData)
	numUncomp := int64(0)
	if h.HasUncompSizes() {
		numUncomp = numData
	}

	indexSize := ItemTypeSize*numTypes +
		WordSize*numItems +
		WordSize*numData +
		WordSize*numUncomp +
		int64(h.SizeItems)
	dataStart := HeaderSize + indexSize
	total := dataStart + int64(h.SizeData)
	if !buf.Fits32(indexSize) || !buf.Fits32(dataStart) || !buf.Fits32(total) {
		return Layout{}, fmt.Errorf("layout: size overflow (index=%d total=%d): %w", indexSize, total, ErrMalformedHeader)
	}

	var l Layout
	off := 0
	next := func(count int64, stride int) Range {
		r := Range{Off: off, Count: int(count), Stride: stride}
		off = r.End()
		return r
	}
	l.ItemTypes = next(numTypes, ItemTypeWords)
	l.ItemOffsets = next(numItems, 1)
	l.DataOffsets = next(numData, 1)
	l.UncompSizes = next(numUncomp, 1)
	l.Items = next(int64(h.SizeItems)/WordSize, 1)
	l.IndexSize = indexSize
	l.DataStart = dataStart
	l.Total = total
	return l, nil
}

// CheckFileSize fails with ErrTruncated when a file of n bytes cannot hold
// the planned layout.
func (l Layout) CheckFileSize(n int64) error {
	if n < l.Total {
		return fmt.Errorf("layout: file is %d bytes, need %d: %w", n, l.Total, ErrTruncated)
	}
	return nil
}
