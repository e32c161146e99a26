// Package dfbuild assembles datafiles in memory for tests. A File describes
// items and blobs; Bytes lays them out the way a conforming writer would.
// Override fields let tests break one structure at a time.
package dfbuild

import (
	"testing"

	"github.com/joshuapare/datakit/internal/buf"
	"github.com/joshuapare/datakit/internal/compress"
	"github.com/joshuapare/datakit/internal/format"
)

// Item is one record to pack. Items sharing a TypeID must be adjacent.
type Item struct {
	TypeID uint16
	ID     uint16
	Data   []int32
}

// File describes a datafile to build.
type File struct {
	Version int32 // zero means format.Version4
	Swapped bool  // write the reversed magic

	Items []Item
	Data  [][]byte // uncompressed blob contents

	// RawData stores blobs verbatim even in version 4 files.
	RawData bool

	// Overrides. Nil leaves the computed table in place.
	Types       []format.ItemType
	ItemOffsets []int32
	DataOffsets []int32
	UncompSizes []int32

	// Header, when set, edits the computed header before encoding.
	Header func(*format.Header)

	// Trailing is appended after the data region.
	Trailing []byte
}

// Bytes encodes f.
func (f File) Bytes() ([]byte, error) {
	version := f.Version
	if version == 0 {
		version = format.Version4
	}
	v4 := version >= format.Version4

	types := f.Types
	if types == nil {
		types = typeTable(f.Items)
	}

	var items []int32
	offsets := make([]int32, 0, len(f.Items))
	for _, it := range f.Items {
		offsets = append(offsets, int32(len(items)*format.WordSize))
		items = append(items, format.PackTypeAndID(it.TypeID, it.ID), int32(len(it.Data)*format.WordSize))
		items = append(items, it.Data...)
	}
	if f.ItemOffsets != nil {
		offsets = f.ItemOffsets
	}

	var blobs []byte
	dataOffsets := make([]int32, 0, len(f.Data))
	uncomp := make([]int32, 0, len(f.Data))
	for _, d := range f.Data {
		dataOffsets = append(dataOffsets, int32(len(blobs)))
		uncomp = append(uncomp, int32(len(d)))
		stored := d
		if v4 && !f.RawData {
			z, err := compress.Compress(d)
			if err != nil {
				return nil, err
			}
			stored = z
		}
		blobs = append(blobs, stored...)
	}
	if f.DataOffsets != nil {
		dataOffsets = f.DataOffsets
	}
	if f.UncompSizes != nil {
		uncomp = f.UncompSizes
	}
	if !v4 {
		uncomp = nil
	}

	h := format.Header{
		VersionHeader: format.VersionHeader{Magic: format.Magic, Version: version, Swapped: f.Swapped},
		SizeHeader: format.SizeHeader{
			NumItemTypes: int32(len(types)),
			NumItems:     int32(len(offsets)),
			NumData:      int32(len(dataOffsets)),
			SizeItems:    int32(len(items) * format.WordSize),
			SizeData:     int32(len(blobs)),
		},
	}
	h.Size = int32(h.DeclaredSize())
	h.SwapLen = h.Size - h.SizeData
	if f.Header != nil {
		f.Header(&h)
	}

	var words []int32
	for _, t := range types {
		words = append(words, t.TypeID, t.Start, t.Num)
	}
	words = append(words, offsets...)
	words = append(words, dataOffsets...)
	words = append(words, uncomp...)
	words = append(words, items...)

	out := make([]byte, format.HeaderSize+len(words)*format.WordSize)
	format.PutHeader(out, h)
	buf.PutWords(out[format.HeaderSize:], words)
	out = append(out, blobs...)
	out = append(out, f.Trailing...)
	return out, nil
}

// MustBytes encodes f or fails the test.
func MustBytes(t testing.TB, f File) []byte {
	t.Helper()
	b, err := f.Bytes()
	if err != nil {
		t.Fatalf("dfbuild: %v", err)
	}
	return b
}

// typeTable groups adjacent items with the same type id.
func typeTable(items []Item) []format.ItemType {
	var out []format.ItemType
	for i, it := range items {
		if n := len(out); n > 0 && out[n-1].TypeID == int32(it.TypeID) {
			out[n-1].Num++
			continue
		}
		out = append(out, format.ItemType{TypeID: int32(it.TypeID), Start: int32(i), Num: 1})
	}
	return out
}
