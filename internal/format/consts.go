// Package format houses the low-level decoders for the datafile container:
// the two-part header, the index-region layout and the packed item records.
// Nothing here performs I/O beyond io.ReaderAt; higher layers own the
// source and the caching policy.
package format

var (
	// Magic is the canonical four-byte signature at offset 0.
	Magic = [4]byte{'D', 'A', 'T', 'A'}

	// MagicSwapped is Magic byte-reversed, written by big-endian producers.
	// Integers that follow are still decoded little-endian.
	MagicSwapped = [4]byte{'A', 'T', 'A', 'D'}
)

const (
	// Version3 files carry no uncompressed-size table; blobs are stored raw.
	Version3 int32 = 3
	// Version4 files carry one uncompressed size per blob; blobs are zlib streams.
	Version4 int32 = 4
)

// Header layout (little-endian):
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    'D' 'A' 'T' 'A' (or 'A' 'T' 'A' 'D')
//	 0x04    4    version (3 or 4)
//	 0x08    4    size: bytes after the swaplen field
//	 0x0C    4    swaplen (legacy, <= size)
//	 0x10    4    number of item types
//	 0x14    4    number of items
//	 0x18    4    number of data blobs
//	 0x1C    4    total bytes of packed item records
//	 0x20    4    total bytes of the data region
const (
	MagicOffset        = 0x00
	VersionOffset      = 0x04
	SizeOffset         = 0x08
	SwapLenOffset      = 0x0C
	NumItemTypesOffset = 0x10
	NumItemsOffset     = 0x14
	NumDataOffset      = 0x18
	SizeItemsOffset    = 0x1C
	SizeDataOffset     = 0x20

	// VersionHeaderSize covers magic and version.
	VersionHeaderSize = 8
	// SizeHeaderSize covers the seven size fields.
	SizeHeaderSize = 28
	// HeaderSize is the fixed size of both header parts.
	HeaderSize = VersionHeaderSize + SizeHeaderSize

	// sizeFieldsCounted is the part of the size header that the size field
	// itself accounts for (everything after size and swaplen).
	sizeFieldsCounted = SizeHeaderSize - 2*WordSize
)

// Index region record sizes.
const (
	WordSize = 4

	// ItemTypeSize is one {type_id, start, num} entry.
	ItemTypeSize  = 3 * WordSize
	ItemTypeWords = 3

	// ItemHeaderSize is the {type_id_and_id, size} prefix of every item record.
	ItemHeaderSize = 2 * WordSize

	// TypeIDLimit is one past the largest valid type id.
	TypeIDLimit = 0x10000
)
