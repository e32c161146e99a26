package format

import (
	"errors"
	"fmt"
	"io"
)

// VersionHeader is the first eight bytes of a datafile.
type VersionHeader struct {
	Magic   [4]byte
	Version int32
	// Swapped records that the file carried the reversed magic. Magic is
	// normalized to "DATA" either way.
	Swapped bool
}

// HasUncompSizes reports whether the index region carries a per-blob
// uncompressed-size table.
func (v VersionHeader) HasUncompSizes() bool {
	return v.Version >= Version4
}

// SizeHeader is the version-independent block of seven size fields that
// follows the version header.
type SizeHeader struct {
	Size         int32
	SwapLen      int32
	NumItemTypes int32
	NumItems     int32
	NumData      int32
	SizeItems    int32
	SizeData     int32
}

// Header is the complete 36-byte datafile header.
type Header struct {
	VersionHeader
	SizeHeader
}

// ParseVersionHeader validates the magic and version at the start of b.
func ParseVersionHeader(b []byte) (VersionHeader, error) {
	if len(b) < VersionHeaderSize {
		return VersionHeader{}, fmt.Errorf("version header: %w", ErrTruncated)
	}
	var v VersionHeader
	copy(v.Magic[:], b[MagicOffset:MagicOffset+4])
	switch v.Magic {
	case Magic:
	case MagicSwapped:
		v.Magic = Magic
		v.Swapped = true
	default:
		return VersionHeader{}, fmt.Errorf("version header: magic %q: %w", v.Magic[:], ErrSignatureMismatch)
	}
	v.Version = ReadI32(b, VersionOffset)
	if v.Version != Version3 && v.Version != Version4 {
		return VersionHeader{}, fmt.Errorf("version header: version %d: %w", v.Version, ErrUnsupportedVersion)
	}
	return v, nil
}

// ParseSizeHeader decodes the seven size fields from b, which must start at
// the size field (file offset 8), and runs Check on the result.
func ParseSizeHeader(b []byte) (SizeHeader, error) {
	if len(b) < SizeHeaderSize {
		return SizeHeader{}, fmt.Errorf("size header: %w", ErrTruncated)
	}
	s := SizeHeader{
		Size:         ReadI32(b, SizeOffset-VersionHeaderSize),
		SwapLen:      ReadI32(b, SwapLenOffset-VersionHeaderSize),
		NumItemTypes: ReadI32(b, NumItemTypesOffset-VersionHeaderSize),
		NumItems:     ReadI32(b, NumItemsOffset-VersionHeaderSize),
		NumData:      ReadI32(b, NumDataOffset-VersionHeaderSize),
		SizeItems:    ReadI32(b, SizeItemsOffset-VersionHeaderSize),
		SizeData:     ReadI32(b, SizeDataOffset-VersionHeaderSize),
	}
	if err := s.Check(); err != nil {
		return SizeHeader{}, err
	}
	return s, nil
}

// Check runs the field-level sanity checks. The returned error wraps
// ErrMalformedHeader and names the first offending field.
func (s SizeHeader) Check() error {
	fields := [...]struct {
		name string
		v    int32
	}{
		{"size", s.Size},
		{"swaplen", s.SwapLen},
		{"num_item_types", s.NumItemTypes},
		{"num_items", s.NumItems},
		{"num_data", s.NumData},
		{"size_items", s.SizeItems},
		{"size_data", s.SizeData},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("size header: %s is negative (%d): %w", f.name, f.v, ErrMalformedHeader)
		}
	}
	if s.SizeItems%WordSize != 0 {
		return fmt.Errorf("size header: size_items not divisible by 4 (%d): %w", s.SizeItems, ErrMalformedHeader)
	}
	if s.Size < s.SwapLen {
		return fmt.Errorf("size header: size is less than swaplen (size=%d swaplen=%d): %w",
			s.Size, s.SwapLen, ErrMalformedHeader)
	}
	return nil
}

// ParseHeader decodes and validates both header parts from b.
func ParseHeader(b []byte) (Header, error) {
	v, err := ParseVersionHeader(b)
	if err != nil {
		return Header{}, err
	}
	s, err := ParseSizeHeader(b[VersionHeaderSize:])
	if err != nil {
		return Header{}, err
	}
	return Header{VersionHeader: v, SizeHeader: s}, nil
}

// ReadHeader reads and validates the header at offset 0 of r. A source
// shorter than a header part yields ErrTruncated; an incomplete header still
// reports a bad magic or version first when those bytes are present.
func ReadHeader(r io.ReaderAt) (Header, error) {
	b := make([]byte, HeaderSize)
	n, err := r.ReadAt(b, 0)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	return ParseHeader(b[:n])
}

// DeclaredSize is the value a conforming writer stores in the size field:
// the byte count of everything that follows the swaplen field.
func (h Header) DeclaredSize() int64 {
	n := int64(sizeFieldsCounted) +
		int64(ItemTypeSize)*int64(h.NumItemTypes) +
		int64(WordSize)*int64(h.NumItems) +
		int64(WordSize)*int64(h.NumData) +
		int64(h.SizeItems) +
		int64(h.SizeData)
	if h.HasUncompSizes() {
		n += int64(WordSize) * int64(h.NumData)
	}
	return n
}

// PutHeader encodes h into the first HeaderSize bytes of b.
func PutHeader(b []byte, h Header) {
	magic := Magic
	if h.Swapped {
		magic = MagicSwapped
	}
	copy(b[MagicOffset:], magic[:])
	PutI32(b, VersionOffset, h.Version)
	PutI32(b, SizeOffset, h.Size)
	PutI32(b, SwapLenOffset, h.SwapLen)
	PutI32(b, NumItemTypesOffset, h.NumItemTypes)
	PutI32(b, NumItemsOffset, h.NumItems)
	PutI32(b, NumDataOffset, h.NumData)
	PutI32(b, SizeItemsOffset, h.SizeItems)
	PutI32(b, SizeDataOffset, h.SizeData)
}

// Bytes returns the encoded header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	PutHeader(b, h)
	return b
}
