package verify

import (
	"fmt"

	"github.com/joshuapare/datakit/internal/format"
)

// ValidationError reports the first structural inconsistency found in a
// datafile index region.
type ValidationError struct {
	Table   string // "ItemTypes", "Items", "Data", "TypeItems" or "Header"
	Message string
	Index   int // offending entry, or -1 when the failure is table-wide
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %s", e.Table, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Unwrap lets errors.Is(err, format.ErrMalformed) match every validation failure.
func (e *ValidationError) Unwrap() error { return format.ErrMalformed }

// AllInvariants runs the structural checks a reader needs before it can
// trust the index, in order: type table, item records, data table and the
// type/item cross-check. It returns the first failure.
func AllInvariants(x *format.Index) error {
	if err := TypeTable(x); err != nil {
		return err
	}
	if err := ItemTable(x); err != nil {
		return err
	}
	if err := DataTable(x); err != nil {
		return err
	}
	return TypeItems(x)
}

// Strict runs the optional checks: the header size field and ascending type ids.
func Strict(x *format.Index) error {
	if err := DeclaredSize(x.Header); err != nil {
		return err
	}
	return TypeOrder(x)
}

// TypeTable checks every type entry: id range, count range, contiguous start
// indexes and uniqueness, and that the entries together cover every item.
func TypeTable(x *format.Index) error {
	numItems := int64(x.NumItems())
	expected := int64(0)
	for i := 0; i < x.NumItemTypes(); i++ {
		t := x.ItemType(i)
		if t.TypeID < 0 || t.TypeID >= format.TypeIDLimit {
			return &ValidationError{
				Table:   "ItemTypes",
				Message: fmt.Sprintf("invalid item type id %d: must be in range 0 to 0x%x", t.TypeID, format.TypeIDLimit),
				Index:   i,
			}
		}
		if t.Num < 0 || int64(t.Num) > numItems-int64(t.Start) {
			return &ValidationError{
				Table:   "ItemTypes",
				Message: fmt.Sprintf("invalid item type num: type_id=%d start=%d num=%d", t.TypeID, t.Start, t.Num),
				Index:   i,
				Details: map[string]interface{}{"num_items": numItems},
			}
		}
		if int64(t.Start) != expected {
			return &ValidationError{
				Table:   "ItemTypes",
				Message: fmt.Sprintf("item types are not sequential: type_id=%d start=%d expected=%d", t.TypeID, t.Start, expected),
				Index:   i,
				Details: map[string]interface{}{"start": t.Start, "expected": expected},
			}
		}
		expected += int64(t.Num)
		for k := 0; k < i; k++ {
			if x.ItemType(k).TypeID == t.TypeID {
				return &ValidationError{
					Table:   "ItemTypes",
					Message: fmt.Sprintf("item type id %d occurs twice (also at %d)", t.TypeID, k),
					Index:   i,
				}
			}
		}
	}
	if expected != numItems {
		return &ValidationError{
			Table:   "ItemTypes",
			Message: fmt.Sprintf("last item type does not contain last item: covered=%d num_items=%d", expected, numItems),
			Index:   x.NumItemTypes() - 1,
		}
	}
	return nil
}

// ItemTable walks the packed records in index order. Each stored offset must
// equal the running offset, every record must fit the item region, and the
// last record must end exactly at the region boundary.
func ItemTable(x *format.Index) error {
	sizeItems := int64(x.Header.SizeItems)
	offset := int64(0)
	for i := 0; i < x.NumItems(); i++ {
		stored := x.ItemOffset(i)
		if int64(stored) != offset {
			return &ValidationError{
				Table:   "Items",
				Message: fmt.Sprintf("invalid item offset %d, wanted %d", stored, offset),
				Index:   i,
				Details: map[string]interface{}{"offset": stored, "expected": offset},
			}
		}
		h, ok := x.ItemHeaderAt(int(offset))
		if !ok {
			return &ValidationError{
				Table:   "Items",
				Message: fmt.Sprintf("item header out of bounds: offset=%d size_items=%d", offset, sizeItems),
				Index:   i,
			}
		}
		if h.Size < 0 {
			return &ValidationError{
				Table:   "Items",
				Message: fmt.Sprintf("item has negative size %d", h.Size),
				Index:   i,
			}
		}
		if h.Size%format.WordSize != 0 {
			return &ValidationError{
				Table:   "Items",
				Message: fmt.Sprintf("item size %d not a multiple of 4", h.Size),
				Index:   i,
			}
		}
		offset += format.ItemHeaderSize + int64(h.Size)
		if offset > sizeItems {
			return &ValidationError{
				Table:   "Items",
				Message: fmt.Sprintf("item out of bounds: size=%d size_items=%d", h.Size, sizeItems),
				Index:   i,
			}
		}
	}
	if offset != sizeItems {
		return &ValidationError{
			Table:   "Items",
			Message: fmt.Sprintf("last item not large enough: offset=%d size_items=%d", offset, sizeItems),
			Index:   x.NumItems() - 1,
		}
	}
	return nil
}

// DataTable checks recorded uncompressed sizes and that blob offsets are
// inside the data region and non-decreasing.
func DataTable(x *format.Index) error {
	sizeData := x.Header.SizeData
	previous := int32(0)
	for i := 0; i < x.NumData(); i++ {
		if n, ok := x.UncompSize(i); ok && n < 0 {
			return &ValidationError{
				Table:   "Data",
				Message: fmt.Sprintf("invalid uncompressed size %d", n),
				Index:   i,
			}
		}
		off := x.DataOffset(i)
		if off < 0 || off > sizeData {
			return &ValidationError{
				Table:   "Data",
				Message: fmt.Sprintf("invalid data offset %d: size_data=%d", off, sizeData),
				Index:   i,
			}
		}
		if off < previous {
			return &ValidationError{
				Table:   "Data",
				Message: fmt.Sprintf("data overlaps with data %d", i-1),
				Index:   i,
				Details: map[string]interface{}{"offset": off, "previous": previous},
			}
		}
		previous = off
	}
	return nil
}

// TypeItems checks that every item in a type's index range carries that
// type's id. TypeTable and ItemTable must have passed.
func TypeItems(x *format.Index) error {
	for i := 0; i < x.NumItemTypes(); i++ {
		t := x.ItemType(i)
		for k := t.Start; k < t.Start+t.Num; k++ {
			h, _ := x.ItemHeaderAt(int(x.ItemOffset(int(k))))
			if int32(h.TypeID()) != t.TypeID {
				return &ValidationError{
					Table:   "TypeItems",
					Message: fmt.Sprintf("item %d does not have right type_id: has %d, type has %d", k, h.TypeID(), t.TypeID),
					Index:   i,
				}
			}
		}
	}
	return nil
}

// TypeOrder requires type ids to be strictly ascending, as conforming
// writers emit them.
func TypeOrder(x *format.Index) error {
	for i := 1; i < x.NumItemTypes(); i++ {
		prev, cur := x.ItemType(i-1).TypeID, x.ItemType(i).TypeID
		if cur <= prev {
			return &ValidationError{
				Table:   "ItemTypes",
				Message: fmt.Sprintf("type_id %d must be larger than previous type_id %d", cur, prev),
				Index:   i,
			}
		}
	}
	return nil
}

// DeclaredSize compares the header size field with the size implied by the
// other header fields.
func DeclaredSize(h format.Header) error {
	want := h.DeclaredSize()
	if int64(h.Size) != want {
		return &ValidationError{
			Table:   "Header",
			Message: fmt.Sprintf("size does not match expected size: size=%d expected=%d", h.Size, want),
			Index:   -1,
			Details: map[string]interface{}{"size": h.Size, "expected": want},
		}
	}
	return nil
}
