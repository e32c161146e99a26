package datafile

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/joshuapare/datakit/pkg/types"
)

var (
	// ErrDuplicateItem indicates an item with the same type and id was already added.
	ErrDuplicateItem = errors.New("datafile: duplicate item")
	// ErrTooLarge indicates an item or blob exceeds the buffer limits.
	ErrTooLarge = errors.New("datafile: exceeds buffer limits")
)

// Buffer is an in-memory datafile. Types are kept ordered by type id and
// items within a type by id, so the layout matches what a writer emits.
type Buffer struct {
	limits    types.Limits
	itemTypes []types.ItemTypeRange
	items     []types.Item
	data      [][]byte
}

// NewBuffer returns an empty Buffer with default limits.
func NewBuffer() *Buffer {
	return NewBufferWithLimits(types.DefaultLimits())
}

// NewBufferWithLimits returns an empty Buffer enforcing l.
func NewBufferWithLimits(l types.Limits) *Buffer {
	return &Buffer{limits: l}
}

// FromDatafile copies every item and blob of df into a new Buffer.
func FromDatafile(df Datafile) (*Buffer, error) {
	b := NewBuffer()
	for i := 0; i < df.NumItems(); i++ {
		it, err := df.ItemRead(i)
		if err != nil {
			return nil, err
		}
		if err := b.AddItem(it.TypeID, it.ID, it.Data); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	for i := 0; i < df.NumData(); i++ {
		d, err := df.DataLoad(i)
		if err != nil {
			return nil, err
		}
		if _, err := b.AddData(d); err != nil {
			return nil, fmt.Errorf("data %d: %w", i, err)
		}
	}
	return b, nil
}

// AddItem inserts a copy of data as item (typeID, id).
func (b *Buffer) AddItem(typeID, id uint16, data []int32) error {
	if len(data) > b.limits.MaxItemWords {
		return fmt.Errorf("item type=%d id=%d has %d words: %w", typeID, id, len(data), ErrTooLarge)
	}
	ti, typeFound := slices.BinarySearchFunc(b.itemTypes, typeID, func(t types.ItemTypeRange, id uint16) int {
		return cmp.Compare(t.TypeID, id)
	})

	var at int
	switch {
	case typeFound:
		t := b.itemTypes[ti]
		run := b.items[t.Start : t.Start+t.Num]
		k, found := slices.BinarySearchFunc(run, id, func(it types.Item, id uint16) int {
			return cmp.Compare(it.ID, id)
		})
		if found {
			return fmt.Errorf("item type=%d id=%d: %w", typeID, id, ErrDuplicateItem)
		}
		at = t.Start + k
	case ti < len(b.itemTypes):
		at = b.itemTypes[ti].Start
	default:
		at = len(b.items)
	}

	if !typeFound {
		b.itemTypes = slices.Insert(b.itemTypes, ti, types.ItemTypeRange{TypeID: typeID, Start: at})
	}
	b.itemTypes[ti].Num++
	for k := ti + 1; k < len(b.itemTypes); k++ {
		b.itemTypes[k].Start++
	}
	b.items = slices.Insert(b.items, at, types.Item{TypeID: typeID, ID: id, Data: slices.Clone(data)})
	return nil
}

// AddData appends a copy of d as a new blob and returns its index.
func (b *Buffer) AddData(d []byte) (int, error) {
	if len(d) > b.limits.MaxDataSize {
		return 0, fmt.Errorf("blob of %d bytes: %w", len(d), ErrTooLarge)
	}
	b.data = append(b.data, slices.Clone(d))
	return len(b.data) - 1, nil
}

// NumItemTypes returns the number of distinct type ids.
func (b *Buffer) NumItemTypes() int { return len(b.itemTypes) }

// ItemType returns the type range at index.
func (b *Buffer) ItemType(index int) (types.ItemTypeRange, error) {
	if index < 0 || index >= len(b.itemTypes) {
		return types.ItemTypeRange{}, outOfRange("item type", index, len(b.itemTypes))
	}
	return b.itemTypes[index], nil
}

// NumItems returns the number of items.
func (b *Buffer) NumItems() int { return len(b.items) }

// ItemRead returns item index. Data aliases the buffer's copy.
func (b *Buffer) ItemRead(index int) (types.Item, error) {
	if index < 0 || index >= len(b.items) {
		return types.Item{}, outOfRange("item", index, len(b.items))
	}
	return b.items[index], nil
}

// TypeIndexes returns the item range of typeID, or (-1, 0).
func (b *Buffer) TypeIndexes(typeID uint16) (start, num int) {
	ti, found := slices.BinarySearchFunc(b.itemTypes, typeID, func(t types.ItemTypeRange, id uint16) int {
		return cmp.Compare(t.TypeID, id)
	})
	if !found {
		return -1, 0
	}
	return b.itemTypes[ti].Start, b.itemTypes[ti].Num
}

// ItemFind returns item (typeID, id) if present.
func (b *Buffer) ItemFind(typeID, id uint16) (types.Item, bool, error) {
	start, num := b.TypeIndexes(typeID)
	if start < 0 {
		return types.Item{}, false, nil
	}
	k, found := slices.BinarySearchFunc(b.items[start:start+num], id, func(it types.Item, id uint16) int {
		return cmp.Compare(it.ID, id)
	})
	if !found {
		return types.Item{}, false, nil
	}
	return b.items[start+k], true, nil
}

// NumData returns the number of blobs.
func (b *Buffer) NumData() int { return len(b.data) }

// DataLoad returns blob index.
func (b *Buffer) DataLoad(index int) ([]byte, error) {
	if index < 0 || index >= len(b.data) {
		return nil, outOfRange("data", index, len(b.data))
	}
	return b.data[index], nil
}
