package datafile

import (
	"io"

	"github.com/joshuapare/datakit/pkg/types"
)

// ItemIterator walks a contiguous run of items. Next returns io.EOF after
// the last one.
//
//	it := datafile.Items(df)
//	for {
//	    item, err := it.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use item
//	}
type ItemIterator struct {
	df   Datafile
	next int
	end  int
}

// Items iterates over every item in index order.
func Items(df Datafile) *ItemIterator {
	return &ItemIterator{df: df, end: df.NumItems()}
}

// TypeItems iterates over the items of typeID. An absent type yields
// nothing.
func TypeItems(df Datafile, typeID uint16) *ItemIterator {
	start, num := df.TypeIndexes(typeID)
	if start < 0 {
		return &ItemIterator{df: df}
	}
	return &ItemIterator{df: df, next: start, end: start + num}
}

// Next returns the next item or io.EOF.
func (it *ItemIterator) Next() (types.Item, error) {
	if it.next >= it.end {
		return types.Item{}, io.EOF
	}
	item, err := it.df.ItemRead(it.next)
	if err != nil {
		return types.Item{}, err
	}
	it.next++
	return item, nil
}

// Index returns the index of the item the next call to Next will return.
func (it *ItemIterator) Index() int { return it.next }

// ItemTypeIterator walks the type table.
type ItemTypeIterator struct {
	df   Datafile
	next int
}

// ItemTypes iterates over the type table in stored order.
func ItemTypes(df Datafile) *ItemTypeIterator {
	return &ItemTypeIterator{df: df}
}

// Next returns the next type entry or io.EOF.
func (it *ItemTypeIterator) Next() (types.ItemTypeRange, error) {
	if it.next >= it.df.NumItemTypes() {
		return types.ItemTypeRange{}, io.EOF
	}
	t, err := it.df.ItemType(it.next)
	if err != nil {
		return types.ItemTypeRange{}, err
	}
	it.next++
	return t, nil
}

// DataIterator loads blobs in index order.
type DataIterator struct {
	df   Datafile
	next int
}

// Blobs iterates over every data blob, loading each one.
func Blobs(df Datafile) *DataIterator {
	return &DataIterator{df: df}
}

// Next returns the index and contents of the next blob, or io.EOF.
// A blob that fails to load is returned as an error and skipped, so the
// caller may continue with the following one.
func (it *DataIterator) Next() (int, []byte, error) {
	if it.next >= it.df.NumData() {
		return 0, nil, io.EOF
	}
	i := it.next
	it.next++
	b, err := it.df.DataLoad(i)
	if err != nil {
		return i, nil, err
	}
	return i, b, nil
}
