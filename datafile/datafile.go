package datafile

import "github.com/joshuapare/datakit/pkg/types"

// Datafile is the read surface shared by an opened file (*Reader) and an
// in-memory container (*Buffer).
type Datafile interface {
	NumItemTypes() int
	ItemType(index int) (types.ItemTypeRange, error)
	NumItems() int
	ItemRead(index int) (types.Item, error)
	ItemFind(typeID, id uint16) (types.Item, bool, error)
	TypeIndexes(typeID uint16) (start, num int)
	NumData() int
	DataLoad(index int) ([]byte, error)
}

var (
	_ Datafile = (*Reader)(nil)
	_ Datafile = (*Buffer)(nil)
)
