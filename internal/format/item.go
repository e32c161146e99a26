package format

// ItemType is one entry of the type table: items [Start, Start+Num) all
// carry TypeID.
type ItemType struct {
	TypeID int32
	Start  int32
	Num    int32
}

// ItemHeader prefixes every packed item record. Size is the payload length in
// bytes and is always a multiple of 4 in a valid file.
type ItemHeader struct {
	TypeAndID int32
	Size      int32
}

// PackTypeAndID combines a type id (high 16 bits) and an item id (low 16
// bits) into the on-disk key field.
func PackTypeAndID(typeID, id uint16) int32 {
	return int32(uint32(typeID)<<16 | uint32(id))
}

// TypeID returns the high 16 bits of the key field.
func (h ItemHeader) TypeID() uint16 {
	return uint16(uint32(h.TypeAndID) >> 16)
}

// ID returns the low 16 bits of the key field.
func (h ItemHeader) ID() uint16 {
	return uint16(uint32(h.TypeAndID))
}
