package compress

import "hash/crc32"

// UpdateCRC folds b into a running zlib-compatible CRC-32 (IEEE polynomial).
// Start from 0.
func UpdateCRC(crc uint32, b []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, b)
}
