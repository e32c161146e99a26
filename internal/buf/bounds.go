package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Fits32 reports whether v can be stored in a signed 32-bit size field.
func Fits32(v int64) bool {
	return v >= 0 && v <= math.MaxInt32
}

// CheckRange validates that count records of recordSize bytes starting at
// off lie inside a region of regionLen bytes, and returns the end offset.
//
//	end, err := buf.CheckRange(sizeItems, off, 1, itemHeaderSize)
//	if err != nil {
//	    return fmt.Errorf("item header: %w", err)
//	}
func CheckRange(regionLen, off, count, recordSize int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	total, ok := MulOverflowSafe(count, recordSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * size=%d", count, recordSize)
	}
	end, ok := AddOverflowSafe(off, total)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, total)
	}
	if end > regionLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, regionLen)
	}
	return end, nil
}
