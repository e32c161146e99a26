// Package datafile reads the "DATA" container format: a fixed header, an
// index region of typed items and a data region of optionally
// zlib-compressed blobs.
//
// # Opening
//
// Open validates everything it can before returning: the header fields,
// the planned layout against the file length, and the whole index region
// (see package verify). A returned *Reader is therefore safe to query with
// any index in range; corrupt or hostile files fail at Open with a
// *types.Error whose Kind says why.
//
//	df, err := datafile.Open("dm1.map", types.OpenOptions{})
//	if err != nil {
//	    return err
//	}
//	defer df.Close()
//
// # Items
//
// Items are read straight from the index buffer loaded at Open:
//
//	item, found, err := df.ItemFind(typeVersion, 0)
//	start, num := df.TypeIndexes(typeLayers) // (-1, 0) when absent
//
// Item.Data aliases reader memory and is valid until Close.
//
// # Blobs
//
// DataLoad reads a blob on first use and keeps it until DataUnload or
// Close. Version 4 blobs are inflated to exactly their recorded size;
// version 3 blobs are returned as stored.
//
// # Checksums
//
// CRC checksums the whole file, headers included, and remembers the result.
//
// # Concurrency
//
// A Reader has no internal locking. Use one per goroutine or guard it.
package datafile
