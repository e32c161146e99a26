package datafile

import (
	"io"

	core "github.com/joshuapare/datakit/datafile"
)

// TypeStats summarizes the items of one type.
type TypeStats struct {
	TypeID uint16 `json:"type_id"`
	Items  int    `json:"items"`
	Words  int    `json:"words"` // payload words over all items
}

// Stats is a JSON-friendly summary of one datafile.
type Stats struct {
	Path  string      `json:"path"`
	Info  Info        `json:"info"`
	CRC   uint32      `json:"crc"`
	Types []TypeStats `json:"types"`

	// DataBytes is the sum of the recorded uncompressed blob sizes and
	// StoredBytes what the blobs occupy in the file.
	DataBytes   int64 `json:"data_bytes"`
	StoredBytes int64 `json:"stored_bytes"`
	LargestBlob int   `json:"largest_blob"`
}

// Inspect opens path and gathers Stats without inflating any blob.
func Inspect(path string, opts OpenOptions) (Stats, error) {
	r, err := core.Open(path, opts)
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	st, err := InspectReader(r)
	if err != nil {
		return Stats{}, err
	}
	st.Path = path
	return st, nil
}

// InspectReader gathers Stats from an open reader.
func InspectReader(r *core.Reader) (Stats, error) {
	st := Stats{Info: r.Info()}

	crc, err := r.CRC()
	if err != nil {
		return Stats{}, err
	}
	st.CRC = crc

	types := core.ItemTypes(r)
	for {
		t, err := types.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, err
		}
		ts := TypeStats{TypeID: t.TypeID, Items: t.Num}
		for i := t.Start; i < t.Start+t.Num; i++ {
			item, err := r.ItemRead(i)
			if err != nil {
				return Stats{}, err
			}
			ts.Words += len(item.Data)
		}
		st.Types = append(st.Types, ts)
	}

	for i := 0; i < r.NumData(); i++ {
		n, err := r.DataSize(i)
		if err != nil {
			return Stats{}, err
		}
		stored, err := r.DataCompressedSize(i)
		if err != nil {
			return Stats{}, err
		}
		st.DataBytes += int64(n)
		st.StoredBytes += int64(stored)
		st.LargestBlob = max(st.LargestBlob, n)
	}
	return st, nil
}
