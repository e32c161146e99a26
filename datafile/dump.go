package datafile

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// dumpBlobLimit is the largest blob Dump prints in full.
const dumpBlobLimit = 256

// Dump writes a human-readable listing of df: every type with its items and
// their payload words, then every blob's size. Blobs smaller than 256 bytes
// are hex dumped, and shown as text too when they are valid UTF-8.
// Blobs that fail to load are reported inline and do not stop the dump.
func Dump(w io.Writer, df Datafile) error {
	p := &dumper{w: w}
	p.printf("DATAFILE\n")
	if r, ok := df.(*Reader); ok {
		info := r.Info()
		p.printf("header: version=%d swapped=%t size=%d swaplen=%d num_item_types=%d num_items=%d num_data=%d size_items=%d size_data=%d\n",
			info.Version, info.Swapped, info.Size, info.SwapLen, info.NumItemTypes,
			info.NumItems, info.NumData, info.SizeItems, info.SizeData)
	}

	typeIter := ItemTypes(df)
	for {
		t, err := typeIter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.printf("item_type type_id=%d start=%d num=%d\n", t.TypeID, t.Start, t.Num)
		items := TypeItems(df, t.TypeID)
		for {
			item, err := items.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			p.printf("  item id=%d words=%d\n", item.ID, len(item.Data))
			for _, v := range item.Data {
				p.printf("    %08x %11d %s\n", uint32(v), v, wordText(v))
			}
		}
	}

	blobs := Blobs(df)
	for {
		i, b, err := blobs.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.printf("data id=%d error: %v\n", i, err)
			continue
		}
		p.printf("data id=%d size=%d\n", i, len(b))
		if len(b) >= dumpBlobLimit {
			continue
		}
		if len(b) > 0 && utf8.Valid(b) {
			p.printf("  text: %q\n", b)
		}
		for _, line := range strings.SplitAfter(hex.Dump(b), "\n") {
			if line != "" {
				p.printf("  %s", line)
			}
		}
	}
	return p.err
}

// wordText renders a payload word the way string-packed items store text:
// four bytes, most significant first, each offset by 128.
func wordText(v int32) string {
	var sb strings.Builder
	for shift := 24; shift >= 0; shift -= 8 {
		c := byte(v>>shift) - 0x80
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// dumper remembers the first write error so Dump can keep a flat body.
type dumper struct {
	w   io.Writer
	err error
}

func (p *dumper) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
