package datafile

import (
	"bytes"
	"encoding/json"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/joshuapare/datakit/datafile"
	"github.com/joshuapare/datakit/internal/format"
	"github.com/joshuapare/datakit/internal/testutil"
	"github.com/joshuapare/datakit/internal/testutil/dfbuild"
	"github.com/joshuapare/datakit/pkg/types"
)

func mapFile(version []int32, extra ...dfbuild.Item) dfbuild.File {
	items := []dfbuild.Item{}
	if version != nil {
		items = append(items, dfbuild.Item{TypeID: VersionItemType, ID: 0, Data: version})
	}
	items = append(items, extra...)
	return dfbuild.File{
		Items: items,
		Data:  [][]byte{[]byte("layer"), bytes.Repeat([]byte("x"), 500)},
	}
}

func writeMap(t *testing.T, name string, f dfbuild.File) string {
	t.Helper()
	return testutil.WriteTemp(t, name, dfbuild.MustBytes(t, f))
}

func TestValidate(t *testing.T) {
	good := writeMap(t, "good.map", mapFile([]int32{1}))
	require.NoError(t, Validate(good, OpenOptions{}))
	require.NoError(t, Validate(good, OpenOptions{Strict: true, Mmap: true}))

	f := mapFile([]int32{1})
	f.UncompSizes = []int32{5, 499}
	bad := writeMap(t, "bad.map", f)
	err := Validate(bad, OpenOptions{})
	require.ErrorIs(t, err, types.ErrDataDecompress)
	assert.Contains(t, err.Error(), "data 1")

	loose := mapFile([]int32{1})
	loose.Header = func(h *format.Header) { h.Size += 8; h.SwapLen += 8 }
	path := writeMap(t, "loose.map", loose)
	require.NoError(t, Validate(path, OpenOptions{}))
	require.ErrorIs(t, Validate(path, OpenOptions{Strict: true}), types.ErrMalformed)
}

func TestInspect(t *testing.T) {
	f := mapFile([]int32{1},
		dfbuild.Item{TypeID: 2, ID: 0, Data: []int32{1, 2, 3}},
		dfbuild.Item{TypeID: 2, ID: 1, Data: []int32{4}},
	)
	b := dfbuild.MustBytes(t, f)
	path := testutil.WriteTemp(t, "inspect.map", b)

	st, err := Inspect(path, OpenOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, st.Path)
	assert.Equal(t, crc32.ChecksumIEEE(b), st.CRC)
	assert.Equal(t, []TypeStats{{TypeID: 0, Items: 1, Words: 1}, {TypeID: 2, Items: 2, Words: 4}}, st.Types)
	assert.Equal(t, int64(505), st.DataBytes)
	assert.Equal(t, int64(st.Info.SizeData), st.StoredBytes)
	assert.Equal(t, 500, st.LargestBlob)

	out, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"num_items":3`)

	_, err = Inspect(t.TempDir()+"/nope.map", OpenOptions{})
	require.ErrorIs(t, err, types.ErrIO)
}

// TestVersionTally runs the tally over one file per anomaly plus a file
// that cannot be opened.
func TestVersionTally(t *testing.T) {
	files := []struct {
		name string
		f    dfbuild.File
	}{
		{"ok.map", mapFile([]int32{1})},
		{"none.map", mapFile(nil, dfbuild.Item{TypeID: 3, ID: 0})},
		{"empty.map", mapFile([]int32{})},
		{"big.map", mapFile([]int32{1, 7})},
		{"three.map", mapFile([]int32{3})},
		{"idnot0.map", dfbuild.File{
			Items: []dfbuild.Item{{TypeID: VersionItemType, ID: 5, Data: []int32{1}}},
		}},
		{"multi.map", dfbuild.File{
			Items: []dfbuild.Item{
				{TypeID: VersionItemType, ID: 0, Data: []int32{1}},
				{TypeID: VersionItemType, ID: 1, Data: []int32{2}},
			},
		}},
	}
	var paths []string
	for _, file := range files {
		paths = append(paths, writeMap(t, file.name, file.f))
	}
	broken := testutil.WriteTemp(t, "broken.map", []byte("DATA"))
	paths = append(paths, broken)

	tally := VersionTally(paths, OpenOptions{})

	want := map[VersionCategory]int{
		NoVersion:        1,
		MultipleVersions: 1,
		VersionTooSmall:  1,
		VersionTooBig:    1,
		VersionNotOne:    2, // three.map and the second item of multi.map
		VersionIDNotZero: 2, // idnot0.map and multi.map's id 1
	}
	for _, c := range tally.Categories() {
		assert.Equal(t, want[c], tally.Count(c), c.String())
	}

	assert.Equal(t, []VersionCount{
		{Version: 1, Count: 4},
		{Version: 2, Count: 1},
		{Version: 3, Count: 1},
	}, tally.Histogram())

	require.Len(t, tally.Files, len(paths))
	failed := tally.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, broken, failed[0].Path)
	assert.ErrorIs(t, failed[0].Err, types.ErrTooShort)

	assert.Equal(t, []VersionCategory{VersionTooBig}, tally.Files[3].Findings)
	assert.Equal(t, []int32{1}, tally.Files[3].Versions)
}

func TestVersionCategoryString(t *testing.T) {
	assert.Equal(t, "version bigger than expected", VersionTooBig.String())
	assert.Equal(t, "unknown", VersionCategory(42).String())
}

func TestTallyAddBuffer(t *testing.T) {
	b, err := bufferWithVersion(9)
	require.NoError(t, err)

	tally := NewTally()
	fv := tally.Add("buffer", b)
	assert.Equal(t, []VersionCategory{VersionNotOne}, fv.Findings)
	assert.Equal(t, 1, tally.Count(VersionNotOne))
}

func bufferWithVersion(v int32) (*core.Buffer, error) {
	b := core.NewBuffer()
	return b, b.AddItem(VersionItemType, 0, []int32{v})
}
