package datafile

import (
	"cmp"
	"slices"

	core "github.com/joshuapare/datakit/datafile"
)

// VersionItemType is the type id of a map's version item. Its payload is a
// single word holding the map format version, and its id is 0.
const VersionItemType = 0

// versionWords is the payload length of a well-formed version item.
const versionWords = 1

// VersionCategory names an anomaly found in a map's version item.
type VersionCategory int

const (
	NoVersion VersionCategory = iota
	MultipleVersions
	VersionTooSmall
	VersionTooBig
	VersionNotOne
	VersionIDNotZero
	numVersionCategories
)

var versionCategoryNames = [...]string{
	NoVersion:        "no version",
	MultipleVersions: "multiple versions",
	VersionTooSmall:  "version too small",
	VersionTooBig:    "version bigger than expected",
	VersionNotOne:    "version not 1",
	VersionIDNotZero: "version ID not 0",
}

func (c VersionCategory) String() string {
	if c >= 0 && c < numVersionCategories {
		return versionCategoryNames[c]
	}
	return "unknown"
}

// FileVersions is what the tally saw in one file.
type FileVersions struct {
	Path     string            `json:"path"`
	Findings []VersionCategory `json:"findings,omitempty"`
	Versions []int32           `json:"versions,omitempty"`
	Err      error             `json:"-"`
}

// VersionCount is one histogram bucket.
type VersionCount struct {
	Version int32 `json:"version"`
	Count   int   `json:"count"`
}

// Tally accumulates version item statistics over many files.
type Tally struct {
	Files  []FileVersions
	counts [numVersionCategories]int
	hist   map[int32]int
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{hist: make(map[int32]int)}
}

// VersionTally opens each path in turn and tallies its version item. Open
// failures are kept in Files with Err set; the scan continues.
func VersionTally(paths []string, opts OpenOptions) *Tally {
	t := NewTally()
	for _, path := range paths {
		t.AddFile(path, opts)
	}
	return t
}

// AddFile opens path and adds it to the tally.
func (t *Tally) AddFile(path string, opts OpenOptions) FileVersions {
	r, err := core.Open(path, opts)
	if err != nil {
		fv := FileVersions{Path: path, Err: err}
		t.Files = append(t.Files, fv)
		return fv
	}
	fv := t.Add(path, r)
	if err := r.Close(); err != nil && fv.Err == nil {
		fv.Err = err
		t.Files[len(t.Files)-1].Err = err
	}
	return fv
}

// Add tallies the version items of df under the given name.
func (t *Tally) Add(name string, df core.Datafile) FileVersions {
	fv := FileVersions{Path: name}
	note := func(c VersionCategory) {
		t.counts[c]++
		fv.Findings = append(fv.Findings, c)
	}

	start, num := df.TypeIndexes(VersionItemType)
	switch {
	case num == 0:
		note(NoVersion)
	case num > 1:
		note(MultipleVersions)
	}

	for i := start; i < start+num; i++ {
		item, err := df.ItemRead(i)
		if err != nil {
			fv.Err = err
			break
		}
		if len(item.Data) < versionWords {
			note(VersionTooSmall)
			continue
		}
		if len(item.Data) > versionWords {
			note(VersionTooBig)
		}
		if item.ID != 0 {
			note(VersionIDNotZero)
		}
		v := item.Data[0]
		if v != 1 {
			note(VersionNotOne)
		}
		t.hist[v]++
		fv.Versions = append(fv.Versions, v)
	}

	t.Files = append(t.Files, fv)
	return fv
}

// Categories lists every category in report order.
func (t *Tally) Categories() []VersionCategory {
	out := make([]VersionCategory, numVersionCategories)
	for i := range out {
		out[i] = VersionCategory(i)
	}
	return out
}

// Count returns how often c was seen.
func (t *Tally) Count(c VersionCategory) int {
	if c < 0 || c >= numVersionCategories {
		return 0
	}
	return t.counts[c]
}

// Histogram returns the version values seen, in ascending order.
func (t *Tally) Histogram() []VersionCount {
	out := make([]VersionCount, 0, len(t.hist))
	for v, n := range t.hist {
		out = append(out, VersionCount{Version: v, Count: n})
	}
	slices.SortFunc(out, func(a, b VersionCount) int { return cmp.Compare(a.Version, b.Version) })
	return out
}

// Failed returns the files that could not be read.
func (t *Tally) Failed() []FileVersions {
	var out []FileVersions
	for _, f := range t.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}
