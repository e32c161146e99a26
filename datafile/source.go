package datafile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/datakit/internal/mmfile"
)

// Source is the byte source a Reader pulls from. ReadAt follows the
// io.ReaderAt contract: a short read returns a non-nil error, io.EOF at the
// end of the data.
type Source interface {
	io.ReaderAt
	// Len returns the total number of bytes available.
	Len() (int64, error)
	Close() error
}

// fileSource reads through an *os.File.
type fileSource struct {
	f *os.File
}

// OpenFile opens path for positioned reads.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewFileSource(f), nil
}

// NewFileSource wraps an already open file. Closing the source closes f.
func NewFileSource(f *os.File) Source { return &fileSource{f: f} }

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }

func (s *fileSource) Len() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *fileSource) Close() error { return s.f.Close() }

// bytesSource serves an in-memory buffer.
type bytesSource struct {
	*bytes.Reader
	unmap func() error
}

// NewBytesSource serves b. The Reader never modifies b.
func NewBytesSource(b []byte) Source {
	return &bytesSource{Reader: bytes.NewReader(b)}
}

// MapFile memory-maps path. On platforms without mmap the file is read
// into memory instead.
func MapFile(path string) (Source, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	return &bytesSource{Reader: bytes.NewReader(data), unmap: unmap}, nil
}

func (s *bytesSource) Len() (int64, error) { return s.Size(), nil }

func (s *bytesSource) Close() error {
	if s.unmap == nil {
		return nil
	}
	unmap := s.unmap
	s.unmap = nil
	return unmap()
}
