package types

const (
	// DefaultMaxDataSize caps the buffer allocated for a single blob when
	// OpenOptions.MaxDataSize is zero.
	DefaultMaxDataSize = 256 << 20
)

// Limits bounds what the in-memory Buffer accepts.
type Limits struct {
	MaxItemWords int // payload words per item
	MaxDataSize  int // bytes per blob
}

// DefaultLimits returns limits that admit anything a datafile can encode.
func DefaultLimits() Limits {
	return Limits{
		MaxItemWords: (1<<31 - 1) / 4,
		MaxDataSize:  DefaultMaxDataSize,
	}
}
