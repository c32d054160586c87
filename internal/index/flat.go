package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/viant/vec/search"
)

// File format: magic, dim(uint32), count(uint32), then count*dim float32
// values in row-major order, all little-endian. Document ids live in the
// documents file; position i here corresponds to document i there.
var magic = [4]byte{'s', 'v', 'i', '1'}

const headerSize = 12

// Flat is an exact L2 nearest-neighbor index over position-aligned vectors.
// Immutable after construction; safe for concurrent Search calls.
type Flat struct {
	dim  int
	data []float32
}

// Hit is a single nearest-neighbor match.
type Hit struct {
	Position int
	Distance float32
}

// Build creates an index from vectors. All vectors must share one dimension.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return &Flat{}, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("index: zero-dimension vectors")
	}
	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("index: inconsistent vector dims at %d: %d vs %d", i, len(v), dim)
		}
		data = append(data, v...)
	}
	return &Flat{dim: dim, data: data}, nil
}

// Dim returns the vector dimension (0 for an empty index).
func (f *Flat) Dim() int { return f.dim }

// Count returns the number of indexed vectors.
func (f *Flat) Count() int {
	if f.dim == 0 {
		return 0
	}
	return len(f.data) / f.dim
}

// Search returns up to k nearest neighbors of query by L2 distance, ordered
// by ascending distance (ties broken by position).
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("index: k must be positive, got %d", k)
	}
	count := f.Count()
	if count == 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("index: query dim %d != index dim %d", len(query), f.dim)
	}

	hits := make([]Hit, count)
	q := search.Float32s(query)
	for i := 0; i < count; i++ {
		d := q.EuclideanDistance(f.data[i*f.dim : (i+1)*f.dim])
		hits[i] = Hit{Position: i, Distance: d}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Position < hits[b].Position
	})

	if k > count {
		k = count
	}
	return hits[:k], nil
}

// MarshalBinary serializes the index.
func (f *Flat) MarshalBinary() ([]byte, error) {
	out := make([]byte, headerSize+4*len(f.data))
	copy(out[0:4], magic[:])
	binary.LittleEndian.PutUint32(out[4:8], uint32(f.dim))
	binary.LittleEndian.PutUint32(out[8:12], uint32(f.Count()))
	for i, v := range f.data {
		binary.LittleEndian.PutUint32(out[headerSize+i*4:], math.Float32bits(v))
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes.
func (f *Flat) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return errors.New("index: truncated header")
	}
	if [4]byte(data[0:4]) != magic {
		return errors.New("index: bad magic, not a flat index file")
	}
	dim := int(binary.LittleEndian.Uint32(data[4:8]))
	count := int(binary.LittleEndian.Uint32(data[8:12]))
	if count > 0 && dim == 0 {
		return errors.New("index: zero dimension with non-zero count")
	}
	want := headerSize + 4*dim*count
	if len(data) != want {
		return fmt.Errorf("index: size mismatch: have %d bytes, want %d", len(data), want)
	}
	vals := make([]float32, dim*count)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[headerSize+i*4:]))
	}
	f.dim = dim
	f.data = vals
	return nil
}

// ReadFile loads an index from disk.
func ReadFile(path string) (*Flat, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	var f Flat
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("parse index file %s: %w", path, err)
	}
	return &f, nil
}

// WriteFile persists the index to disk.
func (f *Flat) WriteFile(path string) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}
