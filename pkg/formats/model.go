// Package formats provides parsers for the PureParts model file formats.
// MODEL (binary mesh) format parser for the LOD1 and LOD3 variants.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	pmath "github.com/Faultbox/pureparts/pkg/math"
)

// MODEL format errors.
var (
	ErrBadModelMagic      = errors.New("invalid model magic: expected 5")
	ErrTruncatedModelData = errors.New("truncated model data")
	ErrLayoutMismatch     = errors.New("vertex record layout mismatch")
	ErrUnsupportedVariant = errors.New("unsupported model variant")
)

const (
	// ModelMagic is the little-endian uint32 at offset 0.
	ModelMagic uint32 = 5

	modelHeaderSize   = 8
	vertexTableOffset = 0x08

	// LOD1 index data starts five words past its first-face marker.
	lod1IndexLead = 5 * sentinelSize
)

// Variant identifies the level-of-detail layout of a binary model.
type Variant int

const (
	VariantLOD1 Variant = 1 // 28-byte records, index-derived vertex count
	VariantLOD3 Variant = 3 // 24-byte records, fixed vertex count
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case 0:
		return "None"
	case VariantLOD1:
		return "LOD1"
	case VariantLOD3:
		return "LOD3"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// ModelHeader is the fixed 8-byte file header.
type ModelHeader struct {
	Magic  uint32 // Always ModelMagic
	Opaque uint32 // Unknown meaning
}

// ModelOptions holds the per-variant constants that are not stored in the file.
type ModelOptions struct {
	LOD3VertexCount int // Vertex records in every LOD3 file
	LOD3IndexCount  int // Expected LOD3 index count, 0 disables the check
}

// DefaultModelOptions returns the constants observed in shipped LOD3 files.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{
		LOD3VertexCount: 2006,
		LOD3IndexCount:  4566,
	}
}

// lod1Record is one LOD1 vertex (28 bytes).
type lod1Record struct {
	Position  [3]uint16
	Normal    [3]uint16
	UV        [2]uint16
	Binormals [2][3]uint16
}

// lod3Record is one LOD3 vertex (24 bytes, no UV).
type lod3Record struct {
	Position  [3]uint16
	Normal    [3]uint16
	Binormals [2][3]uint16
}

// vertexRecord is the decode contract shared by both record layouts.
type vertexRecord interface {
	position() pmath.Vec3
}

func (r *lod1Record) position() pmath.Vec3 { return DecodeHalf3(r.Position) }
func (r *lod3Record) position() pmath.Vec3 { return DecodeHalf3(r.Position) }

// recordLayout describes one vertex table row.
type recordLayout struct {
	size      int
	newRecord func() vertexRecord
}

// validate checks the record type against its declared width.
func (l recordLayout) validate() error {
	if got := binary.Size(l.newRecord()); got != l.size {
		return fmt.Errorf("%w: record encodes to %d bytes, layout declares %d", ErrLayoutMismatch, got, l.size)
	}
	return nil
}

// variantStrategy is everything that differs between LOD variants.
type variantStrategy struct {
	layout recordLayout

	// locateIndices returns the index table byte range [start, end).
	locateIndices func(data []byte) (start, end int, err error)

	// vertexCount returns how many records to read.
	vertexCount func(indices []uint16, opts ModelOptions) int

	// expectedIndices returns the index count to cross-check, 0 to skip.
	expectedIndices func(opts ModelOptions) int
}

var variants = map[Variant]variantStrategy{
	VariantLOD1: {
		layout: recordLayout{
			size:      28,
			newRecord: func() vertexRecord { return &lod1Record{} },
		},
		locateIndices: func(data []byte) (int, int, error) {
			marker, _, err := FindSentinel(data, modelHeaderSize, SentinelFirstFace)
			if err != nil {
				return 0, 0, fmt.Errorf("locating index table start: %w", err)
			}
			start := marker + lod1IndexLead
			end, _, err := FindSentinel(data, start, SentinelFirstFace, SentinelTerminal)
			if err != nil {
				return 0, 0, fmt.Errorf("locating index table end: %w", err)
			}
			return start, end, nil
		},
		vertexCount: func(indices []uint16, _ ModelOptions) int {
			if len(indices) == 0 {
				return 0
			}
			var highest uint16
			for _, idx := range indices {
				highest = max(highest, idx)
			}
			return int(highest) + 1
		},
		expectedIndices: func(ModelOptions) int { return 0 },
	},
	VariantLOD3: {
		layout: recordLayout{
			size:      24,
			newRecord: func() vertexRecord { return &lod3Record{} },
		},
		locateIndices: func(data []byte) (int, int, error) {
			start, _, err := FindSentinel(data, 0, SentinelFirstFace)
			if err != nil {
				return 0, 0, fmt.Errorf("locating index table start: %w", err)
			}
			end, _, err := FindSentinel(data, start+1, SentinelTerminal)
			if err != nil {
				return 0, 0, fmt.Errorf("locating index table end: %w", err)
			}
			return start, end, nil
		},
		vertexCount: func(_ []uint16, opts ModelOptions) int {
			return opts.LOD3VertexCount
		},
		expectedIndices: func(opts ModelOptions) int { return opts.LOD3IndexCount },
	},
}

// ParseModelHeader reads the 8-byte header and validates the magic.
func ParseModelHeader(data []byte) (ModelHeader, error) {
	if len(data) < modelHeaderSize {
		return ModelHeader{}, ErrTruncatedModelData
	}
	hdr := ModelHeader{
		Magic:  binary.LittleEndian.Uint32(data[0:4]),
		Opaque: binary.LittleEndian.Uint32(data[4:8]),
	}
	if hdr.Magic != ModelMagic {
		return hdr, fmt.Errorf("%w: got %d", ErrBadModelMagic, hdr.Magic)
	}
	return hdr, nil
}

// ParseModel parses binary model data of the given variant into a flat
// triangle list. Index triples are emitted in reverse order.
func ParseModel(data []byte, variant Variant, opts ModelOptions) (*Mesh, error) {
	strategy, ok := variants[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
	if err := strategy.layout.validate(); err != nil {
		return nil, err
	}

	if _, err := ParseModelHeader(data); err != nil {
		return nil, err
	}

	start, end, err := strategy.locateIndices(data)
	if err != nil {
		return nil, err
	}

	mesh := &Mesh{}
	indices := readIndices(data, start, end, mesh)

	if want := strategy.expectedIndices(opts); want > 0 && want != mesh.Truncation.ExpectedIndices {
		mesh.warnf("%s index count mismatch: found %d, expected %d", variant, mesh.Truncation.ExpectedIndices, want)
	}

	count := strategy.vertexCount(indices, opts)
	positions := readVertices(data, count, strategy.layout, mesh)

	if err := resolveReversed(mesh, indices, positions, len(positions) < count); err != nil {
		return nil, err
	}
	return mesh, nil
}

// readIndices reads uint16 indices from data[start:end], dropping a
// trailing partial triangle.
func readIndices(data []byte, start, end int, mesh *Mesh) []uint16 {
	count := (end - start) / 2
	if count < 0 {
		count = 0
	}
	if tail := count % 3; tail != 0 {
		mesh.warnf("index table holds %d indices, dropping %d trailing", count, tail)
		count -= tail
	}
	mesh.Truncation.ExpectedIndices = count

	indices := make([]uint16, 0, count)
	for i := 0; i < count; i++ {
		off := start + i*2
		if off+2 > len(data) {
			break
		}
		indices = append(indices, binary.LittleEndian.Uint16(data[off:off+2]))
	}
	// Keep whole triangles only.
	indices = indices[:len(indices)-len(indices)%3]
	mesh.Truncation.ReadIndices = len(indices)
	return indices
}

// readVertices streams count records from the vertex table. Running out
// of data stops the read without failing.
func readVertices(data []byte, count int, layout recordLayout, mesh *Mesh) []pmath.Vec3 {
	mesh.Truncation.ExpectedVertices = count
	if count <= 0 {
		return nil
	}

	r := bytes.NewReader(data[vertexTableOffset:])
	positions := make([]pmath.Vec3, 0, min(count, r.Len()/layout.size))
	for len(positions) < count {
		rec := layout.newRecord()
		if err := binary.Read(r, binary.LittleEndian, rec); err != nil {
			break
		}
		positions = append(positions, rec.position())
	}

	mesh.Truncation.ReadVertices = len(positions)
	if len(positions) < count {
		mesh.warnf("vertex table truncated: read %d of %d records", len(positions), count)
	}
	return positions
}

// ParseModelFile parses a binary model file from disk.
func ParseModelFile(path string, variant Variant, opts ModelOptions) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data, variant, opts)
}
