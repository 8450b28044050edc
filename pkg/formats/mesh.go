package formats

import (
	"errors"
	"fmt"

	pmath "github.com/Faultbox/pureparts/pkg/math"
)

// ErrIndexOutOfRange is returned when a face references a missing vertex.
var ErrIndexOutOfRange = errors.New("index out of range")

// Truncation records how much of a table was expected versus read.
type Truncation struct {
	ExpectedVertices int // Records the layout called for
	ReadVertices     int // Complete records actually read
	ExpectedIndices  int // Indices the table bounds called for
	ReadIndices      int // Indices actually read
}

// Truncated returns true if either table came up short.
func (t Truncation) Truncated() bool {
	return t.ReadVertices < t.ExpectedVertices || t.ReadIndices < t.ExpectedIndices
}

// Mesh is a flat, non-indexed triangle list.
type Mesh struct {
	Positions   []pmath.Vec3 // Three positions per triangle
	FaceCount   int          // len(Positions) / 3
	VertexCount int          // len(Positions), duplicates included
	Truncation  Truncation   // Partial table reads (binary formats only)
	Warnings    []string     // Non-fatal format findings
}

// warnf appends a formatted warning.
func (m *Mesh) warnf(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

// finish fills the derived counts.
func (m *Mesh) finish() {
	m.VertexCount = len(m.Positions)
	m.FaceCount = m.VertexCount / 3
}

// resolveReversed emits every index triple [a, b, c] as the positions of
// c, b, a. When partial is set, triangles touching unread records are
// skipped instead of failing.
func resolveReversed(m *Mesh, indices []uint16, positions []pmath.Vec3, partial bool) error {
	m.Positions = make([]pmath.Vec3, 0, len(indices))
	skipped := 0
	for i := 0; i+2 < len(indices); i += 3 {
		tri := indices[i : i+3]
		if bad := firstOutOfRange(tri, len(positions)); bad >= 0 {
			if partial {
				skipped++
				continue
			}
			return fmt.Errorf("%w: index %d at position %d (vertex table has %d records)",
				ErrIndexOutOfRange, tri[bad], i+bad, len(positions))
		}
		m.Positions = append(m.Positions,
			positions[tri[2]],
			positions[tri[1]],
			positions[tri[0]],
		)
	}
	if skipped > 0 {
		m.warnf("skipped %d triangles referencing unread vertex records", skipped)
	}
	m.finish()
	return nil
}

func firstOutOfRange(tri []uint16, n int) int {
	for i, idx := range tri {
		if int(idx) >= n {
			return i
		}
	}
	return -1
}
