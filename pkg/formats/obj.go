// Package formats provides parsers for the PureParts model file formats.
// OBJ (Wavefront text mesh) parser, positions and triangular faces only.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	pmath "github.com/Faultbox/pureparts/pkg/math"
)

// OBJ holds the raw pools of a parsed OBJ file.
type OBJ struct {
	Vertices []pmath.Vec3 // Positions in file order
	Faces    [][3]uint32  // 1-based position indices
}

// ParseOBJ reads `v` and `f` records from r. Fields that fail to parse
// read as zero; every other record type is ignored. Lines may be any length.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			obj.parseLine(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading OBJ data: %w", err)
		}
	}

	return obj, nil
}

func (obj *OBJ) parseLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "v":
		obj.Vertices = append(obj.Vertices, pmath.Vec3{
			X: parseFloatField(fields, 1),
			Y: parseFloatField(fields, 2),
			Z: parseFloatField(fields, 3),
		})
	case "f":
		obj.Faces = append(obj.Faces, [3]uint32{
			parseIndexField(fields, 1),
			parseIndexField(fields, 2),
			parseIndexField(fields, 3),
		})
	}
}

// Mesh resolves every face against the vertex pool in file order.
func (obj *OBJ) Mesh() (*Mesh, error) {
	mesh := &Mesh{Positions: make([]pmath.Vec3, 0, len(obj.Faces)*3)}
	for i, face := range obj.Faces {
		for _, idx := range face {
			if idx == 0 || int(idx) > len(obj.Vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d (have %d)",
					ErrIndexOutOfRange, i+1, idx, len(obj.Vertices))
			}
			mesh.Positions = append(mesh.Positions, obj.Vertices[idx-1])
		}
	}
	mesh.finish()
	return mesh, nil
}

// ParseOBJFile parses an OBJ file from disk and resolves its faces.
func ParseOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, err
	}
	return obj.Mesh()
}

func parseFloatField(fields []string, i int) float32 {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.ParseFloat(fields[i], 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// parseIndexField reads the position index of a face corner, which may
// carry `/vt/vn` suffixes.
func parseIndexField(fields []string, i int) uint32 {
	if i >= len(fields) {
		return 0
	}
	pos, _, _ := strings.Cut(fields[i], "/")
	v, err := strconv.ParseUint(pos, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
