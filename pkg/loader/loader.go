// Package loader picks the right parser for a model file and summarizes
// the resolved mesh for the viewer.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pureparts/internal/config"
	"github.com/Faultbox/pureparts/pkg/formats"
	"github.com/Faultbox/pureparts/pkg/geometry"
)

// Dispatch errors.
var (
	ErrUnsupportedExtension = errors.New("unsupported model file extension")
	ErrUnknownVariant       = errors.New("no LOD variant marker in file name")
)

// objExtension is the text mesh extension.
const objExtension = ".obj"

// viewDistanceFactor places the camera this many model sizes away.
const viewDistanceFactor = 1.5

// minSummaryPositions is the smallest stream that gets a bounds summary.
const minSummaryPositions = 3

// Format identifies the file format a model was read from.
type Format string

const (
	FormatOBJ   Format = "obj"   // Text vertex/face lists
	FormatModel Format = "model" // Binary LOD1/LOD3 meshes
)

// Result is the output contract handed to the viewer.
type Result struct {
	Path    string
	Format  Format
	Variant formats.Variant // Zero for text meshes
	Mesh    *formats.Mesh
	Bounds  geometry.Bounds
}

// ViewDistance returns the initial camera distance for the model.
func (r *Result) ViewDistance() float32 {
	return r.Bounds.Size * viewDistanceFactor
}

// Loader dispatches model files to their parser. It holds no state between loads.
type Loader struct {
	cfg config.LoaderConfig
	log *zap.Logger
}

// New creates a loader. A nil logger discards output.
func New(cfg config.LoaderConfig, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{cfg: cfg, log: log}
}

// Load parses the model at path and summarizes its bounds. Either a fully
// valid result or an error is returned, never both.
func (l *Loader) Load(path string) (*Result, error) {
	started := time.Now()
	l.log.Debug("loading model", zap.String("path", path))

	format, variant, err := l.Detect(path)
	if err != nil {
		l.log.Error("refusing model", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	var mesh *formats.Mesh
	switch format {
	case FormatOBJ:
		mesh, err = formats.ParseOBJFile(path)
	default:
		mesh, err = formats.ParseModelFile(path, variant, l.cfg.ModelOptions())
	}
	if err != nil {
		l.log.Error("model load failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}

	res := &Result{
		Path:    path,
		Format:  format,
		Variant: variant,
		Mesh:    mesh,
	}
	if len(mesh.Positions) >= minSummaryPositions {
		res.Bounds = geometry.Summarize(mesh.Positions, l.cfg.Bounds)
	}

	for _, w := range mesh.Warnings {
		l.log.Warn("model warning", zap.String("path", path), zap.String("warning", w))
	}
	if mesh.Truncation.Truncated() {
		l.log.Warn("model truncated",
			zap.String("path", path),
			zap.Int("vertices_read", mesh.Truncation.ReadVertices),
			zap.Int("vertices_expected", mesh.Truncation.ExpectedVertices),
			zap.Int("indices_read", mesh.Truncation.ReadIndices),
			zap.Int("indices_expected", mesh.Truncation.ExpectedIndices),
		)
	}
	l.log.Info("model loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Stringer("variant", variant),
		zap.Int("faces", mesh.FaceCount),
		zap.Int("vertices", mesh.VertexCount),
		zap.Float32("size", res.Bounds.Size),
		zap.Duration("took", time.Since(started)),
	)

	return res, nil
}

// Detect returns the format and, for binary models, the LOD variant that
// Load would use for path.
func (l *Loader) Detect(path string) (Format, formats.Variant, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case objExtension:
		return FormatOBJ, 0, nil
	case strings.ToLower(l.cfg.BinaryExtension):
		variant, err := l.variantOf(path)
		if err != nil {
			return "", 0, err
		}
		return FormatModel, variant, nil
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// variantOf finds the LOD marker in the file name. The rightmost marker
// wins when both appear.
func (l *Loader) variantOf(path string) (formats.Variant, error) {
	name := strings.ToUpper(filepath.Base(path))

	lod1 := strings.LastIndex(name, strings.ToUpper(l.cfg.LOD1Marker))
	lod3 := strings.LastIndex(name, strings.ToUpper(l.cfg.LOD3Marker))
	switch {
	case lod1 < 0 && lod3 < 0:
		return 0, fmt.Errorf("%w: %s (want %s or %s)", ErrUnknownVariant, filepath.Base(path), l.cfg.LOD1Marker, l.cfg.LOD3Marker)
	case lod1 > lod3:
		return formats.VariantLOD1, nil
	default:
		return formats.VariantLOD3, nil
	}
}
