// Package geometry summarizes resolved meshes for camera placement.
package geometry

import (
	"fmt"
	"math"

	pmath "github.com/Faultbox/pureparts/pkg/math"
)

// SeedPolicy selects the starting corners of the running min/max.
type SeedPolicy string

// SizePolicy selects how the extent collapses to one scalar.
type SizePolicy string

// CenterPolicy selects how the center point is derived.
type CenterPolicy string

const (
	SeedFirstPoint SeedPolicy = "first"  // Start from the first point
	SeedOrigin     SeedPolicy = "origin" // Start from (0,0,0); box always contains the origin

	SizeMaxAxis  SizePolicy = "max_axis" // Largest single-axis extent
	SizeDiagonal SizePolicy = "diagonal" // Length of the extent diagonal

	CenterMidpoint   CenterPolicy = "midpoint"    // (min + max) / 2
	CenterHalfExtent CenterPolicy = "half_extent" // (max - min) / 2
)

// BoundsPolicy bundles the three summary choices.
type BoundsPolicy struct {
	Seed   SeedPolicy   `yaml:"seed"`
	Size   SizePolicy   `yaml:"size"`
	Center CenterPolicy `yaml:"center"`
}

// DefaultBoundsPolicy returns first-point seeding, max-axis size and
// box-midpoint center.
func DefaultBoundsPolicy() BoundsPolicy {
	return BoundsPolicy{
		Seed:   SeedFirstPoint,
		Size:   SizeMaxAxis,
		Center: CenterMidpoint,
	}
}

// LegacyBoundsPolicy selects the zero-seeded box, diagonal size and
// half-extent center of the original viewer.
func LegacyBoundsPolicy() BoundsPolicy {
	return BoundsPolicy{
		Seed:   SeedOrigin,
		Size:   SizeDiagonal,
		Center: CenterHalfExtent,
	}
}

// Validate rejects unknown policy names.
func (p BoundsPolicy) Validate() error {
	switch p.Seed {
	case SeedFirstPoint, SeedOrigin:
	default:
		return fmt.Errorf("unknown bounds seed %q", p.Seed)
	}
	switch p.Size {
	case SizeMaxAxis, SizeDiagonal:
	default:
		return fmt.Errorf("unknown bounds size %q", p.Size)
	}
	switch p.Center {
	case CenterMidpoint, CenterHalfExtent:
	default:
		return fmt.Errorf("unknown bounds center %q", p.Center)
	}
	return nil
}

// Bounds is the axis-aligned box of a mesh with its scalar size and center.
type Bounds struct {
	Min    pmath.Vec3
	Max    pmath.Vec3
	Size   float32
	Center pmath.Vec3
}

// Extent returns Max - Min.
func (b Bounds) Extent() pmath.Vec3 {
	return b.Max.Sub(b.Min)
}

// Summarize computes the bounds of points. NaN coordinates never reach the
// box.
func Summarize(points []pmath.Vec3, policy BoundsPolicy) Bounds {
	var b Bounds
	if len(points) == 0 {
		return b
	}
	if policy.Seed != SeedOrigin {
		b.Min = seedFrom(points)
		b.Max = b.Min
	}
	for _, p := range points {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}

	extent := b.Extent()
	switch policy.Size {
	case SizeDiagonal:
		b.Size = extent.Length()
	default:
		b.Size = extent.MaxComponent()
	}
	switch policy.Center {
	case CenterHalfExtent:
		b.Center = extent.Scale(0.5)
	default:
		b.Center = b.Min.Add(b.Max).Scale(0.5)
	}
	return b
}

// seedFrom returns the first non-NaN coordinate on each axis, or zero for
// an axis that has none.
func seedFrom(points []pmath.Vec3) pmath.Vec3 {
	var seed pmath.Vec3
	axes := [3]*float32{&seed.X, &seed.Y, &seed.Z}
	var found [3]bool
	for _, p := range points {
		for i, c := range [3]float32{p.X, p.Y, p.Z} {
			if !found[i] && !math.IsNaN(float64(c)) {
				*axes[i] = c
				found[i] = true
			}
		}
		if found[0] && found[1] && found[2] {
			break
		}
	}
	return seed
}
