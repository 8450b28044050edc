package formats

import (
	"math"

	pmath "github.com/Faultbox/pureparts/pkg/math"
)

// DecodeHalf promotes an IEEE-754 half-precision bit pattern to float32.
// Every input maps to exactly one output; NaN payloads are kept in the
// upper fraction bits.
func DecodeHalf(bits uint16) float32 {
	sign := uint32(bits>>15) & 0x1
	exponent := uint32(bits>>10) & 0x1F
	fraction := uint32(bits) & 0x3FF

	var out uint32
	switch {
	case exponent == 0 && fraction == 0:
		out = sign << 31
	case exponent == 0:
		// Denormal half: shift until the implicit bit appears.
		exponent = 127 - 14
		for fraction&(1<<10) == 0 {
			exponent--
			fraction <<= 1
		}
		fraction &= 0x3FF
		out = sign<<31 | exponent<<23 | fraction<<13
	case exponent == 0x1F:
		out = sign<<31 | 0xFF<<23 | fraction<<13
	default:
		out = sign<<31 | (exponent+(127-15))<<23 | fraction<<13
	}

	return math.Float32frombits(out)
}

// DecodeHalf3 decodes three half-precision components into a vector.
func DecodeHalf3(v [3]uint16) pmath.Vec3 {
	return pmath.Vec3{X: DecodeHalf(v[0]), Y: DecodeHalf(v[1]), Z: DecodeHalf(v[2])}
}
