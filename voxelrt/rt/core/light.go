package core

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lighting is the global light block of the scene buffer, three vec4s.
type Lighting struct {
	SunDirection mgl32.Vec4 // xyz normalized, w unused
	SunStrength  mgl32.Vec4 // rgb, intensity
	Ambient      mgl32.Vec4 // rgb, w unused
}

func DefaultLighting() Lighting {
	return Lighting{
		SunDirection: mgl32.Vec3{-0.3, -1.0, -0.5}.Normalize().Vec4(0),
		SunStrength:  mgl32.Vec4{1.0, 0.95, 0.85, 1.0},
		Ambient:      mgl32.Vec4{0.1, 0.1, 0.12, 0},
	}
}

func appendVec4(dst []byte, v mgl32.Vec4) []byte {
	for _, f := range v {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

func (l Lighting) AppendBytes(dst []byte) []byte {
	dst = appendVec4(dst, l.SunDirection)
	dst = appendVec4(dst, l.SunStrength)
	return appendVec4(dst, l.Ambient)
}
