package core

import (
	"encoding/binary"
	"math"
)

// MaterialByteSize is emissive u32 followed by four f32, no padding.
const MaterialByteSize = 20

// Material holds the optical parameters a voxel's material id refers to.
type Material struct {
	Emissive        bool
	Opacity         float32
	RefractionIndex float32
	Specular        float32
	Shininess       float32
}

// Material table slots filled by DefaultMaterials.
const (
	MaterialDiffuse uint32 = iota
	MaterialShiny
	MaterialGlass
	MaterialLight
)

func DefaultMaterials() [NumMaterials]Material {
	return [NumMaterials]Material{
		MaterialDiffuse: {Opacity: 1.0, RefractionIndex: 1.0, Specular: 0.0, Shininess: 1.0},
		MaterialShiny:   {Opacity: 1.0, RefractionIndex: 1.0, Specular: 0.8, Shininess: 64.0},
		MaterialGlass:   {Opacity: 0.3, RefractionIndex: 1.5, Specular: 0.5, Shininess: 32.0},
		MaterialLight:   {Emissive: true, Opacity: 1.0, RefractionIndex: 1.0, Specular: 0.0, Shininess: 1.0},
	}
}

func (m Material) AppendBytes(dst []byte) []byte {
	emissive := uint32(0)
	if m.Emissive {
		emissive = 1
	}
	dst = binary.LittleEndian.AppendUint32(dst, emissive)
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(m.Opacity))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(m.RefractionIndex))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(m.Specular))
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(m.Shininess))
}
