package volume

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// EmptyMaterial marks a cell without geometry.
const EmptyMaterial uint32 = 0xFF

// CompressedVoxelSize is the wire size of one voxel: two payload words plus two
// reserved words the renderer uses for transient lighting.
const CompressedVoxelSize = 16

var ErrDataLoss = errors.New("value does not fit compressed voxel layout")

// Voxel is the uncompressed form of a single cell.
type Voxel struct {
	Material uint32
	Normal   mgl32.Vec3
	Albedo   [3]uint32
}

// EmptyVoxel has the EMPTY material and a zero normal.
var EmptyVoxel = Voxel{Material: EmptyMaterial}

func (v Voxel) IsEmpty() bool {
	return v.Material&0xFF == EmptyMaterial
}

// Validate reports whether v survives Compress without bit truncation.
func (v Voxel) Validate() error {
	if v.Material > 0xFF {
		return fmt.Errorf("material %d: %w", v.Material, ErrDataLoss)
	}
	for i, c := range v.Albedo {
		if c > 0xFF {
			return fmt.Errorf("albedo[%d] = %d: %w", i, c, ErrDataLoss)
		}
	}
	for i, n := range v.Normal {
		if n < -1 || n > 1 || math.IsNaN(float64(n)) {
			return fmt.Errorf("normal[%d] = %f: %w", i, n, ErrDataLoss)
		}
	}
	return nil
}

// Clamped returns a copy of v with every field forced into its encodable range.
func (v Voxel) Clamped() Voxel {
	out := v
	if out.Material > 0xFF {
		out.Material = EmptyMaterial
	}
	for i := range out.Albedo {
		if out.Albedo[i] > 0xFF {
			out.Albedo[i] = 0xFF
		}
	}
	for i := range out.Normal {
		out.Normal[i] = mgl32.Clamp(out.Normal[i], -1, 1)
	}
	return out
}

// CompressedVoxel is the packed voxel exchanged with the renderer.
//
//	Word0: [31..24] material  [23..16] normal.x  [15..8] normal.y  [7..0] normal.z
//	Word1: [31..24] albedo.r  [23..16] albedo.g  [15..8] albedo.b  [7..0] spare (0)
//
// Out-of-range input to Compress is truncated to the low 8 bits per field;
// callers must Validate or clamp first.
type CompressedVoxel struct {
	Word0 uint32
	Word1 uint32
}

// QuantizeNormal maps n in [-1,1] to a byte via round((n+1)*127.5).
func QuantizeNormal(n float32) uint8 {
	q := math.Round((float64(n) + 1) * 127.5)
	if q < 0 || math.IsNaN(q) {
		return 0
	}
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// DequantizeNormal is the inverse of QuantizeNormal, exact to within 1/255.
func DequantizeNormal(b uint8) float32 {
	return float32(int32(b)*2-255) / 255
}

func PackWord0(material uint32, nx, ny, nz uint8) uint32 {
	return (material&0xFF)<<24 | uint32(nx)<<16 | uint32(ny)<<8 | uint32(nz)
}

func PackWord1(r, g, b uint32) uint32 {
	return (r&0xFF)<<24 | (g&0xFF)<<16 | (b&0xFF)<<8
}

func Compress(v Voxel) CompressedVoxel {
	return CompressedVoxel{
		Word0: PackWord0(v.Material,
			QuantizeNormal(v.Normal.X()),
			QuantizeNormal(v.Normal.Y()),
			QuantizeNormal(v.Normal.Z())),
		Word1: PackWord1(v.Albedo[0], v.Albedo[1], v.Albedo[2]),
	}
}

func (c CompressedVoxel) Material() uint32 {
	return c.Word0 >> 24
}

func (c CompressedVoxel) IsEmpty() bool {
	return c.Material() == EmptyMaterial
}

func (c CompressedVoxel) Decompress() Voxel {
	return Voxel{
		Material: c.Material(),
		Normal: mgl32.Vec3{
			DequantizeNormal(uint8(c.Word0 >> 16)),
			DequantizeNormal(uint8(c.Word0 >> 8)),
			DequantizeNormal(uint8(c.Word0)),
		},
		Albedo: [3]uint32{
			(c.Word1 >> 24) & 0xFF,
			(c.Word1 >> 16) & 0xFF,
			(c.Word1 >> 8) & 0xFF,
		},
	}
}

// AppendBytes appends the 16-byte wire form. The two reserved lighting words
// are always zero here; only the renderer writes them.
func (c CompressedVoxel) AppendBytes(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, c.Word0)
	dst = binary.LittleEndian.AppendUint32(dst, c.Word1)
	dst = binary.LittleEndian.AppendUint32(dst, 0)
	return binary.LittleEndian.AppendUint32(dst, 0)
}
