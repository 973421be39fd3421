package volume

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ChunkSize   = 8
	ChunkVoxels = ChunkSize * ChunkSize * ChunkSize

	// ChunkByteSize is pos vec4 followed by every compressed voxel.
	ChunkByteSize = 16 + ChunkVoxels*CompressedVoxelSize
)

var ChunkDims = [3]int{ChunkSize, ChunkSize, ChunkSize}

var emptyCompressed = Compress(EmptyVoxel)

// Chunk is a fixed 8x8x8 block of compressed voxels placed on the scene grid.
// Solid tracks the number of non-empty voxels so the visibility flag is exact
// after every store.
type Chunk struct {
	Position mgl32.Vec3
	voxels   [ChunkVoxels]CompressedVoxel
	solid    int
}

// NewEmptyChunk places a chunk at Expand(gridIndex, sceneDims) with every voxel EMPTY.
func NewEmptyChunk(gridIndex int, sceneDims [3]int) *Chunk {
	p := Expand(gridIndex, sceneDims)
	c := &Chunk{Position: mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}}
	c.Clear()
	return c
}

func (c *Chunk) Clear() {
	for i := range c.voxels {
		c.voxels[i] = emptyCompressed
	}
	c.solid = 0
}

func (c *Chunk) Visible() bool {
	return c.solid > 0
}

// VisibilityFlag is the 4th component of the chunk's position vector on the wire.
func (c *Chunk) VisibilityFlag() float32 {
	if c.Visible() {
		return 1
	}
	return 0
}

func (c *Chunk) SolidCount() int {
	return c.solid
}

func (c *Chunk) store(idx int, cv CompressedVoxel) {
	if !c.voxels[idx].IsEmpty() {
		c.solid--
	}
	if !cv.IsEmpty() {
		c.solid++
	}
	c.voxels[idx] = cv
}

func (c *Chunk) Compressed(pos [3]int) (CompressedVoxel, error) {
	idx, err := FlattenChecked(pos, ChunkDims)
	if err != nil {
		return CompressedVoxel{}, fmt.Errorf("chunk voxel: %w", err)
	}
	return c.voxels[idx], nil
}

func (c *Chunk) VoxelAt(pos [3]int) (Voxel, error) {
	cv, err := c.Compressed(pos)
	if err != nil {
		return Voxel{}, err
	}
	return cv.Decompress(), nil
}

func (c *Chunk) SetVoxel(pos [3]int, v Voxel) error {
	idx, err := FlattenChecked(pos, ChunkDims)
	if err != nil {
		return fmt.Errorf("chunk voxel: %w", err)
	}
	c.store(idx, Compress(v))
	return nil
}

// ModifyVoxelAt decompresses the voxel at pos, applies mutate and stores the
// recompressed result.
func (c *Chunk) ModifyVoxelAt(pos [3]int, mutate func(v *Voxel)) error {
	idx, err := FlattenChecked(pos, ChunkDims)
	if err != nil {
		return fmt.Errorf("chunk voxel: %w", err)
	}
	v := c.voxels[idx].Decompress()
	mutate(&v)
	c.store(idx, Compress(v))
	return nil
}

func voxelCenter(x, y, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
}

var chunkCenter = mgl32.Vec3{ChunkSize / 2, ChunkSize / 2, ChunkSize / 2}

// FillBorders sets the outer shell. Normals point from the chunk center outward.
func (c *Chunk) FillBorders(material uint32, albedo [3]uint32) {
	const last = ChunkSize - 1
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				if x != 0 && x != last && y != 0 && y != last && z != 0 && z != last {
					continue
				}
				normal := voxelCenter(x, y, z).Sub(chunkCenter).Normalize()
				c.store(Flatten([3]int{x, y, z}, ChunkDims), Compress(Voxel{
					Material: material,
					Normal:   normal,
					Albedo:   albedo,
				}))
			}
		}
	}
}

// FillSphere sets every voxel whose center is within ChunkSize/2 of the chunk center.
func (c *Chunk) FillSphere(material uint32, albedo [3]uint32) {
	const radius = ChunkSize / 2
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				d := voxelCenter(x, y, z).Sub(chunkCenter)
				if d.Len() > radius {
					continue
				}
				c.store(Flatten([3]int{x, y, z}, ChunkDims), Compress(Voxel{
					Material: material,
					Normal:   d.Normalize(),
					Albedo:   albedo,
				}))
			}
		}
	}
}

// FillLayer sets every voxel of local layer y.
func (c *Chunk) FillLayer(y int, material uint32, albedo [3]uint32, normal mgl32.Vec3) error {
	if y < 0 || y >= ChunkSize {
		return fmt.Errorf("layer %d: %w", y, ErrIndexOutOfRange)
	}
	cv := Compress(Voxel{Material: material, Normal: normal, Albedo: albedo})
	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			c.store(Flatten([3]int{x, y, z}, ChunkDims), cv)
		}
	}
	return nil
}

// AppendBytes appends pos.xyz, the visibility flag and every voxel in linear order.
func (c *Chunk) AppendBytes(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.Position.X()))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.Position.Y()))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.Position.Z()))
	dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(c.VisibilityFlag()))
	for i := range c.voxels {
		dst = c.voxels[i].AppendBytes(dst)
	}
	return dst
}
