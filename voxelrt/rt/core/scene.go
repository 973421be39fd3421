package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/gekko3d/chunkrt/voxelrt/rt/volume"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	SceneSize    = 8
	SceneChunks  = SceneSize * SceneSize * SceneSize
	NumMaterials = 4

	// LayoutVersion is written into the header padding so the renderer can
	// reject buffers it does not understand. Bump on any layout change.
	LayoutVersion uint32 = 1
)

// Scene buffer layout, little-endian.
//
//	0      size            vec4
//	16     sun_direction   vec4
//	32     sun_strength    vec4
//	48     ambient_light   vec4
//	64     time            i32 (ms)
//	68     layout version  u32
//	72     padding         8 bytes
//	80     chunks          [SceneChunks]Chunk
//	...    materials       [NumMaterials]Material
const (
	OffsetSize          = 0
	OffsetSunDirection  = 16
	OffsetSunStrength   = 32
	OffsetAmbient       = 48
	OffsetTime          = 64
	OffsetLayoutVersion = 68
	OffsetChunks        = 80
	OffsetMaterials     = OffsetChunks + SceneChunks*volume.ChunkByteSize
	SceneByteSize       = OffsetMaterials + NumMaterials*MaterialByteSize
)

var (
	ErrLayoutMismatch  = errors.New("scene buffer layout mismatch")
	ErrUnknownMaterial = errors.New("material id not in table")
)

var SceneDims = [3]int{SceneSize, SceneSize, SceneSize}

// Scene is the fixed grid of chunks plus the material table and global light.
type Scene struct {
	Size      mgl32.Vec4
	Lighting  Lighting
	Materials [NumMaterials]Material

	chunks  [SceneChunks]*volume.Chunk
	timeMs  int32
	carryNs time.Duration
}

func NewScene() *Scene {
	s := &Scene{
		Size:      mgl32.Vec4{SceneSize, SceneSize, SceneSize, SceneSize},
		Lighting:  DefaultLighting(),
		Materials: DefaultMaterials(),
	}
	for i := range s.chunks {
		s.chunks[i] = volume.NewEmptyChunk(i, SceneDims)
	}
	return s
}

// ChunkAt returns the chunk at grid coordinate pos.
func (s *Scene) ChunkAt(pos [3]int) (*volume.Chunk, error) {
	idx, err := volume.FlattenChecked(pos, SceneDims)
	if err != nil {
		return nil, fmt.Errorf("scene chunk: %w", err)
	}
	return s.chunks[idx], nil
}

func (s *Scene) ChunkAtIndex(i int) (*volume.Chunk, error) {
	if i < 0 || i >= SceneChunks {
		return nil, fmt.Errorf("scene chunk %d: %w", i, volume.ErrIndexOutOfRange)
	}
	return s.chunks[i], nil
}

// Chunks calls fn for every chunk in grid order until fn returns false.
func (s *Scene) Chunks(fn func(i int, c *volume.Chunk) bool) {
	for i, c := range s.chunks {
		if !fn(i, c) {
			return
		}
	}
}

// Update advances the time counter by dt in whole milliseconds. Sub-millisecond
// remainders carry into the next call. The counter wraps at the int32 limit.
func (s *Scene) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	total := s.carryNs + dt
	ms := total / time.Millisecond
	s.carryNs = total - ms*time.Millisecond
	s.timeMs += int32(ms)
}

func (s *Scene) Time() int32 {
	return s.timeMs
}

// TimeBytes is the 4-byte time field written at OffsetTime for per-frame
// partial uploads.
func (s *Scene) TimeBytes() []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), uint32(s.timeMs))
}

// SpawnGroundPlane fills the bottom voxel layer of every chunk on grid row y=0.
func (s *Scene) SpawnGroundPlane(material uint32, albedo [3]uint32) {
	for x := 0; x < SceneSize; x++ {
		for z := 0; z < SceneSize; z++ {
			c := s.chunks[volume.Flatten([3]int{x, 0, z}, SceneDims)]
			// layer 0 is always in range
			_ = c.FillLayer(0, material, albedo, mgl32.Vec3{0, 1, 0})
		}
	}
}

// ValidateMaterials reports the first voxel whose material id is neither EMPTY
// nor an index into the material table.
func (s *Scene) ValidateMaterials() error {
	for i, c := range s.chunks {
		for z := 0; z < volume.ChunkSize; z++ {
			for y := 0; y < volume.ChunkSize; y++ {
				for x := 0; x < volume.ChunkSize; x++ {
					cv, _ := c.Compressed([3]int{x, y, z})
					m := cv.Material()
					if m != volume.EmptyMaterial && m >= NumMaterials {
						return fmt.Errorf("chunk %v voxel (%d,%d,%d) material %d: %w",
							volume.Expand(i, SceneDims), x, y, z, m, ErrUnknownMaterial)
					}
				}
			}
		}
	}
	return nil
}

// Serialize produces the full scene buffer. Output is deterministic for a
// given scene state.
func (s *Scene) Serialize() []byte {
	buf := make([]byte, 0, SceneByteSize)
	buf = appendVec4(buf, s.Size)
	buf = s.Lighting.AppendBytes(buf)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.timeMs))
	buf = binary.LittleEndian.AppendUint32(buf, LayoutVersion)
	buf = append(buf, make([]byte, OffsetChunks-OffsetLayoutVersion-4)...)
	for _, c := range s.chunks {
		buf = c.AppendBytes(buf)
	}
	for _, m := range s.Materials {
		buf = m.AppendBytes(buf)
	}
	return buf
}

// ReadLayoutVersion checks buf's size and returns its layout version tag.
func ReadLayoutVersion(buf []byte) (uint32, error) {
	if len(buf) != SceneByteSize {
		return 0, fmt.Errorf("buffer is %d bytes, want %d: %w", len(buf), SceneByteSize, ErrLayoutMismatch)
	}
	v := binary.LittleEndian.Uint32(buf[OffsetLayoutVersion:])
	if v != LayoutVersion {
		return v, fmt.Errorf("layout version %d, want %d: %w", v, LayoutVersion, ErrLayoutMismatch)
	}
	return v, nil
}
