package gpu

import (
	"fmt"

	"github.com/gekko3d/chunkrt/voxelrt/rt/core"

	"github.com/cogentcore/webgpu/wgpu"
)

// GpuBufferManager owns the two buffers the raytracer binds: the scene storage
// buffer and the camera uniform buffer.
type GpuBufferManager struct {
	Device *wgpu.Device

	SceneBuf  *wgpu.Buffer
	CameraBuf *wgpu.Buffer

	SceneUploads int
}

func NewGpuBufferManager(device *wgpu.Device) *GpuBufferManager {
	return &GpuBufferManager{Device: device}
}

func alignTo4(n uint64) uint64 {
	if n%4 != 0 {
		n += 4 - (n % 4)
	}
	return n
}

// ensureBuffer (re)creates *buf when it is missing or too small and reports
// whether a new buffer was created. Bind groups referencing the old one must
// be rebuilt by the caller in that case.
func (m *GpuBufferManager) ensureBuffer(name string, buf **wgpu.Buffer, size uint64, usage wgpu.BufferUsage) (bool, error) {
	neededSize := alignTo4(size)

	current := *buf
	if current != nil && current.GetSize() >= neededSize {
		return false, nil
	}
	if current != nil {
		current.Release()
	}

	newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            name,
		Size:             neededSize,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		*buf = nil
		return false, fmt.Errorf("failed to create %s buffer: %w", name, err)
	}
	*buf = newBuf
	return true, nil
}

// UploadScene writes a full serialized scene. The buffer's layout tag is
// checked first so a stale producer never reaches the shader.
func (m *GpuBufferManager) UploadScene(data []byte) (bool, error) {
	if _, err := core.ReadLayoutVersion(data); err != nil {
		return false, err
	}
	recreated, err := m.ensureBuffer("SceneSB", &m.SceneBuf, uint64(len(data)), wgpu.BufferUsageStorage)
	if err != nil {
		return false, err
	}
	m.Device.GetQueue().WriteBuffer(m.SceneBuf, 0, data)
	m.SceneUploads++
	return recreated, nil
}

// UpdateSceneTime patches only the time field of an already uploaded scene.
func (m *GpuBufferManager) UpdateSceneTime(timeBytes []byte) error {
	if m.SceneBuf == nil {
		return fmt.Errorf("scene buffer not uploaded")
	}
	if len(timeBytes) != 4 {
		return fmt.Errorf("time field is %d bytes, want 4", len(timeBytes))
	}
	m.Device.GetQueue().WriteBuffer(m.SceneBuf, core.OffsetTime, timeBytes)
	return nil
}

// UpdateCamera writes the per-frame camera uniform.
//
//	struct Camera {
//	  position: vec4<f32>;  -- 0
//	  inv_view: mat4x4<f32>; -- 16
//	  inv_proj: mat4x4<f32>; -- 80
//	} -> 144 bytes
func (m *GpuBufferManager) UpdateCamera(uniform []byte) error {
	if len(uniform) != core.CameraUniformSize {
		return fmt.Errorf("camera uniform is %d bytes, want %d", len(uniform), core.CameraUniformSize)
	}
	if _, err := m.ensureBuffer("CameraUB", &m.CameraBuf, core.CameraUniformSize, wgpu.BufferUsageUniform); err != nil {
		return err
	}
	m.Device.GetQueue().WriteBuffer(m.CameraBuf, 0, uniform)
	return nil
}

func (m *GpuBufferManager) Release() {
	if m.SceneBuf != nil {
		m.SceneBuf.Release()
		m.SceneBuf = nil
	}
	if m.CameraBuf != nil {
		m.CameraBuf.Release()
		m.CameraBuf = nil
	}
}
