package chunkrt

import (
	"fmt"
	"time"

	"github.com/gekko3d/chunkrt/voxelrt/rt/core"
	"github.com/gekko3d/chunkrt/voxelrt/rt/volume"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameData is what one frame hands to the renderer.
type FrameData struct {
	Camera []byte // core.CameraUniformSize bytes
	Time   []byte // written at core.OffsetTime of the scene buffer
}

// Viewer owns the scene and the camera and steps them in the fixed per-frame
// order: camera, scene time, uniform extraction. Not safe for concurrent use.
type Viewer struct {
	Scene  *core.Scene
	Camera *core.Camera

	log    Logger
	frames uint64
}

func NewViewer(cfg Config, logger Logger) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = orNop(logger)

	cam := core.NewCamera(
		cfg.CameraPosition,
		mgl32.DegToRad(float32(cfg.YawDeg)),
		mgl32.DegToRad(float32(cfg.PitchDeg)),
		float32(cfg.Width)/float32(cfg.Height),
		mgl32.DegToRad(float32(cfg.FovYDeg)),
		float32(cfg.ZNear),
		float32(cfg.ZFar),
	)
	cam.Controller.Speed = float32(cfg.Speed)
	cam.Controller.Sensitivity = float32(cfg.Sensitivity)

	scene := core.NewScene()
	if cfg.DemoScene {
		if err := BuildDemoScene(scene); err != nil {
			return nil, fmt.Errorf("demo scene: %w", err)
		}
	}
	if err := scene.ValidateMaterials(); err != nil {
		return nil, err
	}

	visible := 0
	scene.Chunks(func(_ int, c *volume.Chunk) bool {
		if c.Visible() {
			visible++
		}
		return true
	})
	logger.Infof("scene ready: %d/%d chunks visible, %d byte buffer", visible, core.SceneChunks, core.SceneByteSize)

	return &Viewer{Scene: scene, Camera: cam, log: logger}, nil
}

// Frame advances everything by dt and returns the per-frame upload data.
func (v *Viewer) Frame(dt time.Duration) FrameData {
	v.Camera.Update(dt)
	v.Scene.Update(dt)
	v.frames++

	if v.log.DebugEnabled() && v.frames%600 == 0 {
		p := v.Camera.View.Position
		v.log.Debugf("frame %d: dt=%s pos=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f time=%dms",
			v.frames, dt, p.X(), p.Y(), p.Z(),
			mgl32.RadToDeg(v.Camera.View.Yaw), mgl32.RadToDeg(v.Camera.View.Pitch), v.Scene.Time())
	}

	return FrameData{
		Camera: v.Camera.Uniform().Bytes(),
		Time:   v.Scene.TimeBytes(),
	}
}

func (v *Viewer) Frames() uint64 {
	return v.frames
}

func (v *Viewer) SceneBuffer() []byte {
	return v.Scene.Serialize()
}

func (v *Viewer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.Camera.Projection.Resize(uint32(width), uint32(height))
	v.log.Debugf("resized to %dx%d, aspect %.3f", width, height, v.Camera.Projection.Aspect)
}

type demoFill struct {
	pos    [3]int
	sphere bool
	mat    uint32
	albedo [3]uint32
}

var demoFills = []demoFill{
	{[3]int{0, 0, 0}, false, core.MaterialDiffuse, [3]uint32{180, 180, 180}},
	{[3]int{0, 1, 0}, true, core.MaterialDiffuse, [3]uint32{180, 180, 180}},
	{[3]int{1, 1, 1}, false, core.MaterialGlass, [3]uint32{255, 255, 84}},
	{[3]int{2, 2, 2}, true, core.MaterialGlass, [3]uint32{210, 115, 80}},
	{[3]int{3, 1, 3}, true, core.MaterialLight, [3]uint32{0, 190, 0}},
}

// BuildDemoScene lays a ground plane and a handful of shell and sphere chunks.
func BuildDemoScene(scene *core.Scene) error {
	scene.SpawnGroundPlane(core.MaterialDiffuse, [3]uint32{120, 120, 120})
	for _, f := range demoFills {
		c, err := scene.ChunkAt(f.pos)
		if err != nil {
			return err
		}
		if f.sphere {
			c.FillSphere(f.mat, f.albedo)
		} else {
			c.FillBorders(f.mat, f.albedo)
		}
	}
	return nil
}
