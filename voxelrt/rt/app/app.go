package app

import (
	"fmt"
	"time"

	"github.com/gekko3d/chunkrt"
	"github.com/gekko3d/chunkrt/voxelrt/rt/gpu"
	"github.com/gekko3d/chunkrt/voxelrt/rt/volume"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// App drives one window: GLFW events feed the camera controller, each frame
// steps the viewer and pushes the camera uniform and scene time to the GPU.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device

	BufferManager *gpu.GpuBufferManager
	Viewer        *chunkrt.Viewer
	Input         *chunkrt.InputBridge
	Clock         *chunkrt.Time
	Profiler      *Profiler
	Log           chunkrt.Logger

	FrameCount int
	FPS        float64
	fpsTime    time.Duration
}

func NewApp(window *glfw.Window, viewer *chunkrt.Viewer, logger chunkrt.Logger) *App {
	if logger == nil {
		logger = chunkrt.NewNopLogger()
	}
	return &App{
		Window:   window,
		Viewer:   viewer,
		Input:    chunkrt.NewInputBridge(viewer.Camera.Controller),
		Profiler: NewProfiler(),
		Log:      logger,
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("failed to request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("failed to request device: %w", err)
	}

	a.BufferManager = gpu.NewGpuBufferManager(a.Device)
	if _, err := a.BufferManager.UploadScene(a.Viewer.SceneBuffer()); err != nil {
		return fmt.Errorf("initial scene upload: %w", err)
	}
	a.Log.Infof("scene buffer uploaded (%d bytes)", a.BufferManager.SceneBuf.GetSize())

	a.Input.Install(a.Window)
	a.Window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.Resize(width, height)
	})
	width, height := a.Window.GetFramebufferSize()
	a.Resize(width, height)

	a.Clock = chunkrt.NewTime()
	return nil
}

func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Viewer.Resize(w, h)
	}
}

// Update runs one frame.
func (a *App) Update() error {
	dt := a.Clock.Tick()

	a.Profiler.BeginScope("frame")
	frame := a.Viewer.Frame(dt)
	a.Profiler.EndScope("frame")

	a.Profiler.BeginScope("upload")
	if err := a.BufferManager.UpdateCamera(frame.Camera); err != nil {
		return err
	}
	if err := a.BufferManager.UpdateSceneTime(frame.Time); err != nil {
		return err
	}
	a.Profiler.EndScope("upload")

	a.FrameCount++
	a.fpsTime += dt
	if a.fpsTime >= time.Second {
		a.FPS = float64(a.FrameCount) / a.fpsTime.Seconds()
		a.FrameCount = 0
		a.fpsTime = 0

		if a.Log.DebugEnabled() {
			visible := 0
			a.Viewer.Scene.Chunks(func(_ int, c *volume.Chunk) bool {
				if c.Visible() {
					visible++
				}
				return true
			})
			a.Profiler.SetCount("visible", visible)
			a.Profiler.SetCount("uploads", a.BufferManager.SceneUploads)
			a.Log.Debugf("%.1f fps\n%s", a.FPS, a.Profiler.GetStatsString())
		}
	}

	a.Window.SetTitle(fmt.Sprintf("Voxel Raytracing -- Frame time: %05.2fms", float64(dt.Microseconds())/1000.0))
	return nil
}

// Run polls events and updates until the window is closed.
func (a *App) Run() error {
	for !a.Window.ShouldClose() {
		glfw.PollEvents()
		if err := a.Update(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Release() {
	if a.BufferManager != nil {
		a.BufferManager.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
