package chunkrt

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the startup parameters of a viewer. Angles are degrees.
type Config struct {
	Width  int
	Height int

	CameraPosition mgl32.Vec3
	YawDeg         float64
	PitchDeg       float64
	FovYDeg        float64
	ZNear          float64
	ZFar           float64

	Speed       float64
	Sensitivity float64

	DemoScene bool
	Debug     bool
}

func DefaultConfig() Config {
	return Config{
		Width:  1280,
		Height: 720,

		// slightly away from the scene, looking diagonally along xz and down
		CameraPosition: mgl32.Vec3{-4, 4, -4},
		YawDeg:         45,
		PitchDeg:       -25,
		// 90 degrees horizontal on a 16:9 screen
		FovYDeg: 59,
		ZNear:   0.1,
		ZFar:    100,

		Speed:       4,
		Sensitivity: 1,

		DemoScene: true,
	}
}

// RegisterFlags binds the tunable fields to fs, keeping current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.Float64Var(&c.YawDeg, "yaw", c.YawDeg, "initial camera yaw in degrees")
	fs.Float64Var(&c.PitchDeg, "pitch", c.PitchDeg, "initial camera pitch in degrees")
	fs.Float64Var(&c.FovYDeg, "fov", c.FovYDeg, "vertical field of view in degrees")
	fs.Float64Var(&c.ZNear, "near", c.ZNear, "near plane distance")
	fs.Float64Var(&c.ZFar, "far", c.ZFar, "far plane distance")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "camera movement speed in units per second")
	fs.Float64Var(&c.Sensitivity, "sensitivity", c.Sensitivity, "pointer and scroll sensitivity")
	fs.BoolVar(&c.DemoScene, "demo", c.DemoScene, "populate the demo scene")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.FovYDeg <= 0 || c.FovYDeg >= 180:
		return fmt.Errorf("fov %.1f outside (0, 180): %w", c.FovYDeg, ErrInvalidConfig)
	case c.ZNear <= 0 || c.ZFar <= c.ZNear:
		return fmt.Errorf("near %.3f / far %.3f: %w", c.ZNear, c.ZFar, ErrInvalidConfig)
	case c.Speed < 0 || c.Sensitivity < 0:
		return fmt.Errorf("negative speed or sensitivity: %w", ErrInvalidConfig)
	}
	return nil
}
