package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/chunkrt"
	"github.com/gekko3d/chunkrt/voxelrt/rt/app"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := chunkrt.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := chunkrt.NewDefaultLogger("voxelrt", cfg.Debug)
	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg chunkrt.Config, logger chunkrt.Logger) error {
	viewer, err := chunkrt.NewViewer(cfg, logger)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Voxel Raytracing", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()

	application := app.NewApp(window, viewer, logger)
	defer application.Release()
	if err := application.Init(); err != nil {
		return err
	}
	return application.Run()
}
