package chunkrt

import (
	"testing"
	"time"

	"github.com/gekko3d/chunkrt/voxelrt/rt/core"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestInputBridgeKeys(t *testing.T) {
	ctrl := core.NewCameraController(2, 1)
	b := NewInputBridge(ctrl)

	assert.True(t, b.OnKey(glfw.KeyUp, glfw.Press))
	assert.False(t, b.OnKey(glfw.KeyUp, glfw.Repeat))
	assert.False(t, b.OnKey(glfw.KeyZ, glfw.Press), "unbound key")

	view := core.View{}
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 2, view.Position.X(), 1e-5)

	b.OnKey(glfw.KeyUp, glfw.Release)
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 2, view.Position.X(), 1e-5)

	b.OnKey(glfw.KeySpace, glfw.Press)
	b.OnKey(glfw.KeyLeftShift, glfw.Press)
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 0, view.Position.Y(), 1e-5)
}

func TestInputBridgeCursorDeltas(t *testing.T) {
	ctrl := core.NewCameraController(1, 1)
	b := NewInputBridge(ctrl)

	// first sample primes the origin
	b.OnCursorPos(100, 100)
	b.OnCursorPos(110, 95)

	view := core.View{}
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, -10, view.Yaw, 1e-5)
	assert.InDelta(t, core.SafePitch, view.Pitch, 1e-6)

	view = core.View{}
	b.OnKey(glfw.KeyTab, glfw.Press)
	assert.False(t, b.MouseCaptured)
	b.OnCursorPos(500, 500)
	ctrl.UpdateCamera(&view, time.Second)
	assert.Equal(t, float32(0), view.Yaw, "released pointer must not rotate")

	b.OnKey(glfw.KeyTab, glfw.Press)
	b.OnCursorPos(0, 0)
	ctrl.UpdateCamera(&view, time.Second)
	assert.Equal(t, float32(0), view.Yaw, "recapture primes a fresh origin")
}

func TestInputBridgeScroll(t *testing.T) {
	ctrl := core.NewCameraController(1, 1)
	b := NewInputBridge(ctrl)
	b.OnScroll(0, -0.01)

	view := core.View{}
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 1, view.Position.X(), 1e-5)
}

func TestInputBridgeRotateRepeat(t *testing.T) {
	ctrl := core.NewCameraController(1, 1)
	b := NewInputBridge(ctrl)

	assert.True(t, b.OnKey(glfw.KeyQ, glfw.Press))
	assert.True(t, b.OnKey(glfw.KeyQ, glfw.Repeat))

	view := core.View{}
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 2*core.KeyRotateAmount, view.Yaw, 1e-5)

	// held movement keys ignore repeats
	assert.False(t, b.OnKey(glfw.KeyW, glfw.Repeat))

	b.OnKey(glfw.KeyQ, glfw.Release)
	ctrl.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 2*core.KeyRotateAmount, view.Yaw, 1e-5, "release adds no rotation")
}
