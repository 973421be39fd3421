package chunkrt

import (
	"github.com/gekko3d/chunkrt/voxelrt/rt/core"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// DefaultBindings maps keys to controller actions. Arrow keys mirror WASD.
var DefaultBindings = map[glfw.Key]core.Action{
	glfw.KeyW:         core.ActionForward,
	glfw.KeyUp:        core.ActionForward,
	glfw.KeyS:         core.ActionBackward,
	glfw.KeyDown:      core.ActionBackward,
	glfw.KeyA:         core.ActionLeft,
	glfw.KeyLeft:      core.ActionLeft,
	glfw.KeyD:         core.ActionRight,
	glfw.KeyRight:     core.ActionRight,
	glfw.KeySpace:     core.ActionUp,
	glfw.KeyLeftShift: core.ActionDown,
	glfw.KeyQ:         core.ActionRotateLeft,
	glfw.KeyE:         core.ActionRotateRight,
}

// InputBridge feeds GLFW window events into a CameraController. Cursor
// positions are turned into deltas; the first sample only primes the origin.
type InputBridge struct {
	Controller *core.CameraController
	Bindings   map[glfw.Key]core.Action

	// MouseCaptured gates pointer rotation, toggled with Tab like the editor.
	MouseCaptured bool

	mouseX, mouseY float64
	havePos        bool
}

func NewInputBridge(controller *core.CameraController) *InputBridge {
	return &InputBridge{
		Controller:    controller,
		Bindings:      DefaultBindings,
		MouseCaptured: true,
	}
}

// OnKey handles a key event and reports whether it was consumed.
func (b *InputBridge) OnKey(key glfw.Key, action glfw.Action) bool {
	if key == glfw.KeyTab && action == glfw.Press {
		b.MouseCaptured = !b.MouseCaptured
		b.havePos = false
		return true
	}
	a, ok := b.Bindings[key]
	if !ok {
		return false
	}
	// repeats carry no new state for held levels; rotation keys are one-shot
	// and keep turning while repeated
	if action == glfw.Repeat {
		if a != core.ActionRotateLeft && a != core.ActionRotateRight {
			return false
		}
		return b.Controller.ProcessAction(a, true)
	}
	return b.Controller.ProcessAction(a, action == glfw.Press)
}

func (b *InputBridge) OnCursorPos(x, y float64) {
	if !b.MouseCaptured {
		b.havePos = false
		return
	}
	if b.havePos {
		b.Controller.ProcessMouse(x-b.mouseX, y-b.mouseY)
	}
	b.mouseX, b.mouseY = x, y
	b.havePos = true
}

// OnScroll takes GLFW's line-based wheel offsets.
func (b *InputBridge) OnScroll(xoff, yoff float64) {
	b.Controller.ProcessScrollLines(yoff)
}

// Install registers the bridge's callbacks on w.
func (b *InputBridge) Install(w *glfw.Window) {
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		b.OnKey(key, action)
		if b.MouseCaptured {
			w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else {
			w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	})
	w.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		b.OnCursorPos(xpos, ypos)
	})
	w.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		b.OnScroll(xoff, yoff)
	})
	if b.MouseCaptured {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}
}
