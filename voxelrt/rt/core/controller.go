package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultSpeed       = 4.0
	DefaultSensitivity = 1.0

	// PixelsPerScrollLine converts line-based wheel deltas to pixels.
	PixelsPerScrollLine = 100.0

	// KeyRotateAmount is the one-shot yaw delta of the mouseless rotate actions.
	KeyRotateAmount = 0.5

	// SafePitch keeps the look direction off the vertical pole.
	SafePitch = math.Pi/2 - 0.0001
)

// Action is a logical key binding.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionRotateLeft
	ActionRotateRight
)

// CameraController turns input into View motion.
//
// Movement amounts are held levels: 1 while the key is down, 0 after release.
// Rotation and scroll are one-shot deltas consumed by the next UpdateCamera.
type CameraController struct {
	amountLeft     float32
	amountRight    float32
	amountForward  float32
	amountBackward float32
	amountUp       float32
	amountDown     float32

	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	Speed       float32
	Sensitivity float32
}

func NewCameraController(speed, sensitivity float32) *CameraController {
	return &CameraController{
		Speed:       speed,
		Sensitivity: sensitivity,
	}
}

// ProcessAction records a press or release and reports whether the action is bound.
func (c *CameraController) ProcessAction(action Action, pressed bool) bool {
	var amount float32
	if pressed {
		amount = 1
	}
	switch action {
	case ActionForward:
		c.amountForward = amount
	case ActionBackward:
		c.amountBackward = amount
	case ActionLeft:
		c.amountLeft = amount
	case ActionRight:
		c.amountRight = amount
	case ActionUp:
		c.amountUp = amount
	case ActionDown:
		c.amountDown = amount
	case ActionRotateLeft:
		// one-shot, adds to any pointer motion queued this frame
		c.rotateHorizontal += amount * KeyRotateAmount
	case ActionRotateRight:
		c.rotateHorizontal -= amount * KeyRotateAmount
	default:
		return false
	}
	return true
}

// ProcessMouse accumulates a pointer delta. Moving right turns left-handed yaw
// negative, moving up raises pitch.
func (c *CameraController) ProcessMouse(dx, dy float64) {
	c.rotateHorizontal -= float32(dx)
	c.rotateVertical -= float32(dy)
}

func (c *CameraController) ProcessScrollLines(lines float64) {
	c.scroll -= float32(lines * PixelsPerScrollLine)
}

func (c *CameraController) ProcessScrollPixels(px float64) {
	c.scroll -= float32(px)
}

// UpdateCamera integrates the held movement and consumes pending rotation and
// scroll deltas over dt.
func (c *CameraController) UpdateCamera(view *View, dt time.Duration) {
	secs := float32(dt.Seconds())

	sinYaw, cosYaw := math.Sincos(float64(view.Yaw))
	forward := mgl32.Vec3{float32(cosYaw), 0, float32(sinYaw)}.Normalize()
	right := mgl32.Vec3{float32(sinYaw), 0, float32(-cosYaw)}.Normalize()
	view.Position = view.Position.Add(forward.Mul((c.amountForward - c.amountBackward) * c.Speed * secs))
	view.Position = view.Position.Add(right.Mul((c.amountRight - c.amountLeft) * c.Speed * secs))

	// scroll moves along the full look direction, it is not a zoom
	look := lookDirection(view.Yaw, view.Pitch)
	view.Position = view.Position.Add(look.Mul(c.scroll * c.Speed * c.Sensitivity * secs))
	c.scroll = 0

	view.Position[1] += (c.amountUp - c.amountDown) * c.Speed * secs

	view.Yaw += c.rotateHorizontal * c.Sensitivity * secs
	view.Pitch += c.rotateVertical * c.Sensitivity * secs
	c.rotateHorizontal = 0
	c.rotateVertical = 0

	if view.Pitch < -SafePitch {
		view.Pitch = -SafePitch
	} else if view.Pitch > SafePitch {
		view.Pitch = SafePitch
	}
}
