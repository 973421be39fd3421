package core

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestForwardMovement(t *testing.T) {
	view := View{Yaw: mgl32.DegToRad(45), Pitch: mgl32.DegToRad(-25)}
	c := NewCameraController(4.0, 1.0)
	c.ProcessAction(ActionForward, true)
	c.UpdateCamera(&view, time.Second)

	want := mgl32.Vec3{float32(math.Cos(math.Pi / 4)), 0, float32(math.Sin(math.Pi / 4))}.Mul(4)
	assertVec3(t, want, view.Position)
}

func TestStrafeIsPerpendicular(t *testing.T) {
	view := View{Yaw: mgl32.DegToRad(30)}
	c := NewCameraController(2.0, 1.0)
	c.ProcessAction(ActionRight, true)
	c.UpdateCamera(&view, time.Second)

	assert.InDelta(t, 2.0, view.Position.Len(), eps)
	forward := mgl32.Vec3{float32(math.Cos(math.Pi / 6)), 0, float32(math.Sin(math.Pi / 6))}
	assert.InDelta(t, 0, view.Position.Dot(forward), eps)
	// left-handed, +Y up: right is up x forward
	right := mgl32.Vec3{0, 1, 0}.Cross(forward)
	assert.InDelta(t, 2.0, view.Position.Dot(right), eps)
}

func TestOpposingKeysCancel(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	c.ProcessAction(ActionForward, true)
	c.ProcessAction(ActionBackward, true)
	c.ProcessAction(ActionUp, true)
	c.ProcessAction(ActionDown, true)
	c.UpdateCamera(&view, time.Second)
	assertVec3(t, mgl32.Vec3{}, view.Position)
}

func TestKeyReleaseStopsMovement(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	c.ProcessAction(ActionUp, true)
	c.UpdateCamera(&view, time.Second)
	c.ProcessAction(ActionUp, false)
	c.UpdateCamera(&view, time.Second)
	assertVec3(t, mgl32.Vec3{0, 4, 0}, view.Position)
}

func TestProcessActionUnbound(t *testing.T) {
	c := NewCameraController(4, 1)
	assert.True(t, c.ProcessAction(ActionRotateLeft, true))
	assert.False(t, c.ProcessAction(Action(99), true))
}

func TestMouseDeltaConsumedOnce(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 0.5)
	dt := 100 * time.Millisecond
	secs := float32(dt.Seconds())

	c.ProcessMouse(10, -5)
	c.UpdateCamera(&view, dt)
	assert.InDelta(t, -10*0.5*secs, view.Yaw, eps)
	assert.InDelta(t, 5*0.5*secs, view.Pitch, eps)

	yaw, pitch := view.Yaw, view.Pitch
	c.UpdateCamera(&view, dt)
	assert.Equal(t, yaw, view.Yaw)
	assert.Equal(t, pitch, view.Pitch)
}

func TestMouseDeltasAccumulateWithinFrame(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	c.ProcessMouse(3, 0)
	c.ProcessMouse(7, 0)
	c.UpdateCamera(&view, time.Second)
	assert.InDelta(t, -10, view.Yaw, eps)
}

func TestKeyRotation(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	c.ProcessAction(ActionRotateLeft, true)
	c.UpdateCamera(&view, time.Second)
	assert.InDelta(t, KeyRotateAmount, view.Yaw, eps)

	c.ProcessAction(ActionRotateRight, true)
	c.UpdateCamera(&view, time.Second)
	assert.InDelta(t, 0, view.Yaw, eps)
}

func TestScrollConsumedOnce(t *testing.T) {
	view := View{}
	c := NewCameraController(2, 0.5)
	c.ProcessScrollLines(-1)
	c.UpdateCamera(&view, 10*time.Millisecond)

	// -(-1 line * 100px) * speed 2 * sensitivity 0.5 * 0.01s along +X
	assertVec3(t, mgl32.Vec3{1, 0, 0}, view.Position)

	c.UpdateCamera(&view, 10*time.Millisecond)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, view.Position)

	c.ProcessScrollPixels(50)
	c.UpdateCamera(&view, 10*time.Millisecond)
	assertVec3(t, mgl32.Vec3{0.5, 0, 0}, view.Position)
}

func TestPitchClamp(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	for i := 0; i < 50; i++ {
		c.ProcessMouse(0, -1000)
		c.UpdateCamera(&view, 50*time.Millisecond)
		assert.LessOrEqual(t, view.Pitch, float32(math.Pi/2))
	}
	assert.InDelta(t, SafePitch, view.Pitch, 1e-6)

	for i := 0; i < 50; i++ {
		c.ProcessMouse(0, 1000)
		c.UpdateCamera(&view, 50*time.Millisecond)
		assert.GreaterOrEqual(t, view.Pitch, float32(-math.Pi/2))
	}
	assert.InDelta(t, -SafePitch, view.Pitch, 1e-6)

	// look direction never degenerates
	assert.InDelta(t, 1, view.Direction().Len(), eps)
}

func TestIntegrationIsFrameRateIndependent(t *testing.T) {
	start := View{Position: mgl32.Vec3{1, 2, 3}, Yaw: 0.7, Pitch: -0.2}
	press := func(c *CameraController) {
		c.ProcessAction(ActionForward, true)
		c.ProcessAction(ActionLeft, true)
		c.ProcessAction(ActionUp, true)
	}

	one := start
	c1 := NewCameraController(4, 1)
	press(c1)
	c1.UpdateCamera(&one, time.Second)

	for _, steps := range []int{2, 10, 60} {
		many := start
		cn := NewCameraController(4, 1)
		press(cn)
		for i := 0; i < steps; i++ {
			cn.UpdateCamera(&many, time.Second/time.Duration(steps))
		}
		for i := 0; i < 3; i++ {
			assert.InDelta(t, one.Position[i], many.Position[i], 1e-3, "steps=%d axis=%d", steps, i)
		}
	}
}

func TestRotateKeysKeepPointerDelta(t *testing.T) {
	view := View{}
	c := NewCameraController(4, 1)
	c.ProcessMouse(10, 0)
	c.ProcessAction(ActionRotateLeft, false)
	c.UpdateCamera(&view, time.Second)
	assert.InDelta(t, -10, view.Yaw, eps, "release must not drop pointer motion")

	view = View{}
	c.ProcessMouse(10, 0)
	c.ProcessAction(ActionRotateLeft, true)
	c.UpdateCamera(&view, time.Second)
	assert.InDelta(t, -10+KeyRotateAmount, view.Yaw, eps, "press adds to pointer motion")
}
