package core

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v vs %v", i, got, want)
	}
}

// assertIdentity compares element-wise; float32 round-off leaves ~1e-7 residue
// on the zero entries.
func assertIdentity(t *testing.T, m mgl32.Mat4) {
	t.Helper()
	ident := mgl32.Ident4()
	for i := range m {
		assert.InDelta(t, ident[i], m[i], 1e-5, "element %d of %v", i, m)
	}
}

func TestViewDirection(t *testing.T) {
	v := View{}
	assertVec3(t, mgl32.Vec3{1, 0, 0}, v.Direction())

	v.Yaw = math.Pi / 2
	assertVec3(t, mgl32.Vec3{0, 0, 1}, v.Direction())

	v.Pitch = math.Pi / 2
	assertVec3(t, mgl32.Vec3{0, 1, 0}, v.Direction())
}

func TestViewMatrixMapsDirectionToPlusZ(t *testing.T) {
	v := View{
		Position: mgl32.Vec3{-4, 4, -4},
		Yaw:      mgl32.DegToRad(45),
		Pitch:    mgl32.DegToRad(-25),
	}
	m := v.CalcMatrix()

	eye := m.Mul4x1(v.Position.Vec4(1))
	assertVec3(t, mgl32.Vec3{}, eye.Vec3())

	ahead := m.Mul4x1(v.Position.Add(v.Direction().Mul(3)).Vec4(1))
	assertVec3(t, mgl32.Vec3{0, 0, 3}, ahead.Vec3())

	// +Y in view space stays up for a non-vertical look direction
	above := m.Mul4x1(v.Position.Add(mgl32.Vec3{0, 1, 0}).Vec4(1))
	assert.Greater(t, above.Y(), float32(0))
}

func TestProjectionDepthRange(t *testing.T) {
	p := Projection{Aspect: 16.0 / 9.0, FovY: mgl32.DegToRad(59), ZNear: 0.1, ZFar: 100}
	m := p.CalcMatrix()

	near := m.Mul4x1(mgl32.Vec4{0, 0, p.ZNear, 1})
	far := m.Mul4x1(mgl32.Vec4{0, 0, p.ZFar, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), eps)
	assert.InDelta(t, 1, far.Z()/far.W(), eps)
}

func TestProjectionResize(t *testing.T) {
	p := Projection{Aspect: 1}
	p.Resize(1280, 720)
	assert.InDelta(t, 1280.0/720.0, p.Aspect, eps)

	p.Resize(0, 720)
	assert.InDelta(t, 1280.0/720.0, p.Aspect, eps, "zero width must not change aspect")
	p.Resize(100, 0)
	assert.InDelta(t, 1280.0/720.0, p.Aspect, eps, "zero height must not change aspect")
}

func TestCameraUniformInverses(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{-4, 4, -4}, mgl32.DegToRad(45), mgl32.DegToRad(-25), 16.0/9.0, mgl32.DegToRad(59), 0.1, 100)
	u := cam.Uniform()

	assertIdentity(t, u.InvView.Mul4(cam.View.CalcMatrix()))
	assertIdentity(t, u.InvProj.Mul4(cam.Projection.CalcMatrix()))

	buf := u.Bytes()
	require.Len(t, buf, CameraUniformSize)
	assert.Equal(t, 144, CameraUniformSize)

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, float32(-4), f32(0))
	assert.Equal(t, float32(4), f32(4))
	assert.Equal(t, float32(-4), f32(8))
	assert.Equal(t, float32(0), f32(12))
	for i := 0; i < 16; i++ {
		assert.Equal(t, u.InvView[i], f32(16+i*4))
		assert.Equal(t, u.InvProj[i], f32(80+i*4))
	}
}

func TestCameraUpdateUsesController(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{}, 0, 0, 1, mgl32.DegToRad(60), 0.1, 100)
	cam.Controller.ProcessAction(ActionUp, true)
	cam.Update(500 * time.Millisecond)
	assertVec3(t, mgl32.Vec3{0, DefaultSpeed * 0.5, 0}, cam.View.Position)
}
