package core

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformSize is position vec4 + inverse view mat4 + inverse projection mat4.
const CameraUniformSize = 16 + 64 + 64

// View is the camera's position and orientation. Yaw and pitch are radians;
// yaw 0 looks along +X, positive pitch looks up.
type View struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

func lookDirection(yaw, pitch float32) mgl32.Vec3 {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(pitch))
	return mgl32.Vec3{
		float32(cp * cy),
		float32(sp),
		float32(cp * sy),
	}.Normalize()
}

func (v *View) Direction() mgl32.Vec3 {
	return lookDirection(v.Yaw, v.Pitch)
}

// CalcMatrix builds a left-handed view matrix looking along Direction with +Y up.
func (v *View) CalcMatrix() mgl32.Mat4 {
	return LookToLH(v.Position, v.Direction(), mgl32.Vec3{0, 1, 0})
}

// LookToLH is the left-handed counterpart of mgl32.LookAtV taking a direction
// instead of a target.
func LookToLH(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	f := dir.Normalize()
	s := up.Cross(f).Normalize()
	u := f.Cross(s)
	return mgl32.Mat4{
		s.X(), u.X(), f.X(), 0,
		s.Y(), u.Y(), f.Y(), 0,
		s.Z(), u.Z(), f.Z(), 0,
		-s.Dot(eye), -u.Dot(eye), -f.Dot(eye), 1,
	}
}

// Projection holds perspective parameters. FovY is radians.
type Projection struct {
	Aspect float32
	FovY   float32
	ZNear  float32
	ZFar   float32
}

// Resize updates the aspect ratio; zero-sized surfaces are ignored.
func (p *Projection) Resize(width, height uint32) {
	if width > 0 && height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
}

func (p *Projection) CalcMatrix() mgl32.Mat4 {
	return PerspectiveLH(p.FovY, p.Aspect, p.ZNear, p.ZFar)
}

// PerspectiveLH maps view-space depth [near, far] to clip depth [0, 1].
func PerspectiveLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	sin, cos := math.Sincos(float64(fovY) * 0.5)
	h := float32(cos / sin)
	w := h / aspect
	r := far / (far - near)
	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, r, 1,
		0, 0, -r * near, 0,
	}
}

// CameraUniform is what the raytracer reads each frame. Matrices are
// column-major like mgl32.
type CameraUniform struct {
	Position mgl32.Vec4
	InvView  mgl32.Mat4
	InvProj  mgl32.Mat4
}

func NewCameraUniform(view *View, proj *Projection) CameraUniform {
	return CameraUniform{
		Position: view.Position.Vec4(0),
		InvView:  view.CalcMatrix().Inv(),
		InvProj:  proj.CalcMatrix().Inv(),
	}
}

func (u CameraUniform) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	for i, f := range u.Position {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	writeMat := func(offset int, mat mgl32.Mat4) {
		for i, v := range mat {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}
	writeMat(16, u.InvView)
	writeMat(80, u.InvProj)
	return buf
}

// Camera bundles the state one viewport needs.
type Camera struct {
	View       View
	Projection Projection
	Controller *CameraController
}

func NewCamera(pos mgl32.Vec3, yaw, pitch, aspect, fovY, zNear, zFar float32) *Camera {
	return &Camera{
		View:       View{Position: pos, Yaw: yaw, Pitch: pitch},
		Projection: Projection{Aspect: aspect, FovY: fovY, ZNear: zNear, ZFar: zFar},
		Controller: NewCameraController(DefaultSpeed, DefaultSensitivity),
	}
}

func (c *Camera) Uniform() CameraUniform {
	return NewCameraUniform(&c.View, &c.Projection)
}

func (c *Camera) Update(dt time.Duration) {
	c.Controller.UpdateCamera(&c.View, dt)
}
