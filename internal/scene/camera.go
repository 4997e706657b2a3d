package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"geofighter/internal/game"
)

// Camera defaults: looking at the launch point from above and behind.
const (
	CameraFovY      = 60.0 // degrees
	CameraNear      = 0.1
	CameraFar       = 100.0
	ShakeIntensity  = 0.25
	ShakeDuration   = 0.35
	shakeFalloffLag = 0.08
)

var (
	DefaultEye    = mgl32.Vec3{0, 5, 10}
	DefaultTarget = mgl32.Vec3{0, 5, 0}
)

type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	FovY   float32

	// Screen shake.
	ShakeX, ShakeY float32 // current offset in scene units
	ShakeTimer     float32 // remaining shake time
	ShakeIntensity float32 // max offset magnitude
}

func NewCamera() Camera {
	return Camera{Eye: DefaultEye, Target: DefaultTarget, FovY: CameraFovY}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float32) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and picks new random offsets.
func (c *Camera) UpdateShake(dt float32, r *game.Rand) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	mag := float64(c.ShakeIntensity * (t / (t + shakeFalloffLag)))
	c.ShakeX = float32(r.RangeF(-mag, mag))
	c.ShakeY = float32(r.RangeF(-mag, mag))
}

// View returns the view matrix with shake applied.
func (c *Camera) View() mgl32.Mat4 {
	off := mgl32.Vec3{c.ShakeX, c.ShakeY, 0}
	return mgl32.LookAtV(c.Eye.Add(off), c.Target.Add(off), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, CameraNear, CameraFar)
}

// Ray converts a screen point (origin top-left) into a world-space ray.
// Hit testing ignores shake so taps land where the player aimed.
func (c *Camera) Ray(x, y float64, fbW, fbH int) (origin, dir mgl32.Vec3, ok bool) {
	if fbW <= 0 || fbH <= 0 {
		return origin, dir, false
	}
	view := mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
	proj := c.Projection(fbW, fbH)
	winY := float32(fbH) - float32(y)
	near, err := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 0}, view, proj, 0, 0, fbW, fbH)
	if err != nil {
		return origin, dir, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 1}, view, proj, 0, 0, fbW, fbH)
	if err != nil {
		return origin, dir, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return origin, dir, false
	}
	return near, d.Normalize(), true
}

// Project maps a world point to screen pixels (origin top-left).
func (c *Camera) Project(p mgl32.Vec3, fbW, fbH int) (x, y float32) {
	view := mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
	win := mgl32.Project(p, view, c.Projection(fbW, fbH), 0, 0, fbW, fbH)
	return win[0], float32(fbH) - win[1]
}

// raySphere returns the distance along a unit ray to the first hit on the
// sphere, or false if it misses.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	cc := oc.Dot(oc) - radius*radius
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	s := sqrt32(disc)
	t := -b - s
	if t < 0 {
		t = -b + s
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
