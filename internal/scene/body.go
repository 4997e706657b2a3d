package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"geofighter/internal/game"
)

// Rigid-body tuning, in scene units and seconds.
const (
	Gravity        = -9.8
	LinearDamping  = 0.1 // fraction of velocity lost per second
	AngularDamping = 0.1
	BodyMass       = 1.0
)

// Body is a dynamic rigid body for one spawned shape.
type Body struct {
	ID     game.ShapeID
	Kind   game.ShapeKind
	Tag    game.Tag
	Color  game.RGB
	Radius float32 // bounding sphere, used for hit testing

	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Orient mgl32.Quat
	AngVel mgl32.Vec3 // rad/s, world space

	trailAcc float32 // fractional trail particles owed
}

func newBody(id game.ShapeID, kind game.ShapeKind, col game.RGB) *Body {
	tag := game.TagGood
	if col.IsBlack() {
		tag = game.TagBad
	}
	return &Body{
		ID:     id,
		Kind:   kind,
		Tag:    tag,
		Color:  col,
		Radius: float32(kind.BoundingRadius()),
		Orient: mgl32.QuatIdent(),
	}
}

// Ref returns the engine handle for the body.
func (b *Body) Ref() game.ShapeRef {
	return game.ShapeRef{ID: b.ID, Tag: b.Tag}
}

// ApplyImpulse changes momentum instantly. An impulse applied away from the
// centre of mass also sets the body spinning.
func (b *Body) ApplyImpulse(impulse, offset mgl32.Vec3) {
	b.Vel = b.Vel.Add(impulse.Mul(1 / BodyMass))
	// Solid-sphere inertia is close enough for every shape we spawn.
	inertia := 0.4 * BodyMass * b.Radius * b.Radius
	if inertia <= 0 {
		return
	}
	b.AngVel = b.AngVel.Add(offset.Cross(impulse).Mul(1 / inertia))
}

// Step integrates the body over dt seconds (semi-implicit Euler).
func (b *Body) Step(dt float32) {
	if dt <= 0 {
		return
	}
	b.Vel[1] += Gravity * dt
	b.Vel = b.Vel.Mul(float32(math.Pow(1-LinearDamping, float64(dt))))
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))

	b.AngVel = b.AngVel.Mul(float32(math.Pow(1-AngularDamping, float64(dt))))
	if w := b.AngVel.Len(); w > 1e-6 {
		dq := mgl32.QuatRotate(w*dt, b.AngVel.Mul(1/w))
		b.Orient = dq.Mul(b.Orient).Normalize()
	}
}

// Model returns the body's model matrix.
func (b *Body) Model() mgl32.Mat4 {
	return mgl32.Translate3D(b.Pos[0], b.Pos[1], b.Pos[2]).Mul4(b.Orient.Mat4())
}
