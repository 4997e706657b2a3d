package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"geofighter/internal/game"
)

type ParticleKind uint8

const (
	ParticleTrail ParticleKind = iota
	ParticleDebris
	ParticleGlow
	ParticleSmoke
)

// Particle tuning.
const (
	MaxParticles      = 6000
	TrailRate         = 90.0 // particles per second per shape
	TrailAlpha        = 0.5
	particleGravity   = -6.0
	particleDrag      = 1.8
	explosionBaseSize = 0.12
)

type Particle struct {
	Pos, Vel mgl32.Vec3

	Size    float32
	Life    float32
	MaxLife float32

	Col   game.RGB
	Alpha float32
	Kind  ParticleKind
}

type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *game.Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: game.NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

func (ps *ParticleSystem) rangeF(min, max float64) float32 {
	return float32(ps.rng.RangeF(min, max))
}

// EmitTrail adds the particles a moving body owes for dt seconds. Trail
// particles take the body colour at half alpha.
func (ps *ParticleSystem) EmitTrail(b *Body, dt float32) {
	b.trailAcc += TrailRate * dt
	for b.trailAcc >= 1 {
		b.trailAcc--
		jitter := mgl32.Vec3{ps.rangeF(-1, 1), ps.rangeF(-1, 1), ps.rangeF(-1, 1)}.Mul(b.Radius * 0.5)
		ps.Add(Particle{
			Pos:     b.Pos.Add(jitter),
			Vel:     b.Vel.Mul(0.1),
			Size:    ps.rangeF(0.05, 0.12),
			MaxLife: ps.rangeF(0.25, 0.5),
			Col:     b.Color,
			Alpha:   TrailAlpha,
			Kind:    ParticleTrail,
		})
	}
}

// SpawnExplosion bursts debris and glow from pos in colour col. Black
// shapes burst into smoke instead of glow.
func (ps *ParticleSystem) SpawnExplosion(pos mgl32.Vec3, col game.RGB, intensity float32) {
	if intensity <= 0 {
		return
	}

	// Debris.
	for i, n := 0, int(70*intensity); i < n; i++ {
		dir := ps.randomDir()
		spd := ps.rangeF(2, 6) * intensity
		ps.Add(Particle{
			Pos:     pos,
			Vel:     dir.Mul(spd),
			Size:    explosionBaseSize * ps.rangeF(0.6, 1.4),
			MaxLife: ps.rangeF(0.5, 1.0),
			Col:     col,
			Alpha:   1,
			Kind:    ParticleDebris,
		})
	}

	if col.IsBlack() {
		// Smoke.
		for i, n := 0, int(30*intensity)+8; i < n; i++ {
			ps.Add(Particle{
				Pos:     pos.Add(ps.randomDir().Mul(0.2)),
				Vel:     ps.randomDir().Mul(ps.rangeF(0.3, 1.0)).Add(mgl32.Vec3{0, 0.8, 0}),
				Size:    ps.rangeF(0.25, 0.5),
				MaxLife: ps.rangeF(0.8, 1.6),
				Col:     game.RGB{R: 60, G: 60, B: 66},
				Alpha:   0.8,
				Kind:    ParticleSmoke,
			})
		}
		return
	}

	// Glow.
	for i, n := 0, int(14*intensity); i < n; i++ {
		ps.Add(Particle{
			Pos:     pos,
			Vel:     ps.randomDir().Mul(ps.rangeF(4, 9) * intensity),
			Size:    ps.rangeF(0.15, 0.3),
			MaxLife: ps.rangeF(0.12, 0.3),
			Col:     game.RGB{R: 255, G: 240, B: 200},
			Alpha:   1,
			Kind:    ParticleGlow,
		})
	}
}

func (ps *ParticleSystem) randomDir() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{ps.rangeF(-1, 1), ps.rangeF(-1, 1), ps.rangeF(-1, 1)}
		if l := v.Len(); l > 0.05 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}

// Update ages and moves particles, dropping the expired ones.
func (ps *ParticleSystem) Update(dt float32) {
	if dt <= 0 {
		return
	}
	drag := float32(math.Exp(-particleDrag * float64(dt)))
	out := ps.P[:0]
	for _, p := range ps.P {
		p.Life += dt
		if p.Life >= p.MaxLife {
			continue
		}
		switch p.Kind {
		case ParticleDebris:
			p.Vel[1] += particleGravity * dt
			p.Vel = p.Vel.Mul(drag)
		case ParticleSmoke, ParticleGlow:
			p.Vel = p.Vel.Mul(drag)
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		out = append(out, p)
	}
	ps.P = out
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// RenderData appends point sprites to buf and splits additive glow from
// alpha-blended particles.
// Format: [x, y, z, size, r, g, b, a] * N.
func (ps *ParticleSystem) RenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]
	for _, p := range ps.P {
		t := p.Life / p.MaxLife
		a := p.Alpha * (1 - t)
		size := p.Size
		if p.Kind == ParticleSmoke {
			size *= 1 + t
		}
		r, g, b := p.Col.Floats()
		entry := [8]float32{p.Pos[0], p.Pos[1], p.Pos[2], size, r, g, b, a}
		if p.Kind == ParticleGlow {
			glowBuf = append(glowBuf, entry[:]...)
		} else {
			normBuf = append(normBuf, entry[:]...)
		}
	}
	return glowBuf, normBuf
}

// ParticleStride is the float count per particle in RenderData output.
const ParticleStride = 8
