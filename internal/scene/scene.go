// Package scene is the desktop game engine: rigid bodies, particles,
// camera and hit testing behind the game.Engine interface. It holds no
// GL state; the render package draws whatever the scene contains.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"geofighter/internal/game"
)

// Scene limits.
const (
	MaxBodies = 256
	// Taps in the top band of the screen land on the HUD.
	HUDBandFraction = 0.08
)

var (
	ErrUnknownShape = errors.New("unknown shape kind")
	ErrSceneFull    = errors.New("scene is full")
)

// SoundPlayer plays a named cue. The audio package implements it.
type SoundPlayer interface {
	Play(cue game.SoundCue) error
}

type Options struct {
	Seed   uint64
	Sound  SoundPlayer // nil plays nothing
	Logger zerolog.Logger
}

type Scene struct {
	Camera    Camera
	Particles *ParticleSystem

	bodies []*Body
	index  map[game.ShapeID]int
	nextID game.ShapeID

	overlays map[game.Overlay]bool
	hud      game.HUD

	sound SoundPlayer
	rng   *game.Rand
	log   zerolog.Logger

	fbW, fbH int
}

func New(opts Options) *Scene {
	return &Scene{
		Camera:    NewCamera(),
		Particles: NewParticleSystem(MaxParticles, game.MixSeed(opts.Seed, 0xBEAD)),
		index:     make(map[game.ShapeID]int),
		overlays:  make(map[game.Overlay]bool),
		sound:     opts.Sound,
		rng:       game.NewRand(game.MixSeed(opts.Seed, 0x5CE7E)),
		log:       opts.Logger.With().Str("component", "scene").Logger(),
	}
}

// SetViewport records the framebuffer size used for hit testing.
func (s *Scene) SetViewport(fbW, fbH int) {
	s.fbW, s.fbH = fbW, fbH
}

// Subscribe hooks hit effects to the controller's event bus.
func (s *Scene) Subscribe(bus *game.EventBus) {
	explode := func(e game.Event) {
		b := s.body(e.Shape.ID)
		if b == nil {
			return
		}
		s.Particles.SpawnExplosion(b.Pos, b.Color, 1)
	}
	bus.Subscribe(game.EventGoodHit, explode)
	bus.Subscribe(game.EventBadHit, explode)
	bus.Subscribe(game.EventGameOver, func(game.Event) {
		s.Camera.AddShake(ShakeIntensity*2, ShakeDuration*2)
	})
}

func (s *Scene) SpawnVisual(kind game.ShapeKind, color game.RGB, impulse game.Vec3) (game.ShapeRef, error) {
	if kind < 0 || int(kind) >= game.NumShapeKinds {
		return game.ShapeRef{}, fmt.Errorf("%w: %d", ErrUnknownShape, kind)
	}
	if len(s.bodies) >= MaxBodies {
		return game.ShapeRef{}, ErrSceneFull
	}
	s.nextID++
	b := newBody(s.nextID, kind, color)
	b.ApplyImpulse(vec(impulse), vec(game.ImpulseOffset))
	s.index[b.ID] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return b.Ref(), nil
}

func (s *Scene) RemoveVisual(ref game.ShapeRef) {
	i, ok := s.index[ref.ID]
	if !ok {
		s.log.Debug().Uint64("id", uint64(ref.ID)).Msg("remove of unknown visual")
		return
	}
	last := len(s.bodies) - 1
	if i != last {
		s.bodies[i] = s.bodies[last]
		s.index[s.bodies[i].ID] = i
	}
	s.bodies[last] = nil
	s.bodies = s.bodies[:last]
	delete(s.index, ref.ID)
}

func (s *Scene) PlaySound(cue game.SoundCue) error {
	if s.sound == nil {
		return nil
	}
	return s.sound.Play(cue)
}

func (s *Scene) ShowOverlay(o game.Overlay) { s.overlays[o] = true }
func (s *Scene) HideOverlay(o game.Overlay) { s.overlays[o] = false }

func (s *Scene) ShakeCamera() {
	s.Camera.AddShake(ShakeIntensity, ShakeDuration)
}

func (s *Scene) LiveShapePositions() []game.ShapePosition {
	out := make([]game.ShapePosition, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = game.ShapePosition{Ref: b.Ref(), Y: float64(b.Pos[1])}
	}
	return out
}

// HitTest resolves a screen point (pixels, origin top-left) to the nearest
// shape under it. Visible overlays and the HUD band swallow taps.
func (s *Scene) HitTest(x, y float64) (game.ShapeRef, bool) {
	if s.overlays[game.OverlayTapToPlay] || s.overlays[game.OverlayGameOver] {
		return game.ShapeRef{Tag: game.TagOverlay}, true
	}
	if s.fbH > 0 && y < float64(s.fbH)*HUDBandFraction {
		return game.ShapeRef{Tag: game.TagHUD}, true
	}
	origin, dir, ok := s.Camera.Ray(x, y, s.fbW, s.fbH)
	if !ok {
		return game.ShapeRef{}, false
	}
	var best *Body
	bestT := float32(0)
	for _, b := range s.bodies {
		t, hit := raySphere(origin, dir, b.Pos, b.Radius)
		if hit && (best == nil || t < bestT) {
			best, bestT = b, t
		}
	}
	if best == nil {
		return game.ShapeRef{}, false
	}
	return best.Ref(), true
}

func (s *Scene) UpdateHUD(h game.HUD) { s.hud = h }

// Step advances physics, trails, particles and camera shake by dt seconds.
func (s *Scene) Step(dt float32) {
	for _, b := range s.bodies {
		b.Step(dt)
		s.Particles.EmitTrail(b, dt)
	}
	s.Particles.Update(dt)
	s.Camera.UpdateShake(dt, s.rng)
}

// Bodies returns the live bodies. The slice is owned by the scene.
func (s *Scene) Bodies() []*Body { return s.bodies }

// OverlayVisible reports whether overlay o is shown.
func (s *Scene) OverlayVisible(o game.Overlay) bool { return s.overlays[o] }

// HUD returns the last HUD refresh.
func (s *Scene) HUD() game.HUD { return s.hud }

func (s *Scene) body(id game.ShapeID) *Body {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return s.bodies[i]
}

func vec(v game.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
