package game

import "context"

// Tag classifies what a hit test landed on.
type Tag uint8

const (
	TagNone Tag = iota
	TagGood
	TagBad
	TagHUD
	TagOverlay
)

func (t Tag) String() string {
	switch t {
	case TagGood:
		return "good"
	case TagBad:
		return "bad"
	case TagHUD:
		return "hud"
	case TagOverlay:
		return "overlay"
	}
	return "none"
}

// ShapeID identifies an instantiated visual within an engine.
type ShapeID uint64

// ShapeRef is the handle the engine returns for a visual.
type ShapeRef struct {
	ID  ShapeID
	Tag Tag
}

// Vec3 is a plain 3-vector in scene units.
type Vec3 struct {
	X, Y, Z float64
}

// ShapePosition reports the current height of a live visual.
type ShapePosition struct {
	Ref ShapeRef
	Y   float64
}

// SoundCue names a sound effect.
type SoundCue int

const (
	CueSpawnGood SoundCue = iota
	CueSpawnBad
	CueExplodeGood
	CueExplodeBad
	CueGameOver

	NumSoundCues = int(CueGameOver) + 1
)

func (c SoundCue) String() string {
	switch c {
	case CueSpawnGood:
		return "SpawnGood"
	case CueSpawnBad:
		return "SpawnBad"
	case CueExplodeGood:
		return "ExplodeGood"
	case CueExplodeBad:
		return "ExplodeBad"
	case CueGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// Overlay is a full-screen splash.
type Overlay int

const (
	OverlayTapToPlay Overlay = iota
	OverlayGameOver
)

func (o Overlay) String() string {
	switch o {
	case OverlayTapToPlay:
		return "TapToPlay"
	case OverlayGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// HUD is the data shown by the heads-up display.
type HUD struct {
	Score int
	Lives int
	Best  int
	Phase GamePhase
}

// Engine is the scene collaborator: it owns physics, rendering, particles,
// audio and hit testing. The controller only sends it requests.
type Engine interface {
	SpawnVisual(kind ShapeKind, color RGB, impulse Vec3) (ShapeRef, error)
	RemoveVisual(ref ShapeRef)
	PlaySound(cue SoundCue) error
	ShowOverlay(o Overlay)
	HideOverlay(o Overlay)
	ShakeCamera()
	LiveShapePositions() []ShapePosition
	HitTest(x, y float64) (ShapeRef, bool)
	UpdateHUD(h HUD)
}

// ScoreStore persists the best score between runs.
type ScoreStore interface {
	LoadBest(ctx context.Context) (int, error)
	SaveBest(ctx context.Context, score int) error
}
