package game

import "fmt"

// Gameplay defaults.
const (
	DefaultStartingLives = 3
	DefaultGameOverDelay = 5.0  // seconds in GameOver before TapToPlay returns
	DefaultBadChance     = 0.15 // probability a spawn is a black shape
)

// Spawn cadence (seconds between spawns).
const (
	SpawnIntervalMin = 0.2
	SpawnIntervalMax = 1.5
)

// Shapes below this height have fallen out of the play area.
const FallLimit = -2.0

// Launch impulse ranges. The impulse is applied slightly off-centre so
// shapes tumble.
const (
	ImpulseXMin = -2.0
	ImpulseXMax = 2.0
	ImpulseYMin = 10.0
	ImpulseYMax = 18.0
)

var ImpulseOffset = Vec3{X: 0.05, Y: 0.05, Z: 0.05}

// Rules are the tunable gameplay parameters.
type Rules struct {
	StartingLives int
	GameOverDelay float64
	BadChance     float64
}

func DefaultRules() Rules {
	return Rules{
		StartingLives: DefaultStartingLives,
		GameOverDelay: DefaultGameOverDelay,
		BadChance:     DefaultBadChance,
	}
}

// Validate rejects rules the controller cannot run with.
func (r Rules) Validate() error {
	if r.StartingLives <= 0 {
		return fmt.Errorf("starting lives must be positive, got %d", r.StartingLives)
	}
	if r.GameOverDelay < 0 {
		return fmt.Errorf("game over delay must not be negative, got %g", r.GameOverDelay)
	}
	if r.BadChance < 0 || r.BadChance > 1 {
		return fmt.Errorf("bad chance must be within [0,1], got %g", r.BadChance)
	}
	return nil
}
