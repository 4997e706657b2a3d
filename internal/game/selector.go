package game

// Selector draws shapes to spawn. It holds no state besides its random
// source, so a seeded Rand makes it fully deterministic.
type Selector struct {
	rng       *Rand
	badChance float64
}

func NewSelector(rng *Rand, badChance float64) *Selector {
	return &Selector{rng: rng, badChance: clampF(badChance, 0, 1)}
}

// SelectShape picks a kind uniformly, then flips a weighted coin for
// good/bad. Bad shapes are black; good shapes get any other colour.
func (s *Selector) SelectShape() SpawnedShape {
	kind := ShapeKind(s.rng.Intn(NumShapeKinds))
	if s.rng.Float64() < s.badChance {
		return SpawnedShape{Kind: kind, Color: Black}
	}
	return SpawnedShape{Kind: kind, Good: true, Color: s.goodColor()}
}

func (s *Selector) goodColor() RGB {
	for {
		v := s.rng.NextU64()
		c := RGB{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
		if !c.IsBlack() {
			return c
		}
	}
}
