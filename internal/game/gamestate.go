package game

// GamePhase is the top-level game mode. Exactly one is active at a time.
type GamePhase int

const (
	PhaseTapToPlay GamePhase = iota // waiting for the first tap
	PhasePlaying                    // shapes spawn, taps score
	PhaseGameOver                   // lives exhausted, returns to TapToPlay after a delay
)

func (p GamePhase) String() string {
	switch p {
	case PhaseTapToPlay:
		return "TapToPlay"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// GameState is the score/lives/phase record. The Controller is its only
// writer; renderers get copies through HUD refreshes.
type GameState struct {
	Score int
	Lives int
	Best  int
	Phase GamePhase
}

func NewGameState(lives int) *GameState {
	return &GameState{
		Lives: lives,
		Phase: PhaseTapToPlay,
	}
}

// Reset starts a fresh round. Best survives.
func (s *GameState) Reset(lives int) {
	s.Score = 0
	s.Lives = lives
}

// GoodHit scores one point.
func (s *GameState) GoodHit() {
	s.Score++
}

// BadHit costs one life and reports whether the round is lost.
func (s *GameState) BadHit() bool {
	s.Lives--
	return s.Lives <= 0
}

// RecordBest raises Best to Score when beaten and reports whether it did.
func (s *GameState) RecordBest() bool {
	if s.Score <= s.Best {
		return false
	}
	s.Best = s.Score
	return true
}

// HUD snapshots the fields the heads-up display shows.
func (s *GameState) HUD() HUD {
	return HUD{Score: s.Score, Lives: s.Lives, Best: s.Best, Phase: s.Phase}
}
