package game

import "testing"

func TestGameStateHits(t *testing.T) {
	s := NewGameState(3)
	if s.Phase != PhaseTapToPlay {
		t.Fatalf("phase = %v", s.Phase)
	}
	s.GoodHit()
	s.GoodHit()
	if s.Score != 2 || s.Lives != 3 {
		t.Fatalf("after good hits: %+v", s)
	}
	if s.BadHit() || s.BadHit() {
		t.Fatalf("lost with lives left")
	}
	if !s.BadHit() {
		t.Fatalf("third bad hit did not end the round")
	}
	if s.Score != 2 || s.Lives != 0 {
		t.Fatalf("after bad hits: %+v", s)
	}
}

func TestGameStateBest(t *testing.T) {
	s := NewGameState(3)
	s.Best = 5
	s.Score = 4
	if s.RecordBest() || s.Best != 5 {
		t.Fatalf("lower score replaced best")
	}
	s.Score = 6
	if !s.RecordBest() || s.Best != 6 {
		t.Fatalf("best = %d, want 6", s.Best)
	}
	s.Reset(3)
	if s.Score != 0 || s.Lives != 3 || s.Best != 6 {
		t.Fatalf("after reset: %+v", s)
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		wantErr bool
	}{
		{"defaults", DefaultRules(), false},
		{"no lives", Rules{StartingLives: 0, GameOverDelay: 5}, true},
		{"negative delay", Rules{StartingLives: 3, GameOverDelay: -1}, true},
		{"chance above one", Rules{StartingLives: 3, BadChance: 1.5}, true},
		{"zero delay", Rules{StartingLives: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rules.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPhaseAndCueNames(t *testing.T) {
	if PhaseGameOver.String() != "GameOver" || GamePhase(9).String() != "Unknown" {
		t.Fatalf("phase names wrong")
	}
	if CueExplodeBad.String() != "ExplodeBad" || OverlayTapToPlay.String() != "TapToPlay" {
		t.Fatalf("cue/overlay names wrong")
	}
	if TagBad.String() != "bad" {
		t.Fatalf("tag name wrong")
	}
}
