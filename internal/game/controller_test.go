package game

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

// fakeEngine records every request the controller makes.
type fakeEngine struct {
	nextID    ShapeID
	spawned   []SpawnedShape
	impulses  []Vec3
	removed   []ShapeRef
	sounds    []SoundCue
	overlays  map[Overlay]bool
	shakes    int
	huds      []HUD
	positions map[ShapeID]float64
	tags      map[ShapeID]Tag

	spawnErr error
	soundErr error
	hit      *ShapeRef
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		overlays:  make(map[Overlay]bool),
		positions: make(map[ShapeID]float64),
		tags:      make(map[ShapeID]Tag),
	}
}

func (f *fakeEngine) SpawnVisual(kind ShapeKind, color RGB, impulse Vec3) (ShapeRef, error) {
	if f.spawnErr != nil {
		return ShapeRef{}, f.spawnErr
	}
	f.nextID++
	tag := TagGood
	if color.IsBlack() {
		tag = TagBad
	}
	f.spawned = append(f.spawned, SpawnedShape{Kind: kind, Good: tag == TagGood, Color: color})
	f.impulses = append(f.impulses, impulse)
	f.positions[f.nextID] = 0
	f.tags[f.nextID] = tag
	return ShapeRef{ID: f.nextID, Tag: tag}, nil
}

func (f *fakeEngine) RemoveVisual(ref ShapeRef) {
	f.removed = append(f.removed, ref)
	delete(f.positions, ref.ID)
	delete(f.tags, ref.ID)
}

func (f *fakeEngine) PlaySound(cue SoundCue) error {
	f.sounds = append(f.sounds, cue)
	return f.soundErr
}

func (f *fakeEngine) ShowOverlay(o Overlay) { f.overlays[o] = true }
func (f *fakeEngine) HideOverlay(o Overlay) { f.overlays[o] = false }
func (f *fakeEngine) ShakeCamera()          { f.shakes++ }
func (f *fakeEngine) UpdateHUD(h HUD)       { f.huds = append(f.huds, h) }

func (f *fakeEngine) LiveShapePositions() []ShapePosition {
	out := make([]ShapePosition, 0, len(f.positions))
	for id, y := range f.positions {
		out = append(out, ShapePosition{Ref: ShapeRef{ID: id, Tag: f.tags[id]}, Y: y})
	}
	return out
}

func (f *fakeEngine) HitTest(x, y float64) (ShapeRef, bool) {
	if f.hit == nil {
		return ShapeRef{}, false
	}
	return *f.hit, true
}

// addLive injects a shape as if the controller had spawned it.
func (f *fakeEngine) addLive(c *Controller, good bool) ShapeRef {
	col := RGB{R: 200, G: 10, B: 10}
	if !good {
		col = Black
	}
	ref, _ := f.SpawnVisual(ShapeBox, col, Vec3{})
	c.live[ref.ID] = SpawnedShape{Kind: ShapeBox, Good: good, Color: col}
	return ref
}

type memStore struct {
	best  int
	saves []int
	err   error
}

func (m *memStore) LoadBest(ctx context.Context) (int, error) { return m.best, m.err }
func (m *memStore) SaveBest(ctx context.Context, score int) error {
	m.saves = append(m.saves, score)
	if m.err == nil {
		m.best = score
	}
	return m.err
}

func newTestController(t *testing.T, rules Rules) (*Controller, *fakeEngine) {
	t.Helper()
	eng := newFakeEngine()
	c := NewController(NewGameState(rules.StartingLives), eng, Options{
		Rules:  rules,
		Seed:   42,
		Logger: zerolog.Nop(),
	})
	return c, eng
}

func TestControllerStartsInTapToPlay(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	st := c.State()
	if st.Phase != PhaseTapToPlay || st.Score != 0 || st.Lives != 3 {
		t.Fatalf("initial state = %+v", st)
	}
	if !eng.overlays[OverlayTapToPlay] || eng.overlays[OverlayGameOver] {
		t.Fatalf("overlays = %v, want only TapToPlay visible", eng.overlays)
	}
}

func TestNoSpawnOutsidePlaying(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	for i := 0; i < 100; i++ {
		c.OnTick(float64(i) * 0.5)
	}
	if len(eng.spawned) != 0 {
		t.Fatalf("spawned %d shapes in TapToPlay", len(eng.spawned))
	}

	c.OnTap(nil)
	for i := 0; i < 3; i++ {
		ref := eng.addLive(c, false)
		c.OnTap(&ref)
	}
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver", c.State().Phase)
	}
	before := len(eng.spawned)
	c.OnTick(51)
	c.OnTick(52)
	if len(eng.spawned) != before {
		t.Fatalf("spawned during GameOver")
	}
}

func TestTapToPlayStartsRound(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.state.Score = 9
	c.state.Lives = 1

	c.OnTap(nil)

	st := c.State()
	if st.Phase != PhasePlaying || st.Score != 0 || st.Lives != 3 {
		t.Fatalf("after start: %+v", st)
	}
	if eng.overlays[OverlayTapToPlay] || eng.overlays[OverlayGameOver] {
		t.Fatalf("overlays still visible: %v", eng.overlays)
	}
}

func TestGoodAndBadHits(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.OnTap(nil)

	good := eng.addLive(c, true)
	c.OnTap(&good)
	st := c.State()
	if st.Score != 1 || st.Lives != 3 {
		t.Fatalf("after good hit: %+v", st)
	}
	if eng.shakes != 0 {
		t.Fatalf("good hit shook the camera")
	}

	bad := eng.addLive(c, false)
	c.OnTap(&bad)
	st = c.State()
	if st.Score != 1 || st.Lives != 2 {
		t.Fatalf("after bad hit: %+v", st)
	}
	if eng.shakes != 1 {
		t.Fatalf("shakes = %d, want 1", eng.shakes)
	}

	if len(eng.removed) != 2 || eng.removed[0].ID != good.ID || eng.removed[1].ID != bad.ID {
		t.Fatalf("removed = %v", eng.removed)
	}
	if c.LiveCount() != 0 {
		t.Fatalf("live = %d, want 0", c.LiveCount())
	}
	wantSounds := []SoundCue{CueExplodeGood, CueExplodeBad}
	if len(eng.sounds) != len(wantSounds) {
		t.Fatalf("sounds = %v, want %v", eng.sounds, wantSounds)
	}
	for i, s := range wantSounds {
		if eng.sounds[i] != s {
			t.Fatalf("sounds = %v, want %v", eng.sounds, wantSounds)
		}
	}
}

func TestTapWithoutTargetIsNoop(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.OnTap(nil)
	eng.addLive(c, true)
	before := c.State()

	c.OnTap(nil)
	c.OnTap(&ShapeRef{ID: 999, Tag: TagGood})
	c.OnTap(&ShapeRef{ID: 1, Tag: TagHUD})
	c.OnTap(&ShapeRef{ID: 1, Tag: TagOverlay})
	c.HandleTap(10, 10)

	if c.State() != before {
		t.Fatalf("state changed: %+v -> %+v", before, c.State())
	}
	if len(eng.removed) != 0 || c.LiveCount() != 1 {
		t.Fatalf("removed = %v, live = %d", eng.removed, c.LiveCount())
	}
}

func TestHandleTapUsesHitTest(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.HandleTap(0, 0)
	ref := eng.addLive(c, true)
	eng.hit = &ref
	c.HandleTap(120, 80)
	if c.State().Score != 1 {
		t.Fatalf("score = %d, want 1", c.State().Score)
	}
}

func TestFullRoundExample(t *testing.T) {
	store := &memStore{}
	eng := newFakeEngine()
	c := NewController(NewGameState(3), eng, Options{Rules: DefaultRules(), Seed: 1, Store: store, Logger: zerolog.Nop()})

	c.OnTick(1)
	c.OnTap(nil)
	if st := c.State(); st != (GameState{Score: 0, Lives: 3, Phase: PhasePlaying}) {
		t.Fatalf("after tap: %+v", st)
	}

	for i := 0; i < 2; i++ {
		ref := eng.addLive(c, true)
		c.OnTap(&ref)
	}
	if st := c.State(); st.Score != 2 || st.Lives != 3 || st.Phase != PhasePlaying {
		t.Fatalf("after good hits: %+v", st)
	}

	gameOvers := 0
	c.Events().Subscribe(EventGameOver, func(Event) { gameOvers++ })
	for i := 0; i < 3; i++ {
		ref := eng.addLive(c, false)
		c.OnTap(&ref)
	}
	st := c.State()
	if st.Score != 2 || st.Lives != 0 || st.Phase != PhaseGameOver {
		t.Fatalf("after bad hits: %+v", st)
	}
	if gameOvers != 1 {
		t.Fatalf("game over emitted %d times", gameOvers)
	}
	if len(store.saves) != 1 || store.saves[0] != 2 {
		t.Fatalf("saves = %v, want [2]", store.saves)
	}
	if !eng.overlays[OverlayGameOver] {
		t.Fatalf("game over overlay hidden")
	}

	// Taps and hits are ignored until the round resets.
	ref := eng.addLive(c, false)
	c.OnTap(&ref)
	c.OnTap(nil)
	if c.State() != st {
		t.Fatalf("state mutated in GameOver: %+v", c.State())
	}

	c.OnTick(5.9)
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("returned to title too early")
	}
	c.OnTick(6.0)
	if c.State().Phase != PhaseTapToPlay {
		t.Fatalf("phase = %v after delay, want TapToPlay", c.State().Phase)
	}
	if !eng.overlays[OverlayTapToPlay] || eng.overlays[OverlayGameOver] {
		t.Fatalf("overlays = %v", eng.overlays)
	}
	if c.State().Best != 2 {
		t.Fatalf("best = %d, want 2", c.State().Best)
	}
}

func TestReturnTimerGuardsPhase(t *testing.T) {
	c, eng := newTestController(t, Rules{StartingLives: 1, GameOverDelay: 5})
	c.OnTick(0)
	c.OnTap(nil)
	ref := eng.addLive(c, false)
	c.OnTap(&ref)
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("phase = %v", c.State().Phase)
	}
	timer := c.returnTimer

	// Something else moves the phase on before the timer fires.
	c.state.Phase = PhasePlaying
	c.OnTick(10)
	if c.State().Phase != PhasePlaying {
		t.Fatalf("stale timer changed phase to %v", c.State().Phase)
	}
	if timer.Pending() {
		t.Fatalf("timer still pending after firing")
	}
}

func TestSpawnScheduling(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.OnTap(nil)
	c.nextSpawn = 9.5

	c.OnTick(10)

	if len(eng.spawned) != 1 {
		t.Fatalf("spawned %d, want 1", len(eng.spawned))
	}
	if n := c.NextSpawn(); n <= 10.2 || n >= 11.5 {
		t.Fatalf("next spawn = %v, want within (10.2, 11.5)", n)
	}
	if c.LiveCount() != 1 {
		t.Fatalf("live = %d", c.LiveCount())
	}
	imp := eng.impulses[0]
	if imp.X < ImpulseXMin || imp.X >= ImpulseXMax || imp.Y < ImpulseYMin || imp.Y >= ImpulseYMax || imp.Z != 0 {
		t.Fatalf("impulse out of range: %+v", imp)
	}
	cue := CueSpawnGood
	if !eng.spawned[0].Good {
		cue = CueSpawnBad
	}
	if len(eng.sounds) != 1 || eng.sounds[0] != cue {
		t.Fatalf("sounds = %v, want [%v]", eng.sounds, cue)
	}

	// Not due yet.
	c.OnTick(10.1)
	if len(eng.spawned) != 1 {
		t.Fatalf("spawned before the scheduled time")
	}
}

func TestNextSpawnTimeIsStrict(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		want  float64
		calls int
	}{
		{"inside", []float64{0.7}, 10.7, 1},
		{"lower bound redrawn", []float64{SpawnIntervalMin, 0.7}, 10.7, 2},
		// 10 + the largest float64 below 1.5 rounds to exactly 11.5.
		{"rounds onto upper bound", []float64{math.Nextafter(SpawnIntervalMax, 0), 1.0}, 11, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got := nextSpawnTime(10, func() float64 {
				d := tt.draws[calls]
				calls++
				return d
			})
			if got != tt.want || calls != tt.calls {
				t.Fatalf("got %v after %d draws, want %v after %d", got, calls, tt.want, tt.calls)
			}
			if got <= 10.2 || got >= 11.5 {
				t.Fatalf("next spawn %v outside (10.2, 11.5)", got)
			}
		})
	}
}

func TestGameOverDelayCountsFromTap(t *testing.T) {
	now := 0.0
	eng := newFakeEngine()
	c := NewController(NewGameState(1), eng, Options{
		Rules:  DefaultRules(),
		Seed:   3,
		Logger: zerolog.Nop(),
		Clock:  func() float64 { return now },
	})
	c.OnTick(10)
	c.OnTap(nil)

	// The losing tap lands most of a frame after the last tick.
	now = 10.08
	ref := eng.addLive(c, false)
	c.OnTap(&ref)
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("phase = %v", c.State().Phase)
	}

	c.OnTick(15.05)
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("returned to title %.2f after the tap", 15.05-10.08)
	}
	c.OnTick(15.09)
	if c.State().Phase != PhaseTapToPlay {
		t.Fatalf("phase = %v after full delay, want TapToPlay", c.State().Phase)
	}
}

func TestSpawnCueMatchesShape(t *testing.T) {
	c, eng := newTestController(t, Rules{StartingLives: 3, GameOverDelay: 5, BadChance: 1})
	c.OnTap(nil)
	c.OnTick(1)
	if len(eng.spawned) != 1 || eng.spawned[0].Good || eng.spawned[0].Color != Black {
		t.Fatalf("spawned = %+v, want one black shape", eng.spawned)
	}
	if eng.sounds[0] != CueSpawnBad {
		t.Fatalf("cue = %v, want SpawnBad", eng.sounds[0])
	}
}

func TestSweepRemovesFallenShapes(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.OnTap(nil)
	low := eng.addLive(c, true)
	high := eng.addLive(c, true)
	eng.positions[low.ID] = -2.5
	eng.positions[high.ID] = -1.9
	c.nextSpawn = 100

	c.OnTick(1)

	if len(eng.removed) != 1 || eng.removed[0].ID != low.ID {
		t.Fatalf("removed = %v, want only %v", eng.removed, low)
	}
	if _, ok := c.live[high.ID]; !ok {
		t.Fatalf("shape above the limit was dropped")
	}
}

func TestEngineFailuresAreNonFatal(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	eng.spawnErr = errors.New("missing asset")
	eng.soundErr = errors.New("no audio device")
	c.OnTap(nil)
	c.OnTick(1)
	if c.LiveCount() != 0 {
		t.Fatalf("failed spawn tracked as live")
	}
	if n := c.NextSpawn(); n <= 1.2 || n >= 2.5 {
		t.Fatalf("spawn not rescheduled after failure: %v", n)
	}

	eng.spawnErr = nil
	c.OnTick(3)
	if c.LiveCount() != 1 {
		t.Fatalf("live = %d, want 1", c.LiveCount())
	}
}

func TestHUDRefreshedEveryTick(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	c.OnTick(0)
	c.OnTap(nil)
	c.nextSpawn = 100
	c.OnTick(1)
	if len(eng.huds) != 2 {
		t.Fatalf("huds = %d, want 2", len(eng.huds))
	}
	if eng.huds[0].Phase != PhaseTapToPlay || eng.huds[1].Phase != PhasePlaying || eng.huds[1].Lives != 3 {
		t.Fatalf("huds = %+v", eng.huds)
	}
}

func TestBestScoreLoadedAndKept(t *testing.T) {
	store := &memStore{best: 7}
	eng := newFakeEngine()
	c := NewController(NewGameState(1), eng, Options{Rules: Rules{StartingLives: 1, GameOverDelay: 5}, Store: store, Logger: zerolog.Nop()})
	if c.State().Best != 7 {
		t.Fatalf("best = %d, want 7", c.State().Best)
	}
	c.OnTap(nil)
	ref := eng.addLive(c, false)
	c.OnTap(&ref)
	if len(store.saves) != 1 || store.saves[0] != 7 {
		t.Fatalf("saves = %v, want [7]", store.saves)
	}
}

func TestStoreErrorsAreNonFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	eng := newFakeEngine()
	c := NewController(NewGameState(1), eng, Options{Rules: Rules{StartingLives: 1, GameOverDelay: 5}, Store: store, Logger: zerolog.Nop()})
	c.OnTap(nil)
	ref := eng.addLive(c, false)
	c.OnTap(&ref)
	if c.State().Phase != PhaseGameOver {
		t.Fatalf("phase = %v", c.State().Phase)
	}
}

func TestHitEventsCarryShape(t *testing.T) {
	c, eng := newTestController(t, DefaultRules())
	var got []Event
	c.Events().Subscribe(EventGoodHit, func(e Event) { got = append(got, e) })
	c.Events().Subscribe(EventBadHit, func(e Event) { got = append(got, e) })
	c.OnTap(nil)

	good := eng.addLive(c, true)
	c.OnTap(&good)
	bad := eng.addLive(c, false)
	c.OnTap(&bad)

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Type != EventGoodHit || got[0].Shape.ID != good.ID || got[0].Score != 1 {
		t.Fatalf("good event = %+v", got[0])
	}
	if got[1].Type != EventBadHit || got[1].Shape.ID != bad.ID || got[1].Color != Black {
		t.Fatalf("bad event = %+v", got[1])
	}
}
