package game

import (
	"context"

	"github.com/rs/zerolog"
)

// Options configures a Controller. Store and Events may be nil.
type Options struct {
	Rules  Rules
	Seed   uint64
	Store  ScoreStore
	Events *EventBus
	Logger zerolog.Logger
	// Clock reads the current time on the frame clock. When nil, the time
	// of the last OnTick is used.
	Clock  func() float64
}

// Controller runs the phase machine. All methods are meant to be called
// from the single frame loop; nothing here is safe for concurrent use.
type Controller struct {
	state    *GameState
	rules    Rules
	engine   Engine
	store    ScoreStore
	events   *EventBus
	selector *Selector
	rng      *Rand
	sched    Scheduler
	log      zerolog.Logger
	clock    func() float64

	live      map[ShapeID]SpawnedShape
	now       float64
	nextSpawn float64

	// Pending GameOver -> TapToPlay transition.
	returnTimer *Timer
}

// NewController wires a controller around an injected state and engine,
// loads the best score and shows the overlay for the current phase.
func NewController(state *GameState, engine Engine, opts Options) *Controller {
	events := opts.Events
	if events == nil {
		events = NewEventBus()
	}
	c := &Controller{
		state:    state,
		rules:    opts.Rules,
		engine:   engine,
		store:    opts.Store,
		events:   events,
		selector: NewSelector(NewRand(MixSeed(opts.Seed, 0x5E1EC7)), opts.Rules.BadChance),
		rng:      NewRand(MixSeed(opts.Seed, 0x5FA3)),
		log:      opts.Logger.With().Str("component", "controller").Logger(),
		clock:    opts.Clock,
		live:     make(map[ShapeID]SpawnedShape),
	}
	c.loadBest()
	c.showOverlayFor(state.Phase)
	return c
}

// State returns a copy of the current game state.
func (c *Controller) State() GameState { return *c.state }

// Events returns the bus effect requests are published on.
func (c *Controller) Events() *EventBus { return c.events }

// LiveCount returns how many spawned shapes are still in play.
func (c *Controller) LiveCount() int { return len(c.live) }

// NextSpawn returns the time after which the next shape spawns.
func (c *Controller) NextSpawn() float64 { return c.nextSpawn }

// HandleTap hit-tests a screen point and forwards the result to OnTap.
func (c *Controller) HandleTap(x, y float64) {
	ref, ok := c.engine.HitTest(x, y)
	if !ok {
		c.OnTap(nil)
		return
	}
	c.OnTap(&ref)
}

// OnTap reacts to a player tap. hit is nil when nothing was under the
// finger.
func (c *Controller) OnTap(hit *ShapeRef) {
	switch c.state.Phase {
	case PhaseGameOver:
		return
	case PhaseTapToPlay:
		c.start()
		return
	}

	if hit == nil || (hit.Tag != TagGood && hit.Tag != TagBad) {
		return
	}
	shape, ok := c.live[hit.ID]
	if !ok {
		return
	}
	ref := ShapeRef{ID: hit.ID, Tag: shape.Tag()}
	if shape.Good {
		c.goodHit(ref, shape)
	} else {
		c.badHit(ref, shape)
	}
	c.engine.RemoveVisual(ref)
	delete(c.live, ref.ID)
}

// OnTick advances the controller to the frame time now.
func (c *Controller) OnTick(now float64) {
	c.now = now
	c.sched.Advance(now)

	if c.state.Phase == PhasePlaying {
		if now > c.nextSpawn {
			c.spawn()
			c.nextSpawn = nextSpawnTime(now, func() float64 {
				return c.rng.RangeF(SpawnIntervalMin, SpawnIntervalMax)
			})
		}
		c.sweep()
	}
	c.engine.UpdateHUD(c.state.HUD())
}

func (c *Controller) start() {
	c.returnTimer.Cancel()
	c.returnTimer = nil
	c.state.Reset(c.rules.StartingLives)
	c.state.Phase = PhasePlaying
	c.engine.HideOverlay(OverlayTapToPlay)
	c.engine.HideOverlay(OverlayGameOver)
	c.log.Info().Int("lives", c.state.Lives).Msg("round started")
}

func (c *Controller) goodHit(ref ShapeRef, shape SpawnedShape) {
	c.state.GoodHit()
	c.playSound(CueExplodeGood)
	c.events.Emit(Event{Type: EventGoodHit, Shape: ref, Kind: shape.Kind, Color: shape.Color, Score: c.state.Score})
}

func (c *Controller) badHit(ref ShapeRef, shape SpawnedShape) {
	lost := c.state.BadHit()
	c.playSound(CueExplodeBad)
	c.engine.ShakeCamera()
	c.events.Emit(Event{Type: EventBadHit, Shape: ref, Kind: shape.Kind, Color: shape.Color, Score: c.state.Score})
	if lost {
		c.gameOver()
	}
}

func (c *Controller) gameOver() {
	c.state.RecordBest()
	c.saveBest()
	c.state.Phase = PhaseGameOver
	c.engine.ShowOverlay(OverlayGameOver)
	c.playSound(CueGameOver)
	c.events.Emit(Event{Type: EventGameOver, Score: c.state.Score})
	c.returnTimer = c.sched.After(c.time(), c.rules.GameOverDelay, c.returnToTitle)
	c.log.Info().Int("score", c.state.Score).Int("best", c.state.Best).Msg("game over")
}

// time is the current frame-clock time. Taps land between ticks, so a
// game over counts its delay from the tap rather than the last tick.
func (c *Controller) time() float64 {
	if c.clock == nil {
		return c.now
	}
	if t := c.clock(); t > c.now {
		return t
	}
	return c.now
}

// nextSpawnTime returns now plus a drawn interval, redrawing until the
// sum lies strictly inside (now+SpawnIntervalMin, now+SpawnIntervalMax).
// The draw can hit the lower bound, and the sum can round onto either one.
func nextSpawnTime(now float64, draw func() float64) float64 {
	lo, hi := now+SpawnIntervalMin, now+SpawnIntervalMax
	for {
		if t := now + draw(); t > lo && t < hi {
			return t
		}
	}
}

// returnToTitle is the delayed GameOver -> TapToPlay transition. It is a
// no-op if something else already moved the phase on.
func (c *Controller) returnToTitle() {
	c.returnTimer = nil
	if c.state.Phase != PhaseGameOver {
		return
	}
	c.state.Phase = PhaseTapToPlay
	c.showOverlayFor(PhaseTapToPlay)
}

func (c *Controller) spawn() {
	shape := c.selector.SelectShape()
	impulse := Vec3{
		X: c.rng.RangeF(ImpulseXMin, ImpulseXMax),
		Y: c.rng.RangeF(ImpulseYMin, ImpulseYMax),
	}
	ref, err := c.engine.SpawnVisual(shape.Kind, shape.Color, impulse)
	if err != nil {
		c.log.Warn().Err(err).Stringer("kind", shape.Kind).Msg("spawn failed")
		return
	}
	c.live[ref.ID] = shape

	cue := CueSpawnGood
	if !shape.Good {
		cue = CueSpawnBad
	}
	c.playSound(cue)
	c.events.Emit(Event{Type: EventSpawn, Shape: ref, Kind: shape.Kind, Color: shape.Color})
}

// sweep drops shapes that fell out of the play area untouched.
func (c *Controller) sweep() {
	for _, p := range c.engine.LiveShapePositions() {
		if p.Y >= FallLimit {
			continue
		}
		c.engine.RemoveVisual(p.Ref)
		delete(c.live, p.Ref.ID)
	}
}

func (c *Controller) showOverlayFor(phase GamePhase) {
	switch phase {
	case PhaseTapToPlay:
		c.engine.HideOverlay(OverlayGameOver)
		c.engine.ShowOverlay(OverlayTapToPlay)
	case PhaseGameOver:
		c.engine.HideOverlay(OverlayTapToPlay)
		c.engine.ShowOverlay(OverlayGameOver)
	default:
		c.engine.HideOverlay(OverlayTapToPlay)
		c.engine.HideOverlay(OverlayGameOver)
	}
}

func (c *Controller) playSound(cue SoundCue) {
	if err := c.engine.PlaySound(cue); err != nil {
		c.log.Warn().Err(err).Stringer("cue", cue).Msg("sound failed")
	}
}

func (c *Controller) loadBest() {
	if c.store == nil {
		return
	}
	best, err := c.store.LoadBest(context.Background())
	if err != nil {
		c.log.Warn().Err(err).Msg("load best score")
		return
	}
	if best > c.state.Best {
		c.state.Best = best
	}
}

func (c *Controller) saveBest() {
	if c.store == nil {
		return
	}
	if err := c.store.SaveBest(context.Background(), c.state.Best); err != nil {
		c.log.Warn().Err(err).Int("best", c.state.Best).Msg("save best score")
	}
}
