// Package audio plays the game's procedurally synthesised sound cues
// through oto.
package audio

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"

	"geofighter/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	DefaultVolume = 0.58
	// More simultaneous explosions than this clip the speakers.
	maxExplosions = 2
)

var (
	ErrNotReady   = errors.New("audio device not ready")
	ErrUnknownCue = errors.New("unknown sound cue")
)

type Options struct {
	Volume float64 // 0 uses DefaultVolume
	Mute   bool
	Logger zerolog.Logger
}

// Player owns the oto context and plays one goroutine per cue.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	mute   bool
	log    zerolog.Logger

	explosions int32
	variant    uint64
}

// New opens the audio device. The device becomes usable once oto signals
// ready; until then Play reports ErrNotReady.
func New(opts Options) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	vol := opts.Volume
	if vol <= 0 {
		vol = DefaultVolume
	}
	return &Player{
		ctx:    ctx,
		ready:  ready,
		volume: clamp(vol, 0, 1),
		mute:   opts.Mute,
		log:    opts.Logger.With().Str("component", "audio").Logger(),
	}, nil
}

// SetMute turns playback off or on.
func (p *Player) SetMute(mute bool) { p.mute = mute }

// Play synthesises cue and plays it in the background.
func (p *Player) Play(cue game.SoundCue) error {
	if p.mute {
		return nil
	}
	select {
	case <-p.ready:
	default:
		return ErrNotReady
	}
	explosive := cue == game.CueExplodeBad
	if explosive {
		if atomic.LoadInt32(&p.explosions) >= maxExplosions {
			return nil
		}
		atomic.AddInt32(&p.explosions, 1)
	}
	samples := Generate(cue, atomic.AddUint64(&p.variant, 1)^uint64(time.Now().UnixNano()))
	if len(samples) == 0 {
		if explosive {
			atomic.AddInt32(&p.explosions, -1)
		}
		return fmt.Errorf("%w: %d", ErrUnknownCue, cue)
	}
	go func() {
		if explosive {
			defer atomic.AddInt32(&p.explosions, -1)
		}
		player := p.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Debug().Err(err).Stringer("cue", cue).Msg("close player")
		}
	}()
	return nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
