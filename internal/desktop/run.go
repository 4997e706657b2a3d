//go:build !android

// Package desktop runs the game in a GLFW window.
package desktop

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"geofighter/internal/audio"
	"geofighter/internal/config"
	"geofighter/internal/game"
	"geofighter/internal/render"
	"geofighter/internal/scene"
)

// RunDesktop opens the window and runs the frame loop until it closes.
func RunDesktop(cfg config.Config, log zerolog.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("window ready")

	var sound scene.SoundPlayer
	player, err := audio.New(audio.Options{Mute: cfg.Mute, Logger: log})
	if err != nil {
		log.Warn().Err(err).Msg("audio init failed, continuing without sound")
	} else {
		sound = player
	}

	scores, closer := openStore(cfg.DBPath, log)
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close score database")
		}
	}()

	render.SetupGL()
	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	sc := scene.New(scene.Options{Seed: cfg.Seed, Sound: sound, Logger: log})
	ctrl := game.NewController(game.NewGameState(cfg.Rules.StartingLives), sc, game.Options{
		Rules:  cfg.Rules,
		Seed:   cfg.Seed,
		Store:  scores,
		Logger: log,
		Clock:  glfw.GetTime,
	})
	sc.Subscribe(ctrl.Events())
	log.Info().Uint64("seed", cfg.Seed).Int("best", ctrl.State().Best).Msg("game ready")

	input := NewInput()
	muted := cfg.Mute

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyM) && player != nil {
			muted = !muted
			player.SetMute(muted)
			log.Info().Bool("muted", muted).Msg("sound toggled")
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		sc.SetViewport(fbW, fbH)

		if input.JustClicked(window, glfw.MouseButtonLeft) {
			x, y := CursorFramebufferPos(window, fbW, fbH)
			ctrl.HandleTap(x, y)
		}

		sc.Step(float32(dt))
		ctrl.OnTick(now)

		rend.DrawScene(sc, fbW, fbH)
		window.SwapBuffers()
	}
	log.Info().Int("best", ctrl.State().Best).Msg("bye")
	return nil
}
