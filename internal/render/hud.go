package render

import (
	"fmt"

	"geofighter/internal/game"
	"geofighter/internal/scene"
)

// TextItem is one line of screen-space text, positioned top-left.
type TextItem struct {
	Text  string
	X, Y  float32
	Scale float32
	Col   game.RGB
}

var (
	hudColor     = game.RGB{R: 240, G: 240, B: 240}
	titleColor   = game.RGB{R: 255, G: 214, B: 64}
	gameOverTint = game.RGB{R: 255, G: 72, B: 72}
)

// HUDText formats the status line shown in the HUD band.
func HUDText(h game.HUD) string {
	return fmt.Sprintf("SCORE %d   LIVES %d   BEST %d", h.Score, h.Lives, h.Best)
}

// Layout places the HUD line and any visible overlay text for a
// framebuffer of fbW x fbH pixels.
func Layout(h game.HUD, tapToPlay, gameOver bool, fbW, fbH int) []TextItem {
	if fbW <= 0 || fbH <= 0 {
		return nil
	}
	w, ht := float32(fbW), float32(fbH)
	band := ht * scene.HUDBandFraction

	hudScale := max(1, band*0.6/float32(FontCellH))
	line := HUDText(h)
	items := []TextItem{{
		Text:  line,
		X:     (w - TextWidth(line, hudScale)) / 2,
		Y:     (band - float32(FontCellH)*hudScale) / 2,
		Scale: hudScale,
		Col:   hudColor,
	}}

	big := max(2, ht/8/float32(FontCellH))
	small := max(1, big/2.5)
	centred := func(text string, y, scale float32, col game.RGB) TextItem {
		return TextItem{Text: text, X: (w - TextWidth(text, scale)) / 2, Y: y, Scale: scale, Col: col}
	}
	switch {
	case gameOver:
		items = append(items,
			centred("GAME OVER", ht*0.38, big, gameOverTint),
			centred(fmt.Sprintf("SCORE %d", h.Score), ht*0.38+float32(FontCellH)*big*1.3, small, hudColor),
		)
	case tapToPlay:
		items = append(items,
			centred("GEOMETRY FIGHTER", ht*0.3, small, hudColor),
			centred("TAP TO PLAY", ht*0.42, big, titleColor),
		)
	}
	return items
}
