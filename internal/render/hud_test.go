package render

import (
	"strings"
	"testing"

	"geofighter/internal/game"
	"geofighter/internal/scene"
)

func TestFontAtlas(t *testing.T) {
	a := BuildFontAtlas()
	b := a.Img.Bounds()
	if b.Dx() != FontCols*FontCellW || b.Dy() != a.Rows*FontCellH {
		t.Fatalf("atlas is %dx%d", b.Dx(), b.Dy())
	}
	if a.Rows*a.Cols < FontLast-FontFirst+1 {
		t.Fatalf("atlas too small for printable ASCII")
	}

	inked := func(ch rune) int {
		i := int(ch) - FontFirst
		x0, y0 := (i%a.Cols)*FontCellW, (i/a.Cols)*FontCellH
		n := 0
		for y := y0; y < y0+FontCellH; y++ {
			for x := x0; x < x0+FontCellW; x++ {
				if a.Img.NRGBAAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	if n := inked(' '); n != 0 {
		t.Fatalf("space has %d inked pixels", n)
	}
	for _, ch := range "AZ09#" {
		if inked(ch) == 0 {
			t.Fatalf("glyph %q is blank", ch)
		}
	}
}

func TestFontAtlasUV(t *testing.T) {
	a := BuildFontAtlas()
	u0, v0, u1, v1, ok := a.UV('!')
	if !ok || u0 >= u1 || v0 >= v1 {
		t.Fatalf("UV('!') = %v %v %v %v %v", u0, v0, u1, v1, ok)
	}
	if u0 != float32(FontCellW)/float32(a.Img.Bounds().Dx()) || v0 != 0 {
		t.Fatalf("'!' should be the second cell, got u0=%v v0=%v", u0, v0)
	}
	for _, ch := range []rune{'\n', 127, 'é'} {
		if _, _, _, _, ok := a.UV(ch); ok {
			t.Fatalf("UV(%q) should be missing", ch)
		}
	}
}

func TestTextWidth(t *testing.T) {
	if w := TextWidth("abc", 2); w != float32(3*FontCellW*2) {
		t.Fatalf("width = %v", w)
	}
	if w := TextWidth("ab\nabcd\nx", 1); w != float32(4*FontCellW) {
		t.Fatalf("multiline width = %v", w)
	}
}

func TestLayoutHUD(t *testing.T) {
	h := game.HUD{Score: 12, Lives: 2, Best: 40, Phase: game.PhasePlaying}
	items := Layout(h, false, false, 1280, 720)
	if len(items) != 1 {
		t.Fatalf("items = %d, want HUD only", len(items))
	}
	hud := items[0]
	for _, want := range []string{"12", "2", "40"} {
		if !strings.Contains(hud.Text, want) {
			t.Fatalf("HUD %q missing %s", hud.Text, want)
		}
	}
	band := 720 * float32(scene.HUDBandFraction)
	if hud.Y < 0 || hud.Y+float32(FontCellH)*hud.Scale > band {
		t.Fatalf("HUD text at y=%v scale=%v leaves band %v", hud.Y, hud.Scale, band)
	}
	if hud.X < 0 || hud.X+TextWidth(hud.Text, hud.Scale) > 1280 {
		t.Fatalf("HUD text off screen at x=%v", hud.X)
	}
}

func TestLayoutOverlays(t *testing.T) {
	h := game.HUD{Score: 7}
	has := func(items []TextItem, text string) bool {
		for _, it := range items {
			if it.Text == text {
				return true
			}
		}
		return false
	}

	tap := Layout(h, true, false, 800, 600)
	if !has(tap, "TAP TO PLAY") || has(tap, "GAME OVER") {
		t.Fatalf("tap-to-play layout = %+v", tap)
	}
	over := Layout(h, false, true, 800, 600)
	if !has(over, "GAME OVER") || !has(over, "SCORE 7") || has(over, "TAP TO PLAY") {
		t.Fatalf("game-over layout = %+v", over)
	}
	if Layout(h, true, true, 0, 600) != nil {
		t.Fatalf("empty framebuffer should lay out nothing")
	}
}
