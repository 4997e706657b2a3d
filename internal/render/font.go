package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII, laid out FontCols glyphs per atlas row.
const (
	FontFirst = 32
	FontLast  = 126
	FontCols  = 16
)

var fontFace = basicfont.Face7x13

var (
	FontCellW = fontFace.Advance
	FontCellH = fontFace.Height
)

// FontAtlas is a white-on-transparent glyph sheet ready for upload.
type FontAtlas struct {
	Img  *image.NRGBA
	Cols int
	Rows int
}

// BuildFontAtlas rasterises the built-in 7x13 face into a grid of cells.
func BuildFontAtlas() *FontAtlas {
	n := FontLast - FontFirst + 1
	rows := (n + FontCols - 1) / FontCols
	img := image.NewNRGBA(image.Rect(0, 0, FontCols*FontCellW, rows*FontCellH))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: fontFace,
	}
	for c := FontFirst; c <= FontLast; c++ {
		i := c - FontFirst
		col, row := i%FontCols, i/FontCols
		d.Dot = fixed.P(col*FontCellW, row*FontCellH+fontFace.Ascent)
		d.DrawString(string(rune(c)))
	}
	return &FontAtlas{Img: img, Cols: FontCols, Rows: rows}
}

// UV returns the texture rectangle of ch, or false if the atlas lacks it.
func (a *FontAtlas) UV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < FontFirst || ch > FontLast {
		return 0, 0, 0, 0, false
	}
	i := int(ch) - FontFirst
	col, row := i%a.Cols, i/a.Cols
	w := float32(a.Img.Bounds().Dx())
	h := float32(a.Img.Bounds().Dy())
	u0 = float32(col*FontCellW) / w
	v0 = float32(row*FontCellH) / h
	u1 = float32((col+1)*FontCellW) / w
	v1 = float32((row+1)*FontCellH) / h
	return u0, v0, u1, v1, true
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) float32 {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			maxLineLen = max(maxLineLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLineLen = max(maxLineLen, lineLen)
	return float32(maxLineLen*FontCellW) * scale
}
