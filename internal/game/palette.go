package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Black is the colour of a bad shape. The match is exact: near-black
// colours are good shapes.
var Black = RGB{}

// IsBlack reports whether c is exactly black.
func (c RGB) IsBlack() bool { return c == Black }

// Floats returns the colour as normalised [0,1] channels.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

