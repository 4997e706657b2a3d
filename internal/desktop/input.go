//go:build !android

package desktop

import "github.com/go-gl/glfw/v3.3/glfw"

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// CursorFramebufferPos returns the cursor in framebuffer pixels, which
// differ from window coordinates on HiDPI displays.
func CursorFramebufferPos(window *glfw.Window, fbW, fbH int) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	return toFramebuffer(cx, cy, winW, winH, fbW, fbH)
}

func toFramebuffer(cx, cy float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}
