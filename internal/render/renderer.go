//go:build !android

// Package render draws a scene with OpenGL 4.1 core.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"geofighter/internal/game"
	"geofighter/internal/scene"
)

// MaxParticleRender caps the particle VBO.
const MaxParticleRender = scene.MaxParticles

var (
	clearColor = game.RGB{R: 14, G: 16, B: 28}
	lightDir   = mgl32.Vec3{-0.4, -1, -0.6}.Normalize()
	panelColor = game.RGB{R: 0, G: 0, B: 0}
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type meshBuffer struct {
	vao, vbo uint32
	count    int32
}

type Renderer struct {
	// Lit mesh program.
	meshProg    uint32
	meshes      [game.NumShapeKinds]meshBuffer
	meshUProj   int32
	meshUView   int32
	meshUModel  int32
	meshUColor  int32
	meshULight  int32
	meshUEye    int32

	// Particle program (alpha) and glow program (additive) share a VAO.
	spriteProg uint32
	glowProg   uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUProj         int32
	spUView         int32
	spUPointScale   int32
	glowUProj       int32
	glowUView       int32
	glowUPointScale int32

	// Font/text rendering.
	atlas    *FontAtlas
	fontTex  uint32
	textProg uint32
	textVAO  uint32
	textVBO  uint32
	textURes int32
	textBuf  []float32

	// Reusable render buffers to avoid per-frame heap allocations.
	glowBuf, normBuf []float32
}

func NewRenderer() (*Renderer, error) {
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	spriteProg, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(particleVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{
		meshProg:   meshProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
	}

	// One static VBO per shape kind: interleaved position + normal.
	for k := range r.meshes {
		m := scene.BuildMesh(game.ShapeKind(k))
		var vao, vbo uint32
		gl.GenVertexArrays(1, &vao)
		gl.GenBuffers(1, &vbo)
		gl.BindVertexArray(vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		if len(m.Vertices) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
		}
		stride := int32(scene.MeshStride * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
		r.meshes[k] = meshBuffer{vao: vao, vbo: vbo, count: int32(m.VertexCount())}
	}

	gl.UseProgram(meshProg)
	r.meshUProj = uniform(meshProg, "uProj")
	r.meshUView = uniform(meshProg, "uView")
	r.meshUModel = uniform(meshProg, "uModel")
	r.meshUColor = uniform(meshProg, "uColor")
	r.meshULight = uniform(meshProg, "uLightDir")
	r.meshUEye = uniform(meshProg, "uEye")
	gl.Uniform3f(r.meshULight, lightDir[0], lightDir[1], lightDir[2])

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, z, size, r, g, b, a).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(scene.ParticleStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	r.spUProj = uniform(spriteProg, "uProj")
	r.spUView = uniform(spriteProg, "uView")
	r.spUPointScale = uniform(spriteProg, "uPointScale")
	r.glowUProj = uniform(glowProg, "uProj")
	r.glowUView = uniform(glowProg, "uView")
	r.glowUPointScale = uniform(glowProg, "uPointScale")

	gl.BindVertexArray(0)

	if err := r.initFont(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("font: %w", err)
	}
	return r, nil
}

func (r *Renderer) Destroy() {
	for i := range r.meshes {
		m := &r.meshes[i]
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
	}
	for _, id := range []uint32{r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.meshProg, r.spriteProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// SetupGL sets the global GL state the renderer expects.
func SetupGL() {
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	cr, cg, cb := clearColor.Floats()
	gl.ClearColor(cr, cg, cb, 1.0)
}

// DrawScene renders one frame of s: shapes, particles, then HUD and overlays.
func (r *Renderer) DrawScene(s *scene.Scene, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj := s.Camera.Projection(fbW, fbH)
	view := s.Camera.View()

	r.drawBodies(s, proj, view)
	r.drawParticles(s, proj, view, fbH)
	r.drawHUD(s, fbW, fbH)
}

func (r *Renderer) drawBodies(s *scene.Scene, proj, view mgl32.Mat4) {
	bodies := s.Bodies()
	if len(bodies) == 0 {
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.meshUProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.meshUView, 1, false, &view[0])
	eye := s.Camera.Eye
	gl.Uniform3f(r.meshUEye, eye[0], eye[1], eye[2])

	for _, b := range bodies {
		m := r.meshes[b.Kind]
		if m.count == 0 {
			continue
		}
		model := b.Model()
		cr, cg, cb := b.Color.Floats()
		gl.UniformMatrix4fv(r.meshUModel, 1, false, &model[0])
		gl.Uniform3f(r.meshUColor, cr, cg, cb)
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// drawParticles renders two passes: alpha-blended then additive glow.
// Particles test against shape depth but never write it.
func (r *Renderer) drawParticles(s *scene.Scene, proj, view mgl32.Mat4, fbH int) {
	r.glowBuf, r.normBuf = s.Particles.RenderData(r.glowBuf, r.normBuf)
	if len(r.glowBuf) == 0 && len(r.normBuf) == 0 {
		return
	}
	// Pixels per world unit at distance 1.
	pointScale := float32(fbH) * proj.At(1, 1) * 0.5

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	if len(r.normBuf) > 0 {
		gl.UseProgram(r.spriteProg)
		gl.UniformMatrix4fv(r.spUProj, 1, false, &proj[0])
		gl.UniformMatrix4fv(r.spUView, 1, false, &view[0])
		gl.Uniform1f(r.spUPointScale, pointScale)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		r.streamSprites(r.normBuf)
	}
	if len(r.glowBuf) > 0 {
		gl.UseProgram(r.glowProg)
		gl.UniformMatrix4fv(r.glowUProj, 1, false, &proj[0])
		gl.UniformMatrix4fv(r.glowUView, 1, false, &view[0])
		gl.Uniform1f(r.glowUPointScale, pointScale)
		gl.BlendFunc(gl.ONE, gl.ONE)
		r.streamSprites(r.glowBuf)
	}

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	gl.BindVertexArray(0)
}

func (r *Renderer) streamSprites(buf []float32) {
	count := len(buf) / scene.ParticleStride
	if count > MaxParticleRender {
		count = MaxParticleRender
	}
	gl.BufferData(gl.ARRAY_BUFFER, count*scene.ParticleStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
}

func (r *Renderer) drawHUD(s *scene.Scene, fbW, fbH int) {
	tap := s.OverlayVisible(game.OverlayTapToPlay)
	over := s.OverlayVisible(game.OverlayGameOver)
	band := float32(fbH) * scene.HUDBandFraction
	r.DrawPanel(0, 0, float32(fbW), band, panelColor, 0.45)
	if tap || over {
		r.DrawPanel(0, band, float32(fbW), float32(fbH)-band, panelColor, 0.35)
	}
	for _, it := range Layout(s.HUD(), tap, over, fbW, fbH) {
		r.DrawString(it.Text, it.X, it.Y, it.Scale, it.Col)
	}
	r.FlushText(fbW, fbH)
}
