package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"geofighter/internal/game"
)

// Mesh tessellation.
const (
	meshSlices = 24
	meshStacks = 12
)

// MeshStride is the float count per vertex: position(3) + normal(3).
const MeshStride = 6

// Mesh is an unindexed triangle list, origin-centred.
type Mesh struct {
	Vertices []float32
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int { return len(m.Vertices) / MeshStride }

func (m *Mesh) add(p, n mgl32.Vec3) {
	m.Vertices = append(m.Vertices, p[0], p[1], p[2], n[0], n[1], n[2])
}

func (m *Mesh) tri(a, b, c, n mgl32.Vec3) {
	m.add(a, n)
	m.add(b, n)
	m.add(c, n)
}

func (m *Mesh) quad(a, b, c, d, n mgl32.Vec3) {
	m.tri(a, b, c, n)
	m.tri(a, c, d, n)
}

// BuildMesh tessellates a shape kind from its fixed geometry.
func BuildMesh(kind game.ShapeKind) Mesh {
	g := kind.Geometry()
	switch kind {
	case game.ShapeBox:
		return boxMesh(f32(g.Width), f32(g.Height), f32(g.Length))
	case game.ShapeSphere:
		return lathe(sphereProfile(f32(g.Radius), 0, 0, meshStacks), meshSlices)
	case game.ShapePyramid:
		return pyramidMesh(f32(g.Width), f32(g.Height), f32(g.Length))
	case game.ShapeTorus:
		return lathe(torusProfile(f32(g.RingRadius), f32(g.PipeRadius)), meshSlices)
	case game.ShapeCapsule:
		return lathe(capsuleProfile(f32(g.Radius), f32(g.Height)), meshSlices)
	case game.ShapeCylinder:
		return lathe(frustumProfile(f32(g.Radius), f32(g.Radius), f32(g.Height)), meshSlices)
	case game.ShapeCone:
		return lathe(frustumProfile(f32(g.TopRadius), f32(g.BottomRadius), f32(g.Height)), meshSlices)
	case game.ShapeTube:
		return lathe(tubeProfile(f32(g.InnerRadius), f32(g.OuterRadius), f32(g.Height)), meshSlices)
	}
	return Mesh{}
}

func boxMesh(w, h, l float32) Mesh {
	x, y, z := w/2, h/2, l/2
	var m Mesh
	// +X, -X, +Y, -Y, +Z, -Z
	m.quad(mgl32.Vec3{x, -y, -z}, mgl32.Vec3{x, y, -z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{x, -y, z}, mgl32.Vec3{1, 0, 0})
	m.quad(mgl32.Vec3{-x, -y, z}, mgl32.Vec3{-x, y, z}, mgl32.Vec3{-x, y, -z}, mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{-1, 0, 0})
	m.quad(mgl32.Vec3{-x, y, -z}, mgl32.Vec3{-x, y, z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{x, y, -z}, mgl32.Vec3{0, 1, 0})
	m.quad(mgl32.Vec3{-x, -y, z}, mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{x, -y, -z}, mgl32.Vec3{x, -y, z}, mgl32.Vec3{0, -1, 0})
	m.quad(mgl32.Vec3{-x, -y, z}, mgl32.Vec3{x, -y, z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{-x, y, z}, mgl32.Vec3{0, 0, 1})
	m.quad(mgl32.Vec3{x, -y, -z}, mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{-x, y, -z}, mgl32.Vec3{x, y, -z}, mgl32.Vec3{0, 0, -1})
	return m
}

// pyramidMesh builds a square pyramid, base at -h/2 and apex at +h/2.
func pyramidMesh(w, h, l float32) Mesh {
	x, y, z := w/2, h/2, l/2
	apex := mgl32.Vec3{0, y, 0}
	base := [4]mgl32.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}
	var m Mesh
	for i := range base {
		a, b := base[i], base[(i+1)%len(base)]
		n := b.Sub(a).Cross(apex.Sub(a)).Normalize()
		// Orient every face normal away from the centre.
		if n.Dot(a.Add(b).Add(apex)) < 0 {
			n = n.Mul(-1)
		}
		m.tri(a, b, apex, n)
	}
	m.quad(base[3], base[2], base[1], base[0], mgl32.Vec3{0, -1, 0})
	return m
}

// profilePoint is a point of a 2D outline in the (radius, height) plane
// with its outline normal.
type profilePoint struct {
	R, Y   float32
	NR, NY float32
}

// lathe revolves a profile around the Y axis.
func lathe(profile []profilePoint, slices int) Mesh {
	var m Mesh
	if len(profile) < 2 || slices < 3 {
		return m
	}
	cosA := make([]float32, slices+1)
	sinA := make([]float32, slices+1)
	for j := 0; j <= slices; j++ {
		a := 2 * math.Pi * float64(j) / float64(slices)
		cosA[j] = float32(math.Cos(a))
		sinA[j] = float32(math.Sin(a))
	}
	vert := func(p profilePoint, j int) (mgl32.Vec3, mgl32.Vec3) {
		return mgl32.Vec3{p.R * cosA[j], p.Y, p.R * sinA[j]},
			mgl32.Vec3{p.NR * cosA[j], p.NY, p.NR * sinA[j]}
	}
	for i := 0; i+1 < len(profile); i++ {
		p0, p1 := profile[i], profile[i+1]
		if p0.R == p1.R && p0.Y == p1.Y {
			continue // normal seam
		}
		for j := 0; j < slices; j++ {
			a, na := vert(p0, j)
			b, nb := vert(p0, j+1)
			c, nc := vert(p1, j+1)
			d, nd := vert(p1, j)
			m.add(a, na)
			m.add(b, nb)
			m.add(c, nc)
			m.add(a, na)
			m.add(c, nc)
			m.add(d, nd)
		}
	}
	return m
}

// sphereProfile is a half circle of radius r centred at (cr, cy), from the
// bottom pole to the top pole.
func sphereProfile(r, cr, cy float32, stacks int) []profilePoint {
	return arcProfile(r, cr, cy, -math.Pi/2, math.Pi/2, stacks)
}

func arcProfile(r, cr, cy float32, from, to float64, steps int) []profilePoint {
	out := make([]profilePoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		out = append(out, profilePoint{R: cr + r*c, Y: cy + r*s, NR: c, NY: s})
	}
	return out
}

func torusProfile(ring, pipe float32) []profilePoint {
	return arcProfile(pipe, ring, 0, -math.Pi, math.Pi, meshSlices)
}

// capsuleProfile joins two hemispheres with a straight side. height is the
// total height including the caps.
func capsuleProfile(capR, height float32) []profilePoint {
	half := height/2 - capR
	if half < 0 {
		half = 0
	}
	lower := arcProfile(capR, 0, -half, -math.Pi/2, 0, meshStacks/2)
	upper := arcProfile(capR, 0, half, 0, math.Pi/2, meshStacks/2)
	return append(lower, upper...)
}

// frustumProfile covers cylinders and cones: bottom cap, slanted side, top cap.
func frustumProfile(top, bottom, h float32) []profilePoint {
	y := h / 2
	side := mgl32.Vec2{h, bottom - top}.Normalize()
	return []profilePoint{
		{R: 0, Y: -y, NR: 0, NY: -1},
		{R: bottom, Y: -y, NR: 0, NY: -1},
		{R: bottom, Y: -y, NR: side[0], NY: side[1]},
		{R: top, Y: y, NR: side[0], NY: side[1]},
		{R: top, Y: y, NR: 0, NY: 1},
		{R: 0, Y: y, NR: 0, NY: 1},
	}
}

// tubeProfile is a closed ring: outer wall, top rim, inner wall, bottom rim.
func tubeProfile(inner, outer, h float32) []profilePoint {
	y := h / 2
	return []profilePoint{
		{R: outer, Y: -y, NR: 1, NY: 0},
		{R: outer, Y: y, NR: 1, NY: 0},
		{R: outer, Y: y, NR: 0, NY: 1},
		{R: inner, Y: y, NR: 0, NY: 1},
		{R: inner, Y: y, NR: -1, NY: 0},
		{R: inner, Y: -y, NR: -1, NY: 0},
		{R: inner, Y: -y, NR: 0, NY: -1},
		{R: outer, Y: -y, NR: 0, NY: -1},
	}
}

func f32(v float64) float32 { return float32(v) }

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }
