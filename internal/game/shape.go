package game

import "math"

// ShapeKind is one of the eight spawnable solids.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapePyramid
	ShapeTorus
	ShapeCapsule
	ShapeCylinder
	ShapeCone
	ShapeTube

	NumShapeKinds = int(ShapeTube) + 1
)

var shapeNames = [NumShapeKinds]string{
	"Box", "Sphere", "Pyramid", "Torus", "Capsule", "Cylinder", "Cone", "Tube",
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= NumShapeKinds {
		return "Unknown"
	}
	return shapeNames[k]
}

// Geometry holds the dimensions of a shape kind. Only the fields relevant
// to the kind are set.
type Geometry struct {
	Width, Height, Length float64

	Radius float64 // sphere, cylinder, capsule cap

	RingRadius, PipeRadius float64 // torus

	TopRadius, BottomRadius float64 // cone

	InnerRadius, OuterRadius float64 // tube
}

var geometries = [NumShapeKinds]Geometry{
	ShapeBox:      {Width: 1, Height: 1, Length: 1},
	ShapeSphere:   {Radius: 0.5},
	ShapePyramid:  {Width: 1, Height: 1, Length: 1},
	ShapeTorus:    {RingRadius: 0.5, PipeRadius: 0.25},
	ShapeCapsule:  {Radius: 0.3, Height: 2.5},
	ShapeCylinder: {Radius: 0.3, Height: 2.5},
	ShapeCone:     {TopRadius: 0.25, BottomRadius: 0.5, Height: 1},
	ShapeTube:     {InnerRadius: 0.25, OuterRadius: 0.5, Height: 1},
}

// Geometry returns the fixed dimensions of k.
func (k ShapeKind) Geometry() Geometry {
	if k < 0 || int(k) >= NumShapeKinds {
		return Geometry{}
	}
	return geometries[k]
}

// BoundingRadius is the radius of the smallest origin-centred sphere
// enclosing the shape.
func (k ShapeKind) BoundingRadius() float64 {
	g := k.Geometry()
	switch k {
	case ShapeBox, ShapePyramid:
		return 0.5 * math.Sqrt(g.Width*g.Width+g.Height*g.Height+g.Length*g.Length)
	case ShapeSphere:
		return g.Radius
	case ShapeTorus:
		return g.RingRadius + g.PipeRadius
	case ShapeCapsule:
		return g.Height / 2
	case ShapeCylinder:
		return math.Hypot(g.Radius, g.Height/2)
	case ShapeCone:
		return math.Hypot(math.Max(g.TopRadius, g.BottomRadius), g.Height/2)
	case ShapeTube:
		return math.Hypot(g.OuterRadius, g.Height/2)
	}
	return 0
}

// SpawnedShape describes a shape about to be handed to the engine.
// Good is false exactly when Color is Black.
type SpawnedShape struct {
	Kind  ShapeKind
	Good  bool
	Color RGB
}

// Tag returns the hit-test tag the engine should attach to the shape.
func (s SpawnedShape) Tag() Tag {
	if s.Good {
		return TagGood
	}
	return TagBad
}
