package scene

import (
	"math"
	"testing"

	"geofighter/internal/game"
)

func TestBuildMeshAllKinds(t *testing.T) {
	for k := 0; k < game.NumShapeKinds; k++ {
		kind := game.ShapeKind(k)
		t.Run(kind.String(), func(t *testing.T) {
			m := BuildMesh(kind)
			if m.VertexCount() == 0 || m.VertexCount()%3 != 0 {
				t.Fatalf("vertex count = %d", m.VertexCount())
			}
			limit := kind.BoundingRadius() + 1e-4
			for i := 0; i < len(m.Vertices); i += MeshStride {
				v := m.Vertices[i : i+MeshStride]
				r := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
				if r > limit {
					t.Fatalf("vertex %d at %.4f outside bounding radius %.4f", i/MeshStride, r, limit)
				}
				n := math.Sqrt(float64(v[3]*v[3] + v[4]*v[4] + v[5]*v[5]))
				if math.Abs(n-1) > 1e-3 {
					t.Fatalf("vertex %d normal length %.4f", i/MeshStride, n)
				}
			}
		})
	}
	if m := BuildMesh(game.ShapeKind(-1)); m.VertexCount() != 0 {
		t.Fatalf("unknown kind produced a mesh")
	}
}

func TestLatheSkipsDegenerateInput(t *testing.T) {
	if m := lathe(nil, 12); m.VertexCount() != 0 {
		t.Fatalf("empty profile produced vertices")
	}
	if m := lathe(frustumProfile(1, 1, 1), 2); m.VertexCount() != 0 {
		t.Fatalf("two slices produced vertices")
	}
}
