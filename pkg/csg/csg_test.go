package csg_test

import (
	"math"
	"testing"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/csg"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/model"
)

// Marching cubes resolution for tests: coarse but fast. Geometry
// assertions below use tolerances sized for this grid.
const testCells = 48

func addBox(x, y, z float64, xf geom.Transform) model.SolidOp {
	return model.SolidOp{Solid: brep.NewBox(x, y, z), Transform: xf, Kind: model.OpAdd}
}

func TestUnionSingleBox(t *testing.T) {
	u := csg.NewWithCells(testCells)
	s, err := u.Union(&model.Representation{
		Ops: []model.SolidOp{addBox(2, 1, 1, geom.Transform{})},
	})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(s.Faces()) == 0 {
		t.Fatal("union produced no faces")
	}

	// The sampled surface tracks the analytic box within a grid cell.
	b := s.BoundingBox()
	tol := 2.0 / float64(testCells) * 2
	assertNear(t, "min x", b.Min.X, 0, tol)
	assertNear(t, "max x", b.Max.X, 2, tol)
	assertNear(t, "max y", b.Max.Y, 1, tol)
	assertNear(t, "max z", b.Max.Z, 1, tol)
}

func TestUnionOverlappingBoxes(t *testing.T) {
	u := csg.NewWithCells(testCells)
	s, err := u.Union(&model.Representation{
		Ops: []model.SolidOp{
			addBox(1, 1, 1, geom.Transform{}),
			addBox(1, 1, 1, geom.Translate(0.5, 0, 0)),
		},
	})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}

	b := s.BoundingBox()
	tol := 1.5 / float64(testCells) * 2
	assertNear(t, "max x", b.Max.X, 1.5, tol)
	assertNear(t, "max y", b.Max.Y, 1, tol)
}

func TestSubtractCutsMaterial(t *testing.T) {
	// A through-hole: the cylinder axis region must end up outside the
	// solid. Verified via the face centroids never landing inside the
	// removed column.
	u := csg.NewWithCells(testCells)
	s, err := u.Union(&model.Representation{
		Ops: []model.SolidOp{
			addBox(2, 2, 1, geom.Transform{}),
			{
				Solid:     brep.NewCylinder(2, 0.4, 32),
				Transform: geom.Translate(1, 1, -0.5),
				Kind:      model.OpSubtract,
			},
		},
	})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}

	// Some surface must now lie inside the original box footprint where
	// the hole wall is.
	wall := false
	for _, f := range s.Faces() {
		c := centroid(f.Contour())
		r := math.Hypot(c.X-1, c.Y-1)
		if r < 0.5 && c.Z > 0.2 && c.Z < 0.8 {
			wall = true
			break
		}
	}
	if !wall {
		t.Error("expected hole-wall surface near the cylinder axis")
	}
}

func TestSubtractBeforeMaterialIgnored(t *testing.T) {
	u := csg.NewWithCells(testCells)
	s, err := u.Union(&model.Representation{
		Ops: []model.SolidOp{
			{Solid: brep.NewBox(1, 1, 1), Kind: model.OpSubtract},
			addBox(1, 1, 1, geom.Transform{}),
		},
	})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	b := s.BoundingBox()
	tol := 1.0 / float64(testCells) * 2
	assertNear(t, "max x", b.Max.X, 1, tol)
}

func TestRotatedBox(t *testing.T) {
	// 45 degrees around Z widens the footprint to sqrt(2).
	u := csg.NewWithCells(testCells)
	s, err := u.Union(&model.Representation{
		Ops: []model.SolidOp{
			addBox(1, 1, 1, geom.Transform{Rotation: geom.Vec3{Z: 45}}),
		},
	})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	b := s.BoundingBox()
	if got := b.Size().X; got < 1.2 {
		t.Errorf("rotated footprint x = %v, want near sqrt(2)", got)
	}
}

func TestUnionDeclines(t *testing.T) {
	u := csg.NewWithCells(testCells)

	tests := []struct {
		name string
		rep  *model.Representation
	}{
		{"nil representation", nil},
		{"no operations", &model.Representation{}},
		{"no additive material", &model.Representation{
			Ops: []model.SolidOp{
				{Solid: brep.NewBox(1, 1, 1), Kind: model.OpSubtract},
			},
		}},
		{"no signed distance form", &model.Representation{
			Ops: []model.SolidOp{
				{Solid: brep.NewPolyhedron(), Kind: model.OpAdd},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := u.Union(tt.rep); err == nil {
				t.Error("expected decline error")
			}
		})
	}
}

func centroid(pts []geom.Vec3) geom.Vec3 {
	var c geom.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts)))
}

func assertNear(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", label, got, want, tol)
	}
}
