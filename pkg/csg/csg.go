// Package csg implements the model.Unioner boolean-evaluation interface
// using the github.com/deadsy/sdfx SDF-based CAD library. Operations are
// mapped to signed distance forms, combined with union/difference, and
// the result is surfaced back into a boundary representation with
// marching cubes.
package csg

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/model"
)

// Compile-time interface check.
var _ model.Unioner = (*Unioner)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Unioner evaluates representation booleans through sdfx.
type Unioner struct {
	cells int
}

// New returns a Unioner at the default marching cubes resolution.
func New() *Unioner {
	return &Unioner{cells: defaultMeshCells}
}

// NewWithCells returns a Unioner with a custom marching cubes cell count.
// Lower counts trade surface fidelity for speed.
func NewWithCells(cells int) *Unioner {
	if cells < 8 {
		cells = 8
	}
	return &Unioner{cells: cells}
}

// Union combines all operations of a representation into one solid,
// honoring each operation's transform and add/subtract kind. A
// representation that cannot be evaluated (no additive material, or a
// solid with no signed distance form) makes the union decline with an
// error; callers treat that as absence.
func (u *Unioner) Union(rep *model.Representation) (brep.Solid, error) {
	if rep == nil || len(rep.Ops) == 0 {
		return nil, fmt.Errorf("csg: empty representation")
	}

	var acc sdf.SDF3
	for i, op := range rep.Ops {
		s, err := toSDF(op.Solid)
		if err != nil {
			return nil, fmt.Errorf("csg: operation %d: %w", i, err)
		}
		s = applyTransform(s, op.Transform)

		switch op.Kind {
		case model.OpAdd:
			if acc == nil {
				acc = s
			} else {
				acc = sdf.Union3D(acc, s)
			}
		case model.OpSubtract:
			// A void before any material has nothing to cut.
			if acc != nil {
				acc = sdf.Difference3D(acc, s)
			}
		default:
			return nil, fmt.Errorf("csg: operation %d: unknown kind %v", i, op.Kind)
		}
	}
	if acc == nil {
		return nil, fmt.Errorf("csg: representation has no additive material")
	}

	renderer := render.NewMarchingCubesUniform(u.cells)
	triangles := render.ToTriangles(acc, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("csg: boolean evaluation produced no surface")
	}

	tris := make([][3]geom.Vec3, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			tris[i][j] = geom.Vec3{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	return brep.FromTriangles(tris), nil
}

// toSDF maps a primitive solid to its signed distance form. Solids built
// face-by-face have none and make the whole union decline.
func toSDF(s brep.Solid) (sdf.SDF3, error) {
	switch v := s.(type) {
	case *brep.Box:
		b, err := sdf.Box3D(v3.Vec{X: v.Dims.X, Y: v.Dims.Y, Z: v.Dims.Z}, 0)
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		// sdf.Box3D centers the box; shift to min-corner-origin.
		m := sdf.Translate3d(v3.Vec{X: v.Dims.X / 2, Y: v.Dims.Y / 2, Z: v.Dims.Z / 2})
		return sdf.Transform3D(b, m), nil

	case *brep.Cylinder:
		c, err := sdf.Cylinder3D(v.Height, v.Radius, 0)
		if err != nil {
			return nil, fmt.Errorf("cylinder: %w", err)
		}
		// sdf.Cylinder3D centers the cylinder; shift base to the origin.
		m := sdf.Translate3d(v3.Vec{Z: v.Height / 2})
		return sdf.Transform3D(c, m), nil

	case *brep.Sphere:
		sp, err := sdf.Sphere3D(v.Radius)
		if err != nil {
			return nil, fmt.Errorf("sphere: %w", err)
		}
		return sp, nil

	default:
		return nil, fmt.Errorf("no signed distance form for %T", s)
	}
}

// applyTransform applies a local placement: rotation around X, Y, Z in
// that order, then translation.
func applyTransform(s sdf.SDF3, t geom.Transform) sdf.SDF3 {
	if t.IsIdentity() {
		return s
	}
	m := sdf.Translate3d(v3.Vec{X: t.Translation.X, Y: t.Translation.Y, Z: t.Translation.Z})
	if t.Rotation != (geom.Vec3{}) {
		rot := sdf.RotateZ(radians(t.Rotation.Z)).
			Mul(sdf.RotateY(radians(t.Rotation.Y))).
			Mul(sdf.RotateX(radians(t.Rotation.X)))
		m = m.Mul(rot)
	}
	return sdf.Transform3D(s, m)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
