// Package tessellate converts boundary-represented solids into packed
// mesh buffers. It implements the two production strategies: per-operation
// tessellation that skips boolean evaluation, and single-solid
// tessellation of an already-combined object.
package tessellate

import (
	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/model"
)

// degenerateArea is the Newell-normal length below which a face contour is
// treated as zero-area and skipped.
const degenerateArea = 1e-12

// Face emits one face's boundary contour into the packer as tagged raw
// vertices and fan-triangulates it. Malformed or zero-area contours are
// skipped silently; they never fail the element.
func Face(p *mesh.Packer, f brep.Face, solidIdx, faceIdx int, xf geom.Transform) {
	contour := f.Contour()
	if len(contour) < 3 {
		return
	}

	pts := make([]geom.Vec3, len(contour))
	for i, c := range contour {
		pts[i] = xf.Apply(c)
	}

	n := geom.PolygonNormal(pts)
	if n.Length() < degenerateArea {
		return
	}
	n = n.Normalize()

	slots := make([]uint32, len(pts))
	for i, pt := range pts {
		slots[i] = p.Add(mesh.RawVertex{
			Position:   pt,
			Normal:     n,
			HasNormal:  true,
			SolidIndex: solidIdx,
			FaceIndex:  faceIdx,
		})
	}

	// Contours are convex boundary loops; a fan from the first point
	// triangulates them.
	for i := 1; i+1 < len(slots); i++ {
		p.Triangle(slots[0], slots[i], slots[i+1])
	}
}

// Solid emits every face of a solid, assigning face indices in face-set
// order.
func Solid(p *mesh.Packer, s brep.Solid, solidIdx int, xf geom.Transform) {
	for faceIdx, f := range s.Faces() {
		Face(p, f, solidIdx, faceIdx, xf)
	}
}

// Operations tessellates each operation of a representation independently
// into one shared buffer, without boolean evaluation. Solid indices follow
// representation order (0..N-1), stable within the call, so vertices never
// deduplicate across operations. Subtractive operations are ignored
// entirely on this path. Returns nil when nothing was emitted.
func Operations(rep *model.Representation, hook mesh.AttrFunc) *mesh.Buffer {
	if rep == nil {
		return nil
	}
	p := mesh.NewPacker(hook)
	for i, op := range rep.Ops {
		if op.Kind != model.OpAdd || op.Solid == nil {
			continue
		}
		Solid(p, op.Solid, i, op.Transform)
	}
	return p.Finish()
}

// Combined tessellates a single combined solid. Vertices are untagged;
// coincident positions anywhere on the merged object share one slot.
// Returns nil when nothing was emitted.
func Combined(s brep.Solid, hook mesh.AttrFunc) *mesh.Buffer {
	if s == nil {
		return nil
	}
	p := mesh.NewPacker(hook)
	for faceIdx, f := range s.Faces() {
		Face(p, f, mesh.UntaggedSolid, faceIdx, geom.Transform{})
	}
	return p.Finish()
}
