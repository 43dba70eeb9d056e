// Package brep defines boundary-represented solids: opaque shapes that
// expose a set of planar faces, each with a boundary contour. Solids are
// read-only to the rest of the pipeline; tessellation and boolean
// evaluation consume them without mutation.
package brep

import "github.com/chazu/tenon/pkg/geom"

// Face is one planar face of a solid. The contour is the outer boundary
// loop, wound counter-clockwise when viewed from outside the solid.
type Face interface {
	Contour() []geom.Vec3
}

// Solid is an opaque boundary-represented shape.
type Solid interface {
	Faces() []Face
	BoundingBox() geom.Box
}

// polyFace is the concrete face used by Polyhedron.
type polyFace struct {
	pts []geom.Vec3
}

func (f *polyFace) Contour() []geom.Vec3 { return f.pts }

// Polyhedron is a solid assembled from arbitrary planar faces. It is the
// general-purpose Solid used for triangle soups returned by boolean
// evaluation as well as the face shells of the analytic primitives.
type Polyhedron struct {
	faces []Face
	box   geom.Box
	dirty bool
}

// NewPolyhedron returns an empty polyhedron.
func NewPolyhedron() *Polyhedron {
	return &Polyhedron{}
}

// FromTriangles builds a polyhedron whose faces are the given triangles.
func FromTriangles(tris [][3]geom.Vec3) *Polyhedron {
	p := NewPolyhedron()
	for _, t := range tris {
		p.AddFace(t[0], t[1], t[2])
	}
	return p
}

// AddFace appends a planar face with the given boundary contour.
// Contours with fewer than 3 points are ignored.
func (p *Polyhedron) AddFace(contour ...geom.Vec3) {
	if len(contour) < 3 {
		return
	}
	pts := make([]geom.Vec3, len(contour))
	copy(pts, contour)
	p.faces = append(p.faces, &polyFace{pts: pts})
	p.dirty = true
}

// Faces returns the face set in insertion order.
func (p *Polyhedron) Faces() []Face { return p.faces }

// BoundingBox returns the axis-aligned bounds of all face contours.
func (p *Polyhedron) BoundingBox() geom.Box {
	if p.dirty {
		var pts []geom.Vec3
		for _, f := range p.faces {
			pts = append(pts, f.Contour()...)
		}
		p.box = geom.BoxOf(pts...)
		p.dirty = false
	}
	return p.box
}
