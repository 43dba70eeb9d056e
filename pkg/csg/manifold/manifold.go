//go:build manifold

// Package manifold provides a CGo-based boolean-evaluation backend
// binding to the Manifold library (https://github.com/elalish/manifold).
// Manifold provides guaranteed-manifold mesh boolean operations, so the
// surfaced triangles are watertight without a marching cubes pass.
//
// This package requires the Manifold C library (manifoldc) to be
// installed. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/model"
)

// Compile-time interface check.
var _ model.Unioner = (*Unioner)(nil)

// defaultSegments is the circular segment count used when mapping curved
// primitives into Manifold.
const defaultSegments = 32

// solid wraps a C ManifoldManifold pointer with a Go-side finalizer for
// automatic memory management.
type solid struct {
	ptr *C.ManifoldManifold
}

func newSolid(ptr *C.ManifoldManifold) *solid {
	s := &solid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *solid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// Unioner evaluates representation booleans through the Manifold C library.
type Unioner struct{}

// New creates a Manifold-backed Unioner.
func New() (model.Unioner, error) {
	return &Unioner{}, nil
}

// Union combines all operations of a representation into one solid,
// honoring each operation's transform and add/subtract kind.
func (u *Unioner) Union(rep *model.Representation) (brep.Solid, error) {
	if rep == nil || len(rep.Ops) == 0 {
		return nil, fmt.Errorf("manifold: empty representation")
	}

	var acc *solid
	for i, op := range rep.Ops {
		s, err := toManifold(op.Solid)
		if err != nil {
			return nil, fmt.Errorf("manifold: operation %d: %w", i, err)
		}
		s = applyTransform(s, op.Transform)

		switch op.Kind {
		case model.OpAdd:
			if acc == nil {
				acc = s
			} else {
				alloc := C.manifold_alloc_manifold()
				acc = newSolid(C.manifold_union(alloc, acc.ptr, s.ptr))
			}
		case model.OpSubtract:
			if acc != nil {
				alloc := C.manifold_alloc_manifold()
				acc = newSolid(C.manifold_difference(alloc, acc.ptr, s.ptr))
			}
		default:
			return nil, fmt.Errorf("manifold: operation %d: unknown kind %v", i, op.Kind)
		}
	}
	if acc == nil {
		return nil, fmt.Errorf("manifold: representation has no additive material")
	}

	return extract(acc)
}

// toManifold maps a primitive solid into a Manifold object, matching the
// brep placement conventions (box min corner and cylinder base at the
// origin, sphere centered).
func toManifold(s brep.Solid) (*solid, error) {
	switch v := s.(type) {
	case *brep.Box:
		alloc := C.manifold_alloc_manifold()
		return newSolid(C.manifold_cube(alloc,
			C.double(v.Dims.X), C.double(v.Dims.Y), C.double(v.Dims.Z),
			C.int(0), // center=false: min corner at origin
		)), nil

	case *brep.Cylinder:
		alloc := C.manifold_alloc_manifold()
		return newSolid(C.manifold_cylinder(alloc,
			C.double(v.Height),
			C.double(v.Radius), // radius_low
			C.double(v.Radius), // radius_high (same = not tapered)
			C.int(v.Segments),
			C.int(0), // center=false: base at origin
		)), nil

	case *brep.Sphere:
		alloc := C.manifold_alloc_manifold()
		return newSolid(C.manifold_sphere(alloc,
			C.double(v.Radius), C.int(defaultSegments),
		)), nil

	default:
		return nil, fmt.Errorf("no manifold form for %T", s)
	}
}

// applyTransform applies a local placement: rotation around X, Y, Z in
// that order (Manifold takes Euler degrees), then translation.
func applyTransform(s *solid, t geom.Transform) *solid {
	if t.Rotation != (geom.Vec3{}) {
		alloc := C.manifold_alloc_manifold()
		s = newSolid(C.manifold_rotate(alloc, s.ptr,
			C.double(t.Rotation.X), C.double(t.Rotation.Y), C.double(t.Rotation.Z),
		))
	}
	if t.Translation != (geom.Vec3{}) {
		alloc := C.manifold_alloc_manifold()
		s = newSolid(C.manifold_translate(alloc, s.ptr,
			C.double(t.Translation.X), C.double(t.Translation.Y), C.double(t.Translation.Z),
		))
	}
	return s
}

// extract pulls the triangles out of a Manifold object through its MeshGL
// format and rebuilds them as a boundary representation.
func extract(s *solid) (brep.Solid, error) {
	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, s.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return nil, fmt.Errorf("manifold: boolean evaluation produced no surface")
	}

	// MeshGL stores vertex properties in a flat float array with numProp
	// properties per vertex; the first 3 are always position.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	verts := make([]geom.Vec3, numVert)
	for i := range verts {
		base := i * numProp
		verts[i] = geom.Vec3{
			X: float64(propData[base+0]),
			Y: float64(propData[base+1]),
			Z: float64(propData[base+2]),
		}
	}

	tris := make([][3]geom.Vec3, numTri)
	for t := 0; t < numTri; t++ {
		for j := 0; j < 3; j++ {
			tris[t][j] = verts[indices[t*3+j]]
		}
	}
	return brep.FromTriangles(tris), nil
}
