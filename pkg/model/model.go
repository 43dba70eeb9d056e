// Package model defines elements and their solid-operation representations.
// An element owns an ordered set of solid operations; the resolver turns
// that representation into packed mesh buffers. Elements expose optional
// capabilities through small interfaces probed by the resolver in fixed
// priority order instead of concrete-type branching.
package model

import (
	"fmt"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/mesh"
)

// OpKind distinguishes additive material from subtractive voids.
type OpKind int

const (
	OpAdd OpKind = iota
	OpSubtract
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	default:
		return "unknown"
	}
}

// SolidOp is one solid operation: a shape, its local placement, and
// whether it adds or removes material. Immutable from the pipeline's view.
type SolidOp struct {
	Solid     brep.Solid
	Transform geom.Transform
	Kind      OpKind
}

// Representation is an element's ordered sequence of solid operations.
// SkipUnion disables boolean evaluation for the element: each operation is
// tessellated independently and subtractive operations are ignored
// entirely; they never remove material on that path.
type Representation struct {
	Ops       []SolidOp
	SkipUnion bool
}

// Validate checks that the representation is well-formed: at least one
// operation, no nil solids, and a leading additive operation (a void with
// nothing to cut from is a modeling error).
func (r *Representation) Validate() error {
	if r == nil || len(r.Ops) == 0 {
		return fmt.Errorf("model: representation has no operations")
	}
	for i, op := range r.Ops {
		if op.Solid == nil {
			return fmt.Errorf("model: operation %d has no solid", i)
		}
	}
	if r.Ops[0].Kind != OpAdd {
		return fmt.Errorf("model: first operation must be additive, got %s", r.Ops[0].Kind)
	}
	return nil
}

// Element is the minimal surface every resolvable element provides.
// A nil representation means the element has no solid-operation shape.
type Element interface {
	Name() string
	Representation() *Representation
}

// DirectExporter is the capability of elements that carry precomputed
// buffers. When present and willing (ok=true), the resolver returns the
// buffers verbatim and never tessellates.
type DirectExporter interface {
	ExportBuffers() (buffers []*mesh.Buffer, id string, mode mesh.DrawMode, ok bool)
}

// MeshProducer is the last-resort capability of procedural elements with
// no solid-operation structure: they populate a mesh directly.
type MeshProducer interface {
	ProduceMesh() *mesh.Buffer
}

// Attributed is the capability of elements that customize vertex
// attributes during packing.
type Attributed interface {
	AttributeHook() mesh.AttrFunc
}

// Recomputable is the capability of elements whose geometry caches can be
// rebuilt in place. Recomputation is idempotent.
type Recomputable interface {
	RecomputeGeometry(u Unioner)
}

// SolidCached is the capability of elements that own a combined-solid
// cache. A nil result means the boolean path is not applicable.
type SolidCached interface {
	CombinedSolid(u Unioner) brep.Solid
}

// Unioner evaluates the boolean combination of a representation's
// operations into one solid, honoring each operation's transform and
// add/subtract kind. Decline or failure is reported as an error; callers
// treat it as absence and fall through to another strategy.
type Unioner interface {
	Union(rep *Representation) (brep.Solid, error)
}
