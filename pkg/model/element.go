package model

import (
	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/mesh"
)

// SolidElement is the standard element: a named representation plus the
// element-owned combined-solid and bounds caches. The caches carry an
// explicit version counter; Invalidate bumps it and the next recompute or
// cache read rebuilds. A SolidElement must not be resolved concurrently
// with itself; the caches mutate in place.
type SolidElement struct {
	name string
	rep  *Representation
	hook mesh.AttrFunc

	version      uint64
	builtVersion uint64
	combined     brep.Solid

	bounds        geom.Box
	boundsVersion uint64
}

// Compile-time capability checks.
var (
	_ Element      = (*SolidElement)(nil)
	_ Attributed   = (*SolidElement)(nil)
	_ Recomputable = (*SolidElement)(nil)
	_ SolidCached  = (*SolidElement)(nil)
)

// NewSolidElement creates an element with the given representation.
// The representation may be nil.
func NewSolidElement(name string, rep *Representation) *SolidElement {
	return &SolidElement{name: name, rep: rep, version: 1}
}

func (e *SolidElement) Name() string { return e.name }

func (e *SolidElement) Representation() *Representation { return e.rep }

// SetRepresentation replaces the representation and invalidates caches.
func (e *SolidElement) SetRepresentation(rep *Representation) {
	e.rep = rep
	e.Invalidate()
}

// SetAttributeHook installs the per-vertex attribute callback.
func (e *SolidElement) SetAttributeHook(hook mesh.AttrFunc) { e.hook = hook }

func (e *SolidElement) AttributeHook() mesh.AttrFunc { return e.hook }

// Invalidate marks the combined-solid and bounds caches stale. Upstream
// geometry edits call this; the caches rebuild on next demand.
func (e *SolidElement) Invalidate() {
	e.version++
	e.combined = nil
}

// CombinedSolid returns the cached union of all operations, rebuilding it
// through u when stale. It returns nil when the boolean path is not
// applicable: no representation, union skipped by policy, no unioner, or
// the unioner declined.
func (e *SolidElement) CombinedSolid(u Unioner) brep.Solid {
	if e.rep == nil || len(e.rep.Ops) == 0 || e.rep.SkipUnion {
		return nil
	}
	if e.combined != nil && e.builtVersion == e.version {
		return e.combined
	}
	if u == nil {
		return nil
	}
	s, err := u.Union(e.rep)
	if err != nil || s == nil {
		return nil
	}
	e.combined = s
	e.builtVersion = e.version
	return s
}

// RecomputeGeometry forces the bounds and combined-solid caches to
// rebuild. Calling it twice in a row does no extra work the second time
// beyond the rebuild itself.
func (e *SolidElement) RecomputeGeometry(u Unioner) {
	e.combined = nil
	e.builtVersion = 0
	e.boundsVersion = 0
	e.recomputeBounds()
	e.CombinedSolid(u)
}

// Bounds returns the axis-aligned bounds of the element's additive
// operations. ok is false when the element has no additive geometry.
// Subtractive operations do not contribute: they produce no material, so
// they are excluded from bounds as well.
func (e *SolidElement) Bounds() (box geom.Box, ok bool) {
	if e.boundsVersion != e.version {
		e.recomputeBounds()
	}
	if e.boundsVersion != e.version {
		return geom.Box{}, false
	}
	return e.bounds, true
}

func (e *SolidElement) recomputeBounds() {
	if e.rep == nil {
		return
	}
	var box geom.Box
	first := true
	for _, op := range e.rep.Ops {
		if op.Kind != OpAdd || op.Solid == nil {
			continue
		}
		b := op.Transform.ApplyBox(op.Solid.BoundingBox())
		if first {
			box = b
			first = false
		} else {
			box = box.Union(b)
		}
	}
	if first {
		return
	}
	e.bounds = box
	e.boundsVersion = e.version
}
