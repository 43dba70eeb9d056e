// Package resolve turns an element's solid-geometry description into
// render-ready packed buffers. The resolver arbitrates between the
// available production strategies in fixed priority order: direct export,
// the solid-operation representation (boolean or per-operation), and a
// generic mesh-producer fallback.
package resolve

import (
	"go.uber.org/zap"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/model"
	"github.com/chazu/tenon/pkg/tessellate"
)

// Result is the outcome of resolving one element: an ordered list of
// packed buffers plus the primitive draw mode. The zero Result means "no
// geometry"; Mode stays ModeUnset in that case.
type Result struct {
	Buffers []*mesh.Buffer
	Mode    mesh.DrawMode
	Name    string
}

// Empty reports whether the result carries no geometry.
func (r Result) Empty() bool { return len(r.Buffers) == 0 }

// Resolver resolves elements into packed buffers. A single Resolver may
// serve many elements; each Resolve call owns its own packing state.
// Concurrent calls against the same element instance are unsafe because
// the element's caches mutate in place.
type Resolver struct {
	unioner model.Unioner
	log     *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger installs a logger for strategy-decision debug lines.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a resolver. The unioner may be nil, in which case the
// boolean path is unavailable and affected elements fall through to the
// next strategy.
func New(u model.Unioner, opts ...Option) *Resolver {
	r := &Resolver{unioner: u, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the element's packed buffers. Strategies are probed in
// priority order; declining every path is not an error and yields an
// empty Result. When recompute is set, the element's representation-derived
// caches (bounds, combined solid) are rebuilt first; recomputation is
// idempotent.
//
// A panic raised by a caller-supplied attribute hook propagates: it
// originates in caller code and is neither retried nor suppressed here.
func (r *Resolver) Resolve(el model.Element, recompute bool) (Result, error) {
	if el == nil {
		return Result{}, nil
	}

	if recompute {
		if rc, ok := el.(model.Recomputable); ok {
			rc.RecomputeGeometry(r.unioner)
		}
	}

	// 1. Direct export: precomputed buffers pass through verbatim.
	if de, ok := el.(model.DirectExporter); ok {
		if bufs, id, mode, ok := de.ExportBuffers(); ok {
			r.log.Debug("resolve: direct export",
				zap.String("element", el.Name()),
				zap.Int("buffers", len(bufs)))
			return Result{Buffers: bufs, Mode: mode, Name: id}, nil
		}
	}

	// 2. Solid-operation representation.
	if rep := el.Representation(); rep != nil && len(rep.Ops) > 0 {
		hook := attributeHook(el)

		if rep.SkipUnion {
			// Per-operation path: no boolean evaluation, voids ignored.
			buf := tessellate.Operations(rep, hook)
			r.log.Debug("resolve: per-operation tessellation",
				zap.String("element", el.Name()),
				zap.Int("operations", len(rep.Ops)),
				zap.Bool("emitted", buf != nil))
			return r.single(el, buf), nil
		}

		if cs := r.combinedSolid(el, rep); cs != nil {
			buf := tessellate.Combined(cs, hook)
			r.log.Debug("resolve: combined-solid tessellation",
				zap.String("element", el.Name()),
				zap.Bool("emitted", buf != nil))
			return r.single(el, buf), nil
		}
		// Union unavailable: not an error, try the next strategy.
		r.log.Debug("resolve: union unavailable", zap.String("element", el.Name()))
	}

	// 3. Generic mesh producer, for procedural elements.
	if mp, ok := el.(model.MeshProducer); ok {
		if buf := mp.ProduceMesh(); buf != nil && !buf.IsEmpty() {
			r.log.Debug("resolve: produced mesh",
				zap.String("element", el.Name()),
				zap.Int("vertices", buf.VertexCount()))
			return r.single(el, buf), nil
		}
	}

	// 4. No strategy applied.
	return Result{}, nil
}

// single wraps one tessellated buffer into a triangle Result, collapsing
// a nil buffer to the explicit no-geometry outcome.
func (r *Resolver) single(el model.Element, buf *mesh.Buffer) Result {
	if buf == nil {
		return Result{}
	}
	if buf.Name == "" {
		buf.Name = el.Name()
	}
	return Result{
		Buffers: []*mesh.Buffer{buf},
		Mode:    mesh.ModeTriangles,
		Name:    el.Name(),
	}
}

// combinedSolid fetches the element's combined solid, preferring the
// element-owned cache. Union decline or failure surfaces as nil.
func (r *Resolver) combinedSolid(el model.Element, rep *model.Representation) brep.Solid {
	if sc, ok := el.(model.SolidCached); ok {
		return sc.CombinedSolid(r.unioner)
	}
	if r.unioner == nil {
		return nil
	}
	s, err := r.unioner.Union(rep)
	if err != nil {
		r.log.Debug("resolve: union failed",
			zap.String("element", el.Name()), zap.Error(err))
		return nil
	}
	return s
}

func attributeHook(el model.Element) mesh.AttrFunc {
	if a, ok := el.(model.Attributed); ok {
		return a.AttributeHook()
	}
	return nil
}
