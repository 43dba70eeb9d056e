package resolve_test

import (
	"fmt"
	"testing"

	"github.com/chazu/tenon/pkg/brep"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/model"
	"github.com/chazu/tenon/pkg/resolve"
)

// fakeUnioner returns a fixed solid, or an error when declining.
type fakeUnioner struct {
	solid brep.Solid
	err   error
	calls int
}

func (u *fakeUnioner) Union(rep *model.Representation) (brep.Solid, error) {
	u.calls++
	return u.solid, u.err
}

// bareElement has only the mandatory element surface.
type bareElement struct {
	name string
	rep  *model.Representation
}

func (e *bareElement) Name() string                          { return e.name }
func (e *bareElement) Representation() *model.Representation { return e.rep }

// directElement additionally carries precomputed buffers.
type directElement struct {
	bareElement
	buffers []*mesh.Buffer
}

func (e *directElement) ExportBuffers() ([]*mesh.Buffer, string, mesh.DrawMode, bool) {
	return e.buffers, e.name, mesh.ModeLines, true
}

// producerElement supports the generic mesh fallback.
type producerElement struct {
	bareElement
	buf *mesh.Buffer
}

func (e *producerElement) ProduceMesh() *mesh.Buffer { return e.buf }

func cubeRep(skip bool) *model.Representation {
	return &model.Representation{
		Ops: []model.SolidOp{
			{Solid: brep.NewBox(1, 1, 1), Kind: model.OpAdd},
		},
		SkipUnion: skip,
	}
}

func TestNoGeometry(t *testing.T) {
	// Null representation, no capabilities: the explicit no-geometry
	// outcome, mode unset, and no error.
	r := resolve.New(nil)
	res, err := r.Resolve(&bareElement{name: "empty"}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Empty() {
		t.Error("expected empty result")
	}
	if res.Mode != mesh.ModeUnset {
		t.Errorf("mode = %s, want unset", res.Mode)
	}
}

func TestDirectExportWins(t *testing.T) {
	// Direct export takes priority even when a representation exists;
	// tessellation and union must never be consulted.
	u := &fakeUnioner{solid: brep.NewBox(1, 1, 1)}
	el := &directElement{
		bareElement: bareElement{name: "direct", rep: cubeRep(false)},
		buffers: []*mesh.Buffer{
			{Positions: []float32{0, 0, 0}, Name: "precomputed"},
		},
	}

	r := resolve.New(u)
	res, err := r.Resolve(el, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Empty() {
		t.Fatal("expected direct buffers")
	}
	if res.Mode != mesh.ModeLines {
		t.Errorf("mode = %s, want the element's own mode", res.Mode)
	}
	if res.Buffers[0].Name != "precomputed" {
		t.Error("buffers were not passed through verbatim")
	}
	if u.calls != 0 {
		t.Errorf("unioner consulted %d times, want 0", u.calls)
	}
}

func TestFastPath(t *testing.T) {
	r := resolve.New(nil)
	res, err := r.Resolve(&bareElement{name: "cube", rep: cubeRep(true)}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Buffers) != 1 {
		t.Fatalf("buffer count = %d, want 1", len(res.Buffers))
	}
	if res.Mode != mesh.ModeTriangles {
		t.Errorf("mode = %s, want triangles", res.Mode)
	}
	buf := res.Buffers[0]
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if buf.TriangleCount() != 12 {
		t.Errorf("triangle count = %d, want 12", buf.TriangleCount())
	}
	if buf.Name != "cube" {
		t.Errorf("buffer name = %q, want element name", buf.Name)
	}
}

func TestUnionPath(t *testing.T) {
	// The combined solid from the unioner is tessellated once. The fake
	// union of two overlapping cubes is their outer shell: fewer
	// triangles than the two cubes tessellated independently.
	u := &fakeUnioner{solid: brep.NewBox(1.5, 1, 1)}
	rep := &model.Representation{
		Ops: []model.SolidOp{
			{Solid: brep.NewBox(1, 1, 1), Kind: model.OpAdd},
			{Solid: brep.NewBox(1, 1, 1), Transform: geom.Translate(0.5, 0, 0), Kind: model.OpAdd},
		},
	}

	r := resolve.New(u)
	res, err := r.Resolve(&bareElement{name: "joined", rep: rep}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(res.Buffers) != 1 {
		t.Fatalf("buffer count = %d, want 1", len(res.Buffers))
	}
	if got := res.Buffers[0].TriangleCount(); got >= 24 {
		t.Errorf("triangle count = %d, want fewer than two independent cubes", got)
	}
	if u.calls != 1 {
		t.Errorf("unioner consulted %d times, want 1", u.calls)
	}
}

func TestUnionUnavailableFallsThrough(t *testing.T) {
	// Union decline is absence, not an error; the resolver probes the
	// generic producer next.
	u := &fakeUnioner{err: fmt.Errorf("no signed distance form")}
	el := &producerElement{
		bareElement: bareElement{name: "fallback", rep: cubeRep(false)},
		buf: &mesh.Buffer{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Indices:   []uint32{0, 1, 2},
		},
	}

	r := resolve.New(u)
	res, err := r.Resolve(el, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Empty() {
		t.Fatal("expected producer fallback geometry")
	}
	if res.Buffers[0].TriangleCount() != 1 {
		t.Error("expected the produced mesh")
	}
}

func TestEmptyPackingCollapses(t *testing.T) {
	// Faceless solids emit nothing: explicit no-geometry, not an empty
	// buffer, even though a representation exists.
	rep := &model.Representation{
		Ops:       []model.SolidOp{{Solid: brep.NewPolyhedron(), Kind: model.OpAdd}},
		SkipUnion: true,
	}
	r := resolve.New(nil)
	res, err := r.Resolve(&bareElement{name: "hollow", rep: rep}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Empty() {
		t.Errorf("expected empty result, got %d buffers", len(res.Buffers))
	}
	if res.Mode != mesh.ModeUnset {
		t.Errorf("mode = %s, want unset", res.Mode)
	}
}

func TestSolidElementCacheUsed(t *testing.T) {
	u := &fakeUnioner{solid: brep.NewBox(1, 1, 1)}
	el := model.NewSolidElement("cached", cubeRep(false))
	r := resolve.New(u)

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(el, false)
		if err != nil {
			t.Fatalf("Resolve #%d: %v", i, err)
		}
		if res.Empty() {
			t.Fatalf("Resolve #%d: expected geometry", i)
		}
	}
	// The element-owned cache keeps the union from re-running.
	if u.calls != 1 {
		t.Errorf("unioner consulted %d times, want 1", u.calls)
	}

	el.Invalidate()
	if _, err := r.Resolve(el, false); err != nil {
		t.Fatalf("Resolve after invalidate: %v", err)
	}
	if u.calls != 2 {
		t.Errorf("unioner consulted %d times after invalidate, want 2", u.calls)
	}
}

func TestRecomputeForcesRebuild(t *testing.T) {
	u := &fakeUnioner{solid: brep.NewBox(1, 1, 1)}
	el := model.NewSolidElement("forced", cubeRep(false))
	r := resolve.New(u)

	if _, err := r.Resolve(el, false); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(el, true); err != nil {
		t.Fatal(err)
	}
	if u.calls != 2 {
		t.Errorf("unioner consulted %d times, want 2 (recompute rebuilds)", u.calls)
	}
}

func TestAttributeHookThreaded(t *testing.T) {
	el := model.NewSolidElement("hooked", cubeRep(true))
	calls := 0
	el.SetAttributeHook(func(rv mesh.RawVertex) mesh.Attributes {
		calls++
		return mesh.Attributes{Normal: rv.Normal, HasNormal: rv.HasNormal}
	})

	r := resolve.New(nil)
	if _, err := r.Resolve(el, false); err != nil {
		t.Fatal(err)
	}
	// 6 faces x 4 contour points, every raw emission.
	if calls != 24 {
		t.Errorf("hook fired %d times, want 24", calls)
	}
}

func TestNilElement(t *testing.T) {
	r := resolve.New(nil)
	res, err := r.Resolve(nil, false)
	if err != nil {
		t.Fatalf("Resolve(nil): %v", err)
	}
	if !res.Empty() {
		t.Error("expected empty result for nil element")
	}
}
