package mesh

import (
	"testing"

	"github.com/chazu/tenon/pkg/geom"
)

func rawAt(x, y, z float64, solid, face int) RawVertex {
	return RawVertex{
		Position:   geom.Vec3{X: x, Y: y, Z: z},
		SolidIndex: solid,
		FaceIndex:  face,
	}
}

func TestPackerDedupSameSolid(t *testing.T) {
	p := NewPacker(nil)

	// Same position emitted by two faces of the same solid: one slot.
	a := p.Add(rawAt(1, 2, 3, 0, 0))
	b := p.Add(rawAt(1, 2, 3, 0, 5))

	if a != b {
		t.Errorf("slots differ: %d vs %d", a, b)
	}
	if got := p.Finish().VertexCount(); got != 1 {
		t.Errorf("vertex count = %d, want 1", got)
	}
}

func TestPackerNoDedupAcrossSolids(t *testing.T) {
	p := NewPacker(nil)

	a := p.Add(rawAt(1, 2, 3, 0, 0))
	b := p.Add(rawAt(1, 2, 3, 1, 0))

	if a == b {
		t.Error("vertices from different solids must not share a slot")
	}
	if got := p.Finish().VertexCount(); got != 2 {
		t.Errorf("vertex count = %d, want 2", got)
	}
}

func TestPackerUntaggedDedup(t *testing.T) {
	p := NewPacker(nil)

	a := p.Add(rawAt(0.5, 0.5, 0.5, UntaggedSolid, 3))
	b := p.Add(rawAt(0.5, 0.5, 0.5, UntaggedSolid, 9))

	if a != b {
		t.Error("untagged coincident positions must share a slot")
	}
}

func TestPackerHookPerRawVertex(t *testing.T) {
	calls := 0
	hook := func(rv RawVertex) Attributes {
		calls++
		return Attributes{}
	}
	p := NewPacker(hook)

	p.Add(rawAt(0, 0, 0, 0, 0))
	p.Add(rawAt(0, 0, 0, 0, 1)) // dedups, hook still fires
	p.Add(rawAt(1, 0, 0, 0, 1))

	if calls != 3 {
		t.Errorf("hook fired %d times, want 3", calls)
	}
}

func TestPackerFirstWriterWins(t *testing.T) {
	hook := func(rv RawVertex) Attributes {
		return Attributes{
			Color:    [4]float32{float32(rv.FaceIndex), 0, 0, 1},
			HasColor: true,
		}
	}
	p := NewPacker(hook)

	p.Add(rawAt(0, 0, 0, 0, 7))
	p.Add(rawAt(0, 0, 0, 0, 9)) // dedups; its attributes are discarded

	buf := p.Finish()
	if buf.VertexCount() != 1 {
		t.Fatalf("vertex count = %d, want 1", buf.VertexCount())
	}
	if buf.Colors[0] != 7 {
		t.Errorf("color = %v, want first writer's 7", buf.Colors[0])
	}
}

func TestPackerFinishEmpty(t *testing.T) {
	p := NewPacker(nil)
	if buf := p.Finish(); buf != nil {
		t.Errorf("Finish on empty packer = %+v, want nil", buf)
	}
}

func TestPackerDropsCollapsedTriangles(t *testing.T) {
	p := NewPacker(nil)
	a := p.Add(rawAt(0, 0, 0, 0, 0))
	b := p.Add(rawAt(1, 0, 0, 0, 0))
	c := p.Add(rawAt(0, 1, 0, 0, 0))

	p.Triangle(a, a, b) // collapsed
	p.Triangle(a, b, c)

	buf := p.Finish()
	if got := buf.TriangleCount(); got != 1 {
		t.Errorf("triangle count = %d, want 1", got)
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestPackerDropsUnusedAttributeArrays(t *testing.T) {
	p := NewPacker(nil)
	p.Add(RawVertex{Position: geom.Vec3{X: 1}, Normal: geom.Vec3{Z: 1}, HasNormal: true})

	buf := p.Finish()
	if buf.UVs != nil {
		t.Error("UVs should be dropped when no vertex carries them")
	}
	if buf.Colors != nil {
		t.Error("Colors should be dropped when no vertex carries them")
	}
	if len(buf.Normals) != 3 {
		t.Errorf("normals length = %d, want 3", len(buf.Normals))
	}
}

func TestPackerQuantizedCoincidence(t *testing.T) {
	p := NewPacker(nil)

	// Within the quantum the positions count as coincident.
	a := p.Add(rawAt(1, 0, 0, 0, 0))
	b := p.Add(rawAt(1+1e-9, 0, 0, 0, 1))

	if a != b {
		t.Error("positions within the quantum must share a slot")
	}
}
