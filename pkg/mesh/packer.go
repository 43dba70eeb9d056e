package mesh

import (
	"math"

	"github.com/chazu/tenon/pkg/geom"
)

// UntaggedSolid is the SolidIndex of raw vertices that did not come from a
// per-operation tessellation, i.e. the single merged object on the boolean
// path.
const UntaggedSolid = -1

// RawVertex is a single vertex as emitted by face tessellation, before
// attribute resolution and deduplication. SolidIndex and FaceIndex record
// its provenance on the per-operation path.
type RawVertex struct {
	Position geom.Vec3
	Normal   geom.Vec3
	UV       [2]float32

	HasNormal bool
	HasUV     bool

	SolidIndex int
	FaceIndex  int
}

// Attributes are the final stored attribute values for one vertex.
type Attributes struct {
	Normal geom.Vec3
	UV     [2]float32
	Color  [4]float32

	HasNormal bool
	HasUV     bool
	HasColor  bool
}

// AttrFunc computes the final attributes for a raw vertex. It is invoked
// exactly once per raw emission, before the dedup lookup, and must not
// touch packing state; it may only derive values from its inputs.
type AttrFunc func(RawVertex) Attributes

// quantum is the position grid used for dedup keys. Coordinates within the
// same quantum cell count as coincident.
const quantum = 1e-6

// vertexKey identifies a packed vertex: provenance solid plus quantized
// position. Face index is deliberately absent so adjacent faces of one
// solid share edge vertices.
type vertexKey struct {
	solid   int
	x, y, z int64
}

func keyOf(rv RawVertex) vertexKey {
	return vertexKey{
		solid: rv.SolidIndex,
		x:     int64(math.Round(rv.Position.X / quantum)),
		y:     int64(math.Round(rv.Position.Y / quantum)),
		z:     int64(math.Round(rv.Position.Z / quantum)),
	}
}

// Packer accumulates raw vertices into a deduplicated Buffer. It is scoped
// to a single resolution call and is not safe for concurrent use.
type Packer struct {
	buf    Buffer
	lookup map[vertexKey]uint32
	hook   AttrFunc

	hasUV    bool
	hasColor bool
	raw      int
}

// NewPacker creates a packer. The hook may be nil; when present it is
// passed explicitly here rather than reached through the owning element.
func NewPacker(hook AttrFunc) *Packer {
	return &Packer{
		lookup: make(map[vertexKey]uint32),
		hook:   hook,
	}
}

// Add packs one raw vertex and returns its buffer slot. A vertex whose
// identity matches an already-packed one is reused; its freshly computed
// attributes are discarded (first writer wins).
func (p *Packer) Add(rv RawVertex) uint32 {
	p.raw++

	// The hook fires for every raw vertex, dedup or not.
	var attrs Attributes
	if p.hook != nil {
		attrs = p.hook(rv)
	} else {
		attrs = Attributes{
			Normal:    rv.Normal,
			UV:        rv.UV,
			HasNormal: rv.HasNormal,
			HasUV:     rv.HasUV,
		}
	}

	k := keyOf(rv)
	if slot, ok := p.lookup[k]; ok {
		return slot
	}

	slot := uint32(len(p.buf.Positions) / 3)
	p.buf.Positions = append(p.buf.Positions,
		float32(rv.Position.X), float32(rv.Position.Y), float32(rv.Position.Z))
	p.buf.Normals = append(p.buf.Normals,
		float32(attrs.Normal.X), float32(attrs.Normal.Y), float32(attrs.Normal.Z))
	p.buf.UVs = append(p.buf.UVs, attrs.UV[0], attrs.UV[1])
	p.buf.Colors = append(p.buf.Colors,
		attrs.Color[0], attrs.Color[1], attrs.Color[2], attrs.Color[3])
	if attrs.HasUV {
		p.hasUV = true
	}
	if attrs.HasColor {
		p.hasColor = true
	}

	p.lookup[k] = slot
	return slot
}

// Triangle appends one triangle by buffer slot. Triangles collapsed by
// deduplication (two or more equal corners) are dropped.
func (p *Packer) Triangle(a, b, c uint32) {
	if a == b || b == c || a == c {
		return
	}
	p.buf.Indices = append(p.buf.Indices, a, b, c)
}

// RawCount returns the number of raw vertices added so far.
func (p *Packer) RawCount() int { return p.raw }

// Finish returns the packed buffer, or nil if no vertices were packed:
// "no geometry" is a nil buffer, never a present empty one. Attribute
// arrays that no vertex populated are dropped.
func (p *Packer) Finish() *Buffer {
	if len(p.buf.Positions) == 0 {
		return nil
	}
	b := p.buf
	if !p.hasUV {
		b.UVs = nil
	}
	if !p.hasColor {
		b.Colors = nil
	}
	return &b
}
