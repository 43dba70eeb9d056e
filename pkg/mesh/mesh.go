// Package mesh defines the packed vertex/index buffers produced by the
// geometry pipeline, and the packer that deduplicates vertices while
// accumulating them.
package mesh

import "fmt"

// DrawMode is the primitive draw mode of a packed buffer.
type DrawMode int

const (
	ModeUnset DrawMode = iota
	ModePoints
	ModeLines
	ModeTriangles
)

func (m DrawMode) String() string {
	switch m {
	case ModePoints:
		return "points"
	case ModeLines:
		return "lines"
	case ModeTriangles:
		return "triangles"
	default:
		return "unset"
	}
}

// Buffer is a deduplicated mesh buffer suitable for rendering or export.
// All arrays are flat and parallel: Positions has 3 floats per vertex,
// Normals 3, UVs 2, Colors 4. Indices reference position slots. Normals
// are always present; UVs and Colors are nil when no vertex carried them.
type Buffer struct {
	Positions []float32 `json:"positions"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals   []float32 `json:"normals"`   // [nx0,ny0,nz0, ...]
	UVs       []float32 `json:"uvs"`       // [u0,v0, ...]
	Colors    []float32 `json:"colors"`    // [r0,g0,b0,a0, ...]
	Indices   []uint32  `json:"indices"`   // [i0,i1,i2, ...] triangles
	Name      string    `json:"name"`      // which element this came from
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// IsEmpty returns true if the buffer has no geometry.
func (b *Buffer) IsEmpty() bool {
	return len(b.Positions) == 0
}

// Validate checks the buffer's structural invariants: parallel attribute
// arrays sized to the vertex count and every index referencing a valid
// position slot.
func (b *Buffer) Validate() error {
	n := b.VertexCount()
	if len(b.Positions) != n*3 {
		return fmt.Errorf("mesh: positions length %d is not a multiple of 3", len(b.Positions))
	}
	if len(b.Normals) != 0 && len(b.Normals) != n*3 {
		return fmt.Errorf("mesh: %d normals for %d vertices", len(b.Normals)/3, n)
	}
	if len(b.UVs) != 0 && len(b.UVs) != n*2 {
		return fmt.Errorf("mesh: %d uvs for %d vertices", len(b.UVs)/2, n)
	}
	if len(b.Colors) != 0 && len(b.Colors) != n*4 {
		return fmt.Errorf("mesh: %d colors for %d vertices", len(b.Colors)/4, n)
	}
	if len(b.Indices)%3 != 0 {
		return fmt.Errorf("mesh: indices length %d is not a multiple of 3", len(b.Indices))
	}
	for _, i := range b.Indices {
		if int(i) >= n {
			return fmt.Errorf("mesh: index %d out of range (%d vertices)", i, n)
		}
	}
	return nil
}
