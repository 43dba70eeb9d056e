package brep

import (
	"math"

	"github.com/chazu/tenon/pkg/geom"
)

// Primitives retain their construction parameters so a boolean-evaluation
// backend can map them to its own representation (e.g. a signed distance
// form) instead of reconstructing them from the face shell.

// Box is a rectangular solid with its minimum corner at the origin, so
// placement translations put the corner where the caller says.
type Box struct {
	Dims geom.Vec3
	poly *Polyhedron
}

// NewBox creates a box with the given dimensions.
func NewBox(x, y, z float64) *Box {
	p := NewPolyhedron()
	// Six quads, each wound counter-clockwise viewed from outside.
	p.AddFace(geom.Vec3{}, geom.Vec3{Y: y}, geom.Vec3{X: x, Y: y}, geom.Vec3{X: x})                                 // bottom (-Z)
	p.AddFace(geom.Vec3{Z: z}, geom.Vec3{X: x, Z: z}, geom.Vec3{X: x, Y: y, Z: z}, geom.Vec3{Y: y, Z: z})           // top (+Z)
	p.AddFace(geom.Vec3{}, geom.Vec3{X: x}, geom.Vec3{X: x, Z: z}, geom.Vec3{Z: z})                                 // front (-Y)
	p.AddFace(geom.Vec3{Y: y}, geom.Vec3{Y: y, Z: z}, geom.Vec3{X: x, Y: y, Z: z}, geom.Vec3{X: x, Y: y})           // back (+Y)
	p.AddFace(geom.Vec3{}, geom.Vec3{Z: z}, geom.Vec3{Y: y, Z: z}, geom.Vec3{Y: y})                                 // left (-X)
	p.AddFace(geom.Vec3{X: x}, geom.Vec3{X: x, Y: y}, geom.Vec3{X: x, Y: y, Z: z}, geom.Vec3{X: x, Z: z})           // right (+X)
	return &Box{Dims: geom.Vec3{X: x, Y: y, Z: z}, poly: p}
}

func (b *Box) Faces() []Face         { return b.poly.Faces() }
func (b *Box) BoundingBox() geom.Box { return geom.Box{Max: b.Dims} }

// Cylinder is a prism approximation of a cylinder along +Z, base center at
// the origin.
type Cylinder struct {
	Height   float64
	Radius   float64
	Segments int
	poly     *Polyhedron
}

// NewCylinder creates a cylinder with the given height, radius, and number
// of circular segments (minimum 3).
func NewCylinder(height, radius float64, segments int) *Cylinder {
	if segments < 3 {
		segments = 3
	}
	ring := func(z float64) []geom.Vec3 {
		pts := make([]geom.Vec3, segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / float64(segments)
			pts[i] = geom.Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: z}
		}
		return pts
	}
	bottom := ring(0)
	top := ring(height)

	p := NewPolyhedron()
	// Bottom cap faces -Z: reverse the ring so the winding reads
	// counter-clockwise from below.
	cap0 := make([]geom.Vec3, segments)
	for i := range cap0 {
		cap0[i] = bottom[segments-1-i]
	}
	p.AddFace(cap0...)
	p.AddFace(top...)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		p.AddFace(bottom[i], bottom[j], top[j], top[i])
	}
	return &Cylinder{Height: height, Radius: radius, Segments: segments, poly: p}
}

func (c *Cylinder) Faces() []Face { return c.poly.Faces() }

func (c *Cylinder) BoundingBox() geom.Box {
	return geom.Box{
		Min: geom.Vec3{X: -c.Radius, Y: -c.Radius},
		Max: geom.Vec3{X: c.Radius, Y: c.Radius, Z: c.Height},
	}
}

// Sphere is a latitude/longitude shell approximation of a sphere centered
// at the origin.
type Sphere struct {
	Radius   float64
	Segments int
	poly     *Polyhedron
}

// NewSphere creates a sphere with the given radius. The segments parameter
// controls the longitudinal resolution (minimum 4); latitude uses half as
// many stacks.
func NewSphere(radius float64, segments int) *Sphere {
	if segments < 4 {
		segments = 4
	}
	stacks := segments / 2
	if stacks < 2 {
		stacks = 2
	}
	at := func(stack, seg int) geom.Vec3 {
		lat := math.Pi*float64(stack)/float64(stacks) - math.Pi/2
		lon := 2 * math.Pi * float64(seg) / float64(segments)
		return geom.Vec3{
			X: radius * math.Cos(lat) * math.Cos(lon),
			Y: radius * math.Cos(lat) * math.Sin(lon),
			Z: radius * math.Sin(lat),
		}
	}
	p := NewPolyhedron()
	for st := 0; st < stacks; st++ {
		for sg := 0; sg < segments; sg++ {
			sg2 := (sg + 1) % segments
			a := at(st, sg)
			b := at(st, sg2)
			c := at(st+1, sg2)
			d := at(st+1, sg)
			switch {
			case st == 0:
				// South pole: a and b coincide.
				p.AddFace(a, c, d)
			case st == stacks-1:
				// North pole: c and d coincide.
				p.AddFace(a, b, c)
			default:
				p.AddFace(a, b, c, d)
			}
		}
	}
	return &Sphere{Radius: radius, Segments: segments, poly: p}
}

func (s *Sphere) Faces() []Face { return s.poly.Faces() }

func (s *Sphere) BoundingBox() geom.Box {
	r := geom.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return geom.Box{Min: r.Scale(-1), Max: r}
}
