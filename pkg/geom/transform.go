package geom

import "math"

// Transform is a local placement: Euler rotation (degrees) followed by a
// translation. Rotation is applied around X, then Y, then Z, matching the
// order the geometry kernels compose their rotation matrices.
type Transform struct {
	Translation Vec3 `json:"translation"`
	Rotation    Vec3 `json:"rotation"` // Euler angles in degrees
}

// Translate returns a pure translation transform.
func Translate(x, y, z float64) Transform {
	return Transform{Translation: Vec3{x, y, z}}
}

// IsIdentity reports whether the transform moves nothing.
func (t Transform) IsIdentity() bool {
	return t.Translation == (Vec3{}) && t.Rotation == (Vec3{})
}

// Apply transforms a point: rotate first, then translate.
func (t Transform) Apply(v Vec3) Vec3 {
	if t.Rotation != (Vec3{}) {
		v = rotateX(v, t.Rotation.X)
		v = rotateY(v, t.Rotation.Y)
		v = rotateZ(v, t.Rotation.Z)
	}
	return v.Add(t.Translation)
}

// ApplyBox transforms all eight corners of a box and returns their
// axis-aligned bounds.
func (t Transform) ApplyBox(b Box) Box {
	c := b.Corners()
	out := BoxOf(t.Apply(c[0]))
	for _, p := range c[1:] {
		out = out.Extend(t.Apply(p))
	}
	return out
}

func rotateX(v Vec3, deg float64) Vec3 {
	s, c := sincosDeg(deg)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func rotateY(v Vec3, deg float64) Vec3 {
	s, c := sincosDeg(deg)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func rotateZ(v Vec3, deg float64) Vec3 {
	s, c := sincosDeg(deg)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

func sincosDeg(deg float64) (sin, cos float64) {
	return math.Sincos(deg * math.Pi / 180.0)
}
