package math3d

// Vec4 represents a homogeneous 3D point. Object-space vertices carry
// W = 1; projection moves view-space depth into W.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point creates a homogeneous point (W = 1) from v.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide divides X, Y and Z by W and returns the result with
// W = 1. A zero W yields ErrPerspectiveDivideByZero.
func (v Vec4) PerspectiveDivide() (Vec4, error) {
	if v.W == 0 {
		return v, ErrPerspectiveDivideByZero
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z / v.W, 1}, nil
}

// Translate offsets the point by d, leaving W alone.
func (v Vec4) Translate(d Vec3) Vec4 {
	return Vec4{v.X + d.X, v.Y + d.Y, v.Z + d.Z, v.W}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z) && finite(v.W)
}
