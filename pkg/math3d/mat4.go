package math3d

import (
	"fmt"
	"math"
)

// Mat4 is a 4x4 matrix indexed as m[row][col].
//
// Points are column vectors, so a transform is applied as p' = M·p and
// A.Mul(B) applied to a point performs B first, then A.
//
// For an affine transform:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// LookAt creates a left-handed view matrix for a camera at eye looking
// at target. After the transform the camera sits at the origin looking
// down +Z with up along +Y.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	f, err := target.Sub(eye).Unit()
	if err != nil {
		return Mat4{}, fmt.Errorf("look at: forward: %w", err)
	}
	r, err := up.Cross(f).Unit()
	if err != nil {
		return Mat4{}, fmt.Errorf("look at: up parallel to forward: %w", err)
	}
	u := f.Cross(r)

	return Mat4{
		{r.X, r.Y, r.Z, -r.Dot(eye)},
		{u.X, u.Y, u.Z, -u.Dot(eye)},
		{f.X, f.Y, f.Z, -f.Dot(eye)},
		{0, 0, 0, 1},
	}, nil
}

// Perspective creates a perspective projection matrix.
// fovDeg is the field of view in degrees and aspect is the ratio the x
// axis is divided by. The last row copies view-space z into w so that a
// perspective divide follows.
func Perspective(fovDeg, aspect, near, far float64) (Mat4, error) {
	switch {
	case !finite(fovDeg) || !finite(aspect) || !finite(near) || !finite(far):
		return Mat4{}, fmt.Errorf("%w: non-finite input", ErrInvalidProjection)
	case fovDeg <= 0 || fovDeg >= 180:
		return Mat4{}, fmt.Errorf("%w: fov %g outside (0, 180)", ErrInvalidProjection, fovDeg)
	case aspect <= 0:
		return Mat4{}, fmt.Errorf("%w: aspect %g", ErrInvalidProjection, aspect)
	case near <= 0:
		return Mat4{}, fmt.Errorf("%w: near %g must be positive", ErrInvalidProjection, near)
	case near == far:
		return Mat4{}, fmt.Errorf("%w: near equals far", ErrInvalidProjection)
	}

	f := 1.0 / math.Tan(fovDeg*0.5*math.Pi/180)
	q := far / (far - near)

	return Mat4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, q, -near * q},
		{0, 0, 1, 0},
	}, nil
}

// Mul returns the matrix product a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for row := range 4 {
		for col := range 4 {
			out[row][col] = a[row][0]*b[0][col] +
				a[row][1]*b[1][col] +
				a[row][2]*b[2][col] +
				a[row][3]*b[3][col]
		}
	}
	return out
}

// MulVec4 transforms a homogeneous point.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulVec3 transforms a point (w = 1), ignoring the projective row.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// MulVec3Dir transforms a direction (w = 0), ignoring translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for row := range 4 {
		for col := range 4 {
			out[col][row] = m[row][col]
		}
	}
	return out
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	s0 := m[0][0]*m[1][1] - m[1][0]*m[0][1]
	s1 := m[0][0]*m[1][2] - m[1][0]*m[0][2]
	s2 := m[0][0]*m[1][3] - m[1][0]*m[0][3]
	s3 := m[0][1]*m[1][2] - m[1][1]*m[0][2]
	s4 := m[0][1]*m[1][3] - m[1][1]*m[0][3]
	s5 := m[0][2]*m[1][3] - m[1][2]*m[0][3]

	c5 := m[2][2]*m[3][3] - m[3][2]*m[2][3]
	c4 := m[2][1]*m[3][3] - m[3][1]*m[2][3]
	c3 := m[2][1]*m[3][2] - m[3][1]*m[2][2]
	c2 := m[2][0]*m[3][3] - m[3][0]*m[2][3]
	c1 := m[2][0]*m[3][2] - m[3][0]*m[2][2]
	c0 := m[2][0]*m[3][1] - m[3][0]*m[2][1]

	return s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}
