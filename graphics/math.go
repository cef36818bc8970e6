package graphics

import "math"

// Vec2 is a 2D vector in world or screen units.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Affine is a 2x3 row-major affine matrix:
//
//	| A C TX |
//	| B D TY |
//
// stored as [A, B, C, D, TX, TY], the layout used for transform uniforms.
type Affine [6]float32

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Apply transforms p.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Mul returns m * o (o is applied first).
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// TRS builds translate * rotate * scale.
func TRS(pos Vec2, rotation float32, scale Vec2) Affine {
	sin, cos := math.Sincos(float64(rotation))
	s, c := float32(sin), float32(cos)
	return Affine{
		c * scale.X, s * scale.X,
		-s * scale.Y, c * scale.Y,
		pos.X, pos.Y,
	}
}
