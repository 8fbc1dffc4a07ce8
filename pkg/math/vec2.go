package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Cross returns the z component of the 3D cross product, the signed
// parallelogram area spanned by v and other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - other.X*v.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Array returns the components as a fixed array.
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}
