package math

// Vec4 is a 4D vector. Mesh tangents store the bitangent sign in W.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ drops the W component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Vec4From extends a Vec3 with w.
func Vec4From(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}
