// Package meshbuild provides a reusable staging buffer for procedural mesh
// assembly. Callers append vertices and triangles tagged with a submesh
// number, then finalize the session into flat attribute arrays plus one
// index list per submesh.
package meshbuild

import (
	"github.com/Faultbox/meshkit/pkg/math"
)

const (
	// DefaultCapacity is the vertex ceiling used when none is configured.
	// It keeps every index addressable by a 16-bit index buffer.
	DefaultCapacity = 63000

	// SaturatedIndex is returned by the append methods once the builder is full.
	// It is a valid vertex index, so callers that need to tell the two apart
	// should check IsFull or use TryAppendVertex.
	SaturatedIndex = 0

	// InvalidIndex is returned by TryAppendVertex when the vertex was not added.
	InvalidIndex = -1
)

// Color32 is an 8-bit per channel RGBA color.
type Color32 struct {
	R, G, B, A uint8
}

// DefaultColor is opaque white, used when a vertex is appended without a color.
var DefaultColor = Color32{255, 255, 255, 255}

// Vertex is a single staged vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color32
}

// Triangle references three vertices by index. The winding A, B, C is kept
// exactly as appended.
type Triangle struct {
	A, B, C int
	Submesh int
}
