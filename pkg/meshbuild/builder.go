package meshbuild

import (
	"github.com/Faultbox/meshkit/pkg/math"
)

// Builder stages vertices and triangles for one mesh at a time.
// Call Reset between meshes to reuse its storage.
//
// A Builder is not safe for concurrent use. Separate builders share nothing.
type Builder struct {
	vertices   []Vertex
	triangles  []Triangle
	maxSubmesh int
	capacity   int
}

// New returns an empty builder with the default vertex capacity.
func New() *Builder {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity returns an empty builder that holds at most capacity
// vertices. Non-positive values select DefaultCapacity.
func NewWithCapacity(capacity int) *Builder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Builder{capacity: capacity}
}

// Reset clears the session. Backing storage is kept for the next mesh.
func (mb *Builder) Reset() {
	mb.vertices = mb.vertices[:0]
	mb.triangles = mb.triangles[:0]
	mb.maxSubmesh = 0
}

// Grow pre-allocates room for the given number of additional vertices and
// triangles.
func (mb *Builder) Grow(vertices, triangles int) {
	if vertices > 0 && cap(mb.vertices)-len(mb.vertices) < vertices {
		grown := make([]Vertex, len(mb.vertices), len(mb.vertices)+vertices)
		copy(grown, mb.vertices)
		mb.vertices = grown
	}
	if triangles > 0 && cap(mb.triangles)-len(mb.triangles) < triangles {
		grown := make([]Triangle, len(mb.triangles), len(mb.triangles)+triangles)
		copy(grown, mb.triangles)
		mb.triangles = grown
	}
}

// Capacity returns the vertex ceiling.
func (mb *Builder) Capacity() int { return mb.capacity }

// VertexCount returns the number of staged vertices.
func (mb *Builder) VertexCount() int { return len(mb.vertices) }

// TriangleCount returns the number of staged triangles.
func (mb *Builder) TriangleCount() int { return len(mb.triangles) }

// MaxSubmesh returns the highest submesh tag appended since the last Reset.
func (mb *Builder) MaxSubmesh() int { return mb.maxSubmesh }

// SubmeshCount returns the number of index lists Finalize will produce.
func (mb *Builder) SubmeshCount() int { return mb.maxSubmesh + 1 }

// IsFull reports whether the vertex ceiling has been reached.
func (mb *Builder) IsFull() bool {
	return len(mb.vertices) >= mb.capacity
}

// Vertex returns the staged vertex at index i.
func (mb *Builder) Vertex(i int) Vertex { return mb.vertices[i] }

// Triangle returns the staged triangle at index i.
func (mb *Builder) Triangle(i int) Triangle { return mb.triangles[i] }

// AppendVertex adds a white vertex and returns its index.
// When the builder is full nothing is added and SaturatedIndex is returned.
func (mb *Builder) AppendVertex(pos, nrm math.Vec3, uv math.Vec2) int {
	return mb.AppendBuildVertex(Vertex{Position: pos, Normal: nrm, UV: uv, Color: DefaultColor})
}

// AppendColoredVertex adds a vertex with an explicit color.
func (mb *Builder) AppendColoredVertex(pos, nrm math.Vec3, uv math.Vec2, col Color32) int {
	return mb.AppendBuildVertex(Vertex{Position: pos, Normal: nrm, UV: uv, Color: col})
}

// AppendBuildVertex adds v and returns its index, or SaturatedIndex when full.
func (mb *Builder) AppendBuildVertex(v Vertex) int {
	idx, err := mb.TryAppendVertex(v)
	if err != nil {
		return SaturatedIndex
	}
	return idx
}

// TryAppendVertex is the strict form of AppendBuildVertex. It returns
// InvalidIndex and ErrCapacityExceeded when the builder is full.
func (mb *Builder) TryAppendVertex(v Vertex) (int, error) {
	if mb.IsFull() {
		return InvalidIndex, ErrCapacityExceeded
	}
	idx := len(mb.vertices)
	mb.vertices = append(mb.vertices, v)
	return idx, nil
}

// AppendTriangle adds a triangle and returns its index in the triangle list.
// Vertex indices are not checked; see Validate. Negative submesh tags are
// treated as submesh 0.
func (mb *Builder) AppendTriangle(a, b, c, submesh int) int {
	if submesh < 0 {
		submesh = 0
	}
	if submesh > mb.maxSubmesh {
		mb.maxSubmesh = submesh
	}
	idx := len(mb.triangles)
	mb.triangles = append(mb.triangles, Triangle{A: a, B: b, C: c, Submesh: submesh})
	return idx
}

// AppendQuad splits the quad a-b-c-d into triangles (a, b, c) and (c, b, d)
// and returns the index of the first one. The second is at index+1.
func (mb *Builder) AppendQuad(a, b, c, d, submesh int) int {
	first := mb.AppendTriangle(a, b, c, submesh)
	mb.AppendTriangle(c, b, d, submesh)
	return first
}
