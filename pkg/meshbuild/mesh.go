package meshbuild

import (
	"github.com/Faultbox/meshkit/pkg/geom"
	"github.com/Faultbox/meshkit/pkg/math"
)

// IndexFormat is the narrowest GPU index type that can address a mesh.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

func (f IndexFormat) String() string {
	if f == IndexUint16 {
		return "uint16"
	}
	return "uint32"
}

// SubmeshRange locates one submesh inside the shared index arena.
// Start and Count are in indices, not triangles.
type SubmeshRange struct {
	Start int
	Count int
}

// MeshData is the finalized, renderer-ready form of a build session.
// Attribute slices are indexed by vertex index. Submeshes holds one index
// list per submesh slot, in ascending slot order; every list is a view into
// one contiguous arena.
type MeshData struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Colors    []Color32
	Tangents  []math.Vec4
	Submeshes [][]uint32
	Bounds    geom.Bounds

	arena []uint32
}

// VertexCount returns the number of vertices.
func (m *MeshData) VertexCount() int {
	return len(m.Positions)
}

// SubmeshCount returns the number of submesh slots, including empty ones.
func (m *MeshData) SubmeshCount() int {
	return len(m.Submeshes)
}

// TriangleCount returns the number of triangles across all submeshes.
func (m *MeshData) TriangleCount() int {
	return len(m.arena) / 3
}

// Arena returns every index in submesh order as a single slice.
func (m *MeshData) Arena() []uint32 {
	return m.arena
}

// Ranges returns where each submesh lives inside Arena.
func (m *MeshData) Ranges() []SubmeshRange {
	ranges := make([]SubmeshRange, len(m.Submeshes))
	start := 0
	for i, s := range m.Submeshes {
		ranges[i] = SubmeshRange{Start: start, Count: len(s)}
		start += len(s)
	}
	return ranges
}

// IndexFormat reports whether 16-bit indices can address every vertex.
func (m *MeshData) IndexFormat() IndexFormat {
	if m.VertexCount() <= 1<<16 {
		return IndexUint16
	}
	return IndexUint32
}

// Indices16 converts one submesh to 16-bit indices. Values are truncated,
// so check IndexFormat first.
func (m *MeshData) Indices16(submesh int) []uint16 {
	src := m.Submeshes[submesh]
	out := make([]uint16, len(src))
	for i, idx := range src {
		out[i] = uint16(idx)
	}
	return out
}
