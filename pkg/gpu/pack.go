package gpu

import (
	"encoding/binary"
	"unsafe"

	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

// Vertex is the interleaved layout uploaded to the vertex buffer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [4]uint8
	Tangent  [4]float32
}

const vertexSize = int(unsafe.Sizeof(Vertex{}))

// Attribute locations and byte offsets into Vertex.
const (
	attrPosition = 0
	attrNormal   = 1
	attrTexCoord = 2
	attrColor    = 3
	attrTangent  = 4

	offPosition = 0
	offNormal   = 3 * 4
	offTexCoord = 6 * 4
	offColor    = 8 * 4
	offTangent  = 8*4 + 4
)

// PackVertices interleaves the attribute arrays. Missing tangents are zero.
func PackVertices(m *meshbuild.MeshData) []Vertex {
	out := make([]Vertex, m.VertexCount())
	for i := range out {
		c := m.Colors[i]
		out[i] = Vertex{
			Position: m.Positions[i].Array(),
			Normal:   m.Normals[i].Array(),
			TexCoord: m.UVs[i].Array(),
			Color:    [4]uint8{c.R, c.G, c.B, c.A},
		}
		if i < len(m.Tangents) {
			t := m.Tangents[i]
			out[i].Tangent = [4]float32{t.X, t.Y, t.Z, t.W}
		}
	}
	return out
}

// PackIndices returns the index arena in the narrowest format that fits,
// as raw bytes, plus the element size in bytes.
func PackIndices(m *meshbuild.MeshData) ([]byte, int) {
	arena := m.Arena()
	if m.IndexFormat() == meshbuild.IndexUint16 {
		buf := make([]byte, len(arena)*2)
		for i, idx := range arena {
			binary.NativeEndian.PutUint16(buf[i*2:], uint16(idx))
		}
		return buf, 2
	}

	buf := make([]byte, len(arena)*4)
	for i, idx := range arena {
		binary.NativeEndian.PutUint32(buf[i*4:], idx)
	}
	return buf, 4
}
