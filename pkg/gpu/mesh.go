// Package gpu uploads finalized mesh data into OpenGL buffers. All functions
// must be called on the thread that owns the GL context.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

var ErrEmptyMesh = errors.New("mesh has no vertices")

// Mesh is an uploaded mesh: one VAO, one interleaved vertex buffer and one
// element buffer holding every submesh back to back.
type Mesh struct {
	Name string

	vao, vbo, ebo uint32
	indexType     uint32
	indexSize     int
	ranges        []meshbuild.SubmeshRange
}

// Upload creates GL buffers for m.
func Upload(m *meshbuild.MeshData) (*Mesh, error) {
	if m.VertexCount() == 0 {
		return nil, ErrEmptyMesh
	}

	vertices := PackVertices(m)
	indices, indexSize := PackIndices(m)

	gm := &Mesh{
		Name:      m.Name,
		indexType: gl.UNSIGNED_INT,
		indexSize: indexSize,
		ranges:    m.Ranges(),
	}
	if indexSize == 2 {
		gm.indexType = gl.UNSIGNED_SHORT
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(vertexSize)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, stride, offPosition)
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointerWithOffset(attrNormal, 3, gl.FLOAT, false, stride, offNormal)
	gl.EnableVertexAttribArray(attrNormal)
	gl.VertexAttribPointerWithOffset(attrTexCoord, 2, gl.FLOAT, false, stride, offTexCoord)
	gl.EnableVertexAttribArray(attrTexCoord)
	gl.VertexAttribPointerWithOffset(attrColor, 4, gl.UNSIGNED_BYTE, true, stride, offColor)
	gl.EnableVertexAttribArray(attrColor)
	gl.VertexAttribPointerWithOffset(attrTangent, 4, gl.FLOAT, false, stride, offTangent)
	gl.EnableVertexAttribArray(attrTangent)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	logger.Named("gpu").Debug("uploaded mesh",
		append(logger.MeshFields(m.Name, m.VertexCount(), m.TriangleCount(), m.SubmeshCount()),
			zap.Int("indexBytes", indexSize))...)

	return gm, nil
}

// SubmeshCount returns the number of draw ranges.
func (gm *Mesh) SubmeshCount() int {
	return len(gm.ranges)
}

// DrawSubmesh draws one submesh. The caller binds the submesh's material first.
func (gm *Mesh) DrawSubmesh(submesh int) {
	r := gm.ranges[submesh]
	if r.Count == 0 {
		return
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(r.Count), gm.indexType, uintptr(r.Start*gm.indexSize))
	gl.BindVertexArray(0)
}

// Draw draws every submesh with whatever material is currently bound.
func (gm *Mesh) Draw() {
	total := 0
	for _, r := range gm.ranges {
		total += r.Count
	}
	if total == 0 {
		return
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, int32(total), gm.indexType, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (gm *Mesh) Delete() {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
		gm.vao = 0
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
		gm.vbo = 0
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
		gm.ebo = 0
	}
}
