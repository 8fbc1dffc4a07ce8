package meshbuild

import (
	"errors"

	"github.com/Faultbox/meshkit/pkg/geom"
	"github.com/Faultbox/meshkit/pkg/math"
)

// FinalizeOptions controls post-processing in Finalize.
type FinalizeOptions struct {
	// Name is copied into the result.
	Name string
	// RecalculateNormals replaces the appended normals with smooth normals
	// computed from the triangles.
	RecalculateNormals bool
	// ComputeTangents fills MeshData.Tangents.
	ComputeTangents bool
	// Validate rejects sessions with triangles that reference missing vertices.
	Validate bool
}

// Validate checks every triangle index against the current vertex count.
// It returns nil or one *IndexRangeError per bad corner, joined.
func (mb *Builder) Validate() error {
	var errs []error
	n := len(mb.vertices)
	for i, tri := range mb.triangles {
		for corner, idx := range [3]int{tri.A, tri.B, tri.C} {
			if idx < 0 || idx >= n {
				errs = append(errs, &IndexRangeError{
					Triangle:    i,
					Corner:      corner,
					Index:       idx,
					VertexCount: n,
				})
			}
		}
	}
	return errors.Join(errs...)
}

// Finalize produces renderer-ready mesh data without modifying the builder,
// so it may be called repeatedly until the next Reset.
//
// Triangles are grouped by submesh with a counting sort: count each slot,
// prefix-sum the counts into offsets, then scatter every triangle to its
// slot's next free position. Order within a slot matches append order.
func (mb *Builder) Finalize(opts FinalizeOptions) (*MeshData, error) {
	if opts.Validate {
		if err := mb.Validate(); err != nil {
			return nil, err
		}
	}

	m := &MeshData{Name: opts.Name}
	mb.copyAttributes(m)
	mb.partition(m)

	if opts.RecalculateNormals {
		m.Normals = geom.VertexNormals(m.Positions, m.Submeshes...)
	}
	if opts.ComputeTangents {
		m.Tangents = geom.Tangents(m.Positions, m.Normals, m.UVs, m.Submeshes...)
	}
	m.Bounds = geom.ComputeBounds(m.Positions)

	return m, nil
}

func (mb *Builder) copyAttributes(m *MeshData) {
	n := len(mb.vertices)
	m.Positions = make([]math.Vec3, n)
	m.Normals = make([]math.Vec3, n)
	m.UVs = make([]math.Vec2, n)
	m.Colors = make([]Color32, n)

	for i, v := range mb.vertices {
		m.Positions[i] = v.Position
		m.Normals[i] = v.Normal
		m.UVs[i] = v.UV
		m.Colors[i] = v.Color
	}
}

func (mb *Builder) partition(m *MeshData) {
	slots := mb.maxSubmesh + 1

	counts := make([]int, slots)
	for _, tri := range mb.triangles {
		counts[tri.Submesh]++
	}

	// offsets[s] is the first triangle slot of submesh s in the arena
	offsets := make([]int, slots)
	total := 0
	for s, c := range counts {
		offsets[s] = total
		total += c
	}

	m.arena = make([]uint32, total*3)
	m.Submeshes = make([][]uint32, slots)
	for s := range m.Submeshes {
		lo := offsets[s] * 3
		hi := lo + counts[s]*3
		m.Submeshes[s] = m.arena[lo:hi:hi]
	}

	next := offsets
	for _, tri := range mb.triangles {
		o := next[tri.Submesh] * 3
		m.arena[o] = uint32(tri.A)
		m.arena[o+1] = uint32(tri.B)
		m.arena[o+2] = uint32(tri.C)
		next[tri.Submesh]++
	}
}
