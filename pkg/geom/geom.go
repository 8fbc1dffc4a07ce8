// Package geom recomputes derived vertex data (normals, tangents, bounds)
// from finalized positions and submesh index lists.
package geom

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds returns the box enclosing positions.
// Empty input yields zero bounds.
func ComputeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// forEachTriangle calls fn for every triangle whose indices are all in range.
func forEachTriangle(vertexCount int, submeshes [][]uint32, fn func(i0, i1, i2 uint32)) {
	n := uint32(vertexCount)
	for _, indices := range submeshes {
		for t := 0; t+2 < len(indices); t += 3 {
			i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
			if i0 >= n || i1 >= n || i2 >= n {
				continue
			}
			fn(i0, i1, i2)
		}
	}
}

// VertexNormals computes smooth per-vertex normals. Each face contributes its
// unnormalized cross product, so larger faces weigh more. Vertices not used
// by any triangle get a zero normal.
func VertexNormals(positions []math.Vec3, submeshes ...[]uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))

	forEachTriangle(len(positions), submeshes, func(i0, i1, i2 uint32) {
		p0 := positions[i0]
		faceNormal := positions[i1].Sub(p0).Cross(positions[i2].Sub(p0))
		normals[i0] = normals[i0].Add(faceNormal)
		normals[i1] = normals[i1].Add(faceNormal)
		normals[i2] = normals[i2].Add(faceNormal)
	})

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// Tangents computes per-vertex tangents from UV gradients. W holds the
// bitangent sign (+1 or -1). Vertices with degenerate UV mapping get a
// tangent perpendicular to their normal.
func Tangents(positions, normals []math.Vec3, uvs []math.Vec2, submeshes ...[]uint32) []math.Vec4 {
	count := min(len(positions), len(normals), len(uvs))
	tan := make([]math.Vec3, count)
	bitan := make([]math.Vec3, count)

	forEachTriangle(count, submeshes, func(i0, i1, i2 uint32) {
		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])
		d1 := uvs[i1].Sub(uvs[i0])
		d2 := uvs[i2].Sub(uvs[i0])

		det := d1.Cross(d2)
		if math32.Abs(det) < 1e-12 {
			return
		}
		r := 1 / det
		sdir := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(r)
		tdir := e2.Scale(d1.X).Sub(e1.Scale(d2.X)).Scale(r)

		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(sdir)
			bitan[i] = bitan[i].Add(tdir)
		}
	})

	out := make([]math.Vec4, len(positions))
	for i := 0; i < count; i++ {
		n := normals[i]
		// Gram-Schmidt
		t := tan[i].Sub(n.Scale(n.Dot(tan[i]))).Normalize()
		if t.IsZero() {
			t = perpendicular(n)
		}
		w := float32(1)
		if n.Cross(t).Dot(bitan[i]) < 0 {
			w = -1
		}
		out[i] = math.Vec4From(t, w)
	}
	return out
}

// perpendicular returns some unit vector orthogonal to n.
func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.Right
	if math32.Abs(n.X) > 0.9 {
		axis = math.Up
	}
	p := axis.Sub(n.Scale(n.Dot(axis))).Normalize()
	if p.IsZero() {
		return math.Right
	}
	return p
}
