package meshfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

// MaterialNamer maps a submesh slot to a material name.
type MaterialNamer func(submesh int) string

// WriteOBJ writes m as Wavefront OBJ. Each submesh becomes a usemtl group;
// empty submeshes are skipped. Vertex colors use the common "v x y z r g b"
// extension. mtlLib may be empty. Nothing is written if any index does not
// address a vertex.
func WriteOBJ(w io.Writer, m *meshbuild.MeshData, mtlLib string, material MaterialNamer) error {
	if err := checkIndices(m); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n", m.Name)
	fmt.Fprintf(bw, "# vertices %d triangles %d submeshes %d\n", m.VertexCount(), m.TriangleCount(), m.SubmeshCount())
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}
	fmt.Fprintf(bw, "o %s\n", m.Name)

	for i, p := range m.Positions {
		c := m.Colors[i]
		fmt.Fprintf(bw, "v %g %g %g %.4g %.4g %.4g\n", p.X, p.Y, p.Z,
			float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	for s, indices := range m.Submeshes {
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintf(bw, "usemtl %s\n", material(s))
		for t := 0; t+2 < len(indices); t += 3 {
			// OBJ indices are 1-based
			a, b, c := indices[t]+1, indices[t+1]+1, indices[t+2]+1
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
	}

	return bw.Flush()
}

// WriteMTL writes a material library with one default material per submesh slot.
func WriteMTL(w io.Writer, submeshes int, material MaterialNamer) error {
	bw := bufio.NewWriter(w)
	for s := 0; s < submeshes; s++ {
		fmt.Fprintf(bw, "newmtl %s\n", material(s))
		fmt.Fprintln(bw, "Kd 1 1 1")
		fmt.Fprintln(bw, "d 1")
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// SaveOBJ writes path and a sibling .mtl file.
func SaveOBJ(path string, m *meshbuild.MeshData, material MaterialNamer) error {
	if err := checkIndices(m); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if err := writeFile(mtlPath, func(w io.Writer) error {
		return WriteMTL(w, m.SubmeshCount(), material)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", mtlPath, err)
	}

	if err := writeFile(path, func(w io.Writer) error {
		return WriteOBJ(w, m, filepath.Base(mtlPath), material)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// checkIndices rejects meshes finalized without validation whose indices
// cannot be written as 1-based OBJ references.
func checkIndices(m *meshbuild.MeshData) error {
	n := uint32(m.VertexCount())
	for s, indices := range m.Submeshes {
		for i, idx := range indices {
			if idx >= n {
				return fmt.Errorf("submesh %d triangle %d: %w: index %d, %d vertices",
					s, i/3, meshbuild.ErrIndexOutOfRange, int32(idx), n)
			}
		}
	}
	return nil
}
