// Package meshfile loads declarative mesh description documents and exports
// finalized meshes as Wavefront OBJ.
package meshfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

var (
	ErrUnknownFormat = errors.New("unknown mesh document format")
	ErrBadFace       = errors.New("face has wrong number of indices")
)

// Format is the encoding of a mesh document.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// Document describes one mesh. Faces are replayed in document order:
// all triangles, then all quads.
type Document struct {
	Name      string       `yaml:"name" toml:"name"`
	Materials []string     `yaml:"materials" toml:"materials"`
	Vertices  []VertexSpec `yaml:"vertices" toml:"vertices"`
	Triangles []FaceSpec   `yaml:"triangles" toml:"triangles"`
	Quads     []FaceSpec   `yaml:"quads" toml:"quads"`
}

// VertexSpec is one vertex entry. A missing color means opaque white.
type VertexSpec struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Normal   [3]float32 `yaml:"normal" toml:"normal"`
	UV       [2]float32 `yaml:"uv" toml:"uv"`
	Color    *[4]uint8  `yaml:"color,omitempty" toml:"color,omitempty"`
}

// FaceSpec is a triangle (3 indices) or quad (4 indices).
type FaceSpec struct {
	Indices []int `yaml:"indices" toml:"indices"`
	Submesh int   `yaml:"submesh" toml:"submesh"`
}

// FormatFromPath picks the decoder by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads and decodes a mesh document from disk.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a document. An empty name is replaced by a generated one.
func Decode(data []byte, format Format) (*Document, error) {
	doc := &Document{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	case FormatTOML:
		err = toml.Unmarshal(data, doc)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}

	if doc.Name == "" {
		doc.Name = "mesh-" + uuid.NewString()
	}
	return doc, nil
}

// MaterialName returns the material for a submesh slot, or a generated name
// when the document does not list one.
func (d *Document) MaterialName(submesh int) string {
	if submesh >= 0 && submesh < len(d.Materials) && d.Materials[submesh] != "" {
		return d.Materials[submesh]
	}
	return fmt.Sprintf("submesh_%d", submesh)
}

// Build replays the document into mb, resetting it first. Vertices beyond
// the builder capacity are an error here rather than silently dropped.
func (d *Document) Build(mb *meshbuild.Builder) error {
	mb.Reset()
	mb.Grow(len(d.Vertices), len(d.Triangles)+2*len(d.Quads))

	for i, v := range d.Vertices {
		col := meshbuild.DefaultColor
		if v.Color != nil {
			col = meshbuild.Color32{R: v.Color[0], G: v.Color[1], B: v.Color[2], A: v.Color[3]}
		}
		_, err := mb.TryAppendVertex(meshbuild.Vertex{
			Position: vec3(v.Position),
			Normal:   vec3(v.Normal),
			UV:       math.Vec2{X: v.UV[0], Y: v.UV[1]},
			Color:    col,
		})
		if err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}

	for i, f := range d.Triangles {
		if len(f.Indices) != 3 {
			return fmt.Errorf("triangle %d: %w (got %d, want 3)", i, ErrBadFace, len(f.Indices))
		}
		mb.AppendTriangle(f.Indices[0], f.Indices[1], f.Indices[2], f.Submesh)
	}
	for i, f := range d.Quads {
		if len(f.Indices) != 4 {
			return fmt.Errorf("quad %d: %w (got %d, want 4)", i, ErrBadFace, len(f.Indices))
		}
		mb.AppendQuad(f.Indices[0], f.Indices[1], f.Indices[2], f.Indices[3], f.Submesh)
	}
	return nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
