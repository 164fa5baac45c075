package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTFMesh opens a .glb or .gltf file and converts the first primitive of
// the first mesh into position + uv geometry. Missing texture coordinates
// default to zero.
func LoadGLTFMesh(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("gltf %q: no mesh primitives", path)
	}

	gm := doc.Meshes[0]
	m, err := loadGLTFPrimitive(doc, gm.Primitives[0])
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	m.Name = gm.Name
	if m.Name == "" {
		m.Name = "gltf_mesh_0"
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func loadGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive mode %v is not triangles", prim.Mode)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	verts := make([]float32, 0, len(positions)*5)
	for i, p := range positions {
		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}
		verts = append(verts, p[0], p[1], p[2], uv[0], uv[1])
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	return &Mesh{Vertices: verts, Indices: indices, Layout: PositionUV}, nil
}
