package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinGeometry(t *testing.T) {
	cube := Cube()
	require.NoError(t, cube.Validate())
	assert.Equal(t, 5, cube.Stride())
	assert.Equal(t, 36, cube.VertexCount())
	assert.False(t, cube.Indexed())

	quad := Quad()
	require.NoError(t, quad.Validate())
	assert.Equal(t, 4, quad.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)

	sphere := Sphere(1, 8, 4)
	require.NoError(t, sphere.Validate())
	assert.Equal(t, 9*5, sphere.VertexCount())
	assert.Len(t, sphere.Indices, 8*4*6)
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{Name: "bad", Vertices: []float32{0, 0, 0, 0}, Layout: PositionUV}
	assert.Error(t, m.Validate())

	m = &Mesh{Name: "oob", Vertices: make([]float32, 10), Indices: []uint32{0, 1, 2}, Layout: PositionUV}
	assert.ErrorContains(t, m.Validate(), "out of range")

	m = &Mesh{Name: "nolayout", Vertices: []float32{1}}
	assert.Error(t, m.Validate())
}

const quadOBJ = `# two triangles
o plane
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestParseOBJ(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, "plane", m.Name)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, []float32{1, 1, 0, 1, 1}, m.Vertices[10:15])
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, []float32{0, 1, 0, 0, 0}, m.Vertices[10:15])
}

func TestParseOBJRejectsMalformedLines(t *testing.T) {
	cases := map[string]string{
		"short vertex":       "v 0 0\n",
		"bad number":         "v 0 x 0\n",
		"two corner face":    "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"index out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"zero index":         "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"missing texcoord":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n",
	}
	for name, src := range cases {
		_, err := ParseOBJ(strings.NewReader(src))
		assert.Error(t, err, name)
	}

	_, err := ParseOBJ(strings.NewReader("# header\nv 0 0 0\nv 1 0 0\nv 0 q 0\n"))
	assert.ErrorContains(t, err, "line 4")
}

func TestParseOBJNoFaces(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\n"))
	assert.Error(t, err)
}

func TestLoadMeshDispatch(t *testing.T) {
	dir := t.TempDir()

	objPath := filepath.Join(dir, "plane.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(quadOBJ), 0o644))
	m, err := LoadMesh(objPath)
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())

	_, err = LoadMesh(filepath.Join(dir, "model.fbx"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadMesh(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGLTFMesh(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idx),
			Attributes: map[string]int{
				"POSITION":   pos,
				"TEXCOORD_0": uv,
			},
		}},
	}}
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	m, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, PositionUV, m.Layout)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, []float32{1, 0, 0, 1, 0}, m.Vertices[5:10])
}

func TestLoadGLTFMeshEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(gltf.NewDocument(), path))

	_, err := LoadGLTFMesh(path)
	assert.ErrorContains(t, err, "no mesh primitives")
}

func TestLoadBundledPyramid(t *testing.T) {
	m, err := LoadMesh("../assets/models/pyramid.obj")
	require.NoError(t, err)

	assert.Equal(t, "pyramid", m.Name)
	assert.Len(t, m.Indices, 18)
	assert.Equal(t, 11, m.VertexCount())
}
