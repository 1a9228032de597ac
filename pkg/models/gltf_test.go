package models

import (
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/bespoke/pkg/math3d"
)

// triangleDoc builds a document with one mesh per name, each a single
// triangle in the XY plane, and one node per mesh.
func triangleDoc(names ...string) *gltf.Document {
	doc := &gltf.Document{}
	scene := &gltf.Scene{}
	for i, name := range names {
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name + "_mesh",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(idx),
				Attributes: map[string]int{gltf.POSITION: pos},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(i)})
		scene.Nodes = append(scene.Nodes, i)
	}
	doc.Scenes = []*gltf.Scene{scene}
	doc.Scene = gltf.Index(0)
	return doc
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestFromDocumentNamesPartsByNode(t *testing.T) {
	doc := triangleDoc("collar_co1", "body_front", "bk1")

	m, err := FromDocument("shirt", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"collar_co1", "body_front", "bk1"}, m.Manifest())
	assert.Equal(t, 3, m.TriangleCount())

	p, ok := m.Part("body_front")
	require.True(t, ok)
	assert.Equal(t, 3, p.VertexCount())
	_, ok = m.Part("Body_Front")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestFromDocumentFallsBackToMeshName(t *testing.T) {
	doc := triangleDoc("pocket")
	doc.Nodes[0].Name = ""

	m, err := FromDocument("shirt", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"pocket_mesh"}, m.Manifest())
}

func TestFromDocumentBakesNodeTranslation(t *testing.T) {
	doc := triangleDoc("cuff")
	doc.Nodes[0].Translation[1] = 2

	m, err := FromDocument("shirt", doc)
	require.NoError(t, err)
	p, _ := m.Part("cuff")
	assert.InDelta(t, 2, p.BoundsMin.Y, 1e-9)
	assert.InDelta(t, 3, p.BoundsMax.Y, 1e-9)
}

func TestFromDocumentAppliesParentTransform(t *testing.T) {
	doc := triangleDoc("sleeve")
	// wrap the mesh node in a parent that doubles its size
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "root", Children: []int{0}})
	doc.Nodes[1].Scale[0], doc.Nodes[1].Scale[1], doc.Nodes[1].Scale[2] = 2, 2, 2
	doc.Scenes[0].Nodes = []int{1}

	m, err := FromDocument("shirt", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"sleeve"}, m.Manifest())
	p, _ := m.Part("sleeve")
	assert.InDelta(t, 2, p.BoundsMax.X, 1e-9)
}

func TestFromDocumentComputesMissingNormals(t *testing.T) {
	m, err := FromDocument("shirt", triangleDoc("body"))
	require.NoError(t, err)
	p, _ := m.Part("body")
	for i := range p.VertexCount() {
		_, n, _ := p.GetVertex(i)
		assert.InDelta(t, 1, n.Z, 1e-9, "counter-clockwise triangle faces +Z")
	}
}

func TestFromDocumentWithoutMeshes(t *testing.T) {
	_, err := FromDocument("empty", &gltf.Document{})
	assert.ErrorIs(t, err, ErrNoMeshes)
}

func TestDuplicateNamesMerge(t *testing.T) {
	m, err := FromDocument("shirt", triangleDoc("button", "button"))
	require.NoError(t, err)
	assert.Equal(t, []string{"button"}, m.Manifest())
	p, _ := m.Part("button")
	assert.Equal(t, 2, p.TriangleCount())
	assert.Equal(t, [3]int{3, 5, 4}, p.GetFace(1))
}

func TestNormalize(t *testing.T) {
	a := NewPlane("a", 2, 1)
	b := NewPlane("b", 2, 1)
	b.Transform(math3d.Translate(math3d.V3(0, 3, 0)))
	m := NewModel("m", a, b)

	m.Normalize(5)

	lo, hi, ok := m.Bounds()
	require.True(t, ok)
	size := hi.Sub(lo)
	assert.InDelta(t, 5, math.Max(size.X, size.Y), 1e-9)
	center := lo.Add(hi).Scale(0.5)
	assert.InDelta(t, 0, center.Len(), 1e-9)
}

func TestPlaneNormalsSurviveRecompute(t *testing.T) {
	p := NewPlane("monogram", 0.8, 0.4)
	p.CalculateSmoothNormals()
	for _, v := range p.Vertices {
		assert.InDelta(t, 1, v.Normal.Z, 1e-9)
	}
	lo, hi := p.GetBounds()
	assert.InDelta(t, -0.4, lo.X, 1e-9)
	assert.InDelta(t, 0.2, hi.Y, 1e-9)
}
