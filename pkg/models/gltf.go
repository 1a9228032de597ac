package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/bespoke/pkg/math3d"
)

// ErrNoMeshes is returned when an asset contains no triangle geometry.
var ErrNoMeshes = errors.New("asset contains no meshes")

// maxDepth bounds scene-graph recursion on malformed assets.
const maxDepth = 64

// Load opens a .glb or .gltf file and flattens its scene into named parts.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FromDocument(name, doc)
}

// FromDocument builds a Model from a decoded glTF document. Every mesh node
// becomes a part named after the node (or its mesh), with node transforms
// baked into the vertex data.
func FromDocument(name string, doc *gltf.Document) (*Model, error) {
	model := NewModel(name)
	roots := sceneRoots(doc)

	if len(roots) == 0 && len(doc.Nodes) == 0 {
		// bare mesh list without a scene graph
		for i, m := range doc.Meshes {
			part, err := readMesh(doc, m, partName("", m, i))
			if err != nil {
				return nil, fmt.Errorf("mesh %d: %w", i, err)
			}
			if part.TriangleCount() > 0 {
				model.Add(part)
			}
		}
	} else {
		for _, r := range roots {
			if err := walk(doc, model, r, math3d.Identity(), 0); err != nil {
				return nil, err
			}
		}
	}

	if len(model.Parts) == 0 {
		return nil, ErrNoMeshes
	}
	for _, p := range model.Parts {
		if !p.hasNormals() {
			p.CalculateSmoothNormals()
		}
		p.CalculateBounds()
	}
	return model, nil
}

// sceneRoots returns the root nodes of the default scene, or every
// unparented node when the document declares no scenes.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func walk(doc *gltf.Document, model *Model, idx int, parent math3d.Mat4, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("node %d: scene graph deeper than %d", idx, maxDepth)
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("node %q: mesh index %d out of range", node.Name, *node.Mesh)
		}
		m := doc.Meshes[*node.Mesh]
		part, err := readMesh(doc, m, partName(node.Name, m, len(model.Parts)))
		if err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
		if part.TriangleCount() > 0 {
			part.Transform(world)
			model.Add(part)
		}
	}
	for _, c := range node.Children {
		if err := walk(doc, model, c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func partName(nodeName string, m *gltf.Mesh, i int) string {
	switch {
	case nodeName != "":
		return nodeName
	case m.Name != "":
		return m.Name
	default:
		return fmt.Sprintf("part_%d", i)
	}
}

// nodeMatrix returns the local transform of a node. An explicit matrix
// wins over TRS unless it is zero or identity.
func nodeMatrix(n *gltf.Node) math3d.Mat4 {
	var m math3d.Mat4
	id := math3d.Identity()
	explicit := false
	for i, v := range n.Matrix {
		m[i] = float64(v)
		if m[i] != 0 && m[i] != id[i] {
			explicit = true
		}
	}
	if explicit {
		return m
	}

	t := math3d.V3(float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2]))
	q := math3d.Quat{
		X: float64(n.Rotation[0]),
		Y: float64(n.Rotation[1]),
		Z: float64(n.Rotation[2]),
		W: float64(n.Rotation[3]),
	}
	s := math3d.V3(float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2]))
	if s == (math3d.Vec3{}) {
		s = math3d.V3(1, 1, 1)
	}
	return math3d.Compose(t, q, s)
}

// readMesh gathers the triangle primitives of a mesh into one part.
func readMesh(doc *gltf.Document, m *gltf.Mesh, name string) (*Part, error) {
	part := NewPart(name)
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readFloats(doc, posIdx, 3)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", pi, err)
		}
		var normals, uvs [][]float64
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readFloats(doc, idx, 3); err != nil {
				return nil, fmt.Errorf("primitive %d normals: %w", pi, err)
			}
		}
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readFloats(doc, idx, 2); err != nil {
				return nil, fmt.Errorf("primitive %d uvs: %w", pi, err)
			}
		}

		base := len(part.Vertices)
		for i, p := range positions {
			v := Vertex{Position: math3d.V3(p[0], p[1], p[2])}
			if i < len(normals) {
				v.Normal = math3d.V3(normals[i][0], normals[i][1], normals[i][2])
			}
			if i < len(uvs) {
				// glTF puts V=0 at the top of the image
				v.UV = math3d.V2(uvs[i][0], 1-uvs[i][1])
			}
			part.Vertices = append(part.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", pi, err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		// glTF winds counter-clockwise; store clockwise for screen space
		for i := 0; i+2 < len(indices); i += 3 {
			f := [3]int{base + indices[i], base + indices[i+2], base + indices[i+1]}
			if f[0] >= len(part.Vertices) || f[1] >= len(part.Vertices) || f[2] >= len(part.Vertices) {
				return nil, fmt.Errorf("primitive %d: index out of range", pi)
			}
			part.Faces = append(part.Faces, f)
		}
	}
	part.CalculateBounds()
	return part, nil
}

// accessorBytes resolves the backing bytes, start offset and element
// stride of an accessor.
func accessorBytes(doc *gltf.Document, idx int, elemSize int) ([]byte, int, int, *gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d has no buffer view", idx)
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer >= len(doc.Buffers) || doc.Buffers[view.Buffer].Data == nil {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d: buffer has no data", idx)
	}
	data := doc.Buffers[view.Buffer].Data
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if acc.Count > 0 && start+(acc.Count-1)*stride+elemSize > len(data) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d overruns its buffer", idx)
	}
	return data, start, stride, acc, nil
}

// readFloats reads an accessor of float32 components with n per element.
func readFloats(doc *gltf.Document, idx, n int) ([][]float64, error) {
	data, start, stride, acc, err := accessorBytes(doc, idx, 4*n)
	if err != nil {
		return nil, err
	}
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: unsupported component type %v", idx, acc.ComponentType)
	}
	out := make([][]float64, acc.Count)
	for i := range out {
		off := start + i*stride
		out[i] = make([]float64, n)
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[off+j*4:])
			out[i][j] = float64(math.Float32frombits(bits))
		}
	}
	return out, nil
}

// readIndices reads an unsigned scalar index accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	var size int
	switch doc.Accessors[idx].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("accessor %d: unsupported index type %v", idx, doc.Accessors[idx].ComponentType)
	}
	data, start, stride, acc, err := accessorBytes(doc, idx, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		off := start + i*stride
		switch size {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		default:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}
