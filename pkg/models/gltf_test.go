package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/painter/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.ApplyNodeTransforms {
		t.Error("ApplyNodeTransforms should default to true")
	}
}

func index(i int) *int {
	return &i
}

// quadDocument builds a document holding a unit quad (4 vertices, 2
// triangles) with the given index data.
func quadDocument(indices []uint16) *gltf.Document {
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}

	var data []byte
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: index(0), Count: 4, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: index(1), Count: len(indices), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    index(1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
	}
}

func TestGLTFDecode(t *testing.T) {
	doc := quadDocument([]uint16{0, 1, 2, 0, 2, 3})
	mesh := NewMesh("quad")

	require.NoError(t, NewGLTFLoader().Decode(doc, mesh))

	require.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math3d.V4(0, 0, 0, 1), mesh.Triangles[0].P[0])
	assert.Equal(t, math3d.V4(1, 0, 0, 1), mesh.Triangles[0].P[1])
	assert.Equal(t, math3d.V4(1, 1, 0, 1), mesh.Triangles[0].P[2])
	assert.Equal(t, math3d.V4(0, 1, 0, 1), mesh.Triangles[1].P[2])
	assert.Equal(t, math3d.V3(1, 1, 0), mesh.BoundsMax)
}

func TestGLTFDecodeNodeTransform(t *testing.T) {
	doc := quadDocument([]uint16{0, 1, 2})
	doc.Nodes = []*gltf.Node{{
		Name:        "moved",
		Mesh:        index(0),
		Translation: [3]float64{0, 0, 5},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{2, 2, 2},
	}}
	mesh := NewMesh("quad")

	require.NoError(t, NewGLTFLoader().Decode(doc, mesh))

	require.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, math3d.V4(2, 2, 5, 1), mesh.Triangles[0].P[2])
}

func TestGLTFDecodeBadIndex(t *testing.T) {
	doc := quadDocument([]uint16{0, 1, 9})
	err := NewGLTFLoader().Decode(doc, NewMesh("bad"))
	assert.ErrorIs(t, err, ErrMalformedMeshReference)
}

func TestGLTFDecodeTruncatedBuffer(t *testing.T) {
	doc := quadDocument([]uint16{0, 1, 2})
	doc.Accessors[0].Count = 40
	err := NewGLTFLoader().Decode(doc, NewMesh("short"))
	assert.ErrorIs(t, err, ErrMalformedMeshReference)
}

func TestGLTFDecodeMissingAccessor(t *testing.T) {
	doc := quadDocument([]uint16{0, 1, 2})
	doc.Meshes[0].Primitives[0].Attributes = map[string]int{gltf.POSITION: 7}
	err := NewGLTFLoader().Decode(doc, NewMesh("missing"))
	assert.ErrorIs(t, err, ErrMalformedMeshReference)
}
