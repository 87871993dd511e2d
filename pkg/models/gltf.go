package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/painter/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// ApplyNodeTransforms places each mesh with its node's translation,
	// rotation and scale instead of at the origin.
	ApplyNodeTransforms bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ApplyNodeTransforms: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) or JSON (.gltf) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	if err := l.Decode(doc, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// Decode appends the triangles of every mesh in doc to mesh.
func (l *GLTFLoader) Decode(doc *gltf.Document, mesh *Mesh) error {
	placed := make(map[int]bool)
	if l.ApplyNodeTransforms {
		for _, node := range doc.Nodes {
			if node.Mesh == nil {
				continue
			}
			idx := *node.Mesh
			if idx < 0 || idx >= len(doc.Meshes) {
				return fmt.Errorf("node %q: %w: mesh %d", node.Name, ErrMalformedMeshReference, idx)
			}
			if err := l.processMesh(doc, doc.Meshes[idx], nodeMatrix(node), mesh); err != nil {
				return fmt.Errorf("process mesh %q: %w", doc.Meshes[idx].Name, err)
			}
			placed[idx] = true
		}
	}

	// Meshes not referenced by any node are loaded untransformed
	for i, m := range doc.Meshes {
		if placed[i] {
			continue
		}
		if err := l.processMesh(doc, m, math3d.Identity(), mesh); err != nil {
			return fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return nil
}

// nodeMatrix returns the node's local transform. Only the node itself is
// considered; parent transforms are not accumulated.
func nodeMatrix(node *gltf.Node) math3d.Mat4 {
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	// Quaternion (x, y, z, w) to rotation matrix
	x, y, z, w := r[0], r[1], r[2], r[3]
	rot := math3d.Mat4{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}

	return math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(rot).
		Mul(math3d.Scale(math3d.V3(s[0], s[1], s[2])))
}

// processMesh extracts the triangles of a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, place math3d.Mat4, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		for i := range positions {
			positions[i] = place.MulVec3(positions[i])
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			for _, idx := range []int{a, b, c} {
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("%w: index %d of %d vertices", ErrMalformedMeshReference, idx, len(positions))
				}
			}
			mesh.Add(Tri(positions[a], positions[b], positions[c]))
		}
	}

	return nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrMalformedMeshReference, idx)
	}
	return doc.Accessors[idx], nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the slice of buffer data an accessor covers and the
// stride between elements, checking that every element lies inside the
// buffer.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("%w: buffer view %d", ErrMalformedMeshReference, *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("%w: buffer %d", ErrMalformedMeshReference, bufferView.Buffer)
	}

	// gltf.Open resolves both embedded (GLB) and external buffers into Data
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	count := accessor.Count
	if count == 0 {
		return nil, stride, nil
	}

	end := start + (count-1)*stride + elemSize
	if start < 0 || end > len(bufData) {
		return nil, 0, fmt.Errorf("%w: accessor spans bytes %d..%d of %d", ErrMalformedMeshReference, start, end, len(bufData))
	}
	return bufData[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
