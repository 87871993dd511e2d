package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/painter/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ReadOBJ(f, filepath.Base(path))
}

// ReadOBJ parses OBJ geometry from r. Only vertex positions (v) and faces
// (f) are used; faces with more than three corners are fan triangulated.
// Indices are 1-based, negative indices count back from the latest vertex.
func ReadOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	var verts []math3d.Vec3

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, line, err)
			}
			verts = append(verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: %w: face needs 3 vertices, got %d",
					name, line, ErrMalformedOBJ, len(fields)-1)
			}
			corners := make([]math3d.Vec3, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveIndex(ref, len(verts))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, line, err)
				}
				corners = append(corners, verts[idx])
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Add(Tri(corners[0], corners[i], corners[i+1]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: vertex needs 3 coordinates", ErrMalformedOBJ)
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %w", ErrMalformedOBJ, err)
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}

// resolveIndex turns a face reference such as "7", "7/2" or "-1//3" into a
// zero-based index into a vertex list of length n.
func resolveIndex(ref string, n int) (int, error) {
	head, _, _ := strings.Cut(ref, "/")
	i, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: face index %q", ErrMalformedOBJ, ref)
	}

	idx := i - 1
	if i < 0 {
		idx = n + i
	}
	if i == 0 || idx < 0 || idx >= n {
		return 0, fmt.Errorf("%w: vertex %d of %d", ErrMalformedMeshReference, i, n)
	}
	return idx, nil
}
