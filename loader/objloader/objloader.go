// Package objloader parses Wavefront OBJ files into mesh.Mesh. No OBJ
// parsing library appears anywhere in the example corpus; a hand-rolled
// bufio.Scanner line parser is the universal idiom for this even in
// production Go geometry code (see the navmesh OBJ loader referenced in
// DESIGN.md), so that's what this package does.
package objloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/vecmath"
)

// defaultColor is the base_color assigned to every triangle; OBJ has no
// per-face color of its own in the subset this loader supports (materials
// are out of scope, per spec.md §1's "out of scope: the OBJ loader" -
// this package exists only to produce the Mesh the core consumes).
const defaultColor = 0xFFC8C8C8

// Load reads path and returns the resulting Mesh, fan-triangulating any
// polygon face with more than 3 vertices.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objloader: opening %s: %w", path, err)
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("objloader: parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse reads OBJ data from r. Supported directives: v, vt, f (triangle or
// polygon, fan-triangulated). Only the vertex index of each face corner is
// used: texcoord and normal indices in the v/vt and v/vt/vn forms are
// accepted but ignored, and face normals are always recomputed from
// geometry. vt entries are taken as parallel to v entries in file order;
// if their counts differ, TexCoords is zero-filled instead.
func Parse(r io.Reader) (*mesh.Mesh, error) {
	var vertices []vecmath.V3
	var texCoords []vecmath.V2
	var triangles []mesh.Triangle

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseV3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)
		case "vt":
			uv, err := parseV2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			texCoords = append(texCoords, uv)
		case "f":
			faceTriangles, err := parseFace(fields[1:], len(vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			triangles = append(triangles, faceTriangles...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	if len(texCoords) != len(vertices) {
		texCoords = make([]vecmath.V2, len(vertices))
	}

	m := &mesh.Mesh{Vertices: vertices, TexCoords: texCoords, Triangles: triangles}
	m.RecomputeFaceNormals()
	return m, nil
}

func parseV3(fields []string) (vecmath.V3, error) {
	if len(fields) < 3 {
		return vecmath.V3{}, fmt.Errorf("objloader: vertex needs 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vecmath.V3{}, fmt.Errorf("objloader: bad vertex x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vecmath.V3{}, fmt.Errorf("objloader: bad vertex y: %w", err)
	}
	z, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return vecmath.V3{}, fmt.Errorf("objloader: bad vertex z: %w", err)
	}
	return vecmath.NewV3(float32(x), float32(y), float32(z)), nil
}

func parseV2(fields []string) (vecmath.V2, error) {
	if len(fields) < 2 {
		return vecmath.V2{}, fmt.Errorf("objloader: texcoord needs 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vecmath.V2{}, fmt.Errorf("objloader: bad texcoord u: %w", err)
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vecmath.V2{}, fmt.Errorf("objloader: bad texcoord v: %w", err)
	}
	return vecmath.V2{X: float32(u), Y: float32(v)}, nil
}

// parseFace fan-triangulates an OBJ face directive ("v/vt/vn" or "v" per
// vertex, 1-based, negative indices relative to the current vertex count).
func parseFace(fields []string, vertexCount int) ([]mesh.Triangle, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("objloader: face needs >= 3 vertices, got %d", len(fields))
	}
	idx := make([]uint32, len(fields))
	for i, f := range fields {
		vi, err := parseFaceIndex(strings.Split(f, "/")[0], vertexCount)
		if err != nil {
			return nil, err
		}
		idx[i] = vi
	}

	tris := make([]mesh.Triangle, 0, len(idx)-2)
	for i := 1; i < len(idx)-1; i++ {
		tris = append(tris, mesh.Triangle{
			V0:        idx[0],
			V1:        idx[i],
			V2:        idx[i+1],
			BaseColor: defaultColor,
		})
	}
	return tris, nil
}

func parseFaceIndex(s string, vertexCount int) (uint32, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("objloader: bad face index %q: %w", s, err)
	}
	if n < 0 {
		n = vertexCount + n + 1
	}
	if n < 1 || n > vertexCount {
		return 0, fmt.Errorf("objloader: face index %d out of range [1,%d]", n, vertexCount)
	}
	return uint32(n - 1), nil
}
