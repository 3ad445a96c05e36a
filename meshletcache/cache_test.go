package meshletcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucidpixel/raster3d/mesh"
	"github.com/lucidpixel/raster3d/vecmath"
)

func sampleMeshlets() []mesh.Meshlet {
	return []mesh.Meshlet{
		{
			VertexIndices:   []uint32{0, 1, 2},
			TriangleIndices: []uint32{0},
			BoundsCenter:    vecmath.NewV3(1, 2, 3),
			BoundsRadius:    1.5,
		},
		{
			VertexIndices:   []uint32{2, 3, 4},
			TriangleIndices: []uint32{1},
			BoundsCenter:    vecmath.NewV3(-1, 0, 2),
			BoundsRadius:    2.25,
		},
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.meshlets")
	want := sampleMeshlets()

	if err := Store(path, 5, 2, want); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := Load(path, 5, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d meshlets, want %d", len(got), len(want))
	}
	for i := range want {
		if !equalMeshlet(got[i], want[i]) {
			t.Errorf("meshlet %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadRejectsCorruptMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.meshlets")
	if err := Store(path, 5, 2, sampleMeshlets()); err != nil {
		t.Fatalf("Store: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[0] = 'X'
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path, 5, 2); err != ErrCacheMiss {
		t.Errorf("Load with corrupt magic = %v, want ErrCacheMiss", err)
	}
}

func TestLoadRejectsCountMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.meshlets")
	if err := Store(path, 5, 2, sampleMeshlets()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := Load(path, 99, 2); err != ErrCacheMiss {
		t.Errorf("Load with mismatched vertex count = %v, want ErrCacheMiss", err)
	}
}

func TestLoadRejectsOutOfRangeIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.meshlets")
	bad := []mesh.Meshlet{{
		VertexIndices:   []uint32{0, 1, 99},
		TriangleIndices: []uint32{0},
	}}
	if err := Store(path, 5, 2, bad); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := Load(path, 5, 2); err != ErrCacheMiss {
		t.Errorf("Load with out-of-range vertex index = %v, want ErrCacheMiss", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.meshlets"), 1, 1); err != ErrCacheMiss {
		t.Errorf("Load of missing file = %v, want ErrCacheMiss", err)
	}
}

func TestPathIsStableAndFilesystemSafe(t *testing.T) {
	p1 := Path("/assets/models/dragon.obj")
	p2 := Path("/assets/models/dragon.obj")
	if p1 != p2 {
		t.Errorf("Path is not deterministic: %q vs %q", p1, p2)
	}
	if filepath.Dir(p1) != "cache" {
		t.Errorf("Path dir = %q, want cache", filepath.Dir(p1))
	}
}

func equalMeshlet(a, b mesh.Meshlet) bool {
	if len(a.VertexIndices) != len(b.VertexIndices) || len(a.TriangleIndices) != len(b.TriangleIndices) {
		return false
	}
	for i := range a.VertexIndices {
		if a.VertexIndices[i] != b.VertexIndices[i] {
			return false
		}
	}
	for i := range a.TriangleIndices {
		if a.TriangleIndices[i] != b.TriangleIndices[i] {
			return false
		}
	}
	return a.BoundsCenter == b.BoundsCenter && a.BoundsRadius == b.BoundsRadius
}
