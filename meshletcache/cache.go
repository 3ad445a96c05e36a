// Package meshletcache (de)serializes mesh.Meshlet slices to the on-disk
// format in spec.md §4.C: a small binary header followed by each meshlet's
// index arrays and bounding sphere, little-endian throughout.
//
// The cache is keyed by a content-derived filename so cache files for
// different source meshes never collide. No pack example repo depends on a
// dedicated fast-hash library (wyhash, xxhash, or similar) for this kind of
// non-cryptographic path hashing, so this uses the standard library's
// hash/fnv (FNV-1a, 64-bit) — the idiomatic dependency-free Go answer to
// exactly this problem, and, like wyhash, a non-cryptographic hash chosen
// purely for speed and distribution, not security.
package meshletcache

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucidpixel/raster3d/mesh"
)

const (
	magic          = "MSHL"
	currentVersion = uint32(1)
)

// ErrCacheMiss is returned by Load whenever the cache should be silently
// regenerated: a missing cache file, bad magic, version mismatch, or
// index/count validation failure. It is never returned for other I/O errors
// (those propagate the
// underlying error), matching spec.md §7's "cache errors are silently
// downgraded to regenerate, IO errors propagate" split.
var ErrCacheMiss = errors.New("meshletcache: cache miss")

// Path returns the deterministic cache file path for a given source mesh
// path, per spec.md §4.C: "cache/" + stem + "-" + hex(hash) + ".meshlets".
func Path(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	h := fnv.New64a()
	_, _ = io.WriteString(h, sourcePath)
	return filepath.Join("cache", fmt.Sprintf("%s-%x.meshlets", stem, h.Sum64()))
}

// Store writes meshlets for a mesh with the given vertex/triangle counts to
// path, creating parent directories as needed.
func Store(path string, vertexCount, triangleCount int, meshlets []mesh.Meshlet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("meshletcache: creating cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshletcache: creating cache file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeHeader(w, uint32(vertexCount), uint32(triangleCount), uint32(len(meshlets))); err != nil {
		return err
	}
	for _, ml := range meshlets {
		if err := writeMeshlet(w, ml); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("meshletcache: flushing cache file: %w", err)
	}
	return nil
}

func writeHeader(w io.Writer, vertexCount, triangleCount, meshletCount uint32) error {
	var hdr [20]byte
	copy(hdr[0:4], magic)
	binary.LittleEndian.PutUint32(hdr[4:8], currentVersion)
	binary.LittleEndian.PutUint32(hdr[8:12], vertexCount)
	binary.LittleEndian.PutUint32(hdr[12:16], triangleCount)
	binary.LittleEndian.PutUint32(hdr[16:20], meshletCount)
	_, err := w.Write(hdr[:])
	if err != nil {
		return fmt.Errorf("meshletcache: writing header: %w", err)
	}
	return nil
}

func writeMeshlet(w io.Writer, ml mesh.Meshlet) error {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(ml.VertexIndices)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(ml.TriangleIndices)))
	if _, err := w.Write(buf[:8]); err != nil {
		return fmt.Errorf("meshletcache: writing meshlet counts: %w", err)
	}

	binary.LittleEndian.PutUint32(buf[0:4], float32Bits(ml.BoundsCenter.X))
	binary.LittleEndian.PutUint32(buf[4:8], float32Bits(ml.BoundsCenter.Y))
	binary.LittleEndian.PutUint32(buf[8:12], float32Bits(ml.BoundsCenter.Z))
	binary.LittleEndian.PutUint32(buf[12:16], float32Bits(ml.BoundsRadius))
	if _, err := w.Write(buf[:16]); err != nil {
		return fmt.Errorf("meshletcache: writing meshlet bounds: %w", err)
	}

	if err := writeUint32s(w, ml.VertexIndices); err != nil {
		return err
	}
	if err := writeUint32s(w, ml.TriangleIndices); err != nil {
		return err
	}
	return nil
}

func writeUint32s(w io.Writer, vals []uint32) error {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("meshletcache: writing indices: %w", err)
	}
	return nil
}

// Load reads meshlets from path, validating them against the source mesh's
// current vertex/triangle counts. A missing file or any structural problem
// (bad magic/version, count mismatch, truncation, out-of-range index)
// returns ErrCacheMiss; any other read failure returns a wrapped error —
// callers should treat
// both as "regenerate", but may want to distinguish a genuinely broken disk
// from a stale cache for logging.
func Load(path string, vertexCount, triangleCount int) ([]mesh.Meshlet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("meshletcache: reading cache file: %w", err)
	}

	if len(data) < 20 {
		return nil, ErrCacheMiss
	}
	if string(data[0:4]) != magic {
		return nil, ErrCacheMiss
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != currentVersion {
		return nil, ErrCacheMiss
	}
	vc := binary.LittleEndian.Uint32(data[8:12])
	tc := binary.LittleEndian.Uint32(data[12:16])
	if vc != uint32(vertexCount) || tc != uint32(triangleCount) {
		return nil, ErrCacheMiss
	}
	meshletCount := binary.LittleEndian.Uint32(data[16:20])

	meshlets := make([]mesh.Meshlet, meshletCount)
	off := 20
	for i := range meshlets {
		ml, n, ok := readMeshlet(data[off:], vertexCount, triangleCount)
		if !ok {
			return nil, ErrCacheMiss
		}
		meshlets[i] = ml
		off += n
	}
	return meshlets, nil
}

func readMeshlet(data []byte, vertexCount, triangleCount int) (mesh.Meshlet, int, bool) {
	if len(data) < 24 {
		return mesh.Meshlet{}, 0, false
	}
	vCount := binary.LittleEndian.Uint32(data[0:4])
	tCount := binary.LittleEndian.Uint32(data[4:8])
	center := newV3(
		float32FromBits(binary.LittleEndian.Uint32(data[8:12])),
		float32FromBits(binary.LittleEndian.Uint32(data[12:16])),
		float32FromBits(binary.LittleEndian.Uint32(data[16:20])),
	)
	radius := float32FromBits(binary.LittleEndian.Uint32(data[20:24]))

	need := 24 + 4*int(vCount) + 4*int(tCount)
	if len(data) < need {
		return mesh.Meshlet{}, 0, false
	}

	vertexIndices := make([]uint32, vCount)
	off := 24
	for i := range vertexIndices {
		idx := binary.LittleEndian.Uint32(data[off:])
		if int(idx) >= vertexCount {
			return mesh.Meshlet{}, 0, false
		}
		vertexIndices[i] = idx
		off += 4
	}
	triangleIndices := make([]uint32, tCount)
	for i := range triangleIndices {
		idx := binary.LittleEndian.Uint32(data[off:])
		if int(idx) >= triangleCount {
			return mesh.Meshlet{}, 0, false
		}
		triangleIndices[i] = idx
		off += 4
	}

	return mesh.Meshlet{
		VertexIndices:   vertexIndices,
		TriangleIndices: triangleIndices,
		BoundsCenter:    center,
		BoundsRadius:    radius,
	}, need, true
}
