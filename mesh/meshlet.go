package mesh

import "github.com/lucidpixel/raster3d/vecmath"

// Meshlet is a small triangle cluster with a bounding sphere, suitable for
// coarse culling. See spec.md §3 for its invariants.
type Meshlet struct {
	VertexIndices   []uint32
	TriangleIndices []uint32
	BoundsCenter    vecmath.V3
	BoundsRadius    float32
}

const (
	// DefaultVertexBudget is V_MAX's default.
	DefaultVertexBudget = 64
	// DefaultTriangleBudget is T_MAX's default.
	DefaultTriangleBudget = 126

	minVertexBudget   = 3
	minTriangleBudget = 1
)

// GenerateMeshlets greedily packs m's triangles (consumed in stored order)
// into meshlets bounded by vMax vertices and tMax triangles each. Packing
// is deterministic: within a meshlet, the vertex and triangle sequences are
// in first-referenced / consumption order, and every input triangle ends up
// in exactly one output meshlet.
func GenerateMeshlets(m *Mesh, vMax, tMax int) []Meshlet {
	if vMax < minVertexBudget {
		vMax = minVertexBudget
	}
	if tMax < minTriangleBudget {
		tMax = minTriangleBudget
	}

	var out []Meshlet
	if len(m.Triangles) == 0 {
		return out
	}

	b := newBuilder(vMax, tMax)
	for triIdx := 0; triIdx < len(m.Triangles); {
		tri := m.Triangles[triIdx]
		added := b.newVertexCount(tri)
		if (len(b.vertices)+added > vMax || len(b.triIndices) >= tMax) && len(b.triIndices) > 0 {
			ml := b.flush()
			computeBounds(m, &ml)
			out = append(out, ml)
			continue // retry this triangle against a fresh meshlet
		}
		b.add(uint32(triIdx), tri)
		triIdx++
	}
	if len(b.triIndices) > 0 {
		ml := b.flush()
		computeBounds(m, &ml)
		out = append(out, ml)
	}
	return out
}

// builder accumulates one in-progress meshlet.
type builder struct {
	mesh       *Mesh
	vMax, tMax int

	vertices    []uint32 // insertion order
	membership  map[uint32]bool
	triIndices  []uint32
}

func newBuilder(vMax, tMax int) *builder {
	return &builder{
		vMax:       vMax,
		tMax:       tMax,
		membership: make(map[uint32]bool),
	}
}

func (b *builder) newVertexCount(tri Triangle) int {
	added := 0
	for _, v := range [3]uint32{tri.V0, tri.V1, tri.V2} {
		if !b.membership[v] {
			added++
		}
	}
	return added
}

func (b *builder) add(triIdx uint32, tri Triangle) {
	for _, v := range [3]uint32{tri.V0, tri.V1, tri.V2} {
		if !b.membership[v] {
			b.membership[v] = true
			b.vertices = append(b.vertices, v)
		}
	}
	b.triIndices = append(b.triIndices, triIdx)
}

func (b *builder) flush() Meshlet {
	ml := Meshlet{
		VertexIndices:   b.vertices,
		TriangleIndices: b.triIndices,
	}
	b.vertices = nil
	b.triIndices = nil
	b.membership = make(map[uint32]bool)
	return ml
}

// computeBounds fills BoundsCenter/BoundsRadius for ml using m's vertex
// positions. Callers must call this once per meshlet before use; it is kept
// separate from flush so GenerateMeshlets can run with only Mesh available
// for lookups while the builder stays mesh-agnostic about positions.
func computeBounds(m *Mesh, ml *Meshlet) {
	if len(ml.VertexIndices) == 0 {
		return
	}
	var sum vecmath.V3
	for _, vi := range ml.VertexIndices {
		sum = sum.Add(m.Vertices[vi])
	}
	center := sum.Scale(1 / float32(len(ml.VertexIndices)))

	var maxR float32
	for _, vi := range ml.VertexIndices {
		d := m.Vertices[vi].Sub(center).Length()
		if d > maxR {
			maxR = d
		}
	}
	ml.BoundsCenter = center
	ml.BoundsRadius = maxR
}
