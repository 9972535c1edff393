// Package chain implements the union-find chain model from spec.md §3/§4.2:
// maximal same-color groups tracked by a flat, array-indexed union-find,
// each carrying a first- and second-order pseudo-liberty sum so atari can
// be detected in O(1) without walking neighbors.
//
// This redesigns the teacher repo's (skybrian/gongo) markSurroundedChain,
// which rescans the board's neighbor graph on every capture/suicide check.
// The "cyclic graph problem" (spec.md §9) is resolved the same way the
// teacher resolves it: chains and stones both live in flat arrays indexed
// by vertex, no heap graph.
package chain

import "github.com/tesuji/gocore/pkg/govertex"

// Chains tracks, for every vertex on a padded grid, which union-find chain
// it belongs to and that chain's running liberty statistics. It holds no
// reference to board occupancy; callers (pkg/board) supply empty-neighbor
// counts computed from their own color array.
type Chains struct {
	parent []govertex.Vertex // union-find parent; parent[v]==v at a representative
	ring   []govertex.Vertex // circular same-chain member list

	size   []int32 // stone count, meaningful only at the representative
	libs   []int32 // pseudo-liberties, meaningful only at the representative
	libsSq []int64 // second-order pseudo-liberties, meaningful only at the representative
}

// New allocates chain bookkeeping for a grid of gridLen vertices
// (govertex.Geometry.GridLen()).
func New(gridLen int) *Chains {
	return &Chains{
		parent: make([]govertex.Vertex, gridLen),
		ring:   make([]govertex.Vertex, gridLen),
		size:   make([]int32, gridLen),
		libs:   make([]int32, gridLen),
		libsSq: make([]int64, gridLen),
	}
}

// Find returns the representative of v's chain, compressing the path
// traversed so future lookups are cheaper. v must currently be occupied.
func (c *Chains) Find(v govertex.Vertex) govertex.Vertex {
	root := v
	for c.parent[root] != root {
		root = c.parent[root]
	}
	for c.parent[v] != root {
		c.parent[v], v = root, c.parent[v]
	}
	return root
}

// Place creates a new singleton chain at v, with the given first- and
// second-order pseudo-liberty sums (computed by the caller from v's
// immediate empty neighbors).
func (c *Chains) Place(v govertex.Vertex, libs int32, libsSq int64) {
	c.parent[v] = v
	c.ring[v] = v
	c.size[v] = 1
	c.libs[v] = libs
	c.libsSq[v] = libsSq
}

// Union merges the chains containing a and b (which must currently be in
// different chains of the same color) and returns the resulting
// representative. Liberty sums are summed directly: pseudo-liberties are
// deliberately additive, double-counting a shared liberty once per
// adjacent stone, so no special-casing is needed for merges.
func (c *Chains) Union(a, b govertex.Vertex) govertex.Vertex {
	ra, rb := c.Find(a), c.Find(b)
	if ra == rb {
		return ra
	}
	if c.size[ra] < c.size[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	c.size[ra] += c.size[rb]
	c.libs[ra] += c.libs[rb]
	c.libsSq[ra] += c.libsSq[rb]
	c.ring[ra], c.ring[rb] = c.ring[rb], c.ring[ra]
	return ra
}

// AdjustLibs applies a delta to a chain's pseudo-liberty moments. root
// must be a representative (the result of Find).
func (c *Chains) AdjustLibs(root govertex.Vertex, deltaLibs int32, deltaLibsSq int64) {
	c.libs[root] += deltaLibs
	c.libsSq[root] += deltaLibsSq
}

// Size returns the stone count of the chain rooted at root.
func (c *Chains) Size(root govertex.Vertex) int32 { return c.size[root] }

// Libs returns the first-order pseudo-liberty sum of the chain rooted at root.
func (c *Chains) Libs(root govertex.Vertex) int32 { return c.libs[root] }

// LibsSq returns the second-order pseudo-liberty sum of the chain rooted at root.
func (c *Chains) LibsSq(root govertex.Vertex) int64 { return c.libsSq[root] }

// InAtari reports whether the chain rooted at root has exactly one
// distinct liberty, using the moment identity from spec.md §3:
// pseudo² == size × second_order iff every stone's empty-neighbor count
// contributes to the same single liberty vertex.
func (c *Chains) InAtari(root govertex.Vertex) bool {
	libs := int64(c.libs[root])
	return libs*libs == int64(c.size[root])*c.libsSq[root]
}

// Members appends every vertex in the chain rooted at root to dst and
// returns the result, walking the chain's circular member list in O(size).
// dst is typically a reused scratch slice so this allocates nothing once
// warmed up.
func (c *Chains) Members(root govertex.Vertex, dst []govertex.Vertex) []govertex.Vertex {
	v := root
	for {
		dst = append(dst, v)
		v = c.ring[v]
		if v == root {
			break
		}
	}
	return dst
}
