// Package zobrist computes incremental positional hashes for a Go board.
//
// The table layout and seeding follow the same pattern as
// herohde/morlock/pkg/board's ZobristTable: a table of pseudo-random
// uint64 keys generated once from a seed, XORed in and out as stones are
// placed and removed.
package zobrist

import (
	"math/rand"

	"github.com/tesuji/gocore/pkg/govertex"
)

// Hash is a 64-bit positional hash. OffBoard and Empty contribute nothing,
// so Hash(empty board) == 0, matching spec.md §8 scenario 1.
type Hash uint64

// Table holds 2*(N+2)^2 keys, one per (vertex, color) pair for
// color in {Black, White}, indexed directly by govertex.Vertex so placement
// never needs to check bounds.
type Table struct {
	black []Hash
	white []Hash
}

// New builds a Zobrist table for a grid of gridLen cells (govertex.Geometry.GridLen()),
// seeded deterministically so hashes are reproducible across processes.
func New(gridLen int, seed int64) *Table {
	r := rand.New(rand.NewSource(seed))
	t := &Table{
		black: make([]Hash, gridLen),
		white: make([]Hash, gridLen),
	}
	for v := 0; v < gridLen; v++ {
		t.black[v] = Hash(r.Uint64())
		t.white[v] = Hash(r.Uint64())
	}
	return t
}

// Key returns the Zobrist key for placing/removing color c at vertex v.
// Empty and OffBoard both return 0, so XORing them in is a no-op.
func (t *Table) Key(v govertex.Vertex, c govertex.Color) Hash {
	switch c {
	case govertex.Black:
		return t.black[v]
	case govertex.White:
		return t.white[v]
	}
	return 0
}
