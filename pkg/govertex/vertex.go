// Package govertex implements board coordinates for a Go (Baduk) board: a
// padded grid where every real point has four well-defined neighbors, plus
// the sentinel values a move can take (Pass, Resign, off-board).
package govertex

import "fmt"

// Color is the three-valued occupancy of a point on the board.
type Color int8

const (
	Empty Color = iota
	Black
	White
	OffBoard
)

func (c Color) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Black:
		return "Black"
	case White:
		return "White"
	case OffBoard:
		return "OffBoard"
	}
	return fmt.Sprintf("Color(%d)", int8(c))
}

// Player is the two-valued subset of Color that can actually move.
type Player Color

const (
	PlayerBlack = Player(Black)
	PlayerWhite = Player(White)
)

// Opponent is the involution swapping Black and White.
func (p Player) Opponent() Player {
	switch p {
	case PlayerBlack:
		return PlayerWhite
	case PlayerWhite:
		return PlayerBlack
	}
	panic(fmt.Sprintf("not a player color: %v", Color(p)))
}

func (p Player) Color() Color { return Color(p) }

func (p Player) String() string { return Color(p).String() }

// ParsePlayer parses the usual GTP color spellings.
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "b", "B", "black", "Black", "BLACK":
		return PlayerBlack, true
	case "w", "W", "white", "White", "WHITE":
		return PlayerWhite, true
	}
	return 0, false
}

// Vertex is an index into a padded (N+2)x(N+2) grid: every real vertex
// (r,c), 0-based, maps to (r+1)*stride + (c+1), where stride = N+2. This
// keeps every neighbor lookup branch-free: the border ring is filled with
// OffBoard instead of being bounds-checked on every move.
type Vertex int32

const (
	// Pass is not a point on the grid; it's the reserved zero value.
	Pass Vertex = 0
	// Resign is reserved for external callers (see GLOSSARY); the playout
	// policy in pkg/playout never produces it.
	Resign Vertex = -1
)

// Geometry holds the padded-grid layout for one board size. It is
// immutable once built and safe to share between boards of the same size.
type Geometry struct {
	size   int
	stride int // N+2

	// dir is the offset to add to reach the (N, S, E, W) neighbor, in that
	// order, matching spec.md §4.1's "(N,S,E,W)" neighbor enumeration.
	dir [4]Vertex
	// diag is the offset to reach the (NE, SE, SW, NW) diagonal neighbor.
	diag [4]Vertex

	all []Vertex // every real vertex, row-major
}

// NewGeometry builds the padded-grid offsets for an NxN board. Supported
// sizes per spec.md §6 are 9, 13, and 19, but any size in [1, 25] works.
func NewGeometry(n int) *Geometry {
	if n < 1 || n > 25 {
		panic(fmt.Sprintf("unsupported board size: %d", n))
	}
	stride := n + 2
	g := &Geometry{
		size:   n,
		stride: stride,
		dir: [4]Vertex{
			Vertex(-stride), // N
			Vertex(stride),  // S
			Vertex(1),       // E
			Vertex(-1),      // W
		},
		diag: [4]Vertex{
			Vertex(-stride + 1), // NE
			Vertex(stride + 1),  // SE
			Vertex(stride - 1),  // SW
			Vertex(-stride - 1), // NW
		},
		all: make([]Vertex, 0, n*n),
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			g.all = append(g.all, g.At(r, c))
		}
	}
	return g
}

// Size returns N, the board side length.
func (g *Geometry) Size() int { return g.size }

// GridLen returns the number of cells (real + border) in the padded grid,
// i.e. the required length of any array indexed by Vertex.
func (g *Geometry) GridLen() int { return g.stride * g.stride }

// At returns the Vertex for 0-based (row, col).
func (g *Geometry) At(row, col int) Vertex {
	return Vertex((row+1)*g.stride + (col + 1))
}

// RowCol returns the 0-based (row, col) for a real vertex.
func (g *Geometry) RowCol(v Vertex) (row, col int) {
	row = int(v)/g.stride - 1
	col = int(v)%g.stride - 1
	return
}

// All returns every real vertex on the board, row-major. Callers must not
// mutate the returned slice.
func (g *Geometry) All() []Vertex { return g.all }

// Neighbor returns the neighbor of v in direction dir in [0,4), ordered
// (N, S, E, W). The result may be OffBoard-backed; callers index occupancy
// arrays with it directly, no bounds check required.
func (g *Geometry) Neighbor(v Vertex, dir int) Vertex { return v + g.dir[dir] }

// DiagNeighbor returns the diagonal neighbor of v in direction dir in
// [0,4), ordered (NE, SE, SW, NW).
func (g *Geometry) DiagNeighbor(v Vertex, dir int) Vertex { return v + g.diag[dir] }

// IsOnBoard reports whether v indexes one of the N*N real points (as
// opposed to the border ring, Pass, or Resign).
func (g *Geometry) IsOnBoard(v Vertex) bool {
	if v <= 0 {
		return false
	}
	row := int(v)/g.stride - 1
	col := int(v)%g.stride - 1
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

func (v Vertex) IsPass() bool   { return v == Pass }
func (v Vertex) IsResign() bool { return v == Resign }

// String renders a vertex in GTP coordinates (letters skip 'I'), or "pass"/
// "resign" for the sentinels. It needs the board geometry to decode the
// padded-grid index into a row and column.
func (v Vertex) String(g *Geometry) string {
	switch {
	case v.IsPass():
		return "pass"
	case v.IsResign():
		return "resign"
	}
	row, col := g.RowCol(v)
	letter := byte('A') + byte(col)
	if letter >= 'I' {
		letter++
	}
	return fmt.Sprintf("%c%d", letter, row+1)
}

// ParseVertex parses GTP coordinates ("pass", "resign", or e.g. "Q16") for
// the given board geometry.
func ParseVertex(g *Geometry, s string) (Vertex, bool) {
	switch s {
	case "pass", "PASS", "Pass":
		return Pass, true
	case "resign", "RESIGN", "Resign":
		return Resign, true
	}
	if len(s) < 2 {
		return 0, false
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return 0, false
	}
	col := int(letter - 'A')
	if letter > 'I' {
		col--
	}
	row := 0
	for i := 1; i < len(s); i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return 0, false
		}
		row = row*10 + int(d-'0')
	}
	row--
	if col < 0 || col >= g.size || row < 0 || row >= g.size {
		return 0, false
	}
	return g.At(row, col), true
}
