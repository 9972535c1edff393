// Package board implements a single-owner, single-threaded Go (Baduk)
// board: legality checking, move execution, Zobrist hashing, and Chinese
// (area) scoring, built around the chain model in pkg/chain.
//
// Board has no internal locking and no goroutine safety: callers that want
// concurrent search clone a Board per worker (see Copy) rather than sharing
// one, the same division of labor the teacher repo's multirobot.go used a
// shared board for, redone here as one board per goroutine.
package board

import (
	"github.com/tesuji/gocore/pkg/chain"
	"github.com/tesuji/gocore/pkg/govertex"
	"github.com/tesuji/gocore/pkg/zobrist"
)

// Board is a padded-grid Go position plus enough history to enforce ko.
type Board struct {
	geo    *govertex.Geometry
	zob    *zobrist.Table
	chains *chain.Chains

	color []govertex.Color

	playerToMove govertex.Player
	koVertex     govertex.Vertex
	hash         zobrist.Hash
	lastMove     govertex.Vertex

	consecutivePasses int
	movesPlayed       int
	captures          int

	history     *superkoHistory
	enforceTurn bool
	seed        int64

	scratch []govertex.Vertex // reused by capture/suicide checks, never shrinks
}

// Option configures a Board at construction time.
type Option func(*Board)

// WithSeed fixes the Zobrist table's seed so hashes are reproducible across
// runs. The default seed is 1.
func WithSeed(seed int64) Option {
	return func(b *Board) { b.seed = seed }
}

// WithSuperkoWindow sets the positional-superko retention window: Disabled
// turns superko off (simple ko still applies), Unbounded (the spec's
// default) checks the whole game, and a positive N checks only the last N
// positions.
func WithSuperkoWindow(window int) Option {
	return func(b *Board) { b.history = newSuperkoHistory(window) }
}

// WithEnforceTurn makes IsLegalErr/PlayLegal reject a move whose player
// does not match PlayerToMove, instead of the default behavior of
// silently inserting a pass for the other side (see Play).
func WithEnforceTurn(enforce bool) Option {
	return func(b *Board) { b.enforceTurn = enforce }
}

// New builds an empty board of size n (9, 13, or 19 are the supported
// sizes per spec.md §6, but any size NewGeometry accepts works).
func New(n int, opts ...Option) *Board {
	b := &Board{
		geo:         govertex.NewGeometry(n),
		seed:        1,
		history:     newSuperkoHistory(Unbounded),
		enforceTurn: false,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.zob = zobrist.New(b.geo.GridLen(), b.seed)
	b.chains = chain.New(b.geo.GridLen())
	b.color = make([]govertex.Color, b.geo.GridLen())
	b.scratch = make([]govertex.Vertex, 0, n*n)
	b.Clear()
	return b
}

// Clear resets the board to empty with Black to move, as if newly constructed.
func (b *Board) Clear() {
	b.markOffBoard()
	b.playerToMove = govertex.PlayerBlack
	b.koVertex = govertex.Pass
	b.hash = 0
	b.lastMove = govertex.Pass
	b.consecutivePasses = 0
	b.movesPlayed = 0
	b.captures = 0
	b.history.reset()
}

// markOffBoard paints the border ring OffBoard so every neighbor lookup,
// even at the edge, reads a well-defined color without a bounds check.
func (b *Board) markOffBoard() {
	for i := range b.color {
		b.color[i] = govertex.OffBoard
	}
	for _, v := range b.geo.All() {
		b.color[v] = govertex.Empty
	}
}

// Geometry returns the board's coordinate system.
func (b *Board) Geometry() *govertex.Geometry { return b.geo }

// ColorAt returns the occupancy at v (Empty/Black/White/OffBoard).
func (b *Board) ColorAt(v govertex.Vertex) govertex.Color { return b.color[v] }

// PlayerToMove returns whose turn it is.
func (b *Board) PlayerToMove() govertex.Player { return b.playerToMove }

// Hash returns the board's current Zobrist hash.
func (b *Board) Hash() zobrist.Hash { return b.hash }

// Ko returns the vertex currently forbidden by simple ko, or Pass if none.
func (b *Board) Ko() govertex.Vertex { return b.koVertex }

// LastMove returns the most recently played vertex (which may be Pass).
func (b *Board) LastMove() govertex.Vertex { return b.lastMove }

// ConsecutivePasses returns how many passes have been played in a row.
func (b *Board) ConsecutivePasses() int { return b.consecutivePasses }

// MovesPlayed returns the total number of moves played (passes included,
// as well as the pass Play inserts for an out-of-turn move) since the last
// Clear.
func (b *Board) MovesPlayed() int { return b.movesPlayed }

// Captures returns the total number of stones captured since the last Clear.
func (b *Board) Captures() int { return b.captures }

// Copy returns an independent board with the same position and history
// depth, for callers that want to explore from the current position on
// another goroutine (spec.md §4.7's one-board-per-worker pattern).
func (b *Board) Copy() *Board {
	clone := &Board{
		geo:               b.geo,
		zob:               b.zob,
		chains:            chain.New(b.geo.GridLen()),
		color:             append([]govertex.Color(nil), b.color...),
		playerToMove:      b.playerToMove,
		koVertex:          b.koVertex,
		hash:              b.hash,
		lastMove:          b.lastMove,
		consecutivePasses: b.consecutivePasses,
		movesPlayed:       b.movesPlayed,
		captures:          b.captures,
		history:           b.history.clone(),
		enforceTurn:       b.enforceTurn,
		seed:              b.seed,
		scratch:           make([]govertex.Vertex, 0, cap(b.scratch)),
	}
	clone.rebuildChains()
	return clone
}

// rebuildChains recomputes union-find chains from the color array, used
// after Copy since chain.Chains holds no exported snapshot/restore of its
// own (cloning its flat arrays directly would be cheaper but would leak
// the package's internal layout across the boundary).
func (b *Board) rebuildChains() {
	visited := make(map[govertex.Vertex]bool, len(b.geo.All()))
	for _, v := range b.geo.All() {
		c := b.color[v]
		if c != govertex.Black && c != govertex.White {
			continue
		}
		if visited[v] {
			continue
		}
		libs, libsSq := b.emptyNeighborMoments(v)
		b.chains.Place(v, libs, libsSq)
		visited[v] = true
		stack := []govertex.Vertex{v}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for dir := 0; dir < 4; dir++ {
				n := b.geo.Neighbor(cur, dir)
				if b.color[n] != c || visited[n] {
					continue
				}
				nLibs, nLibsSq := b.emptyNeighborMoments(n)
				b.chains.Place(n, nLibs, nLibsSq)
				b.chains.Union(v, n)
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
}

// emptyNeighborMoments returns (count, count^2) of v's empty orthogonal
// neighbors, the singleton chain moments spec.md §4.2 assigns a newly
// placed stone.
func (b *Board) emptyNeighborMoments(v govertex.Vertex) (int32, int64) {
	var n int32
	for dir := 0; dir < 4; dir++ {
		if b.color[b.geo.Neighbor(v, dir)] == govertex.Empty {
			n++
		}
	}
	return n, int64(n) * int64(n)
}

// IsLegal reports whether player may play at v.
func (b *Board) IsLegal(player govertex.Player, v govertex.Vertex) bool {
	return b.IsLegalErr(player, v) == nil
}

// IsLegalErr is the full legality check: a pure predicate, it never
// mutates the board. It mirrors the mutation Play performs closely enough
// that the two cannot disagree (spec.md §4.3's is_legal/play consistency
// requirement), by running the identical neighbor classification and
// computing the resulting hash without committing it.
func (b *Board) IsLegalErr(player govertex.Player, v govertex.Vertex) error {
	if v.IsPass() {
		return nil
	}
	if b.enforceTurn && player != b.playerToMove {
		return ErrWrongTurn
	}
	if !b.geo.IsOnBoard(v) {
		return ErrOffBoard
	}
	if b.color[v] != govertex.Empty {
		return ErrOccupied
	}
	if v == b.koVertex {
		return ErrKo
	}

	friend := player.Color()
	foe := player.Opponent().Color()

	var ownLibs, friendStones int32
	var sameRoots, capturedRoots, touched [4]govertex.Vertex
	nSame, nCaptured := 0, 0

	for dir := 0; dir < 4; dir++ {
		n := b.geo.Neighbor(v, dir)
		switch b.color[n] {
		case govertex.Empty:
			ownLibs++
		case govertex.OffBoard:
		default:
			root := b.chains.Find(n)
			touched[dir] = root
			switch b.color[n] {
			case friend:
				friendStones++
				if !containsVertex(sameRoots[:nSame], root) {
					sameRoots[nSame] = root
					nSame++
				}
			case foe:
				// Play takes one pseudo-liberty per stone of root next to v;
				// root is captured once those account for all of them.
				touches := int32(0)
				for _, r := range touched[:dir+1] {
					if r == root {
						touches++
					}
				}
				if b.chains.Libs(root) == touches {
					capturedRoots[nCaptured] = root
					nCaptured++
				}
			}
		}
	}

	captureCount := 0
	newHash := b.hash ^ b.zob.Key(v, friend)
	for i := 0; i < nCaptured; i++ {
		b.scratch = b.chains.Members(capturedRoots[i], b.scratch[:0])
		for _, m := range b.scratch {
			newHash ^= b.zob.Key(m, foe)
			captureCount++
		}
	}

	if captureCount == 0 {
		total := ownLibs - friendStones
		for i := 0; i < nSame; i++ {
			total += b.chains.Libs(sameRoots[i])
		}
		if total == 0 {
			return ErrSuicide
		}
	}

	if b.history.enabled() && b.history.contains(newHash) {
		return ErrKo
	}

	return nil
}

func containsVertex(s []govertex.Vertex, v govertex.Vertex) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Play executes a move unconditionally: if v is illegal, the resulting
// board state is undefined (spec.md §4.3's play contract). Callers that
// need legality enforcement should use PlayLegal.
func (b *Board) Play(player govertex.Player, v govertex.Vertex) {
	if !b.enforceTurn && player != b.playerToMove && !v.IsPass() {
		// Teacher behavior (robot.go's Play): a move from the other color
		// implicitly ends the current player's turn rather than erroring.
		b.playPass(b.playerToMove)
	}
	if v.IsPass() {
		b.playPass(player)
		return
	}
	b.placeStone(player, v)
}

// PlayLegal checks legality, plays the move if legal, and returns the
// rejection reason otherwise. The board is left unchanged on rejection.
func (b *Board) PlayLegal(player govertex.Player, v govertex.Vertex) error {
	if err := b.IsLegalErr(player, v); err != nil {
		return err
	}
	b.Play(player, v)
	return nil
}

func (b *Board) playPass(player govertex.Player) {
	b.consecutivePasses++
	b.koVertex = govertex.Pass
	b.lastMove = govertex.Pass
	b.movesPlayed++
	b.history.add(b.hash)
	b.playerToMove = player.Opponent()
}

func (b *Board) placeStone(player govertex.Player, v govertex.Vertex) {
	friend := player.Color()
	foe := player.Opponent().Color()

	var ownLibs int32
	var sameRoots, oppRoots [4]govertex.Vertex
	nSame, nOpp := 0, 0

	for dir := 0; dir < 4; dir++ {
		n := b.geo.Neighbor(v, dir)
		c := b.color[n]
		switch c {
		case govertex.Empty:
			ownLibs++
		case govertex.OffBoard:
		default:
			e := b.emptyNeighborCount(n) // v is still Empty here
			root := b.chains.Find(n)
			b.chains.AdjustLibs(root, -1, -(2*int64(e) - 1))
			if c == friend {
				if !containsVertex(sameRoots[:nSame], root) {
					sameRoots[nSame] = root
					nSame++
				}
			} else {
				if !containsVertex(oppRoots[:nOpp], root) {
					oppRoots[nOpp] = root
					nOpp++
				}
			}
		}
	}

	b.color[v] = friend
	b.hash ^= b.zob.Key(v, friend)
	b.chains.Place(v, ownLibs, int64(ownLibs)*int64(ownLibs))

	newRoot := v
	for i := 0; i < nSame; i++ {
		newRoot = b.chains.Union(newRoot, sameRoots[i])
	}

	captures := 0
	var onlyCaptured govertex.Vertex
	for i := 0; i < nOpp; i++ {
		root := oppRoots[i]
		if b.chains.Libs(root) != 0 {
			continue
		}
		b.scratch = b.chains.Members(root, b.scratch[:0])
		for _, m := range b.scratch {
			for dir := 0; dir < 4; dir++ {
				nb := b.geo.Neighbor(m, dir)
				c := b.color[nb]
				if c == govertex.Empty || c == govertex.OffBoard {
					continue
				}
				nbRoot := b.chains.Find(nb)
				if nbRoot == root {
					continue
				}
				e := b.emptyNeighborCount(nb)
				b.chains.AdjustLibs(nbRoot, 1, 2*int64(e)+1)
			}
			b.color[m] = govertex.Empty
			b.hash ^= b.zob.Key(m, foe)
			captures++
			onlyCaptured = m
		}
	}

	b.captures += captures
	b.consecutivePasses = 0
	b.movesPlayed++
	b.lastMove = v

	// A singleton chain's moments trivially satisfy InAtari (libs^2 ==
	// 1*libs^2), so ko detection checks the liberty count directly rather
	// than the moment identity, which only discriminates once a chain has
	// more than one stone.
	if captures == 1 && b.chains.Size(newRoot) == 1 && b.chains.Libs(newRoot) == 1 {
		b.koVertex = onlyCaptured
	} else {
		b.koVertex = govertex.Pass
	}

	b.history.add(b.hash)
	b.playerToMove = player.Opponent()
}

func (b *Board) emptyNeighborCount(v govertex.Vertex) int32 {
	var n int32
	for dir := 0; dir < 4; dir++ {
		if b.color[b.geo.Neighbor(v, dir)] == govertex.Empty {
			n++
		}
	}
	return n
}

// AtariLiberty returns the sole liberty of the chain containing v and
// true, if that chain is in atari, or (0, false) if v is empty/off-board
// or its chain has more than one liberty. A singleton chain's moments
// trivially satisfy the InAtari identity, so atari for size-1 chains is
// checked by liberty count directly, exactly as in the ko-detection logic
// in placeStone.
func (b *Board) AtariLiberty(v govertex.Vertex) (govertex.Vertex, bool) {
	c := b.color[v]
	if c != govertex.Black && c != govertex.White {
		return govertex.Pass, false
	}
	root := b.chains.Find(v)
	size := b.chains.Size(root)
	if size == 1 {
		if b.chains.Libs(root) != 1 {
			return govertex.Pass, false
		}
	} else if !b.chains.InAtari(root) {
		return govertex.Pass, false
	}

	b.scratch = b.chains.Members(root, b.scratch[:0])
	for _, m := range b.scratch {
		for dir := 0; dir < 4; dir++ {
			n := b.geo.Neighbor(m, dir)
			if b.color[n] == govertex.Empty {
				return n, true
			}
		}
	}
	panic("board: chain reported in atari but has no liberty")
}

// ScoreArea computes Chinese (area) scoring: each color's stones plus any
// empty region that borders only that color. A region touching both
// colors (dame) counts toward neither. The invariant black+white+dame ==
// N*N always holds.
func (b *Board) ScoreArea() (black, white, dame int) {
	n := len(b.geo.All())
	visited := make([]bool, b.geo.GridLen())
	region := make([]govertex.Vertex, 0, n)

	for _, v := range b.geo.All() {
		switch b.color[v] {
		case govertex.Black:
			black++
			continue
		case govertex.White:
			white++
			continue
		}
		if visited[v] {
			continue
		}
		region = region[:0]
		touchesBlack, touchesWhite := false, false
		region = append(region, v)
		visited[v] = true
		for i := 0; i < len(region); i++ {
			cur := region[i]
			for dir := 0; dir < 4; dir++ {
				nb := b.geo.Neighbor(cur, dir)
				switch b.color[nb] {
				case govertex.Empty:
					if !visited[nb] {
						visited[nb] = true
						region = append(region, nb)
					}
				case govertex.Black:
					touchesBlack = true
				case govertex.White:
					touchesWhite = true
				}
			}
		}
		switch {
		case touchesBlack && !touchesWhite:
			black += len(region)
		case touchesWhite && !touchesBlack:
			white += len(region)
		default:
			dame += len(region)
		}
	}
	return black, white, dame
}
