// Package playout implements the Monte Carlo playout policy from
// spec.md §4.4: pattern response, atari capture/escape, and uniform legal
// move sampling with true-eye avoidance, run to termination and scored
// under Chinese (area) rules.
//
// This generalizes the teacher repo's (skybrian/gongo) robot.go
// playRandomGame/wouldFillEye/getEasyScore, which implement the same
// "restart candidate list on capture, linear swap-to-front scan otherwise"
// loop shape against a much simpler liberty model.
package playout

import (
	"context"
	"math/rand"

	"github.com/seekerror/logw"

	"github.com/tesuji/gocore/pkg/board"
	"github.com/tesuji/gocore/pkg/govertex"
)

// Config holds the tunable knobs from spec.md §6 that affect a playout
// (board-size-independent ones; board size itself comes from the Board
// passed to Playout).
type Config struct {
	// Komi favors White by this many points when comparing area scores.
	Komi float64
	// MoveCap bounds playout length; 0 means the spec default, 3*N^2.
	MoveCap int
	// EnablePatterns turns on the 3x3 pattern-response policy stage.
	EnablePatterns bool
}

// DefaultConfig matches spec.md §6's defaults.
func DefaultConfig() Config {
	return Config{Komi: 7.5, MoveCap: 0, EnablePatterns: true}
}

// Result is the outcome of one playout.
type Result struct {
	Black, White int // raw area score, no komi applied
	Winner       govertex.Player
	MovesPlayed  int
}

// Engine runs playouts against caller-owned boards. It holds only
// read-only, process-wide state (the compiled pattern table) plus
// reusable scratch buffers and its playouts-completed counter; it never
// owns a Board itself, matching
// spec.md §5's single-owner-board model.
type Engine struct {
	cfg    Config
	table  []pattern
	all    []govertex.Vertex // scratch candidate buffer, sized for the largest board seen
	played int               // playouts_completed per spec.md §4.5, read by PlayoutsCompleted
}

// New builds a playout engine. Logging goes through github.com/seekerror/logw,
// the same structured-logging call the teacher's engine package uses for
// lifecycle events; none of it runs inside the sampling loop itself.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	if cfg.EnablePatterns {
		e.table = defaultTable
	}
	return e
}

func (e *Engine) moveCap(size int) int {
	if e.cfg.MoveCap > 0 {
		return e.cfg.MoveCap
	}
	return 3 * size * size
}

// PlayoutsCompleted returns the number of playouts this engine has run to
// termination, the `playouts_completed` counter from spec.md §4.5,
// alongside Board's MovesPlayed/Captures.
func (e *Engine) PlayoutsCompleted() int { return e.played }

// Playout runs b forward, side to move first, until two consecutive
// passes or the move cap, mutating b in place, and returns the resulting
// area score and winner.
func (e *Engine) Playout(ctx context.Context, b *board.Board, rng *rand.Rand) Result {
	geo := b.Geometry()
	if cap(e.all) < len(geo.All()) {
		e.all = make([]govertex.Vertex, 0, len(geo.All()))
	}

	startMoves := b.MovesPlayed()
	moveCap := e.moveCap(geo.Size())
	lastCaptures := b.Captures()

	candidates := e.rebuildCandidates(b)
	consumed := 0

	for b.MovesPlayed()-startMoves < moveCap {
		side := b.PlayerToMove()
		v, found := e.choosePolicyMove(b, side)
		if !found {
			v, found, consumed = e.chooseUniformMove(b, side, rng, candidates, consumed)
		}

		if found {
			b.Play(side, v)
		} else {
			b.Play(side, govertex.Pass)
		}

		if b.ConsecutivePasses() >= 2 {
			break
		}
		if b.Captures() != lastCaptures {
			// A capture frees points a stale candidate list doesn't know
			// about; rebuild it, mirroring the teacher's "continue captured".
			candidates = e.rebuildCandidates(b)
			consumed = 0
			lastCaptures = b.Captures()
		}
	}

	black, white, _ := b.ScoreArea()
	e.played++
	logw.Infof(ctx, "playout %d: %d moves, score black=%d white=%d", e.played, b.MovesPlayed()-startMoves, black, white)

	winner := govertex.PlayerWhite
	if float64(black) > float64(white)+e.cfg.Komi {
		winner = govertex.PlayerBlack
	}
	return Result{Black: black, White: white, Winner: winner, MovesPlayed: b.MovesPlayed() - startMoves}
}

func (e *Engine) rebuildCandidates(b *board.Board) []govertex.Vertex {
	out := e.all[:0]
	for _, v := range b.Geometry().All() {
		if b.ColorAt(v) == govertex.Empty {
			out = append(out, v)
		}
	}
	e.all = out
	return out
}

// choosePolicyMove runs the pattern-response and atari capture/escape
// stages (spec.md §4.4 steps 1-2), in that order, ahead of uniform
// sampling. Either stage may suggest a vertex that turns out illegal or
// eye-filling; the caller falls through to uniform sampling in that case.
func (e *Engine) choosePolicyMove(b *board.Board, side govertex.Player) (govertex.Vertex, bool) {
	last := b.LastMove()
	if last.IsPass() {
		return 0, false
	}

	if e.cfg.EnablePatterns {
		if v, ok := e.patternResponse(b, side, last); ok && e.acceptable(b, side, v) {
			return v, true
		}
	}
	if v, ok := e.atariResponse(b, side, last); ok && e.acceptable(b, side, v) {
		return v, true
	}
	return 0, false
}

func (e *Engine) acceptable(b *board.Board, side govertex.Player, v govertex.Vertex) bool {
	return b.ColorAt(v) == govertex.Empty && !e.isEye(b, side, v) && b.IsLegal(side, v)
}

// atariResponse implements spec.md §4.4 step 2: if a chain adjacent to
// the last move is in atari, either capture it (if it's the opponent's)
// or extend it (if it's the side to move's own), by playing its sole
// liberty.
func (e *Engine) atariResponse(b *board.Board, side govertex.Player, last govertex.Vertex) (govertex.Vertex, bool) {
	geo := b.Geometry()
	friend := side.Color()
	foe := side.Opponent().Color()

	for dir := 0; dir < 4; dir++ {
		n := geo.Neighbor(last, dir)
		c := b.ColorAt(n)
		if c != friend && c != foe {
			continue
		}
		if lib, ok := b.AtariLiberty(n); ok {
			return lib, true
		}
	}
	return 0, false
}

// patternResponse implements spec.md §4.4 step 1: check the up-to-8
// vertices adjacent to the last move against the compiled 3x3 pattern
// table, centered on each candidate itself.
func (e *Engine) patternResponse(b *board.Board, side govertex.Player, last govertex.Vertex) (govertex.Vertex, bool) {
	geo := b.Geometry()
	friend := side.Color()
	foe := side.Opponent().Color()

	for dir := 0; dir < 8; dir++ {
		cand := neighbor8(geo, last, dir)
		if b.ColorAt(cand) != govertex.Empty {
			continue
		}
		var around [8]occ
		for i := 0; i < 8; i++ {
			around[i] = classify(b.ColorAt(neighbor8(geo, cand, i)), friend, foe)
		}
		for _, p := range e.table {
			if p.matches(around) {
				return cand, true
			}
		}
	}
	return 0, false
}

// neighbor8 returns the i-th of the 8 surrounding vertices of v, ordered
// (N, NE, E, SE, S, SW, W, NW).
func neighbor8(geo *govertex.Geometry, v govertex.Vertex, i int) govertex.Vertex {
	switch i {
	case 0:
		return geo.Neighbor(v, 0) // N
	case 1:
		return geo.DiagNeighbor(v, 0) // NE
	case 2:
		return geo.Neighbor(v, 2) // E
	case 3:
		return geo.DiagNeighbor(v, 1) // SE
	case 4:
		return geo.Neighbor(v, 1) // S
	case 5:
		return geo.DiagNeighbor(v, 2) // SW
	case 6:
		return geo.Neighbor(v, 3) // W
	default:
		return geo.DiagNeighbor(v, 3) // NW
	}
}

// chooseUniformMove implements spec.md §4.4 step 3: try candidates in a
// random order, taking the first legal, non-eye vertex. candidates[:consumed] are known-played or known-stale;
// candidates[consumed:] are tried in a random order via swap-to-front,
// exactly as in the teacher's playRandomGame.
func (e *Engine) chooseUniformMove(b *board.Board, side govertex.Player, rng *rand.Rand, candidates []govertex.Vertex, consumed int) (govertex.Vertex, bool, int) {
	for i := consumed; i < len(candidates); i++ {
		j := i + rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		v := candidates[i]

		if b.ColorAt(v) != govertex.Empty {
			// Played already by an earlier pattern/atari response this
			// epoch; drop it from future consideration.
			consumed = i + 1
			continue
		}
		if e.isEye(b, side, v) {
			continue
		}
		if !b.IsLegal(side, v) {
			continue
		}
		return v, true, i + 1
	}
	return 0, false, consumed
}

// isEye reports whether v is a true eye for side: every orthogonal
// neighbor is friendly or off-board, and at most one diagonal neighbor is
// an opponent stone or off-board (the corner/edge case collapses multiple
// off-board diagonals into a single unit, matching the teacher's
// wouldFillEye).
func (e *Engine) isEye(b *board.Board, side govertex.Player, v govertex.Vertex) bool {
	geo := b.Geometry()
	friend := side.Color()
	foe := side.Opponent().Color()

	for dir := 0; dir < 4; dir++ {
		n := geo.Neighbor(v, dir)
		c := b.ColorAt(n)
		if c != friend && c != govertex.OffBoard {
			return false
		}
	}

	enemies := 0
	hasEdge := false
	for dir := 0; dir < 4; dir++ {
		n := geo.DiagNeighbor(v, dir)
		switch b.ColorAt(n) {
		case foe:
			enemies++
		case govertex.OffBoard:
			hasEdge = true
		}
	}
	bonus := 0
	if hasEdge {
		bonus = 1
	}
	return enemies+bonus < 2
}
