// Package gtp implements a Go Text Protocol 2 command loop (spec.md §4.6),
// adapted from the teacher repo's (skybrian/gongo) gongo_gtp.go: the same
// command table, request/response shape, and parseCommand loop, retargeted
// from the teacher's GoRobot/GoBoard interfaces to *board.Board and
// *playout.Engine. GTP framing is ambient I/O, not part of the scored
// board/playout core, and never runs on the playout hot path.
package gtp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/tesuji/gocore/pkg/board"
	"github.com/tesuji/gocore/pkg/govertex"
	"github.com/tesuji/gocore/pkg/playout"
)

// MaxBoardSize mirrors the GTP protocol's own ceiling (the teacher's
// gongo_gtp.go constant): GTP doesn't support boards larger than 25x25.
const MaxBoardSize = 25

var version = build.NewVersion(0, 1, 0)

// Engine is the mutable state a GTP session drives: one board, one
// playout engine, and the RNG the playout policy samples from. It plays
// the role the teacher's GoRobot interface played, minus the interface
// indirection — there is only ever one concrete implementation in this
// repo.
type Engine struct {
	cfg     playout.Config
	seed    int64
	samples int

	b   *board.Board
	pe  *playout.Engine
	rng *rand.Rand
}

// DefaultGenMoveSamples is how many full playouts GenMove runs per
// candidate vertex to estimate its win rate, absent an explicit override
// via WithGenMoveSamples.
const DefaultGenMoveSamples = 20

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithGenMoveSamples overrides the number of playouts GenMove samples per
// candidate move.
func WithGenMoveSamples(n int) EngineOption {
	return func(e *Engine) { e.samples = n }
}

// NewEngine builds a GTP-drivable engine at the given board size, seeded
// deterministically.
func NewEngine(boardSize int, cfg playout.Config, seed int64, opts ...EngineOption) *Engine {
	e := &Engine{cfg: cfg, seed: seed, samples: DefaultGenMoveSamples}
	for _, opt := range opts {
		opt(e)
	}
	e.reset(boardSize)
	return e
}

func (e *Engine) reset(boardSize int) {
	e.b = board.New(boardSize, board.WithSeed(e.seed))
	e.pe = playout.New(e.cfg)
	e.rng = rand.New(rand.NewSource(e.seed))
}

// SetBoardSize rebuilds the board at the requested size, per GTP's
// boardsize contract ("the controller should call clear_board next").
// GTP caps board size at MaxBoardSize.
func (e *Engine) SetBoardSize(size int) bool {
	if size < 1 || size > MaxBoardSize {
		return false
	}
	e.reset(size)
	return true
}

// ClearBoard resets the current board to empty, keeping its size.
func (e *Engine) ClearBoard() {
	e.b.Clear()
}

// SetKomi updates the komi used when a playout's winner is decided.
func (e *Engine) SetKomi(komi float64) {
	e.cfg.Komi = komi
	e.pe = playout.New(e.cfg)
}

// BoardSize returns the board's current side length.
func (e *Engine) BoardSize() int { return e.b.Geometry().Size() }

// Board returns the engine's underlying board, for callers (such as
// cmd/gogtp's optional multi-worker move search) that need direct access
// beyond the GTP command surface.
func (e *Engine) Board() *board.Board { return e.b }

// PlayoutEngine returns the engine's playout policy.
func (e *Engine) PlayoutEngine() *playout.Engine { return e.pe }

// RNGSeed returns the seed this engine was constructed with.
func (e *Engine) RNGSeed() int64 { return e.seed }

// CellAt returns the occupancy at 1-based (x, y), GTP's coordinate
// convention (x left-to-right, y bottom-to-top).
func (e *Engine) CellAt(x, y int) govertex.Color {
	return e.b.ColorAt(e.b.Geometry().At(y-1, x-1))
}

// Play executes a move for the given player at vertex v (which may be
// govertex.Pass) via Board.PlayLegal. It reports whether the move was legal.
func (e *Engine) Play(player govertex.Player, v govertex.Vertex) bool {
	return e.b.PlayLegal(player, v) == nil
}

// GenMove picks one move for player and plays it on the live board,
// returning the vertex played (which may be Pass). It matches the
// teacher's GenMove/multirobot genMovesMulti shape: every legal candidate
// (plus Pass) is evaluated by running e.samples full playouts from the
// position after that candidate, and the candidate with the highest win
// rate for player is the one actually played. Resign is never produced by
// the playout policy itself (spec.md §9's open question, resolved in
// DESIGN.md): GenMove only ever returns a real vertex or Pass.
func (e *Engine) GenMove(ctx context.Context, player govertex.Player) govertex.Vertex {
	before := e.b.PlayerToMove()
	if before != player {
		// A genmove for the side not to move plays as if the other side
		// passed first, matching the teacher's robot.go Play semantics
		// for an out-of-turn move.
		e.b.Play(before, govertex.Pass)
	}

	best := govertex.Pass
	bestWins := -1
	for _, v := range append([]govertex.Vertex{govertex.Pass}, e.b.Geometry().All()...) {
		if !v.IsPass() && !e.b.IsLegal(player, v) {
			continue
		}
		wins := 0
		for s := 0; s < e.samples; s++ {
			trial := e.b.Copy()
			trial.Play(player, v)
			result := e.pe.Playout(ctx, trial, e.rng)
			if result.Winner == player {
				wins++
			}
		}
		if wins > bestWins {
			bestWins, best = wins, v
		}
	}

	e.b.Play(player, best)
	logw.Infof(ctx, "genmove %v: chose %v (%d/%d wins)", player, best, bestWins, e.samples)
	return best
}

// === driver implementation, adapted from gongo_gtp.go ===

// Run executes GTP commands read from input, writing responses to out,
// until the "quit" command is handled or an I/O error occurs.
func Run(ctx context.Context, e *Engine, input io.Reader, out io.Writer) error {
	in := bufio.NewReader(input)
	for {
		command, args, err := parseCommand(in)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		handler, ok := handlers[command]
		if !ok {
			fmt.Fprint(out, errorResponse("unknown command"))
			continue
		}

		resp := handler(ctx, request{e: e, args: args})
		fmt.Fprint(out, resp)

		if command == "quit" {
			return nil
		}
	}
}

var wordRegexp = regexp.MustCompile(`\S+`)

func parseCommand(in *bufio.Reader) (cmd string, args []string, err error) {
	for {
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", nil, err
		}
		line = strings.TrimSpace(line)
		if line != "" && line[0] != '#' {
			words := wordRegexp.FindAllString(line, -1)
			return words[0], words[1:], nil
		}
		if err != nil {
			return "", nil, err
		}
	}
}

type handlerFunc func(ctx context.Context, req request) response

type request struct {
	e    *Engine
	args []string
}

type response struct {
	message string
	success bool
}

func successResponse(message string) response { return response{message, true} }
func errorResponse(message string) response   { return response{message, false} }

func (r response) String() string {
	prefix := "="
	if !r.success {
		prefix = "?"
	}
	return prefix + " " + r.message + "\n\n"
}

var handlers = map[string]handlerFunc{
	"boardsize": handleBoardsize,
	"clear_board": func(ctx context.Context, req request) response {
		req.e.ClearBoard()
		return successResponse("")
	},
	"genmove":          handleGenmove,
	"known_command":    handleKnownCommand,
	"komi":             handleKomi,
	"list_commands":    handleListCommands,
	"name":             func(ctx context.Context, req request) response { return successResponse("gocore") },
	"play":             handlePlay,
	"protocol_version": func(ctx context.Context, req request) response { return successResponse("2") },
	"quit":             func(ctx context.Context, req request) response { return successResponse("") },
	"showboard":        handleShowboard,
	"version":          func(ctx context.Context, req request) response { return successResponse(fmt.Sprintf("%v", version)) },
}

func handleKnownCommand(ctx context.Context, req request) response {
	if len(req.args) != 1 {
		return errorResponse("wrong number of arguments")
	}
	_, ok := handlers[req.args[0]]
	return successResponse(strconv.FormatBool(ok))
}

func handleListCommands(ctx context.Context, req request) response {
	if len(req.args) != 0 {
		return errorResponse("wrong number of arguments")
	}
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return successResponse(strings.Join(names, "\n"))
}

func handleBoardsize(ctx context.Context, req request) response {
	if len(req.args) != 1 {
		return errorResponse("wrong number of arguments")
	}
	size, err := strconv.Atoi(req.args[0])
	if err != nil {
		return errorResponse("unacceptable size")
	}
	if !req.e.SetBoardSize(size) {
		return errorResponse("unacceptable size")
	}
	return successResponse("")
}

func handleKomi(ctx context.Context, req request) response {
	if len(req.args) != 1 {
		return errorResponse("wrong number of arguments")
	}
	komi, err := strconv.ParseFloat(req.args[0], 64)
	if err != nil {
		return errorResponse("syntax error")
	}
	req.e.SetKomi(komi)
	return successResponse("")
}

func handlePlay(ctx context.Context, req request) response {
	if len(req.args) != 2 {
		return errorResponse("wrong number of arguments")
	}
	player, ok := govertex.ParsePlayer(req.args[0])
	if !ok {
		return errorResponse("syntax error")
	}
	v, ok := govertex.ParseVertex(req.e.b.Geometry(), req.args[1])
	if !ok {
		return errorResponse("syntax error")
	}
	if !req.e.Play(player, v) {
		return errorResponse("illegal move")
	}
	return successResponse("")
}

func handleGenmove(ctx context.Context, req request) response {
	if len(req.args) != 1 {
		return errorResponse("wrong number of arguments")
	}
	player, ok := govertex.ParsePlayer(req.args[0])
	if !ok {
		return errorResponse("syntax error")
	}
	v := req.e.GenMove(ctx, player)
	return successResponse(v.String(req.e.b.Geometry()))
}

func handleShowboard(ctx context.Context, req request) response {
	if len(req.args) != 0 {
		return errorResponse("wrong number of arguments")
	}
	size := req.e.BoardSize()
	buf := &bytes.Buffer{}
	for y := size; y >= 1; y-- {
		for x := 1; x <= size; x++ {
			switch req.e.CellAt(x, y) {
			case govertex.Empty:
				buf.WriteString(".")
			case govertex.White:
				buf.WriteString("O")
			case govertex.Black:
				buf.WriteString("@")
			default:
				panic("gtp: off-board cell reachable from showboard")
			}
		}
		if y > 1 {
			buf.WriteString("\n")
		}
	}
	return successResponse(buf.String())
}
