package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/seekerror/logw"

	"github.com/tesuji/gocore/pkg/board"
	"github.com/tesuji/gocore/pkg/govertex"
	"github.com/tesuji/gocore/pkg/gtp"
	"github.com/tesuji/gocore/pkg/playout"
)

// candidateResult tallies one candidate move's playout win rate.
type candidateResult struct {
	move  govertex.Vertex
	wins  int
	total int
}

// selectMove demonstrates spec.md §4.7's multi-worker move search: the
// teacher's multirobot.go ran one playout worker per CPU sharing a single
// board's mutable state across goroutines. Because pkg/board is explicitly
// single-owner (spec.md §5), this instead clones the *board.Board
// (board.Copy) for every candidate and every sample, and merges per-candidate win/visit statistics at the
// caller level, same division of labor, no shared mutable board.
//
// For every legal candidate vertex (plus Pass), it plays that move on a
// cloned board, then runs samplesPerCandidate playouts from the resulting
// position to estimate player's win rate, splitting the candidate list
// across GOMAXPROCS goroutines. It returns the candidate with the highest
// win rate for player.
func selectMove(ctx context.Context, b *board.Board, pe *playout.Engine, player govertex.Player, samplesPerCandidate int, seed int64) govertex.Vertex {
	candidates := []govertex.Vertex{govertex.Pass}
	for _, v := range b.Geometry().All() {
		if b.IsLegal(player, v) {
			candidates = append(candidates, v)
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(candidates))
	for i := range candidates {
		jobs <- i
	}
	close(jobs)

	results := make([]candidateResult, len(candidates))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(workerSeed))
			for idx := range jobs {
				v := candidates[idx]
				eval := b.Copy()
				eval.Play(player, v)
				wins := 0
				for s := 0; s < samplesPerCandidate; s++ {
					pb := eval.Copy()
					result := pe.Playout(ctx, pb, rng)
					if result.Winner == player {
						wins++
					}
				}
				results[idx] = candidateResult{move: v, wins: wins, total: samplesPerCandidate}
			}
		}(seed + int64(w) + 1)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.total > 0 && float64(r.wins)/float64(r.total) > float64(best.wins)/float64(best.total) {
			best = r
		}
	}
	logw.Infof(ctx, "selectMove: %d candidates, %d workers, best=%v (%d/%d)", len(candidates), workers, best.move, best.wins, best.total)
	return best.move
}

// runSelfplay drives engine's board forward moveCount plies using
// selectMove, printing each chosen move to stdout. It's the "-selfplay-
// moves" entry point that exercises the multi-worker move search without
// requiring a GTP controller.
func runSelfplay(ctx context.Context, engine *gtp.Engine, moveCount, samplesPerCandidate int) {
	b := engine.Board()
	pe := engine.PlayoutEngine()
	seed := engine.RNGSeed()
	side := govertex.PlayerBlack

	for i := 0; i < moveCount; i++ {
		if b.ConsecutivePasses() >= 2 {
			break
		}
		v := selectMove(ctx, b, pe, side, samplesPerCandidate, seed+int64(i))
		b.Play(side, v)
		fmt.Printf("%d: %v plays %v\n", i+1, side, v.String(b.Geometry()))
		side = side.Opponent()
	}

	black, white, dame := b.ScoreArea()
	fmt.Printf("final score: black=%d white=%d dame=%d\n", black, white, dame)
}
