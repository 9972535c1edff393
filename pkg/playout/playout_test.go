package playout

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesuji/gocore/pkg/board"
	"github.com/tesuji/gocore/pkg/govertex"
)

func TestDefaultConfigMatchesSpec(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 7.5, cfg.Komi)
	assert.True(t, cfg.EnablePatterns)
}

func TestMoveCapDefaultIsThreeNSquared(t *testing.T) {
	e := New(DefaultConfig())
	assert.Equal(t, 3*19*19, e.moveCap(19))
}

func TestMoveCapOverride(t *testing.T) {
	e := New(Config{MoveCap: 42})
	assert.Equal(t, 42, e.moveCap(19))
}

func TestPatternTableCompiledNonEmpty(t *testing.T) {
	assert.NotEmpty(t, defaultTable)
}

func TestIsEyeInCorner(t *testing.T) {
	b := board.New(5)
	g := b.Geometry()
	corner := g.At(0, 0)

	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(0, 1)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(4, 4)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(1, 0)))

	e := New(DefaultConfig())
	assert.True(t, e.isEye(b, govertex.PlayerBlack, corner))
	assert.False(t, e.isEye(b, govertex.PlayerWhite, corner))
}

func TestIsEyeFalseWithTwoEnemyDiagonals(t *testing.T) {
	b := board.New(9)
	g := b.Geometry()
	center := g.At(4, 4)

	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(3, 4)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 0)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(5, 4)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 1)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(4, 3)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 2)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(4, 5)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(3, 3))) // diagonal enemy #1
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(0, 8)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(5, 5))) // diagonal enemy #2

	e := New(DefaultConfig())
	assert.False(t, e.isEye(b, govertex.PlayerBlack, center), "two enemy diagonals breaks the eye")
}

func TestIsEyeIdempotentAcrossUnrelatedMoves(t *testing.T) {
	// A vertex's eye status depends only on its own 3x3 neighborhood,
	// never on state elsewhere, so moves that don't touch that
	// neighborhood must leave isEye's verdict unchanged.
	b := board.New(9)
	g := b.Geometry()
	center := g.At(4, 4)

	for _, v := range []govertex.Vertex{
		g.At(3, 4), g.At(5, 4), g.At(4, 3), g.At(4, 5), // orthogonal
		g.At(3, 3), g.At(3, 5), g.At(5, 3), g.At(5, 5), // diagonal
	} {
		require.NoError(t, b.PlayLegal(govertex.PlayerBlack, v))
	}

	e := New(DefaultConfig())
	require.True(t, e.isEye(b, govertex.PlayerBlack, center), "fully surrounded vertex must be a true eye before the unrelated moves")

	for _, v := range []govertex.Vertex{g.At(8, 8), g.At(0, 8), g.At(8, 0), g.At(1, 8)} {
		require.NoError(t, b.PlayLegal(govertex.PlayerWhite, v))
	}

	assert.True(t, e.isEye(b, govertex.PlayerBlack, center), "moves outside the eye's 3x3 neighborhood must not change its eye status")
}

func TestPlayoutTerminatesWithTwoPasses(t *testing.T) {
	b := board.New(5)
	e := New(DefaultConfig())
	rng := rand.New(rand.NewSource(42))

	result := e.Playout(context.Background(), b, rng)

	assert.GreaterOrEqual(t, b.ConsecutivePasses(), 2)
	assert.Greater(t, result.MovesPlayed, 0)
	assert.Equal(t, 25, result.Black+result.White+areaDame(b))
}

func TestPlayoutRespectsMoveCap(t *testing.T) {
	b := board.New(9)
	e := New(Config{Komi: 7.5, MoveCap: 4, EnablePatterns: false})
	rng := rand.New(rand.NewSource(7))

	result := e.Playout(context.Background(), b, rng)
	assert.LessOrEqual(t, result.MovesPlayed, 4)
}

func areaDame(b *board.Board) int {
	_, _, dame := b.ScoreArea()
	return dame
}
