package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesuji/gocore/pkg/board"
	"github.com/tesuji/gocore/pkg/govertex"
)

func TestEmptyBoardHashIsZero(t *testing.T) {
	b := board.New(9)
	assert.Equal(t, uint64(0), uint64(b.Hash()))
	assert.Equal(t, govertex.PlayerBlack, b.PlayerToMove())
}

func TestOccupiedIsIllegal(t *testing.T) {
	b := board.New(9)
	g := b.Geometry()
	v := g.At(4, 4)
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, v))

	err := b.PlayLegal(govertex.PlayerWhite, v)
	assert.ErrorIs(t, err, board.ErrOccupied)
}

func TestOffBoardIsIllegal(t *testing.T) {
	b := board.New(9)
	err := b.PlayLegal(govertex.PlayerBlack, govertex.Vertex(-50))
	assert.ErrorIs(t, err, board.ErrOffBoard)
}

func TestSimpleCapture(t *testing.T) {
	b := board.New(5)
	g := b.Geometry()

	center := g.At(2, 2)
	north := g.At(1, 2)
	south := g.At(3, 2)
	west := g.At(2, 1)
	east := g.At(2, 3)

	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, center))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, north))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 0))) // filler, keeps turn order irrelevant
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, south))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 1)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, west))

	require.Equal(t, govertex.White, b.ColorAt(center)) // not yet captured, still has one liberty

	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(0, 2)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, east))

	assert.Equal(t, govertex.Empty, b.ColorAt(center))
	assert.Equal(t, 1, b.Captures())
}

func TestSuicideIsIllegal(t *testing.T) {
	b := board.New(5)
	g := b.Geometry()

	center := g.At(2, 2)
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(1, 2)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(0, 0)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(3, 2)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(0, 1)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(2, 1)))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(0, 3)))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(2, 3)))

	err := b.PlayLegal(govertex.PlayerBlack, center)
	assert.ErrorIs(t, err, board.ErrSuicide)
	assert.Equal(t, govertex.Empty, b.ColorAt(center), "rejected move must not mutate the board")
}

func TestCaptureRelievesSuicide(t *testing.T) {
	// A stone that fills its own last liberty is legal if doing so
	// captures an opponent chain, since the capture frees a liberty.
	b := board.New(5)
	g := b.Geometry()

	center := g.At(2, 2)
	north := g.At(1, 2)
	south := g.At(3, 2)
	west := g.At(2, 1)
	east := g.At(2, 3) // the point Black will fill last

	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, center))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, north))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(1, 3))) // white on east's other neighbors,
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, south))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(3, 3))) // so a black stone there has no
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, west))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(2, 4))) // liberty unless it captures

	assert.True(t, b.IsLegal(govertex.PlayerBlack, east), "capturing the lone white stone gives black's own stone a liberty")
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, east))
	assert.Equal(t, govertex.Empty, b.ColorAt(center))
}

func TestSimpleKo(t *testing.T) {
	b := board.New(5)
	g := b.Geometry()

	a := g.At(0, 0) // black stone about to be captured
	e := g.At(0, 1) // white stone, part of the surround
	p := g.At(1, 0) // the point white plays to capture a
	s := g.At(2, 0) // black, keeps white's post-capture chain at size 1 / 1 liberty
	w := g.At(1, 1) // black, same purpose

	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, a))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, e))
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, s))
	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(4, 4))) // filler
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, w))

	require.NoError(t, b.PlayLegal(govertex.PlayerWhite, p))
	assert.Equal(t, govertex.Empty, b.ColorAt(a), "white's move captures the lone black stone at a")
	assert.Equal(t, a, b.Ko(), "ko forbids replaying the point that was just captured")

	err := b.PlayLegal(govertex.PlayerBlack, a)
	assert.ErrorIs(t, err, board.ErrKo, "immediate recapture is forbidden by simple ko")

	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(4, 3))) // play elsewhere
	assert.NoError(t, b.PlayLegal(govertex.PlayerWhite, g.At(4, 1)))
	assert.True(t, b.IsLegal(govertex.PlayerBlack, a), "ko restriction lifts after an intervening move")
}

func TestScoreAreaInvariant(t *testing.T) {
	b := board.New(5)
	g := b.Geometry()
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(2, 2)))

	black, white, dame := b.ScoreArea()
	assert.Equal(t, 25, black+white+dame)
	assert.Equal(t, 25, black) // one stone, whole empty board touches only black
	assert.Equal(t, 0, white)
}

func TestHashRoundTrip(t *testing.T) {
	// Playing a move and undoing its effect by replaying the same prefix
	// on a fresh board must reproduce the same hash: Hash is a pure
	// function of occupancy, not of move history.
	b := board.New(9)
	g := b.Geometry()
	moves := []govertex.Vertex{g.At(2, 2), g.At(2, 3), g.At(3, 2), g.At(6, 6)}

	for _, v := range moves[:len(moves)-1] {
		require.NoError(t, b.PlayLegal(b.PlayerToMove(), v))
	}
	beforeLast := b.Hash()
	require.NoError(t, b.PlayLegal(b.PlayerToMove(), moves[len(moves)-1]))
	assert.NotEqual(t, beforeLast, b.Hash(), "the final move must change the hash")

	replay := board.New(9)
	for _, v := range moves[:len(moves)-1] {
		require.NoError(t, replay.PlayLegal(replay.PlayerToMove(), v))
	}
	assert.Equal(t, beforeLast, replay.Hash(), "replaying the same prefix of moves must reproduce the same hash")
}

func TestCaptureSymmetry(t *testing.T) {
	// Surrounding and capturing the same lone stone via two different
	// fill orders must leave the board in the same final position: the
	// capture fires on whichever neighbor happens to fill the last
	// liberty, and Hash depends only on final occupancy, never on which
	// neighbor that was.
	g := board.New(5).Geometry()
	center := g.At(2, 2)
	north, south, west, east := g.At(1, 2), g.At(3, 2), g.At(2, 1), g.At(2, 3)

	a := board.New(5)
	a.Play(govertex.PlayerWhite, center)
	for _, v := range []govertex.Vertex{north, south, west, east} {
		a.Play(govertex.PlayerBlack, v)
	}

	b := board.New(5)
	b.Play(govertex.PlayerWhite, center)
	for _, v := range []govertex.Vertex{west, north, east, south} {
		b.Play(govertex.PlayerBlack, v)
	}

	assert.Equal(t, govertex.Empty, a.ColorAt(center))
	assert.Equal(t, govertex.Empty, b.ColorAt(center))
	assert.Equal(t, 1, a.Captures())
	assert.Equal(t, 1, b.Captures())
	assert.Equal(t, a.Hash(), b.Hash(), "the same final position reached via different capture fill orders must hash the same")
}

func TestCopyIsIndependent(t *testing.T) {
	b := board.New(9)
	g := b.Geometry()
	require.NoError(t, b.PlayLegal(govertex.PlayerBlack, g.At(4, 4)))

	clone := b.Copy()
	require.NoError(t, clone.PlayLegal(govertex.PlayerWhite, g.At(4, 5)))

	assert.Equal(t, govertex.Empty, b.ColorAt(g.At(4, 5)), "mutating the clone must not affect the original")
	assert.Equal(t, govertex.White, clone.ColorAt(g.At(4, 5)))
}
