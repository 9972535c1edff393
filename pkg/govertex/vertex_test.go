package govertex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesuji/gocore/pkg/govertex"
)

func TestGeometryAt(t *testing.T) {
	g := govertex.NewGeometry(9)
	require.Equal(t, 9, g.Size())
	require.Len(t, g.All(), 81)

	v := g.At(0, 0)
	row, col := g.RowCol(v)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
	assert.True(t, g.IsOnBoard(v))
}

func TestNeighborsOffBoardAtCorner(t *testing.T) {
	g := govertex.NewGeometry(9)
	corner := g.At(0, 0)

	var offBoardCount int
	for dir := 0; dir < 4; dir++ {
		n := g.Neighbor(corner, dir)
		if !g.IsOnBoard(n) {
			offBoardCount++
		}
	}
	assert.Equal(t, 2, offBoardCount, "a corner has exactly two off-board cardinal neighbors")
}

func TestPlayerOpponent(t *testing.T) {
	assert.Equal(t, govertex.PlayerWhite, govertex.PlayerBlack.Opponent())
	assert.Equal(t, govertex.PlayerBlack, govertex.PlayerWhite.Opponent())
}

func TestParsePlayer(t *testing.T) {
	p, ok := govertex.ParsePlayer("white")
	require.True(t, ok)
	assert.Equal(t, govertex.PlayerWhite, p)

	_, ok = govertex.ParsePlayer("purple")
	assert.False(t, ok)
}

func TestVertexRoundTrip(t *testing.T) {
	g := govertex.NewGeometry(19)
	cases := []string{"A1", "T19", "Q16", "pass"}
	for _, s := range cases {
		v, ok := govertex.ParseVertex(g, s)
		require.True(t, ok, s)
		assert.Equal(t, s, v.String(g))
	}
}

func TestParseVertexSkipsI(t *testing.T) {
	g := govertex.NewGeometry(19)
	_, ok := govertex.ParseVertex(g, "I5")
	assert.False(t, ok, "GTP coordinates never use the letter I")
}

func TestParseVertexOutOfRange(t *testing.T) {
	g := govertex.NewGeometry(9)
	_, ok := govertex.ParseVertex(g, "K20")
	assert.False(t, ok)
}
