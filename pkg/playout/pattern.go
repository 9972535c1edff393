package playout

import "github.com/tesuji/gocore/pkg/govertex"

// occ is the occupancy of one 3x3-neighborhood slot, relative to the side
// to move: friend, foe, empty, or a wildcard that matches any of those.
type occ uint8

const (
	occEmpty occ = iota
	occFriend
	occFoe
	occAny
)

// slots are ordered (N, NE, E, SE, S, SW, W, NW), matching spec.md §4.4's
// "(N,NE,E,SE,S,SW,W,NW)" packed-tuple convention.
type pattern struct {
	name  string
	slots [8]occ
}

func (p pattern) matches(around [8]occ) bool {
	for i, want := range p.slots {
		if want != occAny && want != around[i] {
			return false
		}
	}
	return true
}

// rotate returns slots rotated by k positions around the 8-slot ring (k=2
// is a 90-degree turn, since orthogonal and diagonal directions alternate).
func rotate(slots [8]occ, k int) [8]occ {
	var out [8]occ
	for i := range out {
		out[i] = slots[(i+k)%8]
	}
	return out
}

// mirror reflects slots across the N-S axis, swapping E/W and the
// corresponding diagonals.
func mirror(slots [8]occ) [8]occ {
	// index: 0=N 1=NE 2=E 3=SE 4=S 5=SW 6=W 7=NW
	return [8]occ{slots[0], slots[7], slots[6], slots[5], slots[4], slots[3], slots[2], slots[1]}
}

// canonicalTemplates are the tactical shapes a playout policy recognizes,
// written once in a single canonical orientation; compileTable expands each
// into its rotations and mirror image. This is a representative starter
// set (hane, cut, and a solid extension), not an exhaustive 3x3 library.
var canonicalTemplates = []pattern{
	{
		// Hane: a foe stone orthogonally adjacent (E) with two friendly
		// backing stones (N and W), the classic "turn around the end" shape.
		name:  "hane",
		slots: [8]occ{occFriend, occAny, occFoe, occAny, occAny, occAny, occFriend, occAny},
	},
	{
		// Cut: two foe stones on opposite orthogonal sides with friendly
		// stones on the remaining orthogonal sides, splitting a connection.
		name:  "cut",
		slots: [8]occ{occFoe, occAny, occFriend, occAny, occFoe, occAny, occFriend, occAny},
	},
	{
		// Solid extension alongside an existing friendly stone with a foe
		// stone pressing from the far side.
		name:  "extend",
		slots: [8]occ{occFriend, occAny, occAny, occAny, occFoe, occAny, occAny, occAny},
	},
}

// compileTable expands the canonical templates into every rotation and
// mirror, compiled once at startup (spec.md §4.4).
func compileTable(templates []pattern) []pattern {
	var out []pattern
	for _, t := range templates {
		variants := map[[8]occ]bool{}
		for k := 0; k < 8; k += 2 {
			variants[rotate(t.slots, k)] = true
			variants[mirror(rotate(t.slots, k))] = true
		}
		for slots := range variants {
			out = append(out, pattern{name: t.name, slots: slots})
		}
	}
	return out
}

var defaultTable = compileTable(canonicalTemplates)

// classify maps a board color to its pattern-slot occupancy relative to
// friend. Off-board is folded into occFriend: a board edge backs a hane or
// extension the same way a friendly stone does, a common simplification in
// 3x3 playout pattern matchers.
func classify(c, friend, foe govertex.Color) occ {
	switch c {
	case friend:
		return occFriend
	case foe:
		return occFoe
	case govertex.OffBoard:
		return occFriend
	default:
		return occEmpty
	}
}
