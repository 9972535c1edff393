package board

import "github.com/tesuji/gocore/pkg/zobrist"

// Superko window sentinels (spec.md §6 superko_window). A positive value
// keeps a bounded ring of the most recent N position hashes; Unbounded
// retains every hash for the life of the board (the spec's default);
// Disabled turns off positional superko and leaves only simple ko (the
// single-stone ko_vertex check in Board).
const (
	Disabled  = 0
	Unbounded = -1
)

// superkoHistory tracks previously-seen position hashes so Board can reject
// a move that would recreate one. It is deliberately append-only within a
// bounded or unbounded window; Board never needs to remove an entry except
// by aging out of a bounded ring.
type superkoHistory struct {
	window int // Disabled, Unbounded, or a positive ring size
	hashes []zobrist.Hash
	ring   []zobrist.Hash
	next   int
	filled bool
}

func newSuperkoHistory(window int) *superkoHistory {
	h := &superkoHistory{window: window}
	if window > 0 {
		h.ring = make([]zobrist.Hash, window)
	}
	return h
}

func (h *superkoHistory) enabled() bool { return h.window != Disabled }

func (h *superkoHistory) contains(hash zobrist.Hash) bool {
	if h.window > 0 {
		limit := len(h.ring)
		if !h.filled {
			limit = h.next
		}
		for i := 0; i < limit; i++ {
			if h.ring[i] == hash {
				return true
			}
		}
		return false
	}
	for _, v := range h.hashes {
		if v == hash {
			return true
		}
	}
	return false
}

func (h *superkoHistory) add(hash zobrist.Hash) {
	if !h.enabled() {
		return
	}
	if h.window > 0 {
		h.ring[h.next] = hash
		h.next++
		if h.next == len(h.ring) {
			h.next = 0
			h.filled = true
		}
		return
	}
	h.hashes = append(h.hashes, hash)
}

func (h *superkoHistory) reset() {
	h.hashes = h.hashes[:0]
	h.next = 0
	h.filled = false
}

func (h *superkoHistory) clone() *superkoHistory {
	c := &superkoHistory{window: h.window, next: h.next, filled: h.filled}
	if h.ring != nil {
		c.ring = append([]zobrist.Hash(nil), h.ring...)
	}
	if h.hashes != nil {
		c.hashes = append([]zobrist.Hash(nil), h.hashes...)
	}
	return c
}
