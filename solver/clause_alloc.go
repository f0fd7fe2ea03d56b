package solver

// This file deals with the raw clause storage. All clauses live in a single
// flat []uint32 arena and are referred to by index (CRef). Allocation is a
// bump pointer; apart from releasing the topmost span, memory is only
// reclaimed by the collector, which copies the surviving clauses into a
// fresh arena and drops the old one wholesale.

import "github.com/pkg/errors"

const (
	// Fixed header words of every clause: info, blocked, size.
	fixedHdrWords = 3
	// Word index 0 is a sentinel so that no clause ever gets CRef 0 and
	// prefix arithmetic can never underflow the slice.
	arenaBase = 1
)

type arena struct {
	mem      []uint32
	wasted   int // Words released in place or trimmed by shrinking; reclaimed at the next collection.
	maxWords int // Capacity limit in words, 0 for unbounded.
}

func newArena(capWords, maxWords int) arena {
	if capWords < arenaBase {
		capWords = arenaBase
	}
	mem := make([]uint32, arenaBase, capWords)
	return arena{mem: mem, maxWords: maxWords}
}

// alloc carves a span of n words and returns the index of its first word.
func (a *arena) alloc(n int) (int, error) {
	if a.maxWords > 0 && len(a.mem)+n > a.maxWords {
		return 0, errors.Errorf("clause arena exhausted: %d words in use, %d requested, limit %d", len(a.mem), n, a.maxWords)
	}
	start := len(a.mem)
	for i := 0; i < n; i++ {
		a.mem = append(a.mem, 0)
	}
	return start, nil
}

// release gives back the span [start, start+n). Only the topmost span can
// actually rewind the bump pointer; anything else is accounted as wasted
// and reclaimed when the collector next rebuilds the arena.
func (a *arena) release(start, n int) {
	if start+n == len(a.mem) {
		a.mem = a.mem[:start]
		return
	}
	a.wasted += n
}

// used returns the number of words currently carved out of the arena,
// including wasted ones.
func (a *arena) used() int {
	return len(a.mem) - arenaBase
}

// allocClause carves storage for a clause of the given size and presence
// profile and returns the CRef of its header word. The caller is expected
// to initialize every field; the literal area is zeroed.
func (a *arena) allocClause(size int, hasAnalyzed, hasPos bool) (CRef, error) {
	prefix := 0
	if hasAnalyzed {
		prefix++
	}
	if hasPos {
		prefix++
	}
	start, err := a.alloc(prefix + fixedHdrWords + size)
	if err != nil {
		return CRefNull, err
	}
	return CRef(start + prefix), nil
}
