package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-air/gini/z"
)

// A Clause is a view over one clause stored in the arena. There are usually
// many clauses and accessing them is a hot spot, so the storage applies two
// layout tricks:
//
//  1. The literals are embedded in the clause record itself, right after the
//     fixed header, instead of living in a separate slice. Reading a clause
//     is then a single contiguous scan.
//
//  2. Clauses that are kept anyhow (originals, short or low-glue learned
//     ones) do not need the analyzed time stamp, and short clauses without
//     a stamp do not need the saved watch position, so those words are
//     simply not allocated. The two presence
//     bits in the info word record which prefix words exist; accessing an
//     absent field is a bug and panics.
//
// The info word packs, from the high bit down: redundant, garbage, reason,
// moved and the two presence flags, then the glue value in the low bits.
type Clause struct {
	ar  *arena
	ref CRef
}

const (
	// ldMaxGlue is the width of the glue field in the info word.
	ldMaxGlue = 25
	// MaxGlue is the largest storable glue value. Larger values are capped
	// at allocation time.
	MaxGlue = 1<<(ldMaxGlue-1) - 1

	glueMask         uint32 = 1<<ldMaxGlue - 1
	havePosMask      uint32 = 1 << 26
	haveAnalyzedMask uint32 = 1 << 27
	movedMask        uint32 = 1 << 28
	reasonMask       uint32 = 1 << 29
	garbageMask      uint32 = 1 << 30
	redundantMask    uint32 = 1 << 31
)

// Word offsets relative to the CRef.
const (
	infoOff    = 0
	blockedOff = 1
	sizeOff    = 2
	litsOff    = 3
)

func (c Clause) info() uint32 {
	return c.ar.mem[c.ref]
}

func (c Clause) setInfo(w uint32) {
	c.ar.mem[c.ref] = w
}

// Ref returns the clause's current reference.
func (c Clause) Ref() CRef { return c.ref }

// Len returns the nb of lits in the clause.
func (c Clause) Len() int {
	return int(c.ar.mem[c.ref+sizeOff])
}

// Get returns the ith literal from the clause.
func (c Clause) Get(i int) z.Lit {
	return z.Lit(c.ar.mem[int(c.ref)+litsOff+i])
}

// Set sets the ith literal of the clause.
func (c Clause) Set(i int, m z.Lit) {
	if c.Moved() {
		panic("mutating a moved clause")
	}
	c.ar.mem[int(c.ref)+litsOff+i] = uint32(m)
}

// Swap swaps the ith and jth lits from the clause. The propagator uses it
// to keep the watched literals in the first two slots.
func (c Clause) Swap(i, j int) {
	mi, mj := c.Get(i), c.Get(j)
	c.Set(i, mj)
	c.Set(j, mi)
}

// AppendLits appends the clause's literals to buf and returns it.
func (c Clause) AppendLits(buf []z.Lit) []z.Lit {
	length := c.Len()
	for i := 0; i < length; i++ {
		buf = append(buf, c.Get(i))
	}
	return buf
}

// Redundant returns true iff the clause was learned rather than given.
func (c Clause) Redundant() bool { return c.info()&redundantMask != 0 }

// Garbage returns true iff the clause is marked for collection.
func (c Clause) Garbage() bool { return c.info()&garbageMask != 0 }

func (c Clause) setGarbage() { c.setInfo(c.info() | garbageMask) }

// Reason returns true iff the clause is currently protected as a
// propagation reason. The bit is transient: it is only ever set between
// protectReasons and unprotectReasons around a collection.
func (c Clause) Reason() bool { return c.info()&reasonMask != 0 }

func (c Clause) setReason(b bool) {
	if b {
		c.setInfo(c.info() | reasonMask)
	} else {
		c.setInfo(c.info() &^ reasonMask)
	}
}

// Moved returns true iff the clause was relocated by the running collection
// and its first literal word holds the forwarding reference.
func (c Clause) Moved() bool { return c.info()&movedMask != 0 }

func (c Clause) setMoved(fwd CRef) {
	c.setInfo(c.info() | movedMask)
	c.ar.mem[c.ref+litsOff] = uint32(fwd)
}

// forward returns the relocated clause's reference. Only valid while Moved.
func (c Clause) forward() CRef {
	if !c.Moved() {
		panic("forward read on a clause that was not moved")
	}
	return CRef(c.ar.mem[c.ref+litsOff])
}

// HasAnalyzed returns true iff the clause carries an analyzed time stamp.
func (c Clause) HasAnalyzed() bool { return c.info()&haveAnalyzedMask != 0 }

// HasPos returns true iff the clause carries a saved watch position.
func (c Clause) HasPos() bool { return c.info()&havePosMask != 0 }

// Glue returns the clause's glue (Literals Block Distance) value.
func (c Clause) Glue() int { return int(c.info() & glueMask) }

func (c Clause) setGlue(g int) {
	if g < 0 {
		g = 0
	}
	if g > MaxGlue {
		g = MaxGlue
	}
	c.setInfo(c.info()&^glueMask | uint32(g))
}

// Blocked returns the clause's blocking literal, z.LitNull if unset. The
// value belongs to the propagator and is preserved verbatim across
// collections.
func (c Clause) Blocked() z.Lit { return z.Lit(c.ar.mem[c.ref+blockedOff]) }

// SetBlocked records the blocking literal.
func (c Clause) SetBlocked(m z.Lit) { c.ar.mem[c.ref+blockedOff] = uint32(m) }

// Analyzed returns the time stamp of the clause's last participation in
// conflict analysis. Calling it on a clause without the field is a bug.
func (c Clause) Analyzed() int64 {
	if !c.HasAnalyzed() {
		panic("analyzed read on a clause without the field")
	}
	return int64(c.ar.mem[c.ref-CRef(c.prefixWords())])
}

func (c Clause) setAnalyzed(t int64) {
	if !c.HasAnalyzed() {
		panic("analyzed write on a clause without the field")
	}
	c.ar.mem[c.ref-CRef(c.prefixWords())] = uint32(t)
}

// Pos returns the saved position of the last successful watch replacement.
// Calling it on a clause without the field is a bug.
func (c Clause) Pos() int {
	if !c.HasPos() {
		panic("pos read on a clause without the field")
	}
	return int(c.ar.mem[c.ref-1])
}

// SetPos records the position of a successful watch replacement.
func (c Clause) SetPos(p int) {
	if !c.HasPos() {
		panic("pos write on a clause without the field")
	}
	c.ar.mem[c.ref-1] = uint32(p)
}

// prefixWords returns the number of metadata words allocated before the
// header, i.e. the offset between the raw span start and the CRef.
func (c Clause) prefixWords() int {
	n := 0
	if c.HasAnalyzed() {
		n++
	}
	if c.HasPos() {
		n++
	}
	return n
}

// span returns the start index and length in words of the clause's raw
// allocation. Every release of clause storage goes through these numbers.
func (c Clause) span() (start, words int) {
	words = c.prefixWords() + fixedHdrWords + c.Len()
	return int(c.ref) - c.prefixWords(), words
}

// Bytes returns the clause's raw allocation size in bytes.
func (c Clause) Bytes() int64 {
	_, words := c.span()
	return int64(words) * 4
}

// collectable reports whether the collector may drop and free this clause.
// The reason guard exists because reduction runs without unwinding the
// trail; collections triggered at root level have no protected reasons and
// the predicate degenerates to the garbage flag alone.
func (c Clause) collectable() bool {
	return c.Garbage() && !c.Reason()
}

// shrink reduces the clause to its first newLen literals and restores the
// field invariants: a saved watch position past the new end is reset and
// the glue is capped at the new size. The trimmed words are accounted as
// wasted and reclaimed at the next collection.
func (c Clause) shrink(newLen int) {
	length := c.Len()
	if newLen < 2 || newLen > length {
		panic(fmt.Sprintf("shrinking clause of size %d to %d", length, newLen))
	}
	if newLen == length {
		return
	}
	c.ar.mem[c.ref+sizeOff] = uint32(newLen)
	c.ar.wasted += length - newLen
	if c.HasPos() && c.Pos() >= newLen {
		c.SetPos(2)
	}
	if c.Glue() > newLen {
		c.setGlue(newLen)
	}
}

// String returns a human readable rendition of the clause's literals.
func (c Clause) String() string {
	length := c.Len()
	lits := make([]string, length)
	for i := 0; i < length; i++ {
		lits[i] = fmt.Sprintf("%d", c.Get(i).Dimacs())
	}
	return "[" + strings.Join(lits, " ") + "]"
}

// Ordering helpers for the reduction policy.

func analyzedEarlier(a, b Clause) bool {
	return a.Analyzed() < b.Analyzed()
}

func smallerSize(a, b Clause) bool {
	return a.Len() < b.Len()
}

// lessUseful orders clauses from least to most worth keeping: higher glue
// first, ties broken by older analyzed time stamp.
func lessUseful(a, b Clause) bool {
	if a.Glue() != b.Glue() {
		return a.Glue() > b.Glue()
	}
	return analyzedEarlier(a, b)
}

// canonicalizeLits sorts lits in litLessThan order, removes duplicates in
// place and reports whether the clause is a tautology (contains a literal
// together with its negation).
func canonicalizeLits(lits []z.Lit) ([]z.Lit, bool) {
	sort.Slice(lits, func(i, j int) bool { return litLessThan(lits[i], lits[j]) })
	j := 0
	prev := z.LitNull
	for _, m := range lits {
		if m == prev.Not() {
			return lits, true
		}
		if m != prev {
			lits[j] = m
			prev = m
			j++
		}
	}
	return lits[:j], false
}
