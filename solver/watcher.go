package solver

// Watch records and per-literal watch lists. The database itself does not
// propagate; watch lists belong to the engine. This implementation is
// provided so an engine has a registry-aware list type whose references
// survive collections, and it is what the package's own tests drive the
// collector with.

import (
	"fmt"

	"github.com/go-air/gini/z"
)

// A Watch packs a clause reference, a blocking literal and a binary-clause
// bit into one word. The blocking literal lets the propagator skip visiting
// the clause entirely whenever that literal is already true; for binary
// clauses it is the other literal, making the clause itself irrelevant to
// propagation.
type Watch uint64

const (
	watchLitBits          = 31
	watchLitMask          = 1<<watchLitBits - 1
	watchRefMask   uint64 = 0xffffffff << watchLitBits
	watchBinMask   uint64 = 1 << 63
)

// MakeWatch creates a watch on clause c with the given blocking literal.
// bin indicates that c is a binary clause.
func MakeWatch(c CRef, blocking z.Lit, bin bool) Watch {
	v := uint64(blocking) & watchLitMask
	v |= uint64(c) << watchLitBits
	if bin {
		v |= watchBinMask
	}
	return Watch(v)
}

// CRef returns the watched clause's reference.
func (w Watch) CRef() CRef {
	return CRef(uint64(w) >> watchLitBits & 0xffffffff)
}

// Blocking returns the blocking literal.
func (w Watch) Blocking() z.Lit {
	return z.Lit(w & watchLitMask)
}

// IsBinary returns true iff the watched clause is binary.
func (w Watch) IsBinary() bool {
	return uint64(w)&watchBinMask != 0
}

// relocate returns the same watch pointing at c.
func (w Watch) relocate(c CRef) Watch {
	v := uint64(w) &^ watchRefMask
	v |= uint64(c) << watchLitBits
	return Watch(v)
}

func (w Watch) String() string {
	return fmt.Sprintf("watch{%s bl:%d bin:%t}", w.CRef(), w.Blocking().Dimacs(), w.IsBinary())
}

// Watches holds, for each literal, the clauses watching its negation. An
// engine embeds one and feeds its RewriteWatchers capability from Rewrite.
type Watches struct {
	lists [][]Watch
}

// NewWatches makes watch lists for nbVars variables.
func NewWatches(nbVars int) *Watches {
	return &Watches{lists: make([][]Watch, 2*nbVars+2)}
}

// Watch registers the clause's first two literals. Each watch is stored
// under the literal's negation and carries the other watched literal as
// blocking literal.
func (ws *Watches) Watch(c Clause) {
	first, second := c.Get(0), c.Get(1)
	bin := c.Len() == 2
	ws.lists[first.Not()] = append(ws.lists[first.Not()], MakeWatch(c.Ref(), second, bin))
	ws.lists[second.Not()] = append(ws.lists[second.Not()], MakeWatch(c.Ref(), first, bin))
}

// Occs returns the watches triggered when m becomes true, i.e. the list
// stored under m, whose clauses watch m's negation.
func (ws *Watches) Occs(m z.Lit) []Watch {
	return ws.lists[m]
}

// Rewrite applies reloc to every watch, dropping those whose clause was
// collected and relocating those whose clause moved. It implements the
// watcher half of the collector's rewrite phase.
func (ws *Watches) Rewrite(reloc func(c CRef) (CRef, bool)) {
	for i, list := range ws.lists {
		j := 0
		for _, w := range list {
			ref, keep := reloc(w.CRef())
			if !keep {
				continue
			}
			if ref != w.CRef() {
				w = w.relocate(ref)
			}
			list[j] = w
			j++
		}
		ws.lists[i] = list[:j]
	}
}
