package solver

import "github.com/go-air/gini/z"

// Engine is the capability set the search engine provides to the clause
// database. The engine owns the trail, the per-variable state and the
// watcher lists; the database consults them around a reduction epoch and
// when computing glue, and rewrites the clause references they hold during
// collection.
//
// All methods are called synchronously from within Reduce, CollectGarbage
// or ComputeGlue; the database never retains what they return across
// calls.
type Engine interface {
	// Trail returns the current assignment stack, in assignment order.
	Trail() []z.Lit

	// Level returns the decision level at which v was assigned.
	// 0 means root level.
	Level(v z.Var) int

	// Reason returns the clause that forced v's current assignment, or
	// CRefNull if v is unassigned or was assigned by a decision.
	Reason(v z.Var) CRef

	// SetReason replaces v's reason reference. Called by the collector
	// when the reason clause was relocated.
	SetReason(v z.Var, c CRef)

	// RewriteWatchers applies reloc to every clause reference held by the
	// watcher lists. reloc returns the reference to keep and true, or
	// false when the watch must be dropped because its clause was
	// collected.
	RewriteWatchers(reloc func(c CRef) (CRef, bool))

	// MarkSatisfiedClauses marks root-level satisfied clauses as garbage
	// and flushes falsified literals. It runs at the start of each reduce
	// epoch, before the reduction policy selects its candidates.
	MarkSatisfiedClauses()
}
