/*
Package solver implements the clause database of a conflict-driven
clause-learning SAT solver: the storage of original and learned clauses,
the reduction policy that periodically discards low-value learned clauses,
and the relocating garbage collector that compacts the survivors.

Clauses are stored inside a flat word arena rather than as individual Go
objects. A clause is identified by a CRef, an index into the arena pointing
at its header word; the literals are embedded right after the header, and
two optional metadata words (a last-watch position and an analyzed time
stamp) may precede it, depending on a presence profile fixed at allocation.
This keeps a binary clause inside a handful of contiguous words, which
matters because propagation touches clauses on every step of the search.

The database is driven by the surrounding search engine through a small
capability interface (Engine): the engine owns the trail, the per-variable
assignment state and the watcher lists, while the database owns the clause
memory and is the only component that ever frees it.

A typical search loop interacts with the database like this:

	db := solver.New(nil)
	db.Bind(engine)
	...
	c, err := db.NewClause(lits, true, db.ComputeGlue(lits))
	...
	if db.ShouldReduce() {
		if err := db.Reduce(); err != nil {
			return err
		}
	}

Reduce runs a full epoch: reason clauses on the trail are protected, the
engine marks satisfied clauses, the least useful half of the eligible
learned clauses is marked as garbage, the collector compacts the arena and
rewrites every clause reference held by the registry, the trail and the
watcher lists, and the scheduling limits are updated for the next epoch.
*/
package solver
