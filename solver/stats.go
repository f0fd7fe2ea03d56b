package solver

// Stats are counters about the clause database. They are updated eagerly
// as clauses are created, marked and collected, so that they stay accurate
// between reductions. Conflicts is owned by the search engine, which
// increments it on every conflict; the reduce scheduler only reads it.
type Stats struct {
	Conflicts   int64 // Conflicts met by the engine; drives the reduce schedule.
	Analyzed    int64 // Monotonic counter of clauses used in conflict analysis.
	Learned     int64 // Redundant clauses ever created.
	Original    int64 // Irredundant clauses ever created.
	Redundant   int64 // Live redundant clauses.
	Irredundant int64 // Live irredundant clauses.
	IrrBytes    int64 // Bytes held by live irredundant clauses.
	Garbage     int64 // Bytes held by clauses marked garbage, not yet collected.
	Reductions  int64 // Reduce epochs run.
	Reduced     int64 // Clauses marked garbage by the reduction policy.
	Collections int64 // Garbage collections run.
	Collected   int64 // Bytes freed by collections and literal flushing.
}
