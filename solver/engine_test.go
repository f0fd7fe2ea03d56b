package solver

import "github.com/go-air/gini/z"

// testEngine is a minimal search engine: a trail, a variable table and
// watch lists. It gives the database everything the capability interface
// promises without doing any actual propagation.
type testEngine struct {
	db      *DB
	trail   []z.Lit
	vars    []VarState
	watches *Watches
	onMark  func() // MarkSatisfiedClauses hook, nil for no-op
}

func newTestEngine(db *DB, nbVars int) *testEngine {
	eng := &testEngine{
		db:      db,
		vars:    make([]VarState, nbVars+1),
		watches: NewWatches(nbVars),
	}
	for i := range eng.vars {
		eng.vars[i].Reason = CRefNull
	}
	db.Bind(eng)
	return eng
}

// assign puts m on the trail at the given level with the given reason.
func (e *testEngine) assign(m z.Lit, level int, reason CRef) {
	e.trail = append(e.trail, m)
	e.vars[m.Var()] = VarState{Level: level, Reason: reason}
}

func (e *testEngine) Trail() []z.Lit { return e.trail }

func (e *testEngine) Level(v z.Var) int { return e.vars[v].Level }

func (e *testEngine) Reason(v z.Var) CRef { return e.vars[v].Reason }

func (e *testEngine) SetReason(v z.Var, c CRef) { e.vars[v].Reason = c }

func (e *testEngine) RewriteWatchers(reloc func(c CRef) (CRef, bool)) {
	e.watches.Rewrite(reloc)
}

func (e *testEngine) MarkSatisfiedClauses() {
	if e.onMark != nil {
		e.onMark()
	}
}

// dimacs converts a plain clause to literals.
func dimacs(lits ...int) []z.Lit {
	res := make([]z.Lit, len(lits))
	for i, l := range lits {
		res[i] = z.Dimacs2Lit(l)
	}
	return res
}
