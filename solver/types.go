package solver

// Describes basic types and constants shared by the clause database.

import (
	"fmt"

	"github.com/go-air/gini/z"
)

// A CRef locates a clause in the arena. It indexes the clause's header word;
// the embedded literals follow it and the optional metadata words precede it.
// CRefs are only stable between two collections: the collector compacts the
// arena and rewrites every reference it is given access to.
type CRef uint32

// CRefNull is the null clause reference. It is used for variables that were
// assigned by a decision rather than by propagation.
const CRefNull CRef = 0xffffffff

func (c CRef) String() string {
	if c == CRefNull {
		return "c<nil>"
	}
	return fmt.Sprintf("c%d", uint32(c))
}

// VarState is the per-variable search state the database reads. The
// authoritative copy lives in the engine; the database only consults Level
// and Reason during reason protection (and Level when computing glue) and
// rewrites Reason during collection.
type VarState struct {
	Level  int  // Decision level of the current assignment; 0 means root or unit.
	Reason CRef // Clause that forced the assignment, or CRefNull.
}

// litLessThan is the canonical literal order inside stored clauses:
// ascending variable, positive polarity first on ties. Placing both
// literals of a variable next to each other makes duplicate and tautology
// detection a single linear scan.
func litLessThan(a, b z.Lit) bool {
	va, vb := a.Var(), b.Var()
	return va < vb || (va == vb && a < b)
}
