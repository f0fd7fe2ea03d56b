package solver

import (
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/require"
)

func litsOf(c Clause) []int {
	res := make([]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		res[i] = c.Get(i).Dimacs()
	}
	return res
}

func TestNewBinaryClause(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(-3, 5), false, 0)
	require.NoError(t, err)
	c := db.Clause(ref)
	require.Equal(t, 2, c.Len())
	require.Equal(t, []int{-3, 5}, litsOf(c))
	require.False(t, c.Redundant())
	require.False(t, c.HasAnalyzed())
	require.False(t, c.HasPos())
	require.False(t, c.Garbage())
	require.False(t, c.Moved())
	// Just the three header words and the two embedded literals.
	require.Equal(t, int64(4*(fixedHdrWords+2)), c.Bytes())
	require.Equal(t, int64(1), db.Stats.Original)
	require.Equal(t, c.Bytes(), db.Stats.IrrBytes)
}

func TestNewLearnedLongClause(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, -2, 4, -6), true, 3)
	require.NoError(t, err)
	c := db.Clause(ref)
	require.Equal(t, 4, c.Len())
	require.Equal(t, []int{1, -2, 4, -6}, litsOf(c))
	require.True(t, c.Redundant())
	require.True(t, c.HasAnalyzed())
	require.True(t, c.HasPos())
	require.Equal(t, 3, c.Glue())
	require.Equal(t, int64(0), c.Analyzed())
	require.Equal(t, 2, c.Pos())
	// Two prefix words on top of the header and the four literals.
	require.Equal(t, int64(4*(2+fixedHdrWords+4)), c.Bytes())
}

func TestPresenceProfile(t *testing.T) {
	db := New(nil)

	// Short learned clauses are kept anyhow: no analyzed stamp.
	ref, err := db.NewClause(dimacs(1, 2, 3), true, 3)
	require.NoError(t, err)
	require.False(t, db.Clause(ref).HasAnalyzed())

	// Low glue learned clauses neither.
	ref, err = db.NewClause(dimacs(1, 2, 3, 4, 5), true, 2)
	require.NoError(t, err)
	c := db.Clause(ref)
	require.False(t, c.HasAnalyzed())
	// But long enough for a saved watch position.
	require.True(t, c.HasPos())

	// Irredundant clauses never carry a stamp, whatever their size.
	ref, err = db.NewClause(dimacs(1, 2, 3, 4, 5, 6), false, 0)
	require.NoError(t, err)
	c = db.Clause(ref)
	require.False(t, c.HasAnalyzed())
	require.True(t, c.HasPos())
}

func TestCanonicalization(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(5, -3, 5, 1), false, 0)
	require.NoError(t, err)
	require.Equal(t, []int{1, -3, 5}, litsOf(db.Clause(ref)))

	_, err = db.NewClause(dimacs(1, -2, -1), false, 0)
	require.ErrorIs(t, err, ErrTautology)

	_, err = db.NewClause(dimacs(4, 4), false, 0)
	require.ErrorIs(t, err, ErrTooFewLits)

	_, err = db.NewClause(nil, false, 0)
	require.ErrorIs(t, err, ErrTooFewLits)
}

func TestGlueClamping(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3, 4, 5), true, 40)
	require.NoError(t, err)
	require.Equal(t, 5, db.Clause(ref).Glue())

	ref, err = db.NewClause(dimacs(1, 2, 3, 4, 5), true, -7)
	require.NoError(t, err)
	require.Equal(t, 0, db.Clause(ref).Glue())

	// Irredundant clauses have no glue.
	ref, err = db.NewClause(dimacs(1, 2, 3), false, 3)
	require.NoError(t, err)
	require.Equal(t, 0, db.Clause(ref).Glue())
}

func TestShrinkFixup(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3, 4, 5, 6), true, 4)
	require.NoError(t, err)
	c := db.Clause(ref)
	c.SetPos(5)
	before := c.Bytes()

	db.ShrinkClause(ref, 3)
	require.Equal(t, 3, c.Len())
	require.Equal(t, 2, c.Pos())
	require.Equal(t, 3, c.Glue())
	require.Equal(t, before-c.Bytes(), db.Stats.Collected)
}

func TestShrinkBelowTwoPanics(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3), false, 0)
	require.NoError(t, err)
	require.Panics(t, func() { db.ShrinkClause(ref, 1) })
}

func TestAbsentFieldAccessPanics(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(-3, 5), false, 0)
	require.NoError(t, err)
	c := db.Clause(ref)
	require.Panics(t, func() { c.Analyzed() })
	require.Panics(t, func() { c.Pos() })
	require.Panics(t, func() { c.SetPos(2) })
}

func TestBumpAnalyzed(t *testing.T) {
	db := New(nil)
	long, err := db.NewClause(dimacs(1, 2, 3, 4), true, 4)
	require.NoError(t, err)
	bin, err := db.NewClause(dimacs(1, 2), true, 2)
	require.NoError(t, err)

	db.BumpAnalyzed(long)
	db.BumpAnalyzed(long)
	require.Equal(t, int64(2), db.Clause(long).Analyzed())
	require.Equal(t, int64(2), db.Stats.Analyzed)

	// No stamp, no bump.
	db.BumpAnalyzed(bin)
	require.Equal(t, int64(2), db.Stats.Analyzed)
}

func TestSwapAndAppendLits(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3), false, 0)
	require.NoError(t, err)
	c := db.Clause(ref)
	c.Swap(0, 2)
	require.Equal(t, []int{3, 2, 1}, litsOf(c))
	require.Equal(t, dimacs(3, 2, 1), c.AppendLits(nil))
}

func TestBlockedLitPreserved(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3), true, 3)
	require.NoError(t, err)
	c := db.Clause(ref)
	require.Equal(t, z.LitNull, c.Blocked())
	c.SetBlocked(z.Dimacs2Lit(2))
	require.Equal(t, z.Dimacs2Lit(2), c.Blocked())
}

func TestOrderingHelpers(t *testing.T) {
	db := New(nil)
	a, err := db.NewClause(dimacs(1, 2, 3, 4), true, 4)
	require.NoError(t, err)
	b, err := db.NewClause(dimacs(1, 2, 3, 4, 5), true, 3)
	require.NoError(t, err)
	db.BumpAnalyzed(a)
	db.BumpAnalyzed(b)

	ca, cb := db.Clause(a), db.Clause(b)
	require.True(t, analyzedEarlier(ca, cb))
	require.False(t, analyzedEarlier(cb, ca))
	require.True(t, smallerSize(ca, cb))
	// Higher glue is less useful.
	require.True(t, lessUseful(ca, cb))
	require.False(t, lessUseful(cb, ca))
}

func TestMarkGarbageIdempotent(t *testing.T) {
	db := New(nil)
	ref, err := db.NewClause(dimacs(1, 2, 3, 4), true, 4)
	require.NoError(t, err)
	db.MarkGarbage(ref)
	garbage := db.Stats.Garbage
	redundant := db.Stats.Redundant
	db.MarkGarbage(ref)
	require.Equal(t, garbage, db.Stats.Garbage)
	require.Equal(t, redundant, db.Stats.Redundant)
}

func TestArenaExhaustion(t *testing.T) {
	// Room for the sentinel word and exactly one binary clause.
	db := New(&Options{MaxBytes: 4 * (arenaBase + fixedHdrWords + 2)})
	_, err := db.NewClause(dimacs(1, 2), false, 0)
	require.NoError(t, err)
	_, err = db.NewClause(dimacs(3, 4), false, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "arena exhausted")
	// The failed allocation left no partial clause behind.
	require.Equal(t, 1, db.NbClauses())
}

func TestComputeGlue(t *testing.T) {
	db := New(nil)
	eng := newTestEngine(db, 6)
	eng.assign(z.Dimacs2Lit(1), 0, CRefNull)
	eng.assign(z.Dimacs2Lit(2), 1, CRefNull)
	eng.assign(z.Dimacs2Lit(3), 1, CRefNull)
	eng.assign(z.Dimacs2Lit(4), 3, CRefNull)
	require.Equal(t, 3, db.ComputeGlue(dimacs(-1, -2, -3, -4)))
}
