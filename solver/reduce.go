package solver

// Reduction of the learned clause set. Learned clauses pile up quickly and
// most of them never help again, so every few thousand conflicts the least
// useful half of the eligible ones is marked as garbage and the collector
// reclaims their memory.

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ShouldReduce returns true iff enough conflicts accumulated since the last
// reduction. The engine checks it after each conflict and calls Reduce when
// it fires.
func (d *DB) ShouldReduce() bool {
	if d.opts.NoReduce {
		return false
	}
	return d.Stats.Conflicts >= d.lim.reduce
}

// Reason clauses on the trail cannot be collected while the assignment
// stands: reduction runs without unwinding the trail, so they are protected
// before and unprotected after garbage collection.

func (d *DB) protectReasons() {
	for _, m := range d.eng.Trail() {
		v := m.Var()
		if d.eng.Level(v) == 0 {
			continue
		}
		ref := d.eng.Reason(v)
		if ref == CRefNull {
			continue
		}
		d.Clause(ref).setReason(true)
	}
}

func (d *DB) unprotectReasons() {
	for _, m := range d.eng.Trail() {
		v := m.Var()
		if d.eng.Level(v) == 0 {
			continue
		}
		ref := d.eng.Reason(v)
		if ref == CRefNull {
			continue
		}
		c := d.Clause(ref)
		if !c.Reason() {
			panic("unprotecting a clause that was not protected")
		}
		c.setReason(false)
	}
}

// reduceCandidates sorts reduction candidates from least to most useful.
// When byGlue is unset only the analyzed time stamp is considered. Ties
// fall back to the reference itself so the order is total and runs are
// reproducible.
type reduceCandidates struct {
	d      *DB
	refs   []CRef
	byGlue bool
}

func (rc *reduceCandidates) Len() int { return len(rc.refs) }

func (rc *reduceCandidates) Less(i, j int) bool {
	a, b := rc.d.Clause(rc.refs[i]), rc.d.Clause(rc.refs[j])
	if rc.byGlue {
		if a.Glue() != b.Glue() {
			return lessUseful(a, b)
		}
	}
	if a.Analyzed() != b.Analyzed() {
		return analyzedEarlier(a, b)
	}
	return rc.refs[i] < rc.refs[j]
}

func (rc *reduceCandidates) Swap(i, j int) {
	rc.refs[i], rc.refs[j] = rc.refs[j], rc.refs[i]
}

// markUselessRedundantClausesAsGarbage implements the reduction policy. It
// selects the redundant clauses that were not used by conflict analysis
// since the previous epoch, orders them by usefulness and marks the worse
// half as garbage. The size and glue maxima of the kept half are published
// so the engine can treat comparable new clauses as kept by construction.
func (d *DB) markUselessRedundantClausesAsGarbage() {
	candidates := make([]CRef, 0, int(d.Stats.Redundant))
	for _, ref := range d.clauses {
		c := d.Clause(ref)
		if !c.Redundant() { // keep irredundant
			continue
		}
		if c.Blocked() != 0 { // keep blocked clauses
			continue
		}
		if c.Reason() { // need to keep reasons
			continue
		}
		if c.Garbage() { // already marked
			continue
		}
		if !c.HasAnalyzed() {
			continue
		}
		if c.Analyzed() > d.lim.analyzed {
			continue
		}
		candidates = append(candidates, ref)
	}
	sort.Sort(&reduceCandidates{d: d, refs: candidates, byGlue: !d.opts.NoReduceGlue})

	target := len(candidates) / 2
	for _, ref := range candidates[:target] {
		d.MarkGarbage(ref)
		d.Stats.Reduced++
	}
	d.lim.keptSize, d.lim.keptGlue = 0, 0
	for _, ref := range candidates[target:] {
		c := d.Clause(ref)
		if c.Len() > d.lim.keptSize {
			d.lim.keptSize = c.Len()
		}
		if c.Glue() > d.lim.keptGlue {
			d.lim.keptGlue = c.Glue()
		}
	}
	d.log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"marked":     target,
		"keptSize":   d.lim.keptSize,
		"keptGlue":   d.lim.keptGlue,
	}).Debug("reduce selection")
}

// Reduce runs one reduction epoch: protect reasons, let the engine mark
// satisfied clauses, mark the least useful learned clauses as garbage,
// collect, unprotect, and grow the budget for the next epoch. An epoch with
// no candidates still collects pending garbage and updates the limits.
func (d *DB) Reduce() error {
	if d.eng == nil {
		return errors.New("reduce: no engine bound")
	}
	d.Stats.Reductions++
	d.protectReasons()
	d.eng.MarkSatisfiedClauses()
	d.markUselessRedundantClausesAsGarbage()
	if err := d.collectGarbage(); err != nil {
		d.unprotectReasons()
		return err
	}
	d.unprotectReasons()
	d.inc.reduce += d.inc.redinc
	if d.inc.redinc > 1 {
		d.inc.redinc--
	}
	d.lim.reduce = d.Stats.Conflicts + d.inc.reduce
	d.lim.analyzed = d.Stats.Analyzed
	d.lim.conflictsAtLastReduce = d.Stats.Conflicts
	d.log.WithFields(logrus.Fields{
		"reductions": d.Stats.Reductions,
		"nextReduce": d.lim.reduce,
		"avgGlue":    d.glues.avg(),
	}).Debug("reduce done")
	return nil
}
