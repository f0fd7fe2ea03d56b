package solver

import (
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// initArenaWords is the initial arena capacity, in words.
const initArenaWords = 1 << 16

// ErrTautology is returned by NewClause when the canonicalized literals
// contain a variable in both polarities. Such a clause is always true and
// is never stored.
var ErrTautology = errors.New("tautological clause")

// ErrTooFewLits is returned by NewClause when fewer than two distinct
// literals remain after canonicalization. Units and empty clauses belong to
// the engine's assignment handling, not to the clause database.
var ErrTooFewLits = errors.New("clause needs at least two distinct literals")

// DB is the clause database: it owns the arena holding every clause, the
// registry of live clause references, the reduction policy and the
// relocating garbage collector. It is the main data structure of this
// package.
//
// A DB is not safe for concurrent use. The engine owns the thread and
// calls into the database synchronously.
type DB struct {
	// Stats is updated by the database and, for Conflicts and Analyzed,
	// by the engine through OnConflict and BumpAnalyzed.
	Stats Stats

	opts    Options
	ar      arena
	clauses []CRef // Registry of all live clauses, in creation order.
	lim     limits
	inc     increments
	glues   glueWindow
	eng     Engine
	log     logrus.FieldLogger
}

// limits are the values against which the scheduler and the reduction
// policy compare the running counters.
type limits struct {
	reduce                int64 // Conflict count triggering the next reduction.
	analyzed              int64 // Analyzed counter at the previous reduction.
	keptSize              int   // Largest size among clauses kept by the last reduction.
	keptGlue              int   // Largest glue among clauses kept by the last reduction.
	conflictsAtLastReduce int64
}

// increments grow the limits after each epoch.
type increments struct {
	reduce int64 // Current inter-epoch budget.
	redinc int64 // Growth step; decays toward 1.
}

// New makes a clause database. nil opts selects the defaults.
func New(opts *Options) *DB {
	o := opts.withDefaults()
	maxWords := 0
	if o.MaxBytes > 0 {
		maxWords = int(o.MaxBytes / 4)
	}
	d := &DB{
		opts: o,
		ar:   newArena(initArenaWords, maxWords),
		log:  o.Logger,
	}
	d.inc.reduce = o.ReduceInit
	d.inc.redinc = o.ReduceInc
	d.lim.reduce = o.ReduceInit
	return d
}

// Bind attaches the engine capability set. It must be called before Reduce
// or CollectGarbage.
func (d *DB) Bind(eng Engine) {
	d.eng = eng
}

// Clause returns a view over the clause at c.
func (d *DB) Clause(c CRef) Clause {
	return Clause{ar: &d.ar, ref: c}
}

// NbClauses returns the number of live clauses in the registry.
func (d *DB) NbClauses() int {
	return len(d.clauses)
}

// ForEachClause calls fn on every live clause in registry order, stopping
// early if fn returns false.
func (d *DB) ForEachClause(fn func(c Clause) bool) {
	for _, ref := range d.clauses {
		if !fn(d.Clause(ref)) {
			return
		}
	}
}

// NewClause stores a clause and appends it to the registry. The literals
// are canonicalized first: sorted by variable, duplicates removed. A
// tautology is reported as ErrTautology and not stored; fewer than two
// distinct literals is ErrTooFewLits. For redundant clauses, glue is the
// clause's Literals Block Distance at learning time; it is capped at the
// clause size and at MaxGlue. Irredundant clauses ignore glue.
func (d *DB) NewClause(lits []z.Lit, redundant bool, glue int) (CRef, error) {
	ls := make([]z.Lit, len(lits))
	copy(ls, lits)
	ls, taut := canonicalizeLits(ls)
	if taut {
		return CRefNull, ErrTautology
	}
	size := len(ls)
	if size < 2 {
		return CRefNull, ErrTooFewLits
	}
	if !redundant || glue < 0 {
		glue = 0
	}
	if glue > size {
		glue = size
	}
	if glue > MaxGlue {
		glue = MaxGlue
	}

	// The presence profile is fixed for the clause's whole life: clauses
	// that are kept anyhow never pay for an analyzed time stamp, and only
	// long clauses pay for a saved watch position.
	hasAnalyzed := redundant && size > d.opts.KeepSize && glue > d.opts.KeepGlue
	hasPos := hasAnalyzed || size >= d.opts.PosSize

	ref, err := d.ar.allocClause(size, hasAnalyzed, hasPos)
	if err != nil {
		return CRefNull, errors.Wrap(err, "storing clause")
	}
	c := d.Clause(ref)
	info := uint32(glue)
	if redundant {
		info |= redundantMask
	}
	if hasAnalyzed {
		info |= haveAnalyzedMask
	}
	if hasPos {
		info |= havePosMask
	}
	c.setInfo(info)
	c.ar.mem[ref+blockedOff] = uint32(z.LitNull)
	c.ar.mem[ref+sizeOff] = uint32(size)
	for i, m := range ls {
		c.Set(i, m)
	}
	if hasPos {
		c.SetPos(2)
	}

	d.clauses = append(d.clauses, ref)
	if redundant {
		d.Stats.Learned++
		d.Stats.Redundant++
		d.glues.add(glue)
	} else {
		d.Stats.Original++
		d.Stats.Irredundant++
		d.Stats.IrrBytes += c.Bytes()
	}
	d.log.WithFields(logrus.Fields{
		"clause":    ref,
		"size":      size,
		"redundant": redundant,
		"glue":      glue,
	}).Debug("new clause")
	return ref, nil
}

// MarkGarbage marks the clause for collection. No memory is freed until
// the next collection. Marking is idempotent.
func (d *DB) MarkGarbage(ref CRef) {
	c := d.Clause(ref)
	if c.Garbage() {
		return
	}
	bytes := c.Bytes()
	if c.Redundant() {
		d.Stats.Redundant--
	} else {
		d.Stats.Irredundant--
		d.Stats.IrrBytes -= bytes
	}
	d.Stats.Garbage += bytes
	c.setGarbage()
}

// BumpAnalyzed stamps the clause with the current analysis time. The
// engine calls it whenever the clause participates in conflict analysis.
// Clauses without the analyzed field are kept regardless of analysis
// activity, so the call is a no-op for them.
func (d *DB) BumpAnalyzed(ref CRef) {
	c := d.Clause(ref)
	if !c.HasAnalyzed() {
		return
	}
	d.Stats.Analyzed++
	c.setAnalyzed(d.Stats.Analyzed)
}

// OnConflict records one conflict. The reduce schedule is driven by this
// counter.
func (d *DB) OnConflict() {
	d.Stats.Conflicts++
}

// ShrinkClause reduces the clause to its first newLen literals, typically
// after on-the-fly strengthening removed falsified literals. The freed
// bytes are accounted as collected; the storage itself is reclaimed at the
// next collection.
func (d *DB) ShrinkClause(ref CRef, newLen int) {
	c := d.Clause(ref)
	before := c.Bytes()
	c.shrink(newLen)
	freed := before - c.Bytes()
	if freed == 0 {
		return
	}
	if !c.Redundant() {
		d.Stats.IrrBytes -= freed
	}
	d.Stats.Collected += freed
}

// ComputeGlue returns the number of distinct decision levels among lits
// under the engine's current assignment.
func (d *DB) ComputeGlue(lits []z.Lit) int {
	seen := make(map[int]struct{}, len(lits))
	for _, m := range lits {
		seen[d.eng.Level(m.Var())] = struct{}{}
	}
	return len(seen)
}

// LiveBytes returns the bytes currently held by live clauses, garbage
// included until it is collected.
func (d *DB) LiveBytes() int64 {
	var res int64
	for _, ref := range d.clauses {
		res += d.Clause(ref).Bytes()
	}
	return res
}

// KeptSize returns the largest clause size among the candidates kept by
// the last reduction. Together with KeptGlue it describes the profile of
// clauses the policy currently considers worth keeping.
func (d *DB) KeptSize() int { return d.lim.keptSize }

// KeptGlue returns the largest glue among the candidates kept by the last
// reduction.
func (d *DB) KeptGlue() int { return d.lim.keptGlue }

// LikelyToBeKept reports whether the clause fits the kept profile of the
// last reduction. The engine may treat such clauses as kept by
// construction.
func (d *DB) LikelyToBeKept(ref CRef) bool {
	c := d.Clause(ref)
	return c.Len() <= d.lim.keptSize && c.Glue() <= d.lim.keptGlue
}
