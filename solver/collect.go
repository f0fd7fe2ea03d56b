package solver

// The relocating garbage collector. Garbage clauses' memory is reclaimed by
// copying every surviving clause, in registry order, into a fresh arena and
// dropping the old one. Copying in registry order keeps the relative clause
// layout compact and cache friendly.
//
// Between the copy phase and the rewrite phase, references held outside the
// database straddle both arenas: each old location carries a moved flag and
// a forwarding reference overlaid on its first literal word. The rewrite
// phase visits every holder of clause references -- the registry, the
// trail's reason annotations and the watcher lists -- before anything else
// can observe the database again.

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CollectGarbage compacts the arena, dropping clauses marked as garbage and
// rewriting every clause reference held by the registry, the trail and the
// watcher lists. Reduce calls it as part of each epoch; preprocessors
// running at root level may call it directly.
func (d *DB) CollectGarbage() error {
	if d.eng == nil {
		return errors.New("collect: no engine bound")
	}
	return d.collectGarbage()
}

func (d *DB) collectGarbage() error {
	d.Stats.Collections++
	old := d.ar

	// Size the survivor arena.
	var survivorWords, collectedBytes int64
	var collectedClauses int64
	for _, ref := range d.clauses {
		c := Clause{ar: &old, ref: ref}
		_, words := c.span()
		if c.collectable() {
			collectedBytes += int64(words) * 4
			collectedClauses++
		} else {
			survivorWords += int64(words)
		}
	}
	to := newArena(arenaBase+int(survivorWords), old.maxWords)

	// Copy phase: relocate survivors, leave forwarding references behind.
	for _, ref := range d.clauses {
		c := Clause{ar: &old, ref: ref}
		if c.collectable() {
			continue
		}
		start, words := c.span()
		nstart, err := to.alloc(words)
		if err != nil {
			// The survivor arena was sized from the live clauses, so this
			// cannot happen unless the registry was mutated mid-collection.
			return errors.Wrap(err, "collecting")
		}
		copy(to.mem[nstart:nstart+words], old.mem[start:start+words])
		c.setMoved(CRef(nstart + c.prefixWords()))
	}

	// Rewrite phase: registry first, then the trail's reason annotations,
	// then the watcher lists.
	j := 0
	for _, ref := range d.clauses {
		c := Clause{ar: &old, ref: ref}
		if c.collectable() {
			continue
		}
		d.clauses[j] = c.forward()
		j++
	}
	d.clauses = d.clauses[:j]

	for _, m := range d.eng.Trail() {
		v := m.Var()
		ref := d.eng.Reason(v)
		if ref == CRefNull {
			continue
		}
		c := Clause{ar: &old, ref: ref}
		if c.collectable() {
			// Only possible for root-level assignments, whose reasons are
			// never protected.
			d.eng.SetReason(v, CRefNull)
			continue
		}
		if c.Moved() {
			d.eng.SetReason(v, c.forward())
		}
	}

	d.eng.RewriteWatchers(func(ref CRef) (CRef, bool) {
		c := Clause{ar: &old, ref: ref}
		if c.collectable() {
			return CRefNull, false
		}
		if c.Moved() {
			return c.forward(), true
		}
		return ref, true
	})

	// Release phase: the old arena goes away wholesale.
	d.ar = to
	d.Stats.Collected += collectedBytes
	d.Stats.Garbage -= collectedBytes
	d.log.WithFields(logrus.Fields{
		"collections":      d.Stats.Collections,
		"collectedBytes":   collectedBytes,
		"collectedClauses": collectedClauses,
		"survivors":        len(d.clauses),
	}).Debug("collected garbage")
	return nil
}
