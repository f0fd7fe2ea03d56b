package solver

import (
	"io"

	"github.com/sirupsen/logrus"
)

const (
	defaultReduceInit = 2000 // Conflicts before the first reduction.
	defaultReduceInc  = 300  // By how much the inter-epoch budget grows.
	defaultKeepSize   = 3    // Learned clauses up to this size are kept anyhow.
	defaultKeepGlue   = 2    // Learned clauses up to this glue are kept anyhow.
	defaultPosSize    = 4    // Minimum size for allocating a saved watch position.
)

// Options configures a clause database. The zero value of each field picks
// the default noted on it.
type Options struct {
	// Reduce enables periodic reduction of the learned clause set.
	// Defaults to true; NoReduce turns it off.
	NoReduce bool

	// ReduceGlue orders reduction candidates by glue (ties broken by
	// analyzed time stamp) instead of by time stamp alone.
	// Defaults to true; NoReduceGlue turns it off.
	NoReduceGlue bool

	// ReduceInit is the conflict count at which the first reduction runs,
	// and the initial inter-epoch budget.
	ReduceInit int64

	// ReduceInc is the initial growth step added to the inter-epoch budget
	// after each reduction. The step itself decays by one per epoch until
	// it reaches 1, so growth tends toward linear.
	ReduceInc int64

	// KeepSize, KeepGlue: learned clauses with size <= KeepSize or glue <=
	// KeepGlue never allocate an analyzed time stamp and are never
	// reduction candidates.
	KeepSize int
	KeepGlue int

	// PosSize is the minimum clause size for allocating a saved watch
	// position on clauses that have no analyzed time stamp.
	PosSize int

	// MaxBytes bounds the clause arena, 0 for unbounded. Allocations past
	// the bound fail with an error.
	MaxBytes int64

	// Logger receives debug output about reductions and collections.
	// nil discards it.
	Logger logrus.FieldLogger
}

func (o *Options) withDefaults() Options {
	res := Options{}
	if o != nil {
		res = *o
	}
	if res.ReduceInit == 0 {
		res.ReduceInit = defaultReduceInit
	}
	if res.ReduceInc == 0 {
		res.ReduceInc = defaultReduceInc
	}
	if res.KeepSize == 0 {
		res.KeepSize = defaultKeepSize
	}
	if res.KeepGlue == 0 {
		res.KeepGlue = defaultKeepGlue
	}
	if res.PosSize == 0 {
		res.PosSize = defaultPosSize
	}
	if res.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		res.Logger = l
	}
	return res
}
