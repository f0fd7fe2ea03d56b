package solver

import (
	"math"
	"testing"
)

func TestGlueWindowAvg(t *testing.T) {
	var g glueWindow
	for _, v := range []int{2, 4, 6} {
		g.add(v)
	}
	if math.Abs(g.avg()-4.0) > 1e-9 {
		t.Errorf("expected recent average 4.0, got %f", g.avg())
	}
	if g.totalNb != 3 || g.totalSum != 12 {
		t.Errorf("unexpected totals: %d values, sum %d", g.totalNb, g.totalSum)
	}
}

func TestGlueWindowRollsOver(t *testing.T) {
	var g glueWindow
	for i := 0; i < nbMaxRecentGlues; i++ {
		g.add(10)
	}
	// Push the 10s out with 2s; the recent average must follow.
	for i := 0; i < nbMaxRecentGlues; i++ {
		g.add(2)
	}
	if math.Abs(g.avg()-2.0) > 1e-6 {
		t.Errorf("expected rolled-over average 2.0, got %f", g.avg())
	}
	if g.totalNb != 2*nbMaxRecentGlues {
		t.Errorf("unexpected total count %d", g.totalNb)
	}
}

func TestGlueWindowClear(t *testing.T) {
	var g glueWindow
	g.add(5)
	g.add(7)
	g.clear()
	if g.avg() != 0 {
		t.Errorf("expected cleared average 0, got %f", g.avg())
	}
	if g.totalNb != 2 {
		t.Errorf("clear should keep lifetime totals, got %d", g.totalNb)
	}
}
