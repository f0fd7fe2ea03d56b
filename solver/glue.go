package solver

const nbMaxRecentGlues = 50 // How many recent glue values we consider

// glueWindow tracks the evolution of learned clauses' glue values. The
// running average over the last learned clauses is reported with each
// reduction, giving a cheap signal of how focused the recent search is.
type glueWindow struct {
	totalNb    int64                 // Total number of values considered
	totalSum   int64                 // Sum of all glue values so far
	nbRecent   int                   // Nb of values useful in recentVals
	recentVals [nbMaxRecentGlues]int // Last glue values
	ptr        int                   // Current index of oldest value in recentVals
	recentAvg  float64               // Average glue for recentVals
}

// add adds information about a newly learned clause's glue.
func (g *glueWindow) add(glue int) {
	g.totalNb++
	g.totalSum += int64(glue)
	if g.nbRecent < nbMaxRecentGlues {
		g.recentVals[g.nbRecent] = glue
		oldNb := float64(g.nbRecent)
		newNb := float64(g.nbRecent + 1)
		g.recentAvg = (g.recentAvg*oldNb)/newNb + float64(glue)/newNb
		g.nbRecent++
	} else {
		oldVal := g.recentVals[g.ptr]
		g.recentVals[g.ptr] = glue
		g.ptr++
		if g.ptr == nbMaxRecentGlues {
			g.ptr = 0
		}
		g.recentAvg = g.recentAvg - float64(oldVal)/nbMaxRecentGlues + float64(glue)/nbMaxRecentGlues
	}
}

// avg returns the average glue over the recent window, or over every value
// added since the last clear while the window is still filling.
func (g *glueWindow) avg() float64 {
	return g.recentAvg
}

// clear forgets the recent window. It should be called after a restart.
func (g *glueWindow) clear() {
	g.ptr = 0
	g.nbRecent = 0
	g.recentAvg = 0.0
}
