package search

import (
	"time"

	"github.com/mExOms/pathsearch/pkg/result"
)

// Guards counts expansions and visited states and tracks elapsed wall time,
// cooperatively aborting the search loop when a limit is crossed (§3, §4.7
// "Guards", §5).
type Guards struct {
	limits GuardLimits
	start  time.Time

	expansions    int
	visitedStates int

	expansionLimitReached bool
	visitedLimitReached   bool
	timeBudgetReached     bool
}

// NewGuards starts the wall-clock timer and returns a fresh Guards.
func NewGuards(limits GuardLimits) *Guards {
	return &Guards{limits: limits, start: time.Now()}
}

// ExpansionLimitHit reports (and latches) whether expansions has already
// reached the configured maximum.
func (g *Guards) ExpansionLimitHit() bool {
	if g.expansions >= g.limits.MaxExpansions {
		g.expansionLimitReached = true
		return true
	}
	return false
}

// TimeBudgetHit reports (and latches) whether the configured time budget
// has elapsed.
func (g *Guards) TimeBudgetHit() bool {
	if g.limits.TimeBudgetMs == nil {
		return false
	}
	elapsed := time.Since(g.start).Milliseconds()
	if elapsed >= *g.limits.TimeBudgetMs {
		g.timeBudgetReached = true
		return true
	}
	return false
}

// RecordExpansion increments the expansion counter.
func (g *Guards) RecordExpansion() { g.expansions++ }

// TryVisit reports whether one more visited state fits under the limit; if
// so it increments the counter and returns true, else it latches
// visitedLimitReached and returns false.
func (g *Guards) TryVisit() bool {
	if g.visitedStates+1 > g.limits.MaxVisitedStates {
		g.visitedLimitReached = true
		return false
	}
	g.visitedStates++
	return true
}

// Report builds the final GuardReport (§3).
func (g *Guards) Report() result.GuardReport {
	return result.GuardReport{
		Expansions:            g.expansions,
		VisitedStates:         g.visitedStates,
		ElapsedMs:             time.Since(g.start).Milliseconds(),
		ExpansionLimit:        g.limits.MaxExpansions,
		VisitedStateLimit:     g.limits.MaxVisitedStates,
		TimeBudgetLimitMs:     g.limits.TimeBudgetMs,
		ExpansionLimitReached: g.expansionLimitReached,
		VisitedLimitReached:   g.visitedLimitReached,
		TimeBudgetReached:     g.timeBudgetReached,
	}
}
