package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardsExpansionLimit(t *testing.T) {
	g := NewGuards(GuardLimits{MaxVisitedStates: 100, MaxExpansions: 2})
	assert.False(t, g.ExpansionLimitHit())
	g.RecordExpansion()
	assert.False(t, g.ExpansionLimitHit())
	g.RecordExpansion()
	assert.True(t, g.ExpansionLimitHit())
}

func TestGuardsVisitedStateLimit(t *testing.T) {
	g := NewGuards(GuardLimits{MaxVisitedStates: 2, MaxExpansions: 100})
	assert.True(t, g.TryVisit())
	assert.True(t, g.TryVisit())
	assert.False(t, g.TryVisit())
}

func TestGuardsReportAnyLimitReachedIsDerived(t *testing.T) {
	g := NewGuards(GuardLimits{MaxVisitedStates: 1, MaxExpansions: 100})
	g.TryVisit()
	g.TryVisit() // trips the visited-state latch

	report := g.Report()
	assert.True(t, report.VisitedLimitReached)
	assert.False(t, report.ExpansionLimitReached)
	assert.True(t, report.AnyLimitReached())
}

func TestGuardsNoTimeBudgetNeverTrips(t *testing.T) {
	g := NewGuards(GuardLimits{MaxVisitedStates: 100, MaxExpansions: 100})
	assert.False(t, g.TimeBudgetHit())
}
