package result

// GuardReport summarizes resource usage and whether any guard tripped
// during a search call (§3, §5).
type GuardReport struct {
	Expansions    int
	VisitedStates int
	ElapsedMs     int64

	ExpansionLimit    int
	VisitedStateLimit int
	TimeBudgetLimitMs *int64

	ExpansionLimitReached bool
	VisitedLimitReached   bool
	TimeBudgetReached     bool
}

// AnyLimitReached is true iff any individual guard flag is true — kept as
// a derived method rather than a stored field so the two can never drift
// out of sync (§8 Guard truthfulness property).
func (r GuardReport) AnyLimitReached() bool {
	return r.ExpansionLimitReached || r.VisitedLimitReached || r.TimeBudgetReached
}
