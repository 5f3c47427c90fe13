package pathsearch

import (
	"github.com/google/uuid"

	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
)

// SearchID is a diagnostic correlation identifier attached to every search
// call, carried through its log lines and returned to the caller so a
// specific call can be traced after the fact. It plays no role in the
// search or materialization algorithms themselves.
type SearchID string

// NewSearchID mints a random SearchID.
func NewSearchID() SearchID {
	return SearchID(uuid.NewString())
}

// DiagnosticTrace is a point-in-time snapshot of one search call, suitable
// for attaching to an incident report or a slow-query log without holding
// onto the full result set.
type DiagnosticTrace struct {
	SearchID    SearchID
	Source      money.Currency
	Target      money.Currency
	ResultCount int
	BestCost    *result.PathCost
	Guards      result.GuardReport
}

// Trace reduces an Outcome down to a DiagnosticTrace.
func Trace(id SearchID, source, target money.Currency, out Outcome) DiagnosticTrace {
	trace := DiagnosticTrace{
		SearchID:    id,
		Source:      source,
		Target:      target,
		ResultCount: out.Results.Len(),
		Guards:      out.Guards,
	}
	if best, ok := out.Results.First(); ok {
		cost := best.OrderKey.Cost
		trace.BestCost = &cost
	}
	return trace
}
