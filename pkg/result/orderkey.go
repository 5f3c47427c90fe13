// Package result defines the types a search call publishes: PathResult,
// PathLeg, GuardReport, and the PathOrderKey total ordering that both the
// priority queue and the top-K result set use so the two stay consistent
// (§4.4, §4.8).
package result

import "github.com/mExOms/pathsearch/pkg/decimal"

// PathCost wraps a cost decimal at canonical scale (§3).
type PathCost struct {
	Value decimal.Decimal
}

// RouteSignature is the canonical "A->B->C" string of visited currencies.
type RouteSignature string

// PathOrderKey is the total ordering used throughout this module: primary
// cost ascending, then hops ascending, then route signature lexicographic,
// then insertion order (FIFO discovery) — the sole source of determinism
// (§4.4).
type PathOrderKey struct {
	Cost           PathCost
	Hops           int
	Signature      RouteSignature
	InsertionOrder int64
}

// Less reports whether a sorts strictly before b under the total ordering.
func Less(a, b PathOrderKey) bool {
	if c := a.Cost.Value.Cmp(b.Cost.Value); c != 0 {
		return c < 0
	}
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}
	if a.Signature != b.Signature {
		return a.Signature < b.Signature
	}
	return a.InsertionOrder < b.InsertionOrder
}
