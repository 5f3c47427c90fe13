package search

import (
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
)

type dominanceRecord struct {
	cost decimal.Decimal
	hops int
}

// DominanceRegistry tracks, per (node, routeSignature), the best
// (cost, hops) record seen so far. Scope is deliberately per routeSignature
// rather than per node globally, preserving top-K diversity (§4.3, §9).
type DominanceRegistry struct {
	byNode map[money.Currency]map[result.RouteSignature]dominanceRecord
}

// NewDominanceRegistry returns an empty registry.
func NewDominanceRegistry() *DominanceRegistry {
	return &DominanceRegistry{
		byNode: make(map[money.Currency]map[result.RouteSignature]dominanceRecord),
	}
}

// Register checks whether (cost, hops) for (node, signature) is dominated
// by an existing record and, if not, updates the registry. Returns
// delta = 1 when this is the first record for the signature (one
// additional live state), 0 otherwise (dominated or merely updated), and
// dominated = true when the candidate must not be explored further.
func (r *DominanceRegistry) Register(node money.Currency, signature result.RouteSignature, cost decimal.Decimal, hops int) (delta int, dominated bool) {
	bucket, ok := r.byNode[node]
	if !ok {
		bucket = make(map[result.RouteSignature]dominanceRecord)
		r.byNode[node] = bucket
	}

	existing, ok := bucket[signature]
	if !ok {
		bucket[signature] = dominanceRecord{cost: cost, hops: hops}
		return 1, false
	}

	if existing.cost.LessOrEqual(cost) && existing.hops <= hops {
		return 0, true
	}

	bucket[signature] = dominanceRecord{cost: cost, hops: hops}
	return 0, false
}
