package search

import (
	"strings"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
)

// costMulExtraDigits is the working-precision headroom used when
// multiplying cost factors together (§4.2).
const costMulExtraDigits = 2

// State is an immutable per-expansion search record (§3). States are never
// mutated after creation; a successor is always a new value with its own
// path slice so no two states alias the same backing array.
type State struct {
	CurrentNode    money.Currency
	Cost           decimal.Decimal
	Hops           int
	Path           []*graph.Edge
	ProductRate    decimal.Decimal
	RouteSignature result.RouteSignature
}

// Bootstrap builds the initial state for source, with cost 1 and an empty
// path (§4.5).
func Bootstrap(source money.Currency) State {
	one, _ := decimal.NewFromInt(1, decimal.CanonicalScale)
	return State{
		CurrentNode:    source,
		Cost:           one,
		Hops:           0,
		Path:           nil,
		ProductRate:    one,
		RouteSignature: result.RouteSignature(source),
	}
}

// Relax forms the successor of s across edge e, per §4.2. costFactor is the
// edge's dimensionless cost factor c_e; rateFactor is 1/c_e, accumulated
// into ProductRate. ProductRate is carried on the state only; the
// materializer computes residual tolerance from spent amounts and does not
// read it.
func (s State) Relax(e *graph.Edge, costFactor, rateFactor decimal.Decimal) (State, error) {
	newCost, err := s.Cost.Mul(costFactor, decimal.CanonicalScale, costMulExtraDigits)
	if err != nil {
		return State{}, err
	}
	newProductRate, err := s.ProductRate.Mul(rateFactor, decimal.CanonicalScale, costMulExtraDigits)
	if err != nil {
		return State{}, err
	}

	newPath := make([]*graph.Edge, len(s.Path)+1)
	copy(newPath, s.Path)
	newPath[len(s.Path)] = e

	var sig strings.Builder
	sig.WriteString(string(s.RouteSignature))
	sig.WriteString("->")
	sig.WriteString(string(e.To))

	return State{
		CurrentNode:    e.To,
		Cost:           newCost,
		Hops:           s.Hops + 1,
		Path:           newPath,
		ProductRate:    newProductRate,
		RouteSignature: result.RouteSignature(sig.String()),
	}, nil
}

// ContainsNode reports whether c already appears in s's visited node chain
// (source plus every edge's To), enforcing the simple-path constraint
// (§4.2).
func (s State) ContainsNode(c money.Currency, source money.Currency) bool {
	if source == c {
		return true
	}
	for _, e := range s.Path {
		if e.To == c {
			return true
		}
	}
	return false
}

// OrderKey builds the PathOrderKey used by the priority queue and the
// result set (§4.4).
func (s State) OrderKey(insertionOrder int64) result.PathOrderKey {
	return result.PathOrderKey{
		Cost:           result.PathCost{Value: s.Cost},
		Hops:           s.Hops,
		Signature:      s.RouteSignature,
		InsertionOrder: insertionOrder,
	}
}
