// Package graph builds the directed multigraph the search loop explores:
// nodes are currencies, edges are derived one-per-order, each edge carrying
// capacity ranges and mandatory/optional fill segments (spec §3, §4.1).
package graph

import (
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/types"
)

// Range is a [Min,Max] Money bound in one currency.
type Range struct {
	Min money.Money
	Max money.Money
}

// EdgeSegment is a sub-range within an edge's capacity, flagged mandatory
// (must be filled to use the edge at all) or optional.
type EdgeSegment struct {
	IsMandatory bool
	Base        Range
	Quote       Range
	GrossBase   Range
}

// Edge is a directed capacity-bearing slot in the search graph, derived
// from exactly one order.
type Edge struct {
	From  money.Currency
	To    money.Currency
	Side  types.Side
	Order *types.Order

	BaseCapacity      Range
	QuoteCapacity      Range
	GrossBaseCapacity Range

	Segments []EdgeSegment
}

// Graph is a directed multigraph keyed by currency, with node and edge
// iteration order mirroring the order book's order of first appearance
// (§4.1).
type Graph struct {
	nodeOrder []money.Currency
	nodeSeen  map[money.Currency]bool
	out       map[money.Currency][]*Edge
}

func newGraph() *Graph {
	return &Graph{
		nodeSeen: make(map[money.Currency]bool),
		out:      make(map[money.Currency][]*Edge),
	}
}

func (g *Graph) addNode(c money.Currency) {
	if !g.nodeSeen[c] {
		g.nodeSeen[c] = true
		g.nodeOrder = append(g.nodeOrder, c)
	}
}

func (g *Graph) addEdge(e *Edge) {
	g.addNode(e.From)
	g.addNode(e.To)
	g.out[e.From] = append(g.out[e.From], e)
}

// Nodes returns currencies in first-appearance order.
func (g *Graph) Nodes() []money.Currency {
	return g.nodeOrder
}

// HasNode reports whether c appears in the graph.
func (g *Graph) HasNode(c money.Currency) bool {
	return g.nodeSeen[c]
}

// Edges returns the outgoing edges of node c, in insertion order.
func (g *Graph) Edges(c money.Currency) []*Edge {
	return g.out[c]
}
