package search

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/internal/materializer"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
	"github.com/mExOms/pathsearch/pkg/types"
)

// discardLogger returns a logger wired to io.Discard so an embedding
// caller that omits a logger never gets unsolicited output on stderr —
// the core must stay embeddable by default (SPEC_FULL.md AMBIENT STACK).
func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Outcome is the published result of a search call: the retained top-K
// candidates plus a report of resource usage (§3).
type Outcome struct {
	Results *result.Set
	Guards  result.GuardReport
}

// Run executes the successive-shortest-path search (§4.5): expand states in
// ascending PathOrderKey order, materialize any state that reaches target
// within [MinHops,MaxHops], and otherwise relax outgoing edges into
// successors, applying per-(node,routeSignature) dominance pruning and the
// expansion/visited-state/time guards throughout.
func Run(g *graph.Graph, cfg *Config, source, target money.Currency, log *logrus.Entry) (Outcome, error) {
	if log == nil {
		log = discardLogger()
	}
	log = log.WithField("component", "search")

	if target == "" {
		return Outcome{}, types.NewInvalidInput("target currency must not be empty")
	}

	minSpend, err := cfg.MinSpend()
	if err != nil {
		return Outcome{}, err
	}
	maxSpend, err := cfg.MaxSpend()
	if err != nil {
		return Outcome{}, err
	}

	queue := NewQueue()
	registry := NewDominanceRegistry()
	guards := NewGuards(cfg.Guards)
	results := result.NewSet(cfg.ResultLimit)

	bootstrap := Bootstrap(source)
	queue.Push(bootstrap)
	registry.Register(bootstrap.CurrentNode, bootstrap.RouteSignature, bootstrap.Cost, bootstrap.Hops)
	guards.TryVisit()

	for queue.Len() > 0 {
		if guards.ExpansionLimitHit() {
			log.Debug("expansion limit reached, stopping search")
			break
		}
		if guards.TimeBudgetHit() {
			log.Debug("time budget reached, stopping search")
			break
		}

		if key, ok := queue.PeekOrderKey(); ok {
			if worst, ok := results.Worst(); ok && result.Less(worst.OrderKey, key) {
				break
			}
		}

		state, insertionOrder, ok := queue.Pop()
		if !ok {
			break
		}
		guards.RecordExpansion()

		if cfg.TraceSink != nil {
			fmt.Fprintf(cfg.TraceSink, "%s,%s,%d,%s\n", state.CurrentNode, state.Cost.String(), state.Hops, state.RouteSignature)
		}

		if state.CurrentNode == target && state.Hops >= cfg.MinHops {
			candidate, err := materializer.Materialize(materializer.Params{
				Path:        state.Path,
				SpendAmount: cfg.SpendAmount,
				MinSpend:    minSpend,
				MaxSpend:    maxSpend,
				OrderKey:    state.OrderKey(insertionOrder),
			})
			if err != nil {
				log.WithError(err).WithField("route", string(state.RouteSignature)).
					Warn("dropping candidate after materialization failure")
				continue
			}
			if candidate != nil {
				results.Insert(*candidate)
			}
			continue
		}

		if state.Hops >= cfg.MaxHops {
			continue
		}

		for _, e := range g.Edges(state.CurrentNode) {
			if state.ContainsNode(e.To, source) {
				continue
			}

			factor, rateFactor, feasible, err := CostFactor(e)
			if err != nil {
				log.WithError(err).Warn("dropping edge after cost factor failure")
				continue
			}
			if !feasible {
				continue
			}

			successor, err := state.Relax(e, factor, rateFactor)
			if err != nil {
				log.WithError(err).Warn("dropping successor after relaxation failure")
				continue
			}

			delta, dominated := registry.Register(successor.CurrentNode, successor.RouteSignature, successor.Cost, successor.Hops)
			if dominated {
				continue
			}
			if delta == 0 {
				// Updated an existing (node, routeSignature) record with a
				// strictly better cost, but the prior, worse occupant of
				// that record is already queued (or already expanded). Per
				// §4.5 step 6, only a brand-new record (delta=1) is pushed.
				continue
			}
			if !guards.TryVisit() {
				log.Debug("visited-state limit reached, dropping successor")
				continue
			}

			queue.Push(successor)
		}
	}

	return Outcome{Results: results, Guards: guards.Report()}, nil
}
