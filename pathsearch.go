// Package pathsearch is the public entry point of the module: build a
// search graph from a finite limit-order book, then search it for the
// top-K cost-minimizing currency conversion paths from a source currency
// to a target currency (§3, §4).
package pathsearch

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/internal/search"
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/result"
	"github.com/mExOms/pathsearch/pkg/types"
)

// Config is PathSearchConfig (§3): spend target, tolerance window, hop
// bounds, result cardinality, and guard limits.
type Config = search.Config

// GuardLimits bounds a search call's resource use (§3, §5).
type GuardLimits = search.GuardLimits

// NewConfig builds a Config for the given desired spend, with the package
// defaults documented on search.NewConfig.
func NewConfig(spendAmount money.Money) *Config {
	return search.NewConfig(spendAmount)
}

// BuildGraph constructs the search graph from a finite order book. Every
// order must pass types.Order.Validate; the first failure aborts the whole
// build with InvalidInput (§4.1, §4.9).
func BuildGraph(orders []types.Order) (*graph.Graph, error) {
	return graph.Build(orders)
}

// Outcome is what a single search call returns: the retained top-K
// candidates, a guard usage report, and a correlation id for diagnostics.
type Outcome struct {
	SearchID SearchID
	Results  *result.Set
	Guards   result.GuardReport
}

// Search runs the path-search algorithm once, from source to target, over g
// under cfg (§4.5). log may be nil, in which case a discard-output logger is
// used so the core stays embeddable without configuring logging first;
// either way every log line this call emits is tagged with the generated
// SearchID so concurrent BatchSearch calls stay distinguishable.
func Search(g *graph.Graph, cfg *Config, source, target money.Currency, log *logrus.Entry) (Outcome, error) {
	id := NewSearchID()
	scoped := scopedLogger(log, id)

	out, err := search.Run(g, cfg, source, target, scoped)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{SearchID: id, Results: out.Results, Guards: out.Guards}, nil
}

func scopedLogger(log *logrus.Entry, id SearchID) *logrus.Entry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return log.WithField("searchId", string(id))
}
