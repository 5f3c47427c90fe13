package pathsearch

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mExOms/pathsearch/internal/graph"
	"github.com/mExOms/pathsearch/pkg/money"
)

// BatchQuery is one leg of a BatchSearch call: an independent source/target
// search against the same graph.
type BatchQuery struct {
	Source money.Currency
	Target money.Currency
	Config *Config
}

// BatchResult pairs a BatchQuery's outcome with any error it raised. A
// query that fails does not cancel its siblings — each slot is populated
// independently.
type BatchResult struct {
	Outcome Outcome
	Err     error
}

// BatchSearch runs queries concurrently against the shared graph g. It is a
// supplemented convenience over repeated Search calls for callers quoting
// several source/target pairs against one order book snapshot; it adds no
// new search semantics of its own.
func BatchSearch(ctx context.Context, g *graph.Graph, queries []BatchQuery, log *logrus.Entry) ([]BatchResult, error) {
	results := make([]BatchResult, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range queries {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				results[i] = BatchResult{Err: err}
				return nil
			}
			q := queries[i]
			out, err := Search(g, q.Config, q.Source, q.Target, log)
			results[i] = BatchResult{Outcome: out, Err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
