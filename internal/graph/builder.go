package graph

import (
	"github.com/mExOms/pathsearch/pkg/money"
	"github.com/mExOms/pathsearch/pkg/types"
)

// conversionExtraDigits is the working-precision headroom used for the
// base->quote and gross-fee conversions performed at graph build time.
const conversionExtraDigits = 4

// Build constructs a Graph from a finite order book. Every order must pass
// types.Order.Validate; the first failure aborts the whole build with
// InvalidInput — no partial graph is returned (§4.9).
func Build(orders []types.Order) (*Graph, error) {
	g := newGraph()
	for i := range orders {
		order := orders[i]
		if err := order.Validate(); err != nil {
			return nil, err
		}
		edge, err := buildEdge(&orders[i])
		if err != nil {
			return nil, err
		}
		g.addEdge(edge)
	}
	return g, nil
}

func buildEdge(order *types.Order) (*Edge, error) {
	scale := order.Bounds.Min.Scale()

	from, to := order.Base, order.Quote
	if order.Side == types.SideSell {
		from, to = order.Quote, order.Base
	}

	baseCap := Range{Min: order.Bounds.Min, Max: order.Bounds.Max}

	quoteMin, err := order.EffectiveRate.Convert(order.Bounds.Min, scale, conversionExtraDigits)
	if err != nil {
		return nil, err
	}
	quoteMax, err := order.EffectiveRate.Convert(order.Bounds.Max, scale, conversionExtraDigits)
	if err != nil {
		return nil, err
	}
	quoteCap := Range{Min: quoteMin, Max: quoteMax}

	grossMin, err := GrossBaseAt(order, order.Bounds.Min, quoteMin, scale)
	if err != nil {
		return nil, err
	}
	grossMax, err := GrossBaseAt(order, order.Bounds.Max, quoteMax, scale)
	if err != nil {
		return nil, err
	}
	grossCap := Range{Min: grossMin, Max: grossMax}

	segments, err := buildSegments(baseCap, quoteCap, grossCap)
	if err != nil {
		return nil, err
	}

	return &Edge{
		From:              from,
		To:                to,
		Side:              order.Side,
		Order:             order,
		BaseCapacity:      baseCap,
		QuoteCapacity:      quoteCap,
		GrossBaseCapacity: grossCap,
		Segments:          segments,
	}, nil
}

// GrossBaseAt applies the order's fee policy at the given net base/quote
// pair and returns the base-denominated gross figure (net + baseFee). If
// the policy only charges a quote fee, grossBase equals netBase. Shared
// with the materializer, which recomputes it at each refinement step
// (§4.7).
func GrossBaseAt(order *types.Order, netBase, netQuote money.Money, scale int32) (money.Money, error) {
	breakdown, err := order.Policy().Calculate(order.Side, netBase, netQuote)
	if err != nil {
		return money.Money{}, err
	}
	if breakdown.BaseFee == nil {
		return netBase, nil
	}
	return netBase.AddAt(*breakdown.BaseFee, scale)
}

func buildSegments(base, quote, gross Range) ([]EdgeSegment, error) {
	var segments []EdgeSegment

	hasMandatory := base.Min.Amount.Sign() > 0
	if hasMandatory {
		segments = append(segments, EdgeSegment{
			IsMandatory: true,
			Base:        Range{Min: base.Min, Max: base.Min},
			Quote:       Range{Min: quote.Min, Max: quote.Min},
			GrossBase:   Range{Min: gross.Min, Max: gross.Min},
		})
	}

	cmp, err := base.Max.Cmp(base.Min)
	if err != nil {
		return nil, err
	}
	if cmp > 0 {
		optBaseMax, err := base.Max.SubAt(base.Min, base.Max.Scale())
		if err != nil {
			return nil, err
		}
		optQuoteMax, err := quote.Max.SubAt(quote.Min, quote.Max.Scale())
		if err != nil {
			return nil, err
		}
		optGrossMax, err := gross.Max.SubAt(gross.Min, gross.Max.Scale())
		if err != nil {
			return nil, err
		}
		zeroBase, err := money.Zero(base.Min.Currency, base.Min.Scale())
		if err != nil {
			return nil, err
		}
		zeroQuote, err := money.Zero(quote.Min.Currency, quote.Min.Scale())
		if err != nil {
			return nil, err
		}
		zeroGross, err := money.Zero(gross.Min.Currency, gross.Min.Scale())
		if err != nil {
			return nil, err
		}
		segments = append(segments, EdgeSegment{
			IsMandatory: false,
			Base:        Range{Min: zeroBase, Max: optBaseMax},
			Quote:       Range{Min: zeroQuote, Max: optQuoteMax},
			GrossBase:   Range{Min: zeroGross, Max: optGrossMax},
		})
	}

	return segments, nil
}
