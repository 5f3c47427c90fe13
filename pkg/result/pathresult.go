package result

import (
	"github.com/mExOms/pathsearch/pkg/decimal"
	"github.com/mExOms/pathsearch/pkg/money"
)

// PathLeg is one hop of a materialized path.
type PathLeg struct {
	From     money.Currency
	To       money.Currency
	Spent    money.Money
	Received money.Money
	Fees     map[money.Currency]money.Money
}

// PathResult is a fully materialized conversion path from source to target.
type PathResult struct {
	TotalSpent        money.Money
	TotalReceived     money.Money
	ResidualTolerance decimal.Decimal
	FeeBreakdown      map[money.Currency]money.Money
	Legs              []PathLeg
	OrderKey          PathOrderKey
}
