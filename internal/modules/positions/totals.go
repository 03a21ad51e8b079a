package positions

import (
	"gonum.org/v1/gonum/floats"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

// Totals aggregates one run's enriched rows.
type Totals struct {
	Accounts             int
	Positions            int
	MarketValue          float64
	TotalCost            float64
	LongOpenProfitLoss   float64
	CurrentDayProfitLoss float64
}

// UnrealizedGain is market value minus total cost.
func (t Totals) UnrealizedGain() float64 {
	return t.MarketValue - t.TotalCost
}

// Summarize totals the rows of a run. It has no effect on the reports.
func Summarize(rows []domain.EnrichedRow) Totals {
	marketValues := make([]float64, len(rows))
	costs := make([]float64, len(rows))
	openPL := make([]float64, len(rows))
	dayPL := make([]float64, len(rows))
	accounts := make(map[string]struct{})

	for i, row := range rows {
		marketValues[i] = row.MarketValue
		costs[i] = row.TotalCost
		openPL[i] = row.LongOpenProfitLoss
		dayPL[i] = row.CurrentDayProfitLoss
		accounts[row.AccountNumber] = struct{}{}
	}

	return Totals{
		Accounts:             len(accounts),
		Positions:            len(rows),
		MarketValue:          floats.Sum(marketValues),
		TotalCost:            floats.Sum(costs),
		LongOpenProfitLoss:   floats.Sum(openPL),
		CurrentDayProfitLoss: floats.Sum(dayPL),
	}
}
