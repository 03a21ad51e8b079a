package positions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

func TestSummarize(t *testing.T) {
	rows := []domain.EnrichedRow{
		{FlatRow: domain.FlatRow{AccountNumber: "1", MarketValue: 600, LongOpenProfitLoss: 100, CurrentDayProfitLoss: 5}, TotalCost: 500},
		{FlatRow: domain.FlatRow{AccountNumber: "1", MarketValue: 400, LongOpenProfitLoss: -20, CurrentDayProfitLoss: -2}, TotalCost: 500},
		{FlatRow: domain.FlatRow{AccountNumber: "2", MarketValue: 250}, TotalCost: 200},
	}

	totals := Summarize(rows)
	assert.Equal(t, 2, totals.Accounts)
	assert.Equal(t, 3, totals.Positions)
	assert.InDelta(t, 1250, totals.MarketValue, 1e-9)
	assert.InDelta(t, 1200, totals.TotalCost, 1e-9)
	assert.InDelta(t, 80, totals.LongOpenProfitLoss, 1e-9)
	assert.InDelta(t, 3, totals.CurrentDayProfitLoss, 1e-9)
	assert.InDelta(t, 50, totals.UnrealizedGain(), 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	totals := Summarize(nil)
	assert.Equal(t, Totals{}, totals)
}
