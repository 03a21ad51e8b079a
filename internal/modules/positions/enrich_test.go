package positions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

func TestEnrich(t *testing.T) {
	testCases := []struct {
		name         string
		row          domain.FlatRow
		wantPrice    float64
		wantCost     float64
		wantChange   float64
		wantAvgPrice float64
	}{
		{
			name:         "long position",
			row:          domain.FlatRow{PositionDescription: "Apple Inc", LongQuantity: 10, AveragePrice: 50, MarketValue: 600},
			wantPrice:    60,
			wantCost:     500,
			wantChange:   10,
			wantAvgPrice: 50,
		},
		{
			name:         "short position",
			row:          domain.FlatRow{PositionDescription: "Tesla Inc", ShortQuantity: 2, AveragePrice: 250, MarketValue: 400},
			wantPrice:    200,
			wantCost:     500,
			wantChange:   -50,
			wantAvgPrice: 250,
		},
		{
			name:         "long wins when both are set",
			row:          domain.FlatRow{LongQuantity: 4, ShortQuantity: 2, AveragePrice: 10, MarketValue: 80},
			wantPrice:    20,
			wantCost:     40,
			wantChange:   10,
			wantAvgPrice: 10,
		},
		{
			name:         "no quantity",
			row:          domain.FlatRow{PositionDescription: "Closed", AveragePrice: 12, MarketValue: 0},
			wantAvgPrice: 12,
		},
		{
			name:         "certificate of deposit",
			row:          domain.FlatRow{PositionDescription: "Bank of America CD Note", LongQuantity: 10, AveragePrice: 50, MarketValue: 600},
			wantPrice:    60,
			wantCost:     10000,
			wantChange:   10,
			wantAvgPrice: 1000,
		},
		{
			name:         "short certificate of deposit has zero cost",
			row:          domain.FlatRow{PositionDescription: "XYZ CD", ShortQuantity: 5, AveragePrice: 90, MarketValue: 500},
			wantPrice:    100,
			wantCost:     0,
			wantChange:   10,
			wantAvgPrice: 1000,
		},
		{
			name:         "denormal quantity does not divide into infinity",
			row:          domain.FlatRow{LongQuantity: 5e-324, AveragePrice: 50, MarketValue: 600},
			wantPrice:    0,
			wantCost:     0,
			wantChange:   0,
			wantAvgPrice: 50,
		},
		{
			name:         "non-finite market value",
			row:          domain.FlatRow{LongQuantity: 10, AveragePrice: 50, MarketValue: math.Inf(1)},
			wantPrice:    0,
			wantCost:     500,
			wantChange:   0,
			wantAvgPrice: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := Enrich(tc.row)
			assert.InDelta(t, tc.wantPrice, e.CurrentMarketPrice, 1e-9)
			assert.InDelta(t, tc.wantCost, e.TotalCost, 1e-9)
			assert.InDelta(t, tc.wantChange, e.ChangePricePerShare, 1e-9)
			assert.InDelta(t, tc.wantAvgPrice, e.AveragePrice, 1e-9)
		})
	}
}

func TestEnrich_LeavesOtherColumnsAlone(t *testing.T) {
	row := domain.FlatRow{
		AccountNumber:  "12345",
		PositionSymbol: "BAC",
		LongQuantity:   10,
		AveragePrice:   50,
		MarketValue:    600,
		CashBalance:    1000,
	}

	e := Enrich(row)
	assert.Equal(t, row, e.FlatRow)
}

func TestIsCertificateOfDeposit(t *testing.T) {
	assert.True(t, IsCertificateOfDeposit(domain.FlatRow{PositionDescription: "Bank of America CD Note"}))
	assert.True(t, IsCertificateOfDeposit(domain.FlatRow{PositionDescription: "CDW Corp"}))
	assert.False(t, IsCertificateOfDeposit(domain.FlatRow{PositionDescription: "certificate cd"}))
	assert.False(t, IsCertificateOfDeposit(domain.FlatRow{PositionDescription: domain.NotAvailable}))
}

func TestFlattenAndEnrich_EndToEnd(t *testing.T) {
	accounts := decodeAccounts(t, `[{
		"securitiesAccount": {
			"accountNumber": "12345",
			"initialBalances": {"cashBalance": 1000},
			"positions": [{
				"instrument": {"symbol": "BAC", "description": "Bank of America CD Note"},
				"longQuantity": 10, "averagePrice": 50, "marketValue": 600
			}]
		}
	}]`)

	flat, err := Flatten(accounts)
	require.NoError(t, err)
	enriched := EnrichAll(flat)
	require.Len(t, enriched, 1)

	row := enriched[0]
	assert.Equal(t, "12345", row.AccountNumber)
	assert.Equal(t, 1000.0, row.CashBalance)
	assert.Equal(t, 60.0, row.CurrentMarketPrice)
	assert.Equal(t, 1000.0, row.AveragePrice)
	assert.Equal(t, 10000.0, row.TotalCost)
	assert.Equal(t, 10.0, row.ChangePricePerShare)

	// The pre-enrichment rows keep the reported average price.
	assert.Equal(t, 50.0, flat[0].AveragePrice)
}

func TestEnrichAll_PreservesOrder(t *testing.T) {
	rows := []domain.FlatRow{
		{PositionSymbol: "A", LongQuantity: 1, MarketValue: 1},
		{PositionSymbol: "B", LongQuantity: 1, MarketValue: 2},
		{PositionSymbol: "C"},
	}

	enriched := EnrichAll(rows)
	require.Len(t, enriched, 3)
	for i, row := range rows {
		assert.Equal(t, row.PositionSymbol, enriched[i].PositionSymbol)
	}
	assert.Empty(t, EnrichAll(nil))
}

func TestFlattenAndEnrich_NonFiniteInputs(t *testing.T) {
	accounts := decodeAccounts(t, `[{
		"securitiesAccount": {
			"accountNumber": "1",
			"positions": [
				{"longQuantity": 5, "averagePrice": 50, "marketValue": "NaN"},
				{"longQuantity": "Inf", "averagePrice": 50, "marketValue": 600},
				{"longQuantity": 5e-324, "averagePrice": 50, "marketValue": 600}
			]
		}
	}]`)

	flat, err := Flatten(accounts)
	require.NoError(t, err)

	for i, row := range EnrichAll(flat) {
		for _, v := range row.Values() {
			if f, ok := v.(float64); ok {
				assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "row %d has non-finite value", i)
			}
		}
	}
}
