package positions

import (
	"math"
	"strings"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

// Certificates of deposit are costed at cdAveragePrice per unit. A position is
// a CD when its description contains cdMarker (case-sensitive substring).
const (
	cdMarker       = "CD"
	cdAveragePrice = 1000
)

// Enrich derives currentMarketPrice, totalCost and changePricePerShare for a
// single row, then applies the CD cost override. Rows holding neither a long
// nor a short quantity get zero for all three metrics.
func Enrich(row domain.FlatRow) domain.EnrichedRow {
	e := domain.EnrichedRow{FlatRow: row}

	switch {
	case row.LongQuantity > 0:
		e.CurrentMarketPrice = row.MarketValue / row.LongQuantity
		e.TotalCost = row.AveragePrice * row.LongQuantity
	case row.ShortQuantity > 0:
		e.CurrentMarketPrice = row.MarketValue / row.ShortQuantity
		e.TotalCost = row.AveragePrice * row.ShortQuantity
	}

	// Same expression for long and short positions.
	if row.LongQuantity > 0 || row.ShortQuantity > 0 {
		e.ChangePricePerShare = e.CurrentMarketPrice - row.AveragePrice
	}

	// Applied last: only averagePrice and totalCost see the override.
	if IsCertificateOfDeposit(row) {
		e.AveragePrice = cdAveragePrice
		e.TotalCost = e.LongQuantity * e.AveragePrice
	}

	e.CurrentMarketPrice = finite(e.CurrentMarketPrice)
	e.TotalCost = finite(e.TotalCost)
	e.ChangePricePerShare = finite(e.ChangePricePerShare)

	return e
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// EnrichAll applies Enrich to every row, preserving order.
func EnrichAll(rows []domain.FlatRow) []domain.EnrichedRow {
	enriched := make([]domain.EnrichedRow, len(rows))
	for i, row := range rows {
		enriched[i] = Enrich(row)
	}
	return enriched
}

// IsCertificateOfDeposit reports whether the CD cost override applies to row.
func IsCertificateOfDeposit(row domain.FlatRow) bool {
	return strings.Contains(row.PositionDescription, cdMarker)
}
