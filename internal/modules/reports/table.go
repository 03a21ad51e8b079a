// Package reports writes the position tables to CSV and styled XLSX files.
package reports

import (
	"fmt"
	"strconv"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

// Table is a header row plus data rows, ready to be written.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// ColumnIndex returns the position of a header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SummaryFields and SummaryLabels pair up by position: SummaryLabels[i] is
// the header written for the SummaryFields[i] column. Keep them in lockstep.
var (
	SummaryFields = []string{
		domain.ColAccountNumber,
		domain.ColPositionSymbol,
		domain.ColPositionDescription,
		domain.ColPositionType,
		domain.ColLongQuantity,
		domain.ColShortQuantity,
		domain.ColAveragePrice,
		domain.ColCurrentMarketPrice,
		domain.ColChangePricePerShare,
		domain.ColTotalCost,
		domain.ColMarketValue,
		domain.ColLongOpenProfitLoss,
		domain.ColCurrentDayProfitLoss,
		domain.ColCurrentDayProfitLossPercentage,
	}

	SummaryLabels = []string{
		"Account Number",
		"Position Symbol",
		"Position Description",
		"Position Type",
		"Long Quantity",
		"Short Quantity",
		"Cost / Share",
		"Market Price / Share",
		LabelChangePricePerShare,
		"Total Cost",
		"Total Market Value",
		LabelLongOpenProfitLoss,
		LabelCurrentDayProfitLoss,
		LabelCurrentDayProfitLossPercent,
	}
)

// Summary labels that carry conditional coloring.
const (
	LabelChangePricePerShare         = "Change - Price / Share"
	LabelLongOpenProfitLoss          = "Long Open Profit/Loss"
	LabelCurrentDayProfitLoss        = "Current Day Profit/Loss"
	LabelCurrentDayProfitLossPercent = "Current Day Profit/Loss (%)"
)

// FullTable is every flattened column in FlatColumns order.
func FullTable(rows []domain.FlatRow) Table {
	t := Table{Columns: domain.FlatColumns, Rows: make([][]interface{}, len(rows))}
	for i, row := range rows {
		t.Rows[i] = row.Values()
	}
	return t
}

// SummaryTable projects enriched rows onto SummaryFields and renames the
// columns to SummaryLabels.
func SummaryTable(rows []domain.EnrichedRow) (Table, error) {
	if len(SummaryFields) != len(SummaryLabels) {
		return Table{}, fmt.Errorf("summary projection has %d fields but %d labels", len(SummaryFields), len(SummaryLabels))
	}

	t := Table{Columns: SummaryLabels, Rows: make([][]interface{}, len(rows))}
	for i, row := range rows {
		projected := make([]interface{}, len(SummaryFields))
		for j, field := range SummaryFields {
			v, ok := row.Value(field)
			if !ok {
				return Table{}, fmt.Errorf("summary field %q is not an enriched column", field)
			}
			projected[j] = v
		}
		t.Rows[i] = projected
	}
	return t, nil
}

// CellText is the string form of a cell, used for CSV output and for sizing
// columns. Floats never use exponent notation.
func CellText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
