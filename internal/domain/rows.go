package domain

// Column keys referenced outside the default table.
const (
	ColAccountNumber                  = "accountNumber"
	ColPositionSymbol                 = "positionSymbol"
	ColPositionDescription            = "positionDescription"
	ColPositionType                   = "positionType"
	ColShortQuantity                  = "shortQuantity"
	ColLongQuantity                   = "longQuantity"
	ColAveragePrice                   = "averagePrice"
	ColCurrentDayProfitLoss           = "currentDayProfitLoss"
	ColCurrentDayProfitLossPercentage = "currentDayProfitLossPercentage"
	ColMarketValue                    = "marketValue"
	ColLongOpenProfitLoss             = "longOpenProfitLoss"
	ColCurrentMarketPrice             = "currentMarketPrice"
	ColTotalCost                      = "totalCost"
	ColChangePricePerShare            = "changePricePerShare"
)

// FlatRow is one position of one account with the account-level balances
// copied next to it.
type FlatRow struct {
	AccountNumber string

	PositionSymbol      string
	PositionDescription string
	PositionType        string

	ShortQuantity                  float64
	LongQuantity                   float64
	AveragePrice                   float64
	CurrentDayProfitLoss           float64
	CurrentDayProfitLossPercentage float64
	MarketValue                    float64
	MaintenanceRequirement         float64
	LongOpenProfitLoss             float64
	PreviousSessionLongQuantity    float64
	CurrentDayCost                 float64

	// initialBalances
	CashAvailableForTrading    float64
	CashAvailableForWithdrawal float64
	CashBalance                float64
	LiquidationValue           float64
	LongStockValue             float64
	MutualFundValue            float64
	AccountValue               float64

	// currentBalances
	CurrentCashBalance      float64
	CurrentLiquidationValue float64
	LongMarketValue         float64
	TotalCash               float64
	CurrentAccountValue     float64

	// aggregatedBalance.liquidationValue
	AggregatedBalance float64
}

// Values returns the row in FlatColumns order.
func (r FlatRow) Values() []interface{} {
	values := make([]interface{}, 0, len(FlatColumns))
	values = append(values, r.AccountNumber)
	for _, f := range PositionTextFields {
		values = append(values, f.Get(r))
	}
	for _, f := range PositionNumberFields {
		values = append(values, f.Get(r))
	}
	for _, f := range BalanceFields {
		values = append(values, f.Get(r))
	}
	return values
}

// EnrichedRow is a FlatRow plus the derived per-position metrics.
type EnrichedRow struct {
	FlatRow
	CurrentMarketPrice  float64
	TotalCost           float64
	ChangePricePerShare float64
}

// Values returns the row in EnrichedColumns order.
func (r EnrichedRow) Values() []interface{} {
	return append(r.FlatRow.Values(), r.CurrentMarketPrice, r.TotalCost, r.ChangePricePerShare)
}

// Value returns the value of a single named column.
func (r EnrichedRow) Value(column string) (interface{}, bool) {
	idx, ok := enrichedIndex[column]
	if !ok {
		return nil, false
	}
	return r.Values()[idx], true
}

var (
	// FlatColumns is the column order of the flattened table.
	FlatColumns = flatColumns()
	// EnrichedColumns is FlatColumns with the derived metrics appended.
	EnrichedColumns = append(flatColumns(), ColCurrentMarketPrice, ColTotalCost, ColChangePricePerShare)

	enrichedIndex = indexColumns(EnrichedColumns)
)

func flatColumns() []string {
	columns := []string{ColAccountNumber}
	for _, f := range PositionTextFields {
		columns = append(columns, f.Column)
	}
	for _, f := range PositionNumberFields {
		columns = append(columns, f.Column)
	}
	for _, f := range BalanceFields {
		columns = append(columns, f.Column)
	}
	return columns
}

func indexColumns(columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return idx
}
