package domain

// NotAvailable is the value of a missing text attribute.
const NotAvailable = "N/A"

// TextField is an optional string attribute of a position. Path is a JSONPath
// relative to the position object; Default is used when the path is absent.
type TextField struct {
	Column  string
	Path    string
	Default string
	ref     func(*FlatRow) *string
}

// Get returns the field's value from row.
func (f TextField) Get(row FlatRow) string { return *f.ref(&row) }

// Set stores v into row.
func (f TextField) Set(row *FlatRow, v string) { *f.ref(row) = v }

// NumberField is an optional numeric attribute. Missing values are 0.
// Path is relative to the position object for PositionNumberFields and to
// the account record for BalanceFields.
type NumberField struct {
	Column string
	Path   string
	ref    func(*FlatRow) *float64
}

// Get returns the field's value from row.
func (f NumberField) Get(row FlatRow) float64 { return *f.ref(&row) }

// Set stores v into row.
func (f NumberField) Set(row *FlatRow, v float64) { *f.ref(row) = v }

// PositionTextFields are the instrument attributes, in column order.
var PositionTextFields = []TextField{
	{ColPositionSymbol, "$.instrument.symbol", NotAvailable, func(r *FlatRow) *string { return &r.PositionSymbol }},
	{ColPositionDescription, "$.instrument.description", NotAvailable, func(r *FlatRow) *string { return &r.PositionDescription }},
	{ColPositionType, "$.instrument.type", NotAvailable, func(r *FlatRow) *string { return &r.PositionType }},
}

// PositionNumberFields are the position quantities and values, in column order.
var PositionNumberFields = []NumberField{
	{ColShortQuantity, "$.shortQuantity", func(r *FlatRow) *float64 { return &r.ShortQuantity }},
	{ColLongQuantity, "$.longQuantity", func(r *FlatRow) *float64 { return &r.LongQuantity }},
	{ColAveragePrice, "$.averagePrice", func(r *FlatRow) *float64 { return &r.AveragePrice }},
	{ColCurrentDayProfitLoss, "$.currentDayProfitLoss", func(r *FlatRow) *float64 { return &r.CurrentDayProfitLoss }},
	{ColCurrentDayProfitLossPercentage, "$.currentDayProfitLossPercentage", func(r *FlatRow) *float64 { return &r.CurrentDayProfitLossPercentage }},
	{ColMarketValue, "$.marketValue", func(r *FlatRow) *float64 { return &r.MarketValue }},
	{"maintenanceRequirement", "$.maintenanceRequirement", func(r *FlatRow) *float64 { return &r.MaintenanceRequirement }},
	{ColLongOpenProfitLoss, "$.longOpenProfitLoss", func(r *FlatRow) *float64 { return &r.LongOpenProfitLoss }},
	{"previousSessionLongQuantity", "$.previousSessionLongQuantity", func(r *FlatRow) *float64 { return &r.PreviousSessionLongQuantity }},
	{"currentDayCost", "$.currentDayCost", func(r *FlatRow) *float64 { return &r.CurrentDayCost }},
}

// BalanceFields are the account-level balances copied onto every position
// row of the account, in column order.
var BalanceFields = []NumberField{
	{"cashAvailableForTrading", "$.securitiesAccount.initialBalances.cashAvailableForTrading", func(r *FlatRow) *float64 { return &r.CashAvailableForTrading }},
	{"cashAvailableForWithdrawal", "$.securitiesAccount.initialBalances.cashAvailableForWithdrawal", func(r *FlatRow) *float64 { return &r.CashAvailableForWithdrawal }},
	{"cashBalance", "$.securitiesAccount.initialBalances.cashBalance", func(r *FlatRow) *float64 { return &r.CashBalance }},
	{"liquidationValue", "$.securitiesAccount.initialBalances.liquidationValue", func(r *FlatRow) *float64 { return &r.LiquidationValue }},
	{"longStockValue", "$.securitiesAccount.initialBalances.longStockValue", func(r *FlatRow) *float64 { return &r.LongStockValue }},
	{"mutualFundValue", "$.securitiesAccount.initialBalances.mutualFundValue", func(r *FlatRow) *float64 { return &r.MutualFundValue }},
	{"accountValue", "$.securitiesAccount.initialBalances.accountValue", func(r *FlatRow) *float64 { return &r.AccountValue }},
	{"currentCashBalance", "$.securitiesAccount.currentBalances.cashBalance", func(r *FlatRow) *float64 { return &r.CurrentCashBalance }},
	{"currentLiquidationValue", "$.securitiesAccount.currentBalances.liquidationValue", func(r *FlatRow) *float64 { return &r.CurrentLiquidationValue }},
	{"longMarketValue", "$.securitiesAccount.currentBalances.longMarketValue", func(r *FlatRow) *float64 { return &r.LongMarketValue }},
	{"totalCash", "$.securitiesAccount.currentBalances.totalCash", func(r *FlatRow) *float64 { return &r.TotalCash }},
	{"currentAccountValue", "$.securitiesAccount.currentBalances.accountValue", func(r *FlatRow) *float64 { return &r.CurrentAccountValue }},
	{"aggregatedBalance", "$.aggregatedBalance.liquidationValue", func(r *FlatRow) *float64 { return &r.AggregatedBalance }},
}
