package models

import "fmt"

// Metric identifies one chartable series.
type Metric string

const (
	MetricPrice                Metric = "price"
	MetricRevenue              Metric = "revenue"
	MetricOperatingIncome      Metric = "operating_income"
	MetricNetProfit            Metric = "net_profit"
	MetricTotalDebt            Metric = "total_debt"
	MetricCurrentLiabilities   Metric = "current_liabilities"
	MetricInterestExpense      Metric = "interest_expense"
	MetricCash                 Metric = "cash"
	MetricPBR                  Metric = "pbr"
	MetricPER                  Metric = "per"
	MetricEVEBITDA             Metric = "ev_ebitda"
	MetricTreasury5Y           Metric = "treasury_5y"
	MetricTreasury3M           Metric = "treasury_3m"
	MetricCPI                  Metric = "cpi"
	MetricIndustrialProduction Metric = "industrial_production"
	MetricUnemployment         Metric = "unemployment"
	MetricGDP                  Metric = "gdp"
	MetricSP500                Metric = "sp500"
	MetricBuffettRatio         Metric = "buffett_ratio"
	MetricHousingInventory     Metric = "housing_inventory"
	MetricMortgageDelinquency  Metric = "mortgage_delinquency"
)

// Kind decides the formatter's gap and unit policy. Flow metrics are monetary
// flow/stock figures: gaps render as 0 and values are scaled by the market's
// currency divisor. Rate metrics (prices, ratios, macro indicators) render
// gaps as null and are never scaled.
type Kind int

const (
	KindFlow Kind = iota
	KindRate
)

// Scope selects the fetch pipeline feeding a metric.
type Scope int

const (
	ScopePrice     Scope = iota // daily provider history, quarter-averaged
	ScopeStatement              // financial-statement line items
	ScopeValuation              // compound: fundamentals + quarter-average price
	ScopeMacro                  // macro provider series
)

// StatementType names which provider statement carries a line item.
type StatementType string

const (
	StatementIncome  StatementType = "income"
	StatementBalance StatementType = "balance"
)

// Spec is the single data-driven table replacing per-metric fetch/save/format
// function families: everything metric-specific the pipeline needs lives here.
type Spec struct {
	Metric      Metric
	Kind        Kind
	Scope       Scope
	PluralField string // array name inside chart_data

	// ScopeStatement only.
	Statement StatementType
	Labels    []string // provider line-item labels, probed in order

	// ScopeMacro only.
	SeriesID string
}

var specs = map[Metric]Spec{
	MetricPrice: {Metric: MetricPrice, Kind: KindRate, Scope: ScopePrice, PluralField: "price_values"},

	MetricRevenue:            {Metric: MetricRevenue, Kind: KindFlow, Scope: ScopeStatement, PluralField: "revenue_values", Statement: StatementIncome, Labels: []string{"Total Revenue", "Operating Revenue"}},
	MetricOperatingIncome:    {Metric: MetricOperatingIncome, Kind: KindFlow, Scope: ScopeStatement, PluralField: "operating_income_values", Statement: StatementIncome, Labels: []string{"Operating Income", "Total Operating Income As Reported"}},
	MetricNetProfit:          {Metric: MetricNetProfit, Kind: KindFlow, Scope: ScopeStatement, PluralField: "net_profit_values", Statement: StatementIncome, Labels: []string{"Net Income", "Net Income Common Stockholders"}},
	MetricTotalDebt:          {Metric: MetricTotalDebt, Kind: KindFlow, Scope: ScopeStatement, PluralField: "total_debt_values", Statement: StatementBalance, Labels: []string{"Total Debt", "Total Liabilities Net Minority Interest"}},
	MetricCurrentLiabilities: {Metric: MetricCurrentLiabilities, Kind: KindFlow, Scope: ScopeStatement, PluralField: "current_liabilities_values", Statement: StatementBalance, Labels: []string{"Current Liabilities", "Total Current Liabilities"}},
	MetricInterestExpense:    {Metric: MetricInterestExpense, Kind: KindFlow, Scope: ScopeStatement, PluralField: "interest_expense_values", Statement: StatementIncome, Labels: []string{"Interest Expense", "Interest Expense Non Operating"}},
	MetricCash:               {Metric: MetricCash, Kind: KindFlow, Scope: ScopeStatement, PluralField: "cash_values", Statement: StatementBalance, Labels: []string{"Cash And Cash Equivalents", "Cash Cash Equivalents And Short Term Investments"}},

	MetricPBR:      {Metric: MetricPBR, Kind: KindRate, Scope: ScopeValuation, PluralField: "pbr_values"},
	MetricPER:      {Metric: MetricPER, Kind: KindRate, Scope: ScopeValuation, PluralField: "per_values"},
	MetricEVEBITDA: {Metric: MetricEVEBITDA, Kind: KindRate, Scope: ScopeValuation, PluralField: "ev_ebitda_values"},

	MetricTreasury5Y:           {Metric: MetricTreasury5Y, Kind: KindRate, Scope: ScopeMacro, PluralField: "treasury_5y_values", SeriesID: "DGS5"},
	MetricTreasury3M:           {Metric: MetricTreasury3M, Kind: KindRate, Scope: ScopeMacro, PluralField: "treasury_3m_values", SeriesID: "DGS3MO"},
	MetricCPI:                  {Metric: MetricCPI, Kind: KindRate, Scope: ScopeMacro, PluralField: "cpi_values", SeriesID: "CPIAUCSL"},
	MetricIndustrialProduction: {Metric: MetricIndustrialProduction, Kind: KindRate, Scope: ScopeMacro, PluralField: "production_values", SeriesID: "INDPRO"},
	MetricUnemployment:         {Metric: MetricUnemployment, Kind: KindRate, Scope: ScopeMacro, PluralField: "unemployment_values", SeriesID: "UNRATE"},
	MetricGDP:                  {Metric: MetricGDP, Kind: KindRate, Scope: ScopeMacro, PluralField: "gdp_values", SeriesID: "GDP"},
	MetricSP500:                {Metric: MetricSP500, Kind: KindRate, Scope: ScopeMacro, PluralField: "sp500_values", SeriesID: "SP500"},
	MetricBuffettRatio:         {Metric: MetricBuffettRatio, Kind: KindRate, Scope: ScopeMacro, PluralField: "buffett_values", SeriesID: "WILL5000PR"},
	MetricHousingInventory:     {Metric: MetricHousingInventory, Kind: KindRate, Scope: ScopeMacro, PluralField: "inventory_values", SeriesID: "ETOTALUSQ176N"},
	MetricMortgageDelinquency:  {Metric: MetricMortgageDelinquency, Kind: KindRate, Scope: ScopeMacro, PluralField: "delinquency_values", SeriesID: "DRSFRMACBS"},
}

// SpecFor returns the pipeline spec for a metric.
func SpecFor(m Metric) (Spec, error) {
	spec, ok := specs[m]
	if !ok {
		return Spec{}, fmt.Errorf("unknown metric %q", m)
	}
	return spec, nil
}

// Endpoint names map one URL segment to the metrics its chart carries.
// Treasury and valuation charts plot multiple parallel series.
var stockEndpoints = map[string][]Metric{
	"price":               {MetricPrice},
	"revenue":             {MetricRevenue},
	"operating-income":    {MetricOperatingIncome},
	"net-profit":          {MetricNetProfit},
	"total-debt":          {MetricTotalDebt},
	"current-liabilities": {MetricCurrentLiabilities},
	"interest-expense":    {MetricInterestExpense},
	"cash":                {MetricCash},
	"valuation":           {MetricPBR, MetricPER, MetricEVEBITDA},
}

var economyEndpoints = map[string][]Metric{
	"treasury":              {MetricTreasury5Y, MetricTreasury3M},
	"cpi":                   {MetricCPI},
	"industrial-production": {MetricIndustrialProduction},
	"unemployment":          {MetricUnemployment},
	"gdp":                   {MetricGDP},
	"sp500":                 {MetricSP500},
	"buffett-ratio":         {MetricBuffettRatio},
	"housing-inventory":     {MetricHousingInventory},
	"mortgage-delinquency":  {MetricMortgageDelinquency},
}

// StockEndpoint resolves a stock-domain endpoint name to its metrics.
func StockEndpoint(name string) ([]Metric, bool) {
	metrics, ok := stockEndpoints[name]
	return metrics, ok
}

// EconomyEndpoint resolves an economy-domain endpoint name to its metrics.
func EconomyEndpoint(name string) ([]Metric, bool) {
	metrics, ok := economyEndpoints[name]
	return metrics, ok
}
