package models

// PortfolioStock is one holding in the JSON-file portfolio.
type PortfolioStock struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	AddedDate string  `json:"added_date"`
}

// PortfolioTransaction records a buy or sell against a holding.
type PortfolioTransaction struct {
	ID       int     `json:"id"`
	StockID  int     `json:"stock_id"`
	Type     string  `json:"type"` // "buy" or "sell"
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
}

// PortfolioData is the on-disk shape of the portfolio file.
type PortfolioData struct {
	Stocks       []PortfolioStock       `json:"stocks"`
	Transactions []PortfolioTransaction `json:"transactions"`
}

// PortfolioSummary aggregates holdings value and realized cash flow.
type PortfolioSummary struct {
	TotalValue  float64 `json:"total_value"`
	TotalProfit float64 `json:"total_profit"`
	TotalStocks int     `json:"total_stocks"`
}
