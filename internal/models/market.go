package models

import "strings"

// Market classifies a ticker's home market. Classification is a pure function
// of the ticker string, never a stored attribute.
type Market string

const (
	MarketUS Market = "US"
	MarketKR Market = "KR"
)

// MarketOf classifies a ticker: pure ASCII alphabetic tickers (AAPL, MSFT)
// trade on US exchanges, everything else (Korean numeric codes like 005930)
// is treated as KR.
func MarketOf(ticker string) Market {
	if ticker == "" {
		return MarketKR
	}
	for _, r := range ticker {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return MarketKR
		}
	}
	return MarketUS
}

// UnitDivisor returns the currency-scale divisor for monetary figures:
// billions of dollars for US tickers, 억원 (1e8 won) for Korean ones.
func UnitDivisor(m Market) float64 {
	if m == MarketUS {
		return 1e9
	}
	return 1e8
}

// ProviderSymbol maps a bare ticker to the market-data provider's suffix
// convention: uppercase for US, ".KS" (KOSPI) for Korean codes. The provider
// client retries ".KQ" when a KOSPI lookup comes back empty.
func ProviderSymbol(ticker string) string {
	if MarketOf(ticker) == MarketUS {
		return strings.ToUpper(ticker)
	}
	return ticker + ".KS"
}

// KosdaqSymbol is the KOSDAQ fallback suffix for Korean tickers.
func KosdaqSymbol(ticker string) string {
	return ticker + ".KQ"
}
