package models

import "testing"

func TestMarketOf(t *testing.T) {
	cases := map[string]Market{
		"AAPL":   MarketUS,
		"msft":   MarketUS,
		"005930": MarketKR,
		"035720": MarketKR,
		"BRK.B":  MarketKR, // dot breaks the pure-alphabetic rule
		"":       MarketKR,
	}
	for ticker, want := range cases {
		if got := MarketOf(ticker); got != want {
			t.Errorf("MarketOf(%q) = %v, want %v", ticker, got, want)
		}
	}
}

func TestUnitDivisor(t *testing.T) {
	if UnitDivisor(MarketUS) != 1e9 {
		t.Error("US figures scale to billions")
	}
	if UnitDivisor(MarketKR) != 1e8 {
		t.Error("KR figures scale to 억원")
	}
}

func TestProviderSymbol(t *testing.T) {
	if got := ProviderSymbol("aapl"); got != "AAPL" {
		t.Errorf("ProviderSymbol(aapl) = %q, want AAPL", got)
	}
	if got := ProviderSymbol("005930"); got != "005930.KS" {
		t.Errorf("ProviderSymbol(005930) = %q, want 005930.KS", got)
	}
	if got := KosdaqSymbol("035720"); got != "035720.KQ" {
		t.Errorf("KosdaqSymbol(035720) = %q, want 035720.KQ", got)
	}
}
