package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func marketServer(t *testing.T, handler http.HandlerFunc) *MarketClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMarketClient(srv.URL, "test-key", time.Millisecond)
}

func TestGetHistoryDropsNullCloses(t *testing.T) {
	client := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"points": []map[string]any{
					{"date": "2024-01-02", "close": 150.0},
					{"date": "2024-01-03", "close": nil},
					{"date": "2024-01-04", "close": 152.5},
				},
			},
		})
	})

	points, err := client.GetHistory(context.Background(), "AAPL", date(2024, 1, 1), date(2024, 2, 1))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points after dropping nulls, got %d", len(points))
	}
	if points[1].Value != 152.5 {
		t.Errorf("points[1] = %v, want 152.5", points[1].Value)
	}
}

func TestGetHistoryKosdaqRetry(t *testing.T) {
	var symbols []string
	client := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		symbols = append(symbols, r.URL.Path)
		body := map[string]any{"success": true, "data": map[string]any{"points": []map[string]any{}}}
		if r.URL.Path == "/v1/history/035720.KQ" {
			body["data"] = map[string]any{"points": []map[string]any{{"date": "2024-01-02", "close": 40000.0}}}
		}
		json.NewEncoder(w).Encode(body)
	})

	points, err := client.GetHistory(context.Background(), "035720", date(2024, 1, 1), date(2024, 2, 1))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected KOSDAQ fallback data, got %d points", len(points))
	}
	if len(symbols) != 2 || symbols[0] != "/v1/history/035720.KS" || symbols[1] != "/v1/history/035720.KQ" {
		t.Errorf("expected .KS then .KQ, got %v", symbols)
	}
}

func TestGetCompanyInfoCached(t *testing.T) {
	var calls atomic.Int32
	client := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"name": "Apple Inc.", "sector": "Technology"},
		})
	})

	for i := 0; i < 3; i++ {
		info, err := client.GetCompanyInfo(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("GetCompanyInfo failed: %v", err)
		}
		if info.Name != "Apple Inc." {
			t.Errorf("name = %q", info.Name)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 provider call for 3 lookups, got %d", calls.Load())
	}
}

func TestGetHistoryProviderError(t *testing.T) {
	client := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if _, err := client.GetHistory(context.Background(), "AAPL", date(2024, 1, 1), date(2024, 2, 1)); err == nil {
		t.Error("expected error on 429")
	}
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
