// Package providers holds the HTTP clients for the upstream market-data and
// macro-data services.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/mystocktax/backend/internal/metrics"
	"github.com/mystocktax/backend/internal/models"
	"github.com/mystocktax/backend/internal/timeseries"
)

const (
	marketDefaultBaseURL = "https://api.stockdata.mystocktax.com"
	marketDefaultTimeout = 15 * time.Second

	// Upstream throttles aggressively; space calls instead of bursting.
	marketDefaultCallDelay = 1 * time.Second

	companyCacheSize = 256
)

// StatementFreq selects annual or quarterly statement granularity.
type StatementFreq string

const (
	FreqAnnual    StatementFreq = "annual"
	FreqQuarterly StatementFreq = "quarterly"
)

// MarketClient talks to the equity data provider: daily price history,
// financial statements keyed by line-item label, and company profiles.
type MarketClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter

	companyCache *lru.Cache[string, models.CompanyInfo]
}

type historyResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Points []struct {
			Date  string   `json:"date"`
			Close *float64 `json:"close"`
		} `json:"points"`
	} `json:"data"`
}

type statementResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		LineItems map[string]map[string]float64 `json:"line_items"` // label -> date -> value
	} `json:"data"`
}

type companyResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Name   string `json:"name"`
		Sector string `json:"sector"`
	} `json:"data"`
}

func NewMarketClient(baseURL, apiKey string, callDelay time.Duration) *MarketClient {
	if baseURL == "" {
		baseURL = marketDefaultBaseURL
	}
	if callDelay <= 0 {
		callDelay = marketDefaultCallDelay
	}

	cache, err := lru.New[string, models.CompanyInfo](companyCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}

	return &MarketClient{
		client:       &http.Client{Timeout: marketDefaultTimeout},
		baseURL:      baseURL,
		apiKey:       apiKey,
		limiter:      rate.NewLimiter(rate.Every(callDelay), 1),
		companyCache: cache,
	}
}

// get performs one rate-limited JSON request. A single attempt, no retries:
// callers degrade to empty series on failure.
func (c *MarketClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("market", "error").Inc()
		return fmt.Errorf("market provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("market", fmt.Sprintf("%d", resp.StatusCode)).Inc()
		return fmt.Errorf("market provider returned status %d", resp.StatusCode)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("market", "200").Inc()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode market provider response: %w", err)
	}
	return nil
}

// GetHistory fetches daily closes for a provider symbol over [start, end).
// Null closes (market holidays, suspensions) are dropped. For a bare Korean
// ticker the caller maps to ".KS" first; an empty KOSPI result is retried on
// KOSDAQ here.
func (c *MarketClient) GetHistory(ctx context.Context, ticker string, start, end time.Time) ([]timeseries.Point, error) {
	points, err := c.historyForSymbol(ctx, models.ProviderSymbol(ticker), start, end)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 && models.MarketOf(ticker) == models.MarketKR {
		return c.historyForSymbol(ctx, models.KosdaqSymbol(ticker), start, end)
	}
	return points, nil
}

func (c *MarketClient) historyForSymbol(ctx context.Context, symbol string, start, end time.Time) ([]timeseries.Point, error) {
	params := url.Values{}
	params.Set("start", start.Format("2006-01-02"))
	params.Set("end", end.Format("2006-01-02"))

	var resp historyResponse
	if err := c.get(ctx, "/v1/history/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, providerError("history", resp.Error)
	}

	var points []timeseries.Point
	for _, p := range resp.Data.Points {
		if p.Close == nil {
			continue
		}
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		points = append(points, timeseries.Point{Date: date, Value: *p.Close})
	}
	return points, nil
}

// GetFinancialStatement fetches a statement at the given granularity and
// returns observations per line-item label.
func (c *MarketClient) GetFinancialStatement(ctx context.Context, ticker string, statement models.StatementType, freq StatementFreq) (map[string][]timeseries.Point, error) {
	params := url.Values{}
	params.Set("statement", string(statement))
	params.Set("freq", string(freq))

	symbol := models.ProviderSymbol(ticker)
	var resp statementResponse
	if err := c.get(ctx, "/v1/statements/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, providerError("statements", resp.Error)
	}

	out := make(map[string][]timeseries.Point, len(resp.Data.LineItems))
	for label, byDate := range resp.Data.LineItems {
		for dateStr, value := range byDate {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				continue
			}
			out[label] = append(out[label], timeseries.Point{Date: date, Value: value})
		}
	}
	return out, nil
}

// GetCompanyInfo fetches a company profile, serving repeats from an LRU cache
// so the name denormalized onto every row costs one provider call per process.
func (c *MarketClient) GetCompanyInfo(ctx context.Context, ticker string) (*models.CompanyInfo, error) {
	symbol := models.ProviderSymbol(ticker)
	if info, ok := c.companyCache.Get(symbol); ok {
		return &info, nil
	}

	var resp companyResponse
	if err := c.get(ctx, "/v1/company/"+url.PathEscape(symbol), url.Values{}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, providerError("company", resp.Error)
	}

	info := models.CompanyInfo{Name: resp.Data.Name, Sector: resp.Data.Sector}
	c.companyCache.Add(symbol, info)
	return &info, nil
}

func providerError(endpoint, msg string) error {
	if msg != "" {
		return fmt.Errorf("market provider %s error: %s", endpoint, msg)
	}
	return fmt.Errorf("market provider %s returned unsuccessful response", endpoint)
}
