package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mystocktax/backend/internal/metrics"
	"github.com/mystocktax/backend/internal/timeseries"
)

const (
	fredDefaultBaseURL = "https://api.stlouisfed.org/fred"
	fredDefaultTimeout = 20 * time.Second
)

// FredClient fetches U.S. macroeconomic series from the FRED observations
// API: given a series id and a start date, a time-indexed numeric series.
type FredClient struct {
	client *resty.Client
	apiKey string
}

type fredObservationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"` // "." marks a missing observation
	} `json:"observations"`
}

func NewFredClient(baseURL, apiKey string) *FredClient {
	if baseURL == "" {
		baseURL = fredDefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(fredDefaultTimeout)
	return &FredClient{client: client, apiKey: apiKey}
}

// GetSeries fetches one macro series from startDate onward. Missing
// observations ("." values) are dropped.
func (c *FredClient) GetSeries(ctx context.Context, seriesID string, startDate time.Time) ([]timeseries.Point, error) {
	var result fredObservationsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":         seriesID,
			"observation_start": startDate.Format("2006-01-02"),
			"api_key":           c.apiKey,
			"file_type":         "json",
		}).
		SetResult(&result).
		Get("/series/observations")
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("macro", "error").Inc()
		return nil, fmt.Errorf("macro provider request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		metrics.ProviderRequestsTotal.WithLabelValues("macro", strconv.Itoa(resp.StatusCode())).Inc()
		return nil, fmt.Errorf("macro provider returned status %d for series %s", resp.StatusCode(), seriesID)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("macro", "200").Inc()

	var points []timeseries.Point
	for _, obs := range result.Observations {
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		date, err := time.Parse("2006-01-02", obs.Date)
		if err != nil {
			continue
		}
		points = append(points, timeseries.Point{Date: date, Value: value})
	}
	return points, nil
}
