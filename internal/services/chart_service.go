// Package services implements the cache-aware chart pipeline: freshness gate,
// provider fetch, normalization, upsert-once storage and chart formatting.
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mystocktax/backend/internal/metrics"
	"github.com/mystocktax/backend/internal/models"
	"github.com/mystocktax/backend/internal/providers"
	"github.com/mystocktax/backend/internal/store"
	"github.com/mystocktax/backend/internal/timeseries"
)

// DefaultLookbackYears is the chart window every caller uses.
const DefaultLookbackYears = 4

// MarketData is the contract the pipeline expects from the equity provider.
type MarketData interface {
	GetHistory(ctx context.Context, ticker string, start, end time.Time) ([]timeseries.Point, error)
	GetFinancialStatement(ctx context.Context, ticker string, statement models.StatementType, freq providers.StatementFreq) (map[string][]timeseries.Point, error)
	GetCompanyInfo(ctx context.Context, ticker string) (*models.CompanyInfo, error)
}

// MacroData is the contract the pipeline expects from the macro provider.
type MacroData interface {
	GetSeries(ctx context.Context, seriesID string, startDate time.Time) ([]timeseries.Point, error)
}

// ChartService runs the check/refresh pipeline for every metric, driven by
// the metric registry instead of per-metric code paths.
type ChartService struct {
	store         *store.QuarterStore
	market        MarketData
	macro         MacroData
	lookbackYears int
	now           func() time.Time
}

func NewChartService(qs *store.QuarterStore, market MarketData, macro MacroData) *ChartService {
	return &ChartService{
		store:         qs,
		market:        market,
		macro:         macro,
		lookbackYears: DefaultLookbackYears,
		now:           time.Now,
	}
}

// ChartResponse is the JSON shape both check and refresh return.
type ChartResponse struct {
	Success      bool           `json:"success"`
	Type         string         `json:"type"`
	ChartData    map[string]any `json:"chart_data"`
	Period       string         `json:"period"`
	Cached       *bool          `json:"cached,omitempty"`
	DeletedCount *int64         `json:"deleted_count,omitempty"`
	Message      string         `json:"message,omitempty"`
}

// Check serves the chart for an endpoint's metrics, fetching from the
// provider only when the monthly cache has no row yet. A plain check never
// deletes anything.
func (s *ChartService) Check(ctx context.Context, endpoint string, metricList []models.Metric, stockCode string) (*ChartResponse, error) {
	now := s.now()
	cacheYear, cacheMonth := store.CacheTagFor(now)
	entity := entityFor(metricList, stockCode)

	fresh := true
	for _, m := range metricList {
		ok, err := s.store.IsFresh(entity, m, cacheYear, cacheMonth)
		if err != nil {
			return nil, fmt.Errorf("freshness check failed: %w", err)
		}
		if !ok {
			fresh = false
			break
		}
	}

	message := "served from cache"
	if fresh {
		for _, m := range metricList {
			metrics.CacheHitsTotal.WithLabelValues(string(m)).Inc()
		}
	} else {
		for _, m := range metricList {
			metrics.CacheMissesTotal.WithLabelValues(string(m)).Inc()
		}
		message = s.fetchAndStore(ctx, metricList, stockCode, now)
	}

	resp, err := s.buildResponse(endpoint, metricList, stockCode, now)
	if err != nil {
		return nil, err
	}
	resp.Cached = &fresh
	resp.Message = message
	return resp, nil
}

// Refresh force-clears every row the current calendar month wrote for the
// endpoint's metrics, then re-fetches. This is the only path that can replace
// stored data, and the clear-then-save pair is deliberately untransactional:
// a crash in between leaves a gap until the next successful refresh.
func (s *ChartService) Refresh(ctx context.Context, endpoint string, metricList []models.Metric, stockCode string) (*ChartResponse, error) {
	start := time.Now()
	now := s.now()
	cacheYear, cacheMonth := store.CacheTagFor(now)
	entity := entityFor(metricList, stockCode)

	deleted, err := s.store.DeleteByCacheTag(cacheYear, cacheMonth, entity, metricList)
	if err != nil {
		return nil, fmt.Errorf("cache clear failed: %w", err)
	}
	metrics.RowsDeletedTotal.Add(float64(deleted))
	log.Printf("Chart service: refresh cleared %d rows for %s/%v (%d-%02d)", deleted, entity, metricList, cacheYear, cacheMonth)

	message := s.fetchAndStore(ctx, metricList, stockCode, now)

	resp, err := s.buildResponse(endpoint, metricList, stockCode, now)
	if err != nil {
		return nil, err
	}
	resp.DeletedCount = &deleted
	resp.Message = message
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	return resp, nil
}

func entityFor(metricList []models.Metric, stockCode string) string {
	spec, err := models.SpecFor(metricList[0])
	if err != nil || spec.Scope == models.ScopeMacro {
		return models.GlobalEntity
	}
	return stockCode
}

// fetchAndStore runs the provider fetch for an endpoint's metric group.
// Provider failures are absorbed here: the series degrades to empty data or a
// fallback table and the returned message says so, but the request never
// hard-fails on the upstream (spec'd single attempt, no retries).
func (s *ChartService) fetchAndStore(ctx context.Context, metricList []models.Metric, stockCode string, now time.Time) string {
	window := timeseries.Window{
		StartYear: timeseries.WindowStartYear(now, s.lookbackYears),
		Now:       now,
	}

	spec, err := models.SpecFor(metricList[0])
	if err != nil {
		return err.Error()
	}

	switch spec.Scope {
	case models.ScopePrice:
		return s.fetchPrice(ctx, stockCode, window, now)
	case models.ScopeStatement:
		return s.fetchStatement(ctx, spec, stockCode, window, now)
	case models.ScopeValuation:
		return s.fetchValuation(ctx, stockCode, window, now)
	case models.ScopeMacro:
		return s.fetchMacro(ctx, metricList, window, now)
	}
	return "unknown metric scope"
}

func (s *ChartService) fetchPrice(ctx context.Context, stockCode string, w timeseries.Window, now time.Time) string {
	start := time.Date(w.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	history, err := s.market.GetHistory(ctx, stockCode, start, now)
	if err != nil {
		log.Printf("Chart service: price history fetch failed for %s: %v", stockCode, err)
		return "provider unavailable, no new data stored"
	}

	quarterMeans := timeseries.MeanByQuarter(history, w)
	s.storeValues(stockCode, s.companyName(ctx, stockCode), models.MetricPrice, quarterMeans, now)
	return fmt.Sprintf("fetched %d quarters of price data", len(quarterMeans))
}

func (s *ChartService) fetchStatement(ctx context.Context, spec models.Spec, stockCode string, w timeseries.Window, now time.Time) string {
	annualStmt, err := s.market.GetFinancialStatement(ctx, stockCode, spec.Statement, providers.FreqAnnual)
	if err != nil {
		log.Printf("Chart service: annual %s fetch failed for %s: %v", spec.Statement, stockCode, err)
		annualStmt = nil
	}
	quarterlyStmt, err := s.market.GetFinancialStatement(ctx, stockCode, spec.Statement, providers.FreqQuarterly)
	if err != nil {
		log.Printf("Chart service: quarterly %s fetch failed for %s: %v", spec.Statement, stockCode, err)
		quarterlyStmt = nil
	}
	if annualStmt == nil && quarterlyStmt == nil {
		return "provider unavailable, no new data stored"
	}

	annual := extractLineItem(annualStmt, spec.Labels)
	quarterly := extractLineItem(quarterlyStmt, spec.Labels)
	values := timeseries.Normalize(annual, quarterly, w)

	s.storeValues(stockCode, s.companyName(ctx, stockCode), spec.Metric, values, now)
	return fmt.Sprintf("fetched %d quarters of %s data", len(values), spec.Metric)
}

// Line-item labels probed for the valuation inputs. Valuation uses quarterly
// statements only: an evenly-split annual share count or book value is not a
// meaningful ratio denominator.
var valuationInputs = struct {
	netIncome, ebitda, tangibleBook, shares, totalDebt, cash []string
}{
	netIncome:    []string{"Net Income", "Net Income Common Stockholders"},
	ebitda:       []string{"EBITDA", "Normalized EBITDA"},
	tangibleBook: []string{"Tangible Book Value", "Stockholders Equity"},
	shares:       []string{"Ordinary Shares Number", "Share Issued"},
	totalDebt:    []string{"Total Debt"},
	cash:         []string{"Cash And Cash Equivalents"},
}

func (s *ChartService) fetchValuation(ctx context.Context, stockCode string, w timeseries.Window, now time.Time) string {
	income, incomeErr := s.market.GetFinancialStatement(ctx, stockCode, models.StatementIncome, providers.FreqQuarterly)
	balance, balanceErr := s.market.GetFinancialStatement(ctx, stockCode, models.StatementBalance, providers.FreqQuarterly)
	start := time.Date(w.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	history, historyErr := s.market.GetHistory(ctx, stockCode, start, now)
	if incomeErr != nil || balanceErr != nil || historyErr != nil {
		log.Printf("Chart service: valuation inputs failed for %s: income=%v balance=%v history=%v",
			stockCode, incomeErr, balanceErr, historyErr)
		return "provider unavailable, no new data stored"
	}

	netIncome := timeseries.BucketQuarterly(extractLineItem(income, valuationInputs.netIncome), w)
	ebitda := timeseries.BucketQuarterly(extractLineItem(income, valuationInputs.ebitda), w)
	tangibleBook := timeseries.BucketQuarterly(extractLineItem(balance, valuationInputs.tangibleBook), w)
	shares := timeseries.BucketQuarterly(extractLineItem(balance, valuationInputs.shares), w)
	totalDebt := timeseries.BucketQuarterly(extractLineItem(balance, valuationInputs.totalDebt), w)
	cash := timeseries.BucketQuarterly(extractLineItem(balance, valuationInputs.cash), w)
	avgPrice := timeseries.MeanByQuarter(history, w)

	company := s.companyName(ctx, stockCode)
	stored := 0
	for key := range avgPrice {
		valuation := timeseries.ComputeValuation(timeseries.Fundamentals{
			NetIncome:         lookup(netIncome, key),
			EBITDA:            lookup(ebitda, key),
			TangibleBookValue: lookup(tangibleBook, key),
			SharesOutstanding: lookup(shares, key),
			TotalDebt:         lookup(totalDebt, key),
			Cash:              lookup(cash, key),
			AvgPrice:          lookup(avgPrice, key),
		})
		if !valuation.Defined() {
			continue
		}
		// Once any ratio is computable the quarter gets all three rows; the
		// undefined ones are stored as explicit nulls, not omitted.
		s.storeNullable(stockCode, company, models.MetricPBR, key, valuation.PBR, now)
		s.storeNullable(stockCode, company, models.MetricPER, key, valuation.PER, now)
		s.storeNullable(stockCode, company, models.MetricEVEBITDA, key, valuation.EVEBITDA, now)
		stored++
	}
	return fmt.Sprintf("computed valuation ratios for %d quarters", stored)
}

func (s *ChartService) fetchMacro(ctx context.Context, metricList []models.Metric, w timeseries.Window, now time.Time) string {
	start := time.Date(w.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	message := "fetched macro data"

	for _, m := range metricList {
		spec, err := models.SpecFor(m)
		if err != nil {
			continue
		}

		series, err := s.macro.GetSeries(ctx, spec.SeriesID, start)
		if err != nil || len(series) == 0 {
			if err != nil {
				log.Printf("Chart service: macro fetch failed for %s (%s): %v", m, spec.SeriesID, err)
			}
			if fallback := providers.MacroFallback(m); fallback != nil {
				metrics.ProviderFallbacksTotal.WithLabelValues(string(m)).Inc()
				s.storeValues(models.GlobalEntity, "", m, fallback, now)
				message = "provider unavailable, served historical fallback estimates"
			} else {
				message = "provider unavailable, no new data stored"
			}
			continue
		}

		s.storeValues(models.GlobalEntity, "", m, timeseries.MeanByQuarter(series, w), now)
	}
	return message
}

// storeValues writes one normalized series through the upsert-once adapter.
func (s *ChartService) storeValues(entity, company string, metric models.Metric, values map[timeseries.Key]float64, now time.Time) {
	cacheYear, cacheMonth := store.CacheTagFor(now)
	points := make([]models.QuarterPoint, 0, len(values))
	for key, value := range values {
		v := value
		points = append(points, models.QuarterPoint{
			EntityID:    entity,
			Metric:      metric,
			Year:        key.Year,
			Quarter:     key.Quarter,
			Value:       &v,
			CompanyName: company,
			CacheYear:   cacheYear,
			CacheMonth:  cacheMonth,
			LastUpdated: now,
		})
	}
	inserted, skipped := s.store.InsertBatch(points)
	metrics.RowsInsertedTotal.Add(float64(inserted))
	metrics.RowsSkippedTotal.Add(float64(skipped))
}

func (s *ChartService) storeNullable(entity, company string, metric models.Metric, key timeseries.Key, value *float64, now time.Time) {
	cacheYear, cacheMonth := store.CacheTagFor(now)
	point := models.QuarterPoint{
		EntityID:    entity,
		Metric:      metric,
		Year:        key.Year,
		Quarter:     key.Quarter,
		Value:       value,
		CompanyName: company,
		CacheYear:   cacheYear,
		CacheMonth:  cacheMonth,
		LastUpdated: now,
	}
	inserted, err := s.store.InsertIfAbsent(&point)
	if err != nil {
		log.Printf("Chart service: valuation insert failed for %s %s: %v", metric, key, err)
		metrics.RowsSkippedTotal.Inc()
		return
	}
	if inserted {
		metrics.RowsInsertedTotal.Inc()
	} else {
		metrics.RowsSkippedTotal.Inc()
	}
}

func (s *ChartService) companyName(ctx context.Context, stockCode string) string {
	info, err := s.market.GetCompanyInfo(ctx, stockCode)
	if err != nil {
		log.Printf("Chart service: company info fetch failed for %s: %v", stockCode, err)
		return ""
	}
	return info.Name
}

// buildResponse reads stored rows back and formats them against the label
// axis. The axis is a pure function of now and the window, so every metric in
// the response aligns point-for-point.
func (s *ChartService) buildResponse(endpoint string, metricList []models.Metric, stockCode string, now time.Time) (*ChartResponse, error) {
	axis := timeseries.LabelAxis(now, s.lookbackYears)
	startYear := timeseries.WindowStartYear(now, s.lookbackYears)
	entity := entityFor(metricList, stockCode)
	market := models.MarketOf(stockCode)

	chartData := map[string]any{"labels": axis}
	for _, m := range metricList {
		spec, err := models.SpecFor(m)
		if err != nil {
			return nil, err
		}
		rows, err := s.store.QueryRange(entity, m, startYear)
		if err != nil {
			return nil, fmt.Errorf("store query failed for %s: %w", m, err)
		}
		chartData[spec.PluralField] = FormatSeries(axis, valuesByKey(rows), spec, market)
	}

	return &ChartResponse{
		Success:   true,
		Type:      endpoint,
		ChartData: chartData,
		Period:    fmt.Sprintf("%d-%d", startYear, now.Year()),
	}, nil
}

func extractLineItem(statement map[string][]timeseries.Point, labels []string) []timeseries.Point {
	for _, label := range labels {
		if points, ok := statement[label]; ok && len(points) > 0 {
			return points
		}
	}
	return nil
}

func lookup(m map[timeseries.Key]float64, key timeseries.Key) *float64 {
	if v, ok := m[key]; ok {
		return &v
	}
	return nil
}
