package services

import (
	"math"

	"github.com/mystocktax/backend/internal/models"
	"github.com/mystocktax/backend/internal/timeseries"
)

// FormatSeries maps stored quarter values onto a label axis. Flow metrics
// render a missing quarter as 0 (a chart reads "no revenue recorded" as zero
// activity) and are scaled by the market's currency divisor; rate metrics
// render a gap as null (a missing price is a true gap, not a zero price).
// Values are rounded to 2 decimals.
func FormatSeries(axis []string, values map[timeseries.Key]*float64, spec models.Spec, market models.Market) []*float64 {
	out := make([]*float64, len(axis))
	for i, label := range axis {
		key, err := timeseries.ParseKey(label)
		if err != nil {
			continue
		}

		value, ok := values[key]
		if !ok || value == nil {
			if spec.Kind == models.KindFlow {
				zero := 0.0
				out[i] = &zero
			}
			continue
		}

		v := *value
		if spec.Kind == models.KindFlow {
			v /= models.UnitDivisor(market)
		}
		v = math.Round(v*100) / 100
		out[i] = &v
	}
	return out
}

// valuesByKey indexes stored rows by their quarter key.
func valuesByKey(points []models.QuarterPoint) map[timeseries.Key]*float64 {
	out := make(map[timeseries.Key]*float64, len(points))
	for _, p := range points {
		out[timeseries.Key{Year: p.Year, Quarter: p.Quarter}] = p.Value
	}
	return out
}
