// Package store is the relational adapter for quarter points. Rows are
// written at most once per unique key: a corrected provider value can only
// land through an explicit clear-then-refresh, never a silent overwrite.
package store

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mystocktax/backend/internal/models"
)

type QuarterStore struct {
	db *gorm.DB
}

func NewQuarterStore(db *gorm.DB) *QuarterStore {
	return &QuarterStore{db: db}
}

// Exists reports whether a row is already stored for the unique key.
func (s *QuarterStore) Exists(entityID string, metric models.Metric, year, quarter int) (bool, error) {
	var count int64
	err := s.db.Model(&models.QuarterPoint{}).
		Where("entity_id = ? AND metric = ? AND year = ? AND quarter = ?", entityID, metric, year, quarter).
		Count(&count).Error
	return count > 0, err
}

// InsertIfAbsent writes a quarter point unless its unique key is taken.
// Returns false when the insert was skipped. A conflict is not an error: two
// racing refreshes both observe "not fresh" and both insert, and the unique
// constraint quietly drops the loser's rows.
func (s *QuarterStore) InsertIfAbsent(point *models.QuarterPoint) (bool, error) {
	result := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "entity_id"}, {Name: "metric"}, {Name: "year"}, {Name: "quarter"},
		},
		DoNothing: true,
	}).Create(point)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// InsertBatch inserts points one by one, counting inserted vs skipped. Insert
// failures are logged and counted as skips, not surfaced as hard failures.
func (s *QuarterStore) InsertBatch(points []models.QuarterPoint) (inserted, skipped int) {
	for i := range points {
		ok, err := s.InsertIfAbsent(&points[i])
		if err != nil {
			log.Printf("Quarter store: insert failed for %s/%s %dQ%d: %v",
				points[i].EntityID, points[i].Metric, points[i].Year, points[i].Quarter, err)
			skipped++
			continue
		}
		if ok {
			inserted++
		} else {
			skipped++
		}
	}
	return inserted, skipped
}

// DeleteByCacheTag removes all rows fetched in the given calendar month for
// the metrics, optionally scoped to one entity. The count feeds refresh
// diagnostics only.
func (s *QuarterStore) DeleteByCacheTag(cacheYear, cacheMonth int, entityID string, metrics []models.Metric) (int64, error) {
	query := s.db.Where("cache_year = ? AND cache_month = ? AND metric IN ?", cacheYear, cacheMonth, metrics)
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}
	result := query.Delete(&models.QuarterPoint{})
	return result.RowsAffected, result.Error
}

// QueryRange returns all stored points for an entity and metric from
// startYear onward, ordered by quarter.
func (s *QuarterStore) QueryRange(entityID string, metric models.Metric, startYear int) ([]models.QuarterPoint, error) {
	var points []models.QuarterPoint
	err := s.db.
		Where("entity_id = ? AND metric = ? AND year >= ?", entityID, metric, startYear).
		Order("year, quarter").
		Find(&points).Error
	return points, err
}

// IsFresh reports whether any row for the (entity, metric) carries the given
// cache tag. Freshness is month-granularity and metric-wide: one row fetched
// this month marks the whole metric fresh until next month or an explicit
// refresh.
func (s *QuarterStore) IsFresh(entityID string, metric models.Metric, cacheYear, cacheMonth int) (bool, error) {
	var count int64
	err := s.db.Model(&models.QuarterPoint{}).
		Where("entity_id = ? AND metric = ? AND cache_year = ? AND cache_month = ?",
			entityID, metric, cacheYear, cacheMonth).
		Count(&count).Error
	return count > 0, err
}

// CacheTagFor derives the cache tag from a fetch time.
func CacheTagFor(t time.Time) (year, month int) {
	return t.Year(), int(t.Month())
}
