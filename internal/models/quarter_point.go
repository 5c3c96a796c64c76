package models

import "time"

// GlobalEntity is the entity id for macro series that belong to no ticker.
const GlobalEntity = "global"

// QuarterPoint is one normalized quarterly observation. At most one row exists
// per (entity, metric, year, quarter); a refresh clears by cache tag and
// re-inserts rather than updating in place.
type QuarterPoint struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	EntityID string  `json:"entity_id" gorm:"not null;uniqueIndex:idx_entity_metric_quarter"`
	Metric   Metric  `json:"metric" gorm:"not null;uniqueIndex:idx_entity_metric_quarter"`
	Year     int     `json:"year" gorm:"not null;uniqueIndex:idx_entity_metric_quarter"`
	Quarter  int     `json:"quarter" gorm:"not null;uniqueIndex:idx_entity_metric_quarter"`
	Value    *float64 `json:"value"`

	CompanyName string `json:"company_name,omitempty"`

	// Cache tag: the calendar month the row was fetched in, independent of
	// the quarter the value describes.
	CacheYear   int       `json:"cache_year" gorm:"index:idx_quarter_cache_tag"`
	CacheMonth  int       `json:"cache_month" gorm:"index:idx_quarter_cache_tag"`
	LastUpdated time.Time `json:"last_updated"`

	CreatedAt time.Time `json:"created_at"`
}

// CompanyInfo is the provider's company profile for a ticker.
type CompanyInfo struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}
