package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LanguageUsageDay counts menu views per language per day.
//
// Grain: (restaurant_id, language, date), same lazy-create/atomic-increment
// shape as AnalyticsDay.
type LanguageUsageDay struct {
	RestaurantId string    `gorm:"primaryKey;size:64" json:"restaurant_id"`
	Language     string    `gorm:"primaryKey;size:8" json:"language"`
	Date         time.Time `gorm:"primaryKey;type:date" json:"date"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	LastUsedAt   time.Time `gorm:"not null" json:"last_used_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TrackLanguageUsage bumps today's usage counter for a language. The language
// tag is normalized to its primary subtag; invalid tags are rejected rather
// than stored.
func TrackLanguageUsage(ctx context.Context, restaurantId string, language string) error {
	language = utils.NormalizeLanguage(language)
	if !utils.IsValidLanguage(language) {
		return errors.New("invalid language")
	}

	now := time.Now()
	row := LanguageUsageDay{
		RestaurantId: restaurantId,
		Language:     language,
		Date:         utils.TruncateToDay(now),
		ViewCount:    1,
		LastUsedAt:   now,
	}

	db := config.GetDB()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "language"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count":   gorm.Expr("view_count + 1"),
			"last_used_at": now,
		}),
	}).Create(&row).Error
}

// BackfillLanguageUsage rebuilds a restaurant's language_usage_days rows from
// the raw menu_item_view_events log for a date range (YYYY-MM-DD, inclusive).
// Live counters also tick on menu serves that write no view event, so the
// rebuild only ever raises a day's count via GREATEST, never lowers it.
func BackfillLanguageUsage(ctx context.Context, restaurantId string, start, end string) error {
	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec(`
			INSERT INTO language_usage_days (restaurant_id, language, date, view_count, last_used_at, created_at)
			SELECT
				e.restaurant_id,
				e.viewer_language,
				DATE(e.created_at),
				COUNT(*),
				MAX(e.created_at),
				NOW()
			FROM menu_item_view_events e
			WHERE
				e.restaurant_id = ?
				AND e.viewer_language <> ''
				AND DATE(e.created_at) BETWEEN ? AND ?
			GROUP BY
				e.restaurant_id, e.viewer_language, DATE(e.created_at)
			ON DUPLICATE KEY UPDATE
				view_count = GREATEST(view_count, VALUES(view_count)),
				last_used_at = GREATEST(last_used_at, VALUES(last_used_at))
		`, restaurantId, start, end).Error
	})
}
