package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsDay is the per-restaurant per-calendar-day counter row behind the
// dashboard time series.
//
// Grain: (restaurant_id, date). Rows are created lazily on the first event of
// a day and incremented in place after that. Increments are a single atomic
// upsert so concurrent requests for the same restaurant and day cannot lose
// updates.
type AnalyticsDay struct {
	RestaurantId string    `gorm:"primaryKey;size:64" json:"restaurant_id"`
	Date         time.Time `gorm:"primaryKey;type:date" json:"date"`
	Visits       int64     `gorm:"not null;default:0" json:"visits"`
	QrScans      int64     `gorm:"not null;default:0" json:"qr_scans"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IncrementVisits bumps today's visit counter for a restaurant.
func IncrementVisits(ctx context.Context, restaurantId string) error {
	return incrementDailyCounter(ctx, restaurantId, "visits")
}

// IncrementQrScans bumps today's QR scan counter for a restaurant.
func IncrementQrScans(ctx context.Context, restaurantId string) error {
	return incrementDailyCounter(ctx, restaurantId, "qr_scans")
}

// IncrementTraffic bumps the counter matching how the request arrived.
func IncrementTraffic(ctx context.Context, restaurantId string, source TrafficSource) error {
	if source == TrafficSourceQr {
		return IncrementQrScans(ctx, restaurantId)
	}
	return IncrementVisits(ctx, restaurantId)
}

func incrementDailyCounter(ctx context.Context, restaurantId string, column string) error {
	today := utils.TruncateToDay(time.Now())
	row := AnalyticsDay{
		RestaurantId: restaurantId,
		Date:         today,
	}
	switch column {
	case "visits":
		row.Visits = 1
	case "qr_scans":
		row.QrScans = 1
	}

	db := config.GetDB()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column + " + 1"),
		}),
	}).Create(&row).Error
}
