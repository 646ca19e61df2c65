package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/shopspring/decimal"
)

const topItemsLimit = 10

// DefaultWindowDays is used when a dashboard request omits the day count.
// The UI exercises 7/30/90 but the contract accepts any positive integer.
const DefaultWindowDays = 30

// AnalyticsReport is the dashboard time series plus server-side totals, so
// the frontend no longer re-sums the per-day rows.
type AnalyticsReport struct {
	Days         []*AnalyticsDay `json:"days"`
	TotalVisits  int64           `json:"total_visits"`
	TotalQrScans int64           `json:"total_qr_scans"`
}

// MostViewedMenuItem is one row of the top-N ranking, carrying the item's
// current name/description/price and category name at query time.
type MostViewedMenuItem struct {
	MenuItemId    int             `json:"menu_item_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PriceAmount   decimal.Decimal `json:"price_amount"`
	PriceCurrency string          `json:"price_currency"`
	CategoryName  string          `json:"category_name"`
	ViewCount     int64           `json:"view_count"`
}

// LanguageStat aggregates LanguageUsageDay rows per language over a window.
type LanguageStat struct {
	Language   string    `json:"language"`
	ViewCount  int64     `json:"view_count"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// GetAnalytics returns one row per day with activity in the rolling window,
// date ascending. Days without activity are absent (sparse series); chart
// consumers zero-fill. Totals are summed here, not client-side.
func GetAnalytics(ctx context.Context, restaurantId string, days int) (*AnalyticsReport, error) {
	from := utils.WindowStart(time.Now(), days)

	db := config.GetDB()
	var rows []*AnalyticsDay
	err := db.WithContext(ctx).
		Where("restaurant_id = ? AND date >= ?", restaurantId, from).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{Days: rows}
	for _, row := range rows {
		report.TotalVisits += row.Visits
		report.TotalQrScans += row.QrScans
	}
	return report, nil
}

// GetMostViewedMenuItems ranks items by view events inside the window, top 10,
// joined to the item's current name/price and category name. Ties break on
// lower item id. Events whose item has been deleted drop out of the join.
func GetMostViewedMenuItems(ctx context.Context, restaurantId string, days int) ([]*MostViewedMenuItem, error) {
	from := utils.WindowStart(time.Now(), days)

	db := config.GetDB()
	var results []*MostViewedMenuItem
	err := db.WithContext(ctx).
		Model(&MenuItemViewEvent{}).
		Select(`menu_item_view_events.menu_item_id,
			menu_items.name,
			menu_items.description,
			menu_items.price_amount,
			menu_items.price_currency,
			menu_categories.name AS category_name,
			COUNT(*) AS view_count`).
		Joins("JOIN menu_items ON menu_items.id = menu_item_view_events.menu_item_id").
		Joins("JOIN menu_categories ON menu_categories.id = menu_items.category_id").
		Where("menu_item_view_events.restaurant_id = ? AND menu_item_view_events.created_at >= ?", restaurantId, from).
		Group("menu_item_view_events.menu_item_id, menu_items.name, menu_items.description, menu_items.price_amount, menu_items.price_currency, menu_categories.name").
		Order("view_count DESC, menu_item_view_events.menu_item_id ASC").
		Limit(topItemsLimit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*MostViewedMenuItem{}
	}
	return results, nil
}

// GetMenuLanguageStats sums per-language usage inside the window, most used
// first. Rows dated before the window are excluded from the sums.
func GetMenuLanguageStats(ctx context.Context, restaurantId string, days int) ([]*LanguageStat, error) {
	from := utils.WindowStart(time.Now(), days)

	db := config.GetDB()
	var results []*LanguageStat
	err := db.WithContext(ctx).
		Model(&LanguageUsageDay{}).
		Select("language, SUM(view_count) AS view_count, MAX(last_used_at) AS last_used_at").
		Where("restaurant_id = ? AND date >= ?", restaurantId, from).
		Group("language").
		Order("view_count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*LanguageStat{}
	}
	return results, nil
}
