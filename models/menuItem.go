package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish. The price is structured money (decimal amount + ISO
// currency); formatting happens only at the presentation boundary.
type MenuItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CategoryId    int             `gorm:"index;not null" json:"category_id"`
	RestaurantId  string          `gorm:"index;size:64;not null" json:"restaurant_id"`
	Name          string          `gorm:"size:150;not null" json:"name" binding:"required"`
	Description   string          `gorm:"size:1000" json:"description"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price_amount"`
	PriceCurrency string          `gorm:"size:3;not null;default:EUR" json:"price_currency"`
	ImageUrl      string          `gorm:"size:500" json:"image_url"`
	SortOrder     int             `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Allergens []Allergen `gorm:"many2many:menu_item_allergens" json:"allergens"`
}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// FormattedPrice renders the price for the public view, e.g. "€12.90".
// Unknown currencies fall back to the ISO code prefix.
func (m *MenuItem) FormattedPrice() string {
	symbol, ok := currencySymbols[m.PriceCurrency]
	if !ok {
		symbol = m.PriceCurrency + " "
	}
	return symbol + m.PriceAmount.StringFixed(2)
}

// GetOrderedItems fetches all items of a restaurant in display order
// (sort_order ASC, id ASC), across all categories in one query.
func GetOrderedItems(ctx context.Context, restaurantId string) ([]*MenuItem, error) {
	db := config.GetDB()
	var items []*MenuItem
	err := db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantId).
		Order("sort_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
