package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
)

// MenuCategory groups items on the public menu. Display order is
// (sort_order ASC, id ASC); the public UI renders in exactly this order.
type MenuCategory struct {
	ID           int       `gorm:"primary_key" json:"id"`
	RestaurantId string    `gorm:"index;size:64;not null" json:"restaurant_id"`
	Name         string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Description  string    `gorm:"size:500" json:"description"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrderedCategories fetches a restaurant's categories in display order.
func GetOrderedCategories(ctx context.Context, restaurantId string) ([]*MenuCategory, error) {
	db := config.GetDB()
	var categories []*MenuCategory
	err := db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantId).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
