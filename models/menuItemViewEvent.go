package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
)

// MenuItemViewEvent is an append-only log entry. It is never updated and never
// collapsed into a running counter: the top-N query re-derives rank for each
// requested window (7/30/90 days) from the raw events.
type MenuItemViewEvent struct {
	ID             int64     `gorm:"primary_key" json:"id"`
	MenuItemId     int       `gorm:"index:idx_view_item_date;not null" json:"menu_item_id"`
	RestaurantId   string    `gorm:"index:idx_view_rest_date,priority:1;size:64;not null" json:"restaurant_id"`
	ViewerLanguage string    `gorm:"size:8" json:"viewer_language"`
	UserAgent      string    `gorm:"size:255" json:"user_agent"`
	ClientIP       string    `gorm:"size:45" json:"client_ip"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_view_rest_date,priority:2;index:idx_view_item_date" json:"created_at"`
}

type NewMenuItemView struct {
	MenuItemId int    `json:"item_id" binding:"required"`
	Language   string `json:"language"`
	UserAgent  string `json:"-"`
	ClientIP   string `json:"-"`
}

// TrackMenuItemView appends one view event. Pure insert, no read before
// write. The item must belong to the restaurant being viewed.
func TrackMenuItemView(ctx context.Context, restaurantId string, input *NewMenuItemView) error {
	if input == nil || input.MenuItemId <= 0 {
		return errors.New("item id is required")
	}
	if err := utils.ValidateResourceId[MenuItem](ctx, restaurantId, input.MenuItemId); err != nil {
		return err
	}

	event := MenuItemViewEvent{
		MenuItemId:     input.MenuItemId,
		RestaurantId:   restaurantId,
		ViewerLanguage: utils.NormalizeLanguage(input.Language),
		UserAgent:      input.UserAgent,
		ClientIP:       utils.TruncateClientIP(input.ClientIP),
	}

	db := config.GetDB()
	return db.WithContext(ctx).Create(&event).Error
}
