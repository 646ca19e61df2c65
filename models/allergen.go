package models

import (
	"context"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
)

// Allergen is platform-wide reference data (not tenant-owned). Icon is raw
// markup injected into the public view.
type Allergen struct {
	ID          int    `gorm:"primary_key" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
	Icon        string `gorm:"type:text" json:"icon"`
	Description string `gorm:"size:500" json:"description"`
}

// menuItemAllergen is the payload-free join row. Kept explicit so the
// assembler can batch-load allergen sets without gorm association queries
// per item.
type menuItemAllergen struct {
	MenuItemId int `gorm:"primaryKey"`
	AllergenId int `gorm:"primaryKey"`
}

func (menuItemAllergen) TableName() string { return "menu_item_allergens" }

// GetAllergensByItem loads the allergen sets for a batch of items. Order
// within an item carries no meaning beyond being deterministic (join
// insertion order, allergen id ascending).
func GetAllergensByItem(ctx context.Context, itemIds []int) (map[int][]Allergen, error) {
	result := make(map[int][]Allergen, len(itemIds))
	if len(itemIds) == 0 {
		return result, nil
	}

	db := config.GetDB()
	var joins []menuItemAllergen
	if err := db.WithContext(ctx).
		Where("menu_item_id IN ?", itemIds).
		Order("menu_item_id ASC, allergen_id ASC").
		Find(&joins).Error; err != nil {
		return nil, err
	}
	if len(joins) == 0 {
		return result, nil
	}

	allergenIds := make([]int, 0, len(joins))
	for _, j := range joins {
		allergenIds = append(allergenIds, j.AllergenId)
	}
	allergenIds = utils.UniqueSlice(allergenIds)
	var allergens []Allergen
	if err := db.WithContext(ctx).
		Where("id IN ?", allergenIds).
		Find(&allergens).Error; err != nil {
		return nil, err
	}
	byId := make(map[int]Allergen, len(allergens))
	for _, a := range allergens {
		byId[a.ID] = a
	}

	for _, j := range joins {
		allergen, ok := byId[j.AllergenId]
		if !ok {
			// dangling join row (allergen deleted in a race): skip, don't fail
			continue
		}
		result[j.MenuItemId] = append(result[j.MenuItemId], allergen)
	}
	return result, nil
}
