package models

import (
	"log"

	"bitbucket.org/mmdatafocus/menu_backend/config"
)

// MigrateTable runs AutoMigrate for every table. Skippable on startup via
// SKIP_MIGRATIONS (DDL can block tables under load; run as a job instead).
func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&User{},
		&Template{},
		&Restaurant{},
		&MenuCategory{},
		&MenuItem{},
		&Allergen{},
		&menuItemAllergen{},
		&AnalyticsDay{},
		&MenuItemViewEvent{},
		&LanguageUsageDay{},
	)
	if err != nil {
		log.Printf("migration failed: %v", err)
		return
	}
	log.Println("migrated tables")
}
