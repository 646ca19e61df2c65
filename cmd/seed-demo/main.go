package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/shopspring/decimal"
)

// Seeds a demo tenant for local development and manual QA:
// subdomain "demo", two categories (one with a dish, one empty), allergens.
func main() {
	subdomain := flag.String("subdomain", "demo", "Subdomain of the demo restaurant")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	if _, err := models.ResolveTenant(ctx, *subdomain); err == nil {
		fmt.Printf("restaurant %q already seeded\n", *subdomain)
		return
	}

	restaurant := models.Restaurant{
		Name:      "Trattoria Demo",
		Subdomain: *subdomain,
		Location:  "Via Roma 1, Milano",
		OwnerId:   1,
	}
	if err := db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create restaurant: %v\n", err)
		os.Exit(1)
	}

	antipasti := models.MenuCategory{
		RestaurantId: restaurant.ID,
		Name:         "Antipasti",
		Description:  "Per cominciare",
		SortOrder:    0,
	}
	primi := models.MenuCategory{
		RestaurantId: restaurant.ID,
		Name:         "Primi",
		Description:  "Pasta e risotti",
		SortOrder:    1,
	}
	if err := db.WithContext(ctx).Create(&antipasti).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create category: %v\n", err)
		os.Exit(1)
	}
	if err := db.WithContext(ctx).Create(&primi).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create category: %v\n", err)
		os.Exit(1)
	}

	glutine := models.Allergen{Name: "Glutine", Description: "Cereali contenenti glutine"}
	latte := models.Allergen{Name: "Latte", Description: "Latte e prodotti a base di latte"}
	for _, a := range []*models.Allergen{&glutine, &latte} {
		if err := db.WithContext(ctx).FirstOrCreate(a, models.Allergen{Name: a.Name}).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create allergen: %v\n", err)
			os.Exit(1)
		}
	}

	bruschetta := models.MenuItem{
		CategoryId:    antipasti.ID,
		RestaurantId:  restaurant.ID,
		Name:          "Bruschetta al pomodoro",
		Description:   "Pane tostato, pomodoro, basilico",
		PriceAmount:   decimal.NewFromFloat(6.50),
		PriceCurrency: "EUR",
		SortOrder:     0,
		Allergens:     []models.Allergen{glutine},
	}
	if err := db.WithContext(ctx).Create(&bruschetta).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to create menu item: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeded restaurant %q (id=%s)\n", *subdomain, restaurant.ID)
}
