package models_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/google/uuid"
)

// Integration harness.
//
// Usage: INTEGRATION_TESTS=1 go test ./models -v
// Requires a reachable MySQL (DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME).

var setupOnce sync.Once

func setupIntegration(t *testing.T) context.Context {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run DB-backed tests")
	}
	setupOnce.Do(func() {
		config.ConnectDatabaseWithRetry()
		models.MigrateTable()
	})
	return context.Background()
}

func seedRestaurant(t *testing.T, ctx context.Context) *models.Restaurant {
	t.Helper()
	db := config.GetDB()
	restaurant := models.Restaurant{
		Name:      "Integration Trattoria",
		Subdomain: "it-" + uuid.NewString()[:20],
		OwnerId:   1,
	}
	if err := db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return &restaurant
}

func TestConcurrentVisitIncrements(t *testing.T) {
	ctx := setupIntegration(t)
	restaurant := seedRestaurant(t, ctx)

	const n = 50
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- models.IncrementVisits(ctx, restaurant.ID)
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}

	report, err := models.GetAnalytics(ctx, restaurant.ID, 1)
	if err != nil {
		t.Fatalf("GetAnalytics: %v", err)
	}
	if report.TotalVisits != n {
		t.Fatalf("lost updates: visits = %d, want %d", report.TotalVisits, n)
	}
	if report.TotalQrScans != 0 {
		t.Fatalf("qr scans = %d, want 0", report.TotalQrScans)
	}
}

func TestMostViewedRankingAndTieBreak(t *testing.T) {
	ctx := setupIntegration(t)
	restaurant := seedRestaurant(t, ctx)
	db := config.GetDB()

	category := models.MenuCategory{RestaurantId: restaurant.ID, Name: "Antipasti"}
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	newItem := func(name string) *models.MenuItem {
		item := models.MenuItem{RestaurantId: restaurant.ID, CategoryId: category.ID, Name: name, PriceCurrency: "EUR"}
		if err := db.WithContext(ctx).Create(&item).Error; err != nil {
			t.Fatalf("seed item: %v", err)
		}
		return &item
	}
	itemA := newItem("A")
	itemB := newItem("B")
	itemC := newItem("C")

	view := func(item *models.MenuItem, times int) {
		for i := 0; i < times; i++ {
			err := models.TrackMenuItemView(ctx, restaurant.ID, &models.NewMenuItemView{MenuItemId: item.ID, Language: "it"})
			if err != nil {
				t.Fatalf("track view: %v", err)
			}
		}
	}
	view(itemA, 3)
	view(itemB, 1)
	view(itemC, 1)

	top, err := models.GetMostViewedMenuItems(ctx, restaurant.ID, 7)
	if err != nil {
		t.Fatalf("GetMostViewedMenuItems: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 ranked items, got %d", len(top))
	}
	if top[0].MenuItemId != itemA.ID || top[0].ViewCount != 3 {
		t.Fatalf("item A should rank first: %+v", top[0])
	}
	// B and C tie on 1 view; lower id wins
	if top[1].MenuItemId != itemB.ID || top[2].MenuItemId != itemC.ID {
		t.Fatalf("tie-break by lower id violated: %+v then %+v", top[1], top[2])
	}
	if top[0].CategoryName != "Antipasti" {
		t.Fatalf("category name not joined: %+v", top[0])
	}
}

func TestLanguageStatsWindowExclusion(t *testing.T) {
	ctx := setupIntegration(t)
	restaurant := seedRestaurant(t, ctx)
	db := config.GetDB()

	if err := models.TrackLanguageUsage(ctx, restaurant.ID, "en"); err != nil {
		t.Fatalf("track language: %v", err)
	}
	if err := models.TrackLanguageUsage(ctx, restaurant.ID, "en"); err != nil {
		t.Fatalf("track language: %v", err)
	}

	// a row older than the window must not count
	old := models.LanguageUsageDay{
		RestaurantId: restaurant.ID,
		Language:     "en",
		Date:         utils.TruncateToDay(time.Now()).AddDate(0, 0, -40),
		ViewCount:    99,
		LastUsedAt:   time.Now().AddDate(0, 0, -40),
	}
	if err := db.WithContext(ctx).Create(&old).Error; err != nil {
		t.Fatalf("seed old usage row: %v", err)
	}

	stats, err := models.GetMenuLanguageStats(ctx, restaurant.ID, 30)
	if err != nil {
		t.Fatalf("GetMenuLanguageStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 language, got %d", len(stats))
	}
	if stats[0].Language != "en" || stats[0].ViewCount != 2 {
		t.Fatalf("window exclusion violated: %+v", stats[0])
	}
}

func TestAssembleMenuScenario(t *testing.T) {
	ctx := setupIntegration(t)
	restaurant := seedRestaurant(t, ctx)
	db := config.GetDB()

	antipasti := models.MenuCategory{RestaurantId: restaurant.ID, Name: "Antipasti", SortOrder: 0}
	primi := models.MenuCategory{RestaurantId: restaurant.ID, Name: "Primi", SortOrder: 1}
	if err := db.WithContext(ctx).Create(&antipasti).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.WithContext(ctx).Create(&primi).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	item := models.MenuItem{RestaurantId: restaurant.ID, CategoryId: antipasti.ID, Name: "Bruschetta", PriceCurrency: "EUR"}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	tree, err := models.AssembleMenu(ctx, restaurant.ID)
	if err != nil {
		t.Fatalf("AssembleMenu: %v", err)
	}
	if len(tree.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(tree.Categories))
	}
	if tree.Categories[0].Name != "Antipasti" || len(tree.Categories[0].Items) != 1 {
		t.Fatalf("first category wrong: %+v", tree.Categories[0])
	}
	if tree.Categories[1].Items == nil || len(tree.Categories[1].Items) != 0 {
		t.Fatalf("empty category must carry an empty, non-nil item list")
	}
}

func TestResolveTenantGhost(t *testing.T) {
	ctx := setupIntegration(t)

	_, err := models.ResolveTenant(ctx, "ghost-"+uuid.NewString()[:12])
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected RecordNotFound, got %v", err)
	}
}

func TestBackfillNeverLowersLiveCounts(t *testing.T) {
	ctx := setupIntegration(t)
	restaurant := seedRestaurant(t, ctx)
	db := config.GetDB()
	today := utils.TruncateToDay(time.Now()).Format("2006-01-02")

	// Live ticks from menu serves; none of them wrote a view event.
	for i := 0; i < 3; i++ {
		if err := models.TrackLanguageUsage(ctx, restaurant.ID, "en"); err != nil {
			t.Fatalf("track language: %v", err)
		}
	}
	// One event-backed view in the same language and day.
	event := models.MenuItemViewEvent{MenuItemId: 1, RestaurantId: restaurant.ID, ViewerLanguage: "en"}
	if err := db.WithContext(ctx).Create(&event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	// A language that only exists in the event log.
	for i := 0; i < 2; i++ {
		e := models.MenuItemViewEvent{MenuItemId: 1, RestaurantId: restaurant.ID, ViewerLanguage: "fr"}
		if err := db.WithContext(ctx).Create(&e).Error; err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	if err := models.BackfillLanguageUsage(ctx, restaurant.ID, today, today); err != nil {
		t.Fatalf("BackfillLanguageUsage: %v", err)
	}

	stats, err := models.GetMenuLanguageStats(ctx, restaurant.ID, 7)
	if err != nil {
		t.Fatalf("GetMenuLanguageStats: %v", err)
	}
	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[s.Language] = s.ViewCount
	}
	if counts["en"] != 3 {
		t.Fatalf("rebuild lowered a live count: en = %d, want 3", counts["en"])
	}
	if counts["fr"] != 2 {
		t.Fatalf("event-only language not rebuilt: fr = %d, want 2", counts["fr"])
	}
}
