package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/bsm/redislock"
)

// Rebuilds language_usage_days from the raw menu_item_view_events log.
// The day rows are derived data; the event log is the source of truth, so
// counter drift (e.g. after a partial outage) can always be repaired here.
func main() {
	restaurantID := flag.String("restaurant-id", "", "Optional: backfill only one restaurant (uuid string). If empty, backfills all restaurants.")
	from := flag.String("from", "", "Optional: start date (YYYY-MM-DD). Defaults to 90 days ago.")
	to := flag.String("to", "", "Optional: end date (YYYY-MM-DD). Defaults to today.")
	flag.Parse()

	ctx := context.Background()
	// Explicit DB connect (config no longer connects DB in init()).
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	config.ConnectRedisWithRetry()

	// Ensure schema is up-to-date (creates language_usage_days if missing).
	models.MigrateTable()

	ctx = utils.SetSkipTenantScopeInContext(ctx, true)

	start := strings.TrimSpace(*from)
	if start == "" {
		start = utils.TruncateToDay(time.Now()).AddDate(0, 0, -90).Format("2006-01-02")
	}
	end := strings.TrimSpace(*to)
	if end == "" {
		end = utils.TruncateToDay(time.Now()).Format("2006-01-02")
	}

	var restaurants []models.Restaurant
	query := db.WithContext(ctx).Model(&models.Restaurant{})
	if strings.TrimSpace(*restaurantID) != "" {
		query = query.Where("id = ?", strings.TrimSpace(*restaurantID))
	}
	if err := query.Find(&restaurants).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list restaurants: %v\n", err)
		os.Exit(1)
	}
	if len(restaurants) == 0 {
		fmt.Fprintln(os.Stderr, "no restaurants found to backfill")
		return
	}

	locker := config.GetRedisLock()

	for _, r := range restaurants {
		// Serialize with live tracking per restaurant; skip when contended.
		var lock *redislock.Lock
		if locker != nil {
			var err error
			lock, err = locker.Obtain(ctx, "lock:backfill:"+r.ID, 60*time.Second, nil)
			if err == redislock.ErrNotObtained {
				fmt.Fprintf(os.Stderr, "restaurant %s: backfill already running; skipping\n", r.ID)
				continue
			} else if err != nil {
				fmt.Fprintf(os.Stderr, "restaurant %s: lock error: %v; proceeding without lock\n", r.ID, err)
				lock = nil
			}
		}

		fmt.Printf("Backfilling language_usage_days restaurant=%s from=%s to=%s\n", r.ID, start, end)

		err := models.BackfillLanguageUsage(ctx, r.ID, start, end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "restaurant %s: backfill failed: %v\n", r.ID, err)
		}

		if lock != nil {
			if releaseErr := lock.Release(ctx); releaseErr != nil {
				fmt.Fprintf(os.Stderr, "restaurant %s: failed to release lock: %v\n", r.ID, releaseErr)
			}
		}
	}
}
