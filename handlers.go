package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bitbucket.org/mmdatafocus/menu_backend/config"
	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/provisioning"
	"bitbucket.org/mmdatafocus/menu_backend/translation"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type handlers struct {
	translator *translation.Translator
	dns        provisioning.Client
}

func newHandlers(translator *translation.Translator, dns provisioning.Client) *handlers {
	return &handlers{translator: translator, dns: dns}
}

// resolveRequestTenant maps the request to its restaurant. The subdomain comes
// from the host middleware, with a query-param fallback for path-based access
// (local development, previews).
func resolveRequestTenant(c *gin.Context) (*models.Restaurant, error) {
	subdomain, _ := utils.GetSubdomainFromContext(c.Request.Context())
	if subdomain == "" {
		subdomain = strings.TrimSpace(c.Query("subdomain"))
	}
	if subdomain == "" {
		return nil, utils.ErrorRecordNotFound
	}
	return models.ResolveTenant(c.Request.Context(), subdomain)
}

// publicMenu serves the assembled, optionally translated menu tree. A request
// without a resolvable tenant gets the generic platform-home payload, not an
// error: a bare top-level domain hit is a valid case. Serving the menu also
// counts as a visit (or a QR scan when ?source=qr) and ticks language usage.
func (h *handlers) publicMenu() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		ctx := c.Request.Context()

		restaurant, err := resolveRequestTenant(c)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"platform": true})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}

		tree, err := models.AssembleMenu(ctx, restaurant.ID)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu unavailable"})
				return
			}
			config.LogError(logger, "handlers", "publicMenu", "AssembleMenu", restaurant.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu unavailable"})
			return
		}
		for _, skipped := range tree.Skipped {
			logger.WithFields(logrus.Fields{
				"module":        "handlers",
				"restaurant_id": restaurant.ID,
				"kind":          skipped.Kind,
				"id":            skipped.Id,
			}).Warn("skipped dangling record while assembling menu")
		}

		ctx = utils.SetLanguageInContext(ctx, utils.NormalizeLanguage(c.Query("lang")))
		lang, _ := utils.GetLanguageFromContext(ctx)
		tree = h.translator.TranslateMenu(ctx, tree, lang)

		// Counting is a side effect of serving; a failed counter never fails
		// the menu response.
		source := models.ParseTrafficSource(c.Query("source"))
		if err := models.IncrementTraffic(ctx, restaurant.ID, source); err != nil {
			config.LogError(logger, "handlers", "publicMenu", "IncrementTraffic", string(source), err)
		}
		if lang != "" && utils.IsValidLanguage(lang) {
			if err := models.TrackLanguageUsage(ctx, restaurant.ID, lang); err != nil {
				config.LogError(logger, "handlers", "publicMenu", "TrackLanguageUsage", restaurant.ID, err)
			}
		}

		c.JSON(http.StatusOK, tree)
	}
}

func (h *handlers) trackVisit() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, err := resolveRequestTenant(c)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err := models.IncrementVisits(c.Request.Context(), restaurant.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record visit"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *handlers) trackQrScan() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, err := resolveRequestTenant(c)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err := models.IncrementQrScans(c.Request.Context(), restaurant.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record scan"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *handlers) trackItemView() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, err := resolveRequestTenant(c)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}

		var input models.NewMenuItemView
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		input.UserAgent = c.Request.UserAgent()
		input.ClientIP = c.ClientIP()

		if err := models.TrackMenuItemView(c.Request.Context(), restaurant.ID, &input); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type trackLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *handlers) trackLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, err := resolveRequestTenant(c)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}

		var req trackLanguageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if err := models.TrackLanguageUsage(c.Request.Context(), restaurant.ID, req.Language); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// authorizeRestaurant ensures the session user may read a restaurant's
// analytics: admins see any restaurant, operators only their own.
func authorizeRestaurant(c *gin.Context, restaurantId string) bool {
	ctx := c.Request.Context()
	if _, ok := utils.GetUserIdFromContext(ctx); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}
	if isAdmin, _ := utils.GetIsAdminFromContext(ctx); isAdmin {
		return true
	}
	ownRestaurant, _ := utils.GetRestaurantIdFromContext(ctx)
	if ownRestaurant == "" || ownRestaurant != restaurantId {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}
	return true
}

// windowDays parses ?days=N. The UI sends 7/30/90 but any positive integer is
// accepted; absent defaults to 30, junk is a 400.
func windowDays(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return models.DefaultWindowDays, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return 0, false
	}
	return n, true
}

func (h *handlers) analytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantId := c.Param("restaurantId")
		if !authorizeRestaurant(c, restaurantId) {
			return
		}
		days, ok := windowDays(c)
		if !ok {
			return
		}
		report, err := models.GetAnalytics(c.Request.Context(), restaurantId, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func (h *handlers) topItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantId := c.Param("restaurantId")
		if !authorizeRestaurant(c, restaurantId) {
			return
		}
		days, ok := windowDays(c)
		if !ok {
			return
		}
		items, err := models.GetMostViewedMenuItems(c.Request.Context(), restaurantId, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load top items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func (h *handlers) languageStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantId := c.Param("restaurantId")
		if !authorizeRestaurant(c, restaurantId) {
			return
		}
		days, ok := windowDays(c)
		if !ok {
			return
		}
		stats, err := models.GetMenuLanguageStats(c.Request.Context(), restaurantId, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load language stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"languages": stats})
	}
}

// me returns the session user's record, so the dashboard can render role and
// owned restaurant without decoding the token client-side.
func (h *handlers) me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userId, ok := utils.GetUserIdFromContext(ctx)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		user, err := models.GetUser(ctx, userId)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func (h *handlers) updateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		restaurantId := c.Param("restaurantId")
		if !authorizeRestaurant(c, restaurantId) {
			return
		}

		var input models.UpdateRestaurantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		restaurant, err := models.UpdateRestaurant(ctx, restaurantId, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func (h *handlers) createRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, ok := utils.GetUserIdFromContext(ctx); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if isAdmin, _ := utils.GetIsAdminFromContext(ctx); !isAdmin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input models.NewRestaurant
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		restaurant, err := models.CreateRestaurant(ctx, &input, h.dns)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}
