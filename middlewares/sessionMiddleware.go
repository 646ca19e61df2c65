package middlewares

import (
	"net/http"

	"bitbucket.org/mmdatafocus/menu_backend/models"
	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware validates the bearer token when present and places the
// authenticated user id, restaurant and admin flag in the request context.
// Anonymous requests pass through; the dashboard handlers decide what needs
// auth. The core trusts these claims unconditionally.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")
		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		if len(auth) > len(bearer) && auth[:len(bearer)] == bearer {
			auth = auth[len(bearer):]
		}

		validated, err := utils.JwtValidate(auth)
		if err != nil || !validated.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, ok := validated.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), claims.ID)
		ctx = utils.SetIsAdminInContext(ctx, claims.Role == string(models.UserRoleAdmin))
		if claims.RestaurantId != "" {
			ctx = utils.SetRestaurantIdInContext(ctx, claims.RestaurantId)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
