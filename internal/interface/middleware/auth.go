package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/response"
)

// Context keys set by the guards for downstream handlers.
const (
	CtxUserIDKey  = "userID"
	CtxEmailKey   = "userEmail"
	CtxIsAdminKey = "isAdmin"
)

// Auth validates the access_token cookie and injects the decoded claims
// into the Gin context. The check is stateless: the token is self-contained
// and the store is never touched.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// AdminAuth validates a Bearer token from the Authorization header and
// additionally requires the admin flag in the claims.
func AdminAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			resp := response.Error[any](c, http.StatusUnauthorized, "no token provided", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if !claims.IsAdmin {
			resp := response.Error[any](c, http.StatusForbidden, "you are not authorized to view this page", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *helpers.Claims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxEmailKey, claims.Email)
	c.Set(CtxIsAdminKey, claims.IsAdmin)
}
