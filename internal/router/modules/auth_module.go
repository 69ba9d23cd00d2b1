package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/container"
	handlers "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/http"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/middleware"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
)

// AuthModule wires the session lifecycle routes.
// Public: register, verify, login, refresh, logout.
// Protected: GET /api/me.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/verify", registerLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
