package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/container"
	handlers "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/http"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/middleware"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
)

// AdminModule wires the header-authenticated admin routes.
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	adminLoginLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	rg.POST("/admin/login", adminLoginLimiter, m.Handler.Login)

	admin := rg.Group("/admin")
	admin.Use(middleware.AdminAuth(m.JWT))
	{
		admin.PUT("/password", m.Handler.UpdatePassword)
		admin.POST("/message", m.Handler.SendMessage)
	}
}
