package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/container"
	handlers "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/http"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/middleware"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
)

// WalletModule wires the reward and wallet routes, all behind the access
// token guard.
type WalletModule struct {
	Handler *handlers.WalletHandler
	JWT     *helpers.JWTManager
}

func NewWalletModule(h *handlers.WalletHandler, jwt *helpers.JWTManager) *WalletModule {
	return &WalletModule{Handler: h, JWT: jwt}
}

func (m *WalletModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/wallet/claim-status", m.Handler.ClaimStatus)
		auth.POST("/wallet/claim-reward", m.Handler.ClaimReward)
		auth.POST("/wallet/withdraw", m.Handler.Withdraw)
		auth.POST("/wallet/invite-friend", m.Handler.InviteFriend)
		auth.GET("/me/message", m.Handler.Message)
		auth.DELETE("/me/message", m.Handler.DeleteMessage)
	}
}
