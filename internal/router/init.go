package router

import (
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/application"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/container"
	pginfra "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/infrastructure/postgres"
	handlers "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/http"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		repo,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
		cfg.RefreshTTL,
		cfg.VerifyTTL,
		cfg.MailSendEnabled,
	)
	walletSvc := application.NewWalletService(
		repo,
		logger,
		cfg.MaxClaimsPerDay,
		cfg.ClaimPeriod,
		cfg.RewardPercent,
		cfg.ConversionRates(),
		cfg.MaxWithdrawals,
		cfg.MaxInvitedFriends,
	)
	adminSvc := application.NewAdminService(repo, container.GetJWT(), logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	walletHandler := handlers.NewWalletHandler(walletSvc, logger)
	adminHandler := handlers.NewAdminHandler(adminSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewWalletModule(walletHandler, container.GetJWT()))
	r.Add(modules.NewAdminModule(adminHandler, container.GetJWT()))
}
