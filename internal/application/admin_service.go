package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
	repo "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/repository"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/infrastructure/postgres"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
)

// AdminService handles the separate admin-password login flow and the
// admin-only user maintenance operations.
type AdminService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAdminService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AdminService {
	return &AdminService{Repo: r, JWT: jwt, Logger: logger}
}

// AdminLoginResult carries the bearer token the admin UI sends in headers.
type AdminLoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// Login authenticates against the separate admin password. A first login
// on an account with no admin password bootstraps it: the account is
// promoted and the presented password becomes the admin password. Once an
// admin password exists it must match.
func (s *AdminService) Login(ctx context.Context, email, adminPassword string) (*AdminLoginResult, error) {
	email = entity.NormalizeEmail(email)

	u, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		u, err = s.bootstrapAdmin(ctx, email, adminPassword)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case u.AdminPasswordHash == "":
		hash, herr := helpers.HashPassword(adminPassword)
		if herr != nil {
			return nil, herr
		}
		u.IsAdmin = true
		u.AdminPasswordHash = hash
		if uerr := s.Repo.Update(ctx, u); uerr != nil {
			return nil, uerr
		}
		s.Logger.WithField("user_id", u.ID).Info("promoted account to admin")
	default:
		if !helpers.CompareHashAndPassword(u.AdminPasswordHash, adminPassword) {
			return nil, ErrInvalidCredentials
		}
	}

	token, exp, err := s.JWT.GenerateAdminToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AdminLoginResult{Token: token, ExpiresAt: exp, UserID: u.ID}, nil
}

func (s *AdminService) bootstrapAdmin(ctx context.Context, email, adminPassword string) (*entity.User, error) {
	hash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:                uuid.NewString(),
		Email:             email,
		Verified:          true,
		IsAdmin:           true,
		AdminPasswordHash: hash,
		Balances:          entity.NewBalances(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("created admin account")
	return u, nil
}

// UpdateAdminPassword replaces the admin password of an admin account.
func (s *AdminService) UpdateAdminPassword(ctx context.Context, userID, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.IsAdmin {
		return ErrNotAdmin
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.AdminPasswordHash = hash
	return s.Repo.Update(ctx, u)
}

// SendMessage stores a notice on the user record for them to read.
func (s *AdminService) SendMessage(ctx context.Context, userID, message string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	u.Message = message
	return s.Repo.Update(ctx, u)
}
