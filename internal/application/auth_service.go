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
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/mailer"
)

// EmailQueue is the slice of the message broker the auth flow needs.
// *helpers.RabbitPublisher satisfies it.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// TokenPair is one issued session: a signed access token plus the opaque
// refresh token persisted on the user row.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// LoginResult is what the login endpoint reports back besides cookies.
type LoginResult struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthService orchestrates the registration, verification and session
// lifecycle against the user store.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Queue       EmailQueue
	Logger      *logrus.Logger
	RefreshTTL  time.Duration
	VerifyTTL   time.Duration
	MailEnabled bool

	now      func() time.Time
	schedule func(d time.Duration, f func())
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, q EmailQueue, logger *logrus.Logger, refreshTTL, verifyTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:        r,
		JWT:         jwt,
		Queue:       q,
		Logger:      logger,
		RefreshTTL:  refreshTTL,
		VerifyTTL:   verifyTTL,
		MailEnabled: mailEnabled,
		now:         time.Now,
		schedule:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Register creates an unverified account, schedules its expiry and
// dispatches the verification code email. A failure to enqueue the email
// is returned to the caller; the account stays and can retry verification.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = entity.NormalizeEmail(email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, postgres.ErrNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	code, err := helpers.GenVerificationCode()
	if err != nil {
		return err
	}
	expiresAt := s.now().Add(s.VerifyTTL)

	u := &entity.User{
		ID:               uuid.NewString(),
		Email:            email,
		PasswordHash:     hash,
		Verified:         false,
		VerificationCode: code,
		VerifyExpiresAt:  &expiresAt,
		Balances:         entity.NewBalances(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return err
	}

	// Unconditional one-shot timer; CleanupUnverified re-checks state at
	// fire time, so a verification that lands first is never erased.
	userID := u.ID
	s.schedule(s.VerifyTTL, func() {
		s.CleanupUnverified(context.Background(), userID)
	})

	if s.MailEnabled && s.Queue != nil {
		job := mailer.VerificationJob(email, code, int(s.VerifyTTL.Minutes()))
		if err := s.Queue.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("email", email).Error("failed to enqueue verification email")
			return err
		}
	}
	return nil
}

// CleanupUnverified deletes the account if it is still unverified.
func (s *AuthService) CleanupUnverified(ctx context.Context, userID string) {
	deleted, err := s.Repo.DeleteIfUnverified(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("unverified cleanup failed")
		return
	}
	if deleted {
		s.Logger.WithField("user_id", userID).Info("deleted unverified user")
	}
}

// VerifyEmail checks the submitted code and marks the account verified.
// Each rejection path is a distinct error so clients can tell them apart.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Verified {
		return ErrAlreadyVerified
	}
	if u.VerificationCode != code {
		return ErrCodeMismatch
	}
	if u.VerifyExpiresAt == nil || s.now().After(*u.VerifyExpiresAt) {
		return ErrCodeExpired
	}

	u.Verified = true
	u.VerificationCode = ""
	u.VerifyExpiresAt = nil
	return s.Repo.Update(ctx, u)
}

// Login authenticates a verified user and issues a fresh token pair,
// replacing any previously stored refresh token. Unknown email and wrong
// password collapse into the same error to avoid account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, TokenPair, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !u.Verified {
		return nil, TokenPair{}, ErrEmailNotVerified
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResult{UserID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}, pair, nil
}

// Refresh rotates the session: the presented refresh token is retired and
// a brand-new pair is issued. An expired token is cleared on sight.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrInvalidRefresh
	}
	u, err := s.Repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefresh
		}
		return TokenPair{}, err
	}
	if u.RefreshExpiresAt == nil || s.now().After(*u.RefreshExpiresAt) {
		u.RefreshToken = ""
		u.RefreshExpiresAt = nil
		if uerr := s.Repo.Update(ctx, u); uerr != nil {
			s.Logger.WithError(uerr).WithField("user_id", u.ID).Warn("failed to clear expired refresh token")
		}
		return TokenPair{}, ErrRefreshExpired
	}
	return s.issueTokens(ctx, u)
}

// Logout clears the stored refresh state when the token matches a user.
// It never fails visibly; an unknown or absent token is still a success.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	u, err := s.Repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return
	}
	u.RefreshToken = ""
	u.RefreshExpiresAt = nil
	if err := s.Repo.Update(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("logout failed to clear refresh token")
	}
}

func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, err := helpers.GenRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	rexp := s.now().Add(s.RefreshTTL)

	u.RefreshToken = refresh
	u.RefreshExpiresAt = &rexp
	if err := s.Repo.Update(ctx, u); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessExpiry: aexp, RefreshToken: refresh, RefreshExpiry: rexp}, nil
}
