package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/mailer"
)

type captureQueue struct {
	jobs []mailer.EmailJob
}

func (q *captureQueue) PublishJSON(_ context.Context, body any) error {
	q.jobs = append(q.jobs, body.(mailer.EmailJob))
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAuthService(repo *memRepo) (*AuthService, *captureQueue) {
	q := &captureQueue{}
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	s := NewAuthService(repo, jwt, q, testLogger(), 30*24*time.Hour, 10*time.Minute, true)
	s.schedule = func(time.Duration, func()) {} // timers fired explicitly in tests
	return s, q
}

func registerVerified(t *testing.T, s *AuthService, repo *memRepo, email, password string) *entity.User {
	t.Helper()
	require.NoError(t, s.Register(context.Background(), email, password))
	u, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NoError(t, s.VerifyEmail(context.Background(), email, u.VerificationCode))
	u, err = repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	repo := newMemRepo()
	s, q := newTestAuthService(repo)
	ctx := context.Background()

	err := s.Register(ctx, "  Alice@Example.COM ", "password123")
	require.NoError(t, err)

	u, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, u.Verified)
	assert.Len(t, u.VerificationCode, 6)
	require.NotNil(t, u.VerifyExpiresAt)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "password123"))
	assert.Equal(t, 0.0, u.Balances[entity.CurrencyUSDT])

	require.Len(t, q.jobs, 1)
	assert.Equal(t, "alice@example.com", q.jobs[0].To)
	assert.Equal(t, mailer.TemplateVerificationCode, q.jobs[0].Template)
	assert.Equal(t, u.VerificationCode, q.jobs[0].Data["Code"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	s, _ := newTestAuthService(repo)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "bob@example.com", "password123"))
	err := s.Register(ctx, "BOB@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		s, _ := newTestAuthService(newMemRepo())
		err := s.VerifyEmail(ctx, "ghost@example.com", "123456")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		require.NoError(t, s.Register(ctx, "a@example.com", "password123"))
		err := s.VerifyEmail(ctx, "a@example.com", "000000")
		assert.ErrorIs(t, err, ErrCodeMismatch)
	})

	t.Run("expired code", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		require.NoError(t, s.Register(ctx, "a@example.com", "password123"))
		u, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		s.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
		err = s.VerifyEmail(ctx, "a@example.com", u.VerificationCode)
		assert.ErrorIs(t, err, ErrCodeExpired)
	})

	t.Run("success then already verified", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		require.NoError(t, s.Register(ctx, "a@example.com", "password123"))
		u, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)

		require.NoError(t, s.VerifyEmail(ctx, "a@example.com", u.VerificationCode))
		u, err = repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.True(t, u.Verified)
		assert.Empty(t, u.VerificationCode)
		assert.Nil(t, u.VerifyExpiresAt)

		err = s.VerifyEmail(ctx, "a@example.com", "123456")
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})
}

func TestCleanupUnverified(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes stale unverified account", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		require.NoError(t, s.Register(ctx, "a@example.com", "password123"))
		u, err := repo.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)

		s.CleanupUnverified(ctx, u.ID)
		_, err = repo.GetByEmail(ctx, "a@example.com")
		assert.Error(t, err)
	})

	t.Run("spares an account verified before the timer fires", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		u := registerVerified(t, s, repo, "a@example.com", "password123")

		s.CleanupUnverified(ctx, u.ID)
		_, err := repo.GetByEmail(ctx, "a@example.com")
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		s, _ := newTestAuthService(newMemRepo())
		_, _, err := s.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified account rejected before password check", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		require.NoError(t, s.Register(ctx, "a@example.com", "password123"))
		_, _, err := s.Login(ctx, "a@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		registerVerified(t, s, repo, "a@example.com", "password123")
		_, _, err := s.Login(ctx, "a@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success issues tokens and persists refresh", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		registerVerified(t, s, repo, "a@example.com", "password123")

		res, pair, err := s.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", res.Email)
		assert.False(t, res.IsAdmin)
		assert.Len(t, pair.RefreshToken, 80)

		claims, err := s.JWT.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, res.UserID, claims.UserID)
		assert.False(t, claims.IsAdmin)

		u, err := repo.GetByRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, res.UserID, u.ID)
	})

	t.Run("relogin replaces the stored refresh token", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		registerVerified(t, s, repo, "a@example.com", "password123")

		_, first, err := s.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)
		_, second, err := s.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		_, err = repo.GetByRefreshToken(ctx, first.RefreshToken)
		assert.Error(t, err)
		_, err = repo.GetByRefreshToken(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		s, _ := newTestAuthService(newMemRepo())
		_, err := s.Refresh(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("unknown token", func(t *testing.T) {
		s, _ := newTestAuthService(newMemRepo())
		_, err := s.Refresh(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("rotation retires the presented token", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		registerVerified(t, s, repo, "a@example.com", "password123")
		_, pair, err := s.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)

		rotated, err := s.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		_, err = s.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefresh)
		_, err = s.Refresh(ctx, rotated.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("expired token is cleared on sight", func(t *testing.T) {
		repo := newMemRepo()
		s, _ := newTestAuthService(repo)
		u := registerVerified(t, s, repo, "a@example.com", "password123")
		_, pair, err := s.Login(ctx, "a@example.com", "password123")
		require.NoError(t, err)

		s.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		_, err = s.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshExpired)

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.RefreshToken)
		assert.Nil(t, stored.RefreshExpiresAt)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s, _ := newTestAuthService(repo)
	u := registerVerified(t, s, repo, "a@example.com", "password123")
	_, pair, err := s.Login(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	s.Logout(ctx, pair.RefreshToken)
	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)

	// repeated and unknown-token logouts are silent no-ops
	s.Logout(ctx, pair.RefreshToken)
	s.Logout(ctx, "")
}
