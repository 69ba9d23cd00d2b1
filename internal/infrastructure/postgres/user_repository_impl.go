package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/repository"
)

// ErrNotFound is returned when no user row matches the lookup.
var ErrNotFound = errors.New("not found")

const userColumns = `
	id, email, password_hash, verified, verification_code, verification_expires_at,
	refresh_token, refresh_expires_at, balances, is_admin, admin_password_hash,
	last_claim_time, claim_count_today, completed_tasks_today,
	withdraw_history, invited_friends, message, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Balances == nil {
		u.Balances = entity.NewBalances()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			id, email, password_hash, verified, verification_code, verification_expires_at,
			balances, is_admin, admin_password_hash,
			completed_tasks_today, withdraw_history, invited_friends
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`, u.ID, entity.NormalizeEmail(u.Email), u.PasswordHash, u.Verified,
		nullStr(u.VerificationCode), u.VerifyExpiresAt,
		u.Balances, u.IsAdmin, nullStr(u.AdminPasswordHash),
		taskArr(u.CompletedTasksToday), withdrawJSON(u.WithdrawHistory), friendArr(u.InvitedFriends))

	return row.Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email = $1", entity.NormalizeEmail(email))
}

func (r *UserRepository) GetByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getBy(ctx, "refresh_token = $1", token)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var (
		code, refresh, adminHash, message *string
	)
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Verified, &code, &u.VerifyExpiresAt,
		&refresh, &u.RefreshExpiresAt, &u.Balances, &u.IsAdmin, &adminHash,
		&u.LastClaimTime, &u.ClaimCountToday, &u.CompletedTasksToday,
		&u.WithdrawHistory, &u.InvitedFriends, &message, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.VerificationCode = deref(code)
	u.RefreshToken = deref(refresh)
	u.AdminPasswordHash = deref(adminHash)
	u.Message = deref(message)
	if u.Balances == nil {
		u.Balances = entity.NewBalances()
	}
	return u, nil
}

// Update writes the full row; the whole aggregate is the unit of mutation.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users SET
			email = $1, password_hash = $2, verified = $3,
			verification_code = $4, verification_expires_at = $5,
			refresh_token = $6, refresh_expires_at = $7,
			balances = $8, is_admin = $9, admin_password_hash = $10,
			last_claim_time = $11, claim_count_today = $12, completed_tasks_today = $13,
			withdraw_history = $14, invited_friends = $15, message = $16,
			updated_at = $17
		WHERE id = $18
	`, entity.NormalizeEmail(u.Email), u.PasswordHash, u.Verified,
		nullStr(u.VerificationCode), u.VerifyExpiresAt,
		nullStr(u.RefreshToken), u.RefreshExpiresAt,
		u.Balances, u.IsAdmin, nullStr(u.AdminPasswordHash),
		u.LastClaimTime, u.ClaimCountToday, taskArr(u.CompletedTasksToday),
		withdrawJSON(u.WithdrawHistory), friendArr(u.InvitedFriends), nullStr(u.Message),
		u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIfUnverified is the re-check-then-act half of the deferred
// registration cleanup: the WHERE clause makes the check atomic.
func (r *UserRepository) DeleteIfUnverified(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND verified = false`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// withdrawJSON keeps the jsonb column an empty array rather than NULL.
func withdrawJSON(h []entity.WithdrawRecord) []entity.WithdrawRecord {
	if h == nil {
		return []entity.WithdrawRecord{}
	}
	return h
}

func taskArr(t []int64) []int64 {
	if t == nil {
		return []int64{}
	}
	return t
}

func friendArr(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}

var _ repository.UserRepository = (*UserRepository)(nil)
