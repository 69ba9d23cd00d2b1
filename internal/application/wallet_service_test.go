package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
)

func newTestWalletService(repo *memRepo) *WalletService {
	rates := map[string]float64{
		entity.CurrencyBTC:  103471,
		entity.CurrencyETH:  3485,
		entity.CurrencyUSDT: 1,
		entity.CurrencyUSDC: 1,
	}
	return NewWalletService(repo, testLogger(), 5, 24*time.Hour, 0.02, rates, 5, 10)
}

func seedWalletUser(t *testing.T, repo *memRepo, balances entity.Balances) *entity.User {
	t.Helper()
	u := &entity.User{
		ID:       "user-1",
		Email:    "a@example.com",
		Verified: true,
		Balances: balances,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()

	t.Run("credits two percent of portfolio value into USDT", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 100, entity.CurrencyBTC: 0.001})

		res, err := s.ClaimReward(ctx, "user-1", 7)
		require.NoError(t, err)
		// (100 + 0.001*103471) * 0.02
		assert.InDelta(t, 4.06942, res.Reward, 1e-9)
		assert.InDelta(t, 104.06942, res.NewBalances[entity.CurrencyUSDT], 1e-9)
		assert.InDelta(t, 0.001, res.NewBalances[entity.CurrencyBTC], 1e-12)
		assert.Equal(t, 4, res.RemainingClaims)
		assert.Equal(t, []int64{7}, res.CompletedTasks)

		stored, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ClaimCountToday)
		assert.NotNil(t, stored.LastClaimTime)
	})

	t.Run("unpriced assets contribute nothing", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyDAI: 1000})

		_, err := s.ClaimReward(ctx, "user-1", 1)
		assert.ErrorIs(t, err, ErrNothingToClaim)
	})

	t.Run("empty portfolio has nothing to claim", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.NewBalances())

		_, err := s.ClaimReward(ctx, "user-1", 1)
		assert.ErrorIs(t, err, ErrNothingToClaim)
	})

	t.Run("duplicate task rejected", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 100})

		_, err := s.ClaimReward(ctx, "user-1", 7)
		require.NoError(t, err)
		_, err = s.ClaimReward(ctx, "user-1", 7)
		assert.ErrorIs(t, err, ErrDuplicateTask)
	})

	t.Run("daily limit", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 100})

		for i := int64(1); i <= 5; i++ {
			_, err := s.ClaimReward(ctx, "user-1", i)
			require.NoError(t, err)
		}
		_, err := s.ClaimReward(ctx, "user-1", 6)
		assert.ErrorIs(t, err, ErrClaimLimit)
	})

	t.Run("window elapsed resets counter and task set", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		u := seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 100})
		stale := time.Now().Add(-25 * time.Hour)
		u.LastClaimTime = &stale
		u.ClaimCountToday = 5
		u.CompletedTasksToday = []int64{1, 2, 3, 4, 5}
		require.NoError(t, repo.Update(ctx, u))

		res, err := s.ClaimReward(ctx, "user-1", 3)
		require.NoError(t, err)
		assert.Equal(t, 4, res.RemainingClaims)
		assert.Equal(t, []int64{3}, res.CompletedTasks)
	})

	t.Run("within window the counter holds", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		u := seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 100})
		recent := time.Now().Add(-time.Hour)
		u.LastClaimTime = &recent
		u.ClaimCountToday = 5
		require.NoError(t, repo.Update(ctx, u))

		_, err := s.ClaimReward(ctx, "user-1", 9)
		assert.ErrorIs(t, err, ErrClaimLimit)
	})

	t.Run("unknown user", func(t *testing.T) {
		s := newTestWalletService(newMemRepo())
		_, err := s.ClaimReward(ctx, "nobody", 1)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGetClaimStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh user", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.NewBalances())

		st, err := s.GetClaimStatus(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, st.CanClaim)
		assert.Equal(t, 5, st.RemainingClaims)
		assert.Empty(t, st.CompletedTasks)
		assert.NotNil(t, st.CompletedTasks)
	})

	t.Run("exhausted user", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		u := seedWalletUser(t, repo, entity.NewBalances())
		recent := time.Now().Add(-time.Hour)
		u.LastClaimTime = &recent
		u.ClaimCountToday = 5
		require.NoError(t, repo.Update(ctx, u))

		st, err := s.GetClaimStatus(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, st.CanClaim)
		assert.Equal(t, 0, st.RemainingClaims)
	})

	t.Run("lazy reset is persisted", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		u := seedWalletUser(t, repo, entity.NewBalances())
		stale := time.Now().Add(-25 * time.Hour)
		u.LastClaimTime = &stale
		u.ClaimCountToday = 5
		u.CompletedTasksToday = []int64{1, 2}
		require.NoError(t, repo.Update(ctx, u))

		st, err := s.GetClaimStatus(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, st.CanClaim)
		assert.Equal(t, 5, st.RemainingClaims)

		stored, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, stored.ClaimCountToday)
		assert.Empty(t, stored.CompletedTasksToday)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a record without debiting", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyETH: 2})

		rec, err := s.Withdraw(ctx, "user-1", entity.CurrencyETH, 1.5, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, entity.CurrencyETH, rec.Currency)
		assert.Equal(t, 1.5, rec.Amount)
		assert.Equal(t, "0xabc", rec.Address)

		stored, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, stored.WithdrawHistory, 1)
		assert.Equal(t, 2.0, stored.Balances[entity.CurrencyETH])
	})

	t.Run("insufficient balance", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyETH: 1})

		_, err := s.Withdraw(ctx, "user-1", entity.CurrencyETH, 1.5, "0xabc")
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("lifetime cap", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.Balances{entity.CurrencyUSDT: 1000})

		for i := 0; i < 5; i++ {
			_, err := s.Withdraw(ctx, "user-1", entity.CurrencyUSDT, 1, "addr")
			require.NoError(t, err)
		}
		_, err := s.Withdraw(ctx, "user-1", entity.CurrencyUSDT, 1, "addr")
		assert.ErrorIs(t, err, ErrWithdrawLimit)
	})
}

func TestInviteFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("records and dedupes", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		seedWalletUser(t, repo, entity.NewBalances())

		u, err := s.InviteFriend(ctx, "user-1", "friend-9")
		require.NoError(t, err)
		assert.Equal(t, []string{"friend-9"}, u.InvitedFriends)

		_, err = s.InviteFriend(ctx, "user-1", "friend-9")
		assert.ErrorIs(t, err, ErrFriendInvited)
	})

	t.Run("cap", func(t *testing.T) {
		repo := newMemRepo()
		s := newTestWalletService(repo)
		u := seedWalletUser(t, repo, entity.NewBalances())
		for i := 0; i < 10; i++ {
			u.InvitedFriends = append(u.InvitedFriends, string(rune('a'+i)))
		}
		require.NoError(t, repo.Update(ctx, u))

		_, err := s.InviteFriend(ctx, "user-1", "one-more")
		assert.ErrorIs(t, err, ErrFriendLimit)
	})
}

func TestMessage(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := newTestWalletService(repo)
	u := seedWalletUser(t, repo, entity.NewBalances())
	u.Message = "hello from support"
	require.NoError(t, repo.Update(ctx, u))

	msg, err := s.Message(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "hello from support", msg)

	// mismatched text leaves the notice in place
	require.NoError(t, s.ClearMessage(ctx, "user-1", "something else"))
	msg, err = s.Message(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "hello from support", msg)

	require.NoError(t, s.ClearMessage(ctx, "user-1", "hello from support"))
	msg, err = s.Message(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, msg)
}
