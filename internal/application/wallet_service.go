package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
	repo "github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/repository"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/infrastructure/postgres"
)

// ClaimStatus reports whether the user may claim again today.
type ClaimStatus struct {
	CanClaim        bool    `json:"can_claim_reward"`
	RemainingClaims int     `json:"remaining_claims"`
	CompletedTasks  []int64 `json:"completed_tasks"`
}

// ClaimResult is the outcome of a successful reward claim.
type ClaimResult struct {
	Reward          float64         `json:"reward"`
	NewBalances     entity.Balances `json:"new_balances"`
	RemainingClaims int             `json:"remaining_claims"`
	CompletedTasks  []int64         `json:"completed_tasks"`
}

// WalletService owns every balance mutation: reward claims, withdrawal
// logging and invited-friend bookkeeping.
type WalletService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger

	MaxClaimsPerDay   int
	ClaimPeriod       time.Duration
	RewardPercent     float64
	Rates             map[string]float64
	MaxWithdrawals    int
	MaxInvitedFriends int

	now func() time.Time
}

func NewWalletService(r repo.UserRepository, logger *logrus.Logger, maxClaims int, claimPeriod time.Duration, rewardPercent float64, rates map[string]float64, maxWithdrawals, maxFriends int) *WalletService {
	return &WalletService{
		Repo:              r,
		Logger:            logger,
		MaxClaimsPerDay:   maxClaims,
		ClaimPeriod:       claimPeriod,
		RewardPercent:     rewardPercent,
		Rates:             rates,
		MaxWithdrawals:    maxWithdrawals,
		MaxInvitedFriends: maxFriends,
		now:               time.Now,
	}
}

// maybeReset applies the lazy daily-window reset: the counter and task set
// clear on first touch once the claim period has elapsed, not at a fixed
// wall-clock boundary.
func (s *WalletService) maybeReset(u *entity.User) bool {
	if u.LastClaimTime == nil {
		if u.ClaimCountToday != 0 || len(u.CompletedTasksToday) != 0 {
			u.ResetDailyClaims()
			return true
		}
		return false
	}
	if s.now().Sub(*u.LastClaimTime) >= s.ClaimPeriod {
		u.ResetDailyClaims()
		return true
	}
	return false
}

// GetClaimStatus loads the user, applies the lazy reset (persisting it when
// it fires) and reports the remaining allowance.
func (s *WalletService) GetClaimStatus(ctx context.Context, userID string) (*ClaimStatus, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.maybeReset(u) {
		if err := s.Repo.Update(ctx, u); err != nil {
			return nil, err
		}
	}
	remaining := s.MaxClaimsPerDay - u.ClaimCountToday
	if remaining < 0 {
		remaining = 0
	}
	return &ClaimStatus{
		CanClaim:        u.ClaimCountToday < s.MaxClaimsPerDay,
		RemainingClaims: remaining,
		CompletedTasks:  tasks(u),
	}, nil
}

// ClaimReward credits 2% of the USD-equivalent portfolio value into USDT.
// The reward is sized across all assets but always paid in the stable one.
func (s *WalletService) ClaimReward(ctx context.Context, userID string, taskID int64) (*ClaimResult, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.maybeReset(u)

	if u.ClaimCountToday >= s.MaxClaimsPerDay {
		return nil, ErrClaimLimit
	}
	if u.HasCompletedTask(taskID) {
		return nil, ErrDuplicateTask
	}

	reward := u.Balances.USDValue(s.Rates) * s.RewardPercent
	if reward <= 0 {
		return nil, ErrNothingToClaim
	}

	now := s.now()
	u.Balances[entity.CurrencyUSDT] += reward
	u.ClaimCountToday++
	u.CompletedTasksToday = append(u.CompletedTasksToday, taskID)
	u.LastClaimTime = &now
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"task_id": taskID,
		"reward":  reward,
	}).Info("reward claimed")

	return &ClaimResult{
		Reward:          reward,
		NewBalances:     u.Balances,
		RemainingClaims: s.MaxClaimsPerDay - u.ClaimCountToday,
		CompletedTasks:  tasks(u),
	}, nil
}

// Withdraw appends a withdrawal request to the lifetime-capped log. The
// balance is checked but not debited; actual fund movement happens outside
// this system.
func (s *WalletService) Withdraw(ctx context.Context, userID, currency string, amount float64, address string) (*entity.WithdrawRecord, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.WithdrawHistory) >= s.MaxWithdrawals {
		return nil, ErrWithdrawLimit
	}
	if u.Balances[currency] < amount {
		return nil, ErrInsufficientBalance
	}

	rec := entity.WithdrawRecord{
		Currency: currency,
		Amount:   amount,
		Address:  address,
		Date:     s.now(),
	}
	u.WithdrawHistory = append(u.WithdrawHistory, rec)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return &rec, nil
}

// InviteFriend records an external friend id, capped and deduplicated.
func (s *WalletService) InviteFriend(ctx context.Context, userID, friendID string) (*entity.User, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.InvitedFriends) >= s.MaxInvitedFriends {
		return nil, ErrFriendLimit
	}
	if u.HasInvited(friendID) {
		return nil, ErrFriendInvited
	}
	u.InvitedFriends = append(u.InvitedFriends, friendID)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Message returns the admin notice stored for the user, if any.
func (s *WalletService) Message(ctx context.Context, userID string) (string, error) {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Message, nil
}

// ClearMessage removes the stored notice when the given text matches it.
// A mismatch is not an error; the call is a no-op then.
func (s *WalletService) ClearMessage(ctx context.Context, userID, message string) error {
	u, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.Message != message {
		return nil
	}
	u.Message = ""
	return s.Repo.Update(ctx, u)
}

func (s *WalletService) loadUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func tasks(u *entity.User) []int64 {
	if u.CompletedTasksToday == nil {
		return []int64{}
	}
	return u.CompletedTasksToday
}
