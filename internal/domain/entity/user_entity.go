package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain: identity, wallet and
// session state live on a single record so every mutation is one atomic
// row write.
//
// Password hashes are bcrypt. AdminPasswordHash is a separate secret used
// only by the admin login flow and never by the regular one.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	Verified         bool
	VerificationCode string
	VerifyExpiresAt  *time.Time

	RefreshToken     string
	RefreshExpiresAt *time.Time

	Balances Balances

	IsAdmin           bool
	AdminPasswordHash string

	LastClaimTime       *time.Time
	ClaimCountToday     int
	CompletedTasksToday []int64

	WithdrawHistory []WithdrawRecord
	InvitedFriends  []string

	// Message is a notice set by an admin, readable by the user.
	Message string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lower-cases and trims an email address. All store lookups
// go through this so one account exists per normalized address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasCompletedTask reports whether taskID is in today's completed set.
func (u *User) HasCompletedTask(taskID int64) bool {
	for _, t := range u.CompletedTasksToday {
		if t == taskID {
			return true
		}
	}
	return false
}

// ResetDailyClaims clears the daily claim counter and completed-task set.
func (u *User) ResetDailyClaims() {
	u.ClaimCountToday = 0
	u.CompletedTasksToday = nil
}

// HasInvited reports whether friendID was already recorded.
func (u *User) HasInvited(friendID string) bool {
	for _, f := range u.InvitedFriends {
		if f == friendID {
			return true
		}
	}
	return false
}
