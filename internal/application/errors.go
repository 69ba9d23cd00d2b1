package application

import "errors"

// Domain-rule errors surfaced to handlers. Everything else coming out of
// the services is treated as an internal failure and answered with a 500.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrCodeMismatch       = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrRefreshExpired     = errors.New("refresh token expired")

	ErrClaimLimit     = errors.New("daily claim limit reached")
	ErrDuplicateTask  = errors.New("task already completed today")
	ErrNothingToClaim = errors.New("insufficient balance to claim reward")

	ErrWithdrawLimit       = errors.New("withdraw limit reached")
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrFriendLimit   = errors.New("invited friends limit reached")
	ErrFriendInvited = errors.New("friend already invited")

	ErrNotAdmin = errors.New("not an admin user")
)
