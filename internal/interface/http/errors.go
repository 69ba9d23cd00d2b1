package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/application"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/response"
)

// writeError maps application errors onto the HTTP taxonomy. Anything not
// recognized is logged with context and answered with a generic 500 so
// store or codec internals never leak to clients.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, application.ErrEmailTaken):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, application.ErrUserNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrInvalidRefresh),
		errors.Is(err, application.ErrRefreshExpired):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, application.ErrEmailNotVerified),
		errors.Is(err, application.ErrNotAdmin):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, application.ErrAlreadyVerified),
		errors.Is(err, application.ErrCodeMismatch),
		errors.Is(err, application.ErrCodeExpired),
		errors.Is(err, application.ErrClaimLimit),
		errors.Is(err, application.ErrDuplicateTask),
		errors.Is(err, application.ErrNothingToClaim),
		errors.Is(err, application.ErrWithdrawLimit),
		errors.Is(err, application.ErrInsufficientBalance),
		errors.Is(err, application.ErrFriendLimit),
		errors.Is(err, application.ErrFriendInvited):
		status = http.StatusBadRequest
		msg = err.Error()
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
	}
	response.Fail(c, status, msg, nil)
}
