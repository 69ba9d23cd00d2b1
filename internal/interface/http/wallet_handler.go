package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/application"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/interface/middleware"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/response"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/validation"
)

type WalletHandler struct {
	Svc    *application.WalletService
	Logger *logrus.Logger
}

func NewWalletHandler(svc *application.WalletService, logger *logrus.Logger) *WalletHandler {
	return &WalletHandler{Svc: svc, Logger: logger}
}

type claimRequest struct {
	TaskID int64 `json:"task_id" binding:"required"`
}

type withdrawRequest struct {
	Currency string  `json:"currency" binding:"required,currency"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Address  string  `json:"address" binding:"required"`
}

type inviteRequest struct {
	FriendID string `json:"friend_id" binding:"required"`
}

type deleteMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ClaimStatus GET /api/wallet/claim-status
func (h *WalletHandler) ClaimStatus(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	st, err := h.Svc.GetClaimStatus(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "claim status", nil)
}

// ClaimReward POST /api/wallet/claim-reward
func (h *WalletHandler) ClaimReward(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "task id is required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	res, err := h.Svc.ClaimReward(c.Request.Context(), uid, req.TaskID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "reward claimed successfully", nil)
}

// Withdraw POST /api/wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	rec, err := h.Svc.Withdraw(c.Request.Context(), uid, req.Currency, req.Amount, req.Address)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdraw": rec}, "withdraw request submitted successfully", nil)
}

// InviteFriend POST /api/wallet/invite-friend
func (h *WalletHandler) InviteFriend(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "friend id is required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.InviteFriend(c.Request.Context(), uid, req.FriendID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invited_friends": u.InvitedFriends}, "friend id saved successfully", nil)
}

// Message GET /api/me/message
func (h *WalletHandler) Message(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	msg, err := h.Svc.Message(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": msg}, "message", nil)
}

// DeleteMessage DELETE /api/me/message
func (h *WalletHandler) DeleteMessage(c *gin.Context) {
	var req deleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "message is required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.ClearMessage(c.Request.Context(), uid, req.Message); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "message deleted successfully", nil)
}
