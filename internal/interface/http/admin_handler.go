package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/application"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/response"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type adminLoginRequest struct {
	Email         string `json:"email_address" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required"`
}

type adminPasswordRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

type sendMessageRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Message string `json:"message" binding:"required"`
}

// Login POST /api/admin/login — issues the bearer token the admin routes
// expect in the Authorization header.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "email and password are required", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.AdminPassword)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful", nil)
}

// UpdatePassword PUT /api/admin/password
func (h *AdminHandler) UpdatePassword(c *gin.Context) {
	var req adminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "user id and new password are required", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateAdminPassword(c.Request.Context(), req.UserID, req.NewPassword); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "admin password updated successfully", nil)
}

// SendMessage POST /api/admin/message
func (h *AdminHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "user id and message are required", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SendMessage(c.Request.Context(), req.UserID, req.Message); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "message sent successfully", nil)
}
