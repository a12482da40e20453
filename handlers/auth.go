package handlers

import (
	"errors"
	"net/http"
	"strings"

	"glowdesk/services/user"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup, login and profile endpoints.
type AuthHandler struct {
	svc user.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup registers a new salon and its owner account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.svc.Signup(c, req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.svc.Login(c, req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.svc.Logout(c, token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to log out", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.svc.GetProfile(c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "account not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateFCMToken stores the caller's device token for push notifications.
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.svc.UpdateFCMToken(c.GetString("userID"), req.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update device token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
