package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/focusgrove/focusgrove-backend/internal/apierr"
	"github.com/focusgrove/focusgrove-backend/internal/logger"
	"github.com/focusgrove/focusgrove-backend/internal/requestdata"
	"github.com/focusgrove/focusgrove-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         baseLog.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	user, err := h.authService.RegisterUser(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondCreated(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, fmt.Errorf("invalid request body"))
		return
	}
	accessToken, refreshToken, err := h.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, tokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Refresh exchanges a refresh token for a fresh pair. It deliberately does
// not require a live access token: that is the point of refreshing.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh := c.GetHeader("X-Refresh-Token")
	if refresh == "" {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, fmt.Errorf("missing refresh token"))
		return
	}
	ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{RefreshToken: refresh})
	accessToken, refreshToken, err := h.authService.RefreshUser(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, tokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.LogoutUser(c.Request.Context()); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "logged out"})
}
