package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/tamkeenlabs/facility_management_app/internal/core/ports/services"
	"github.com/tamkeenlabs/facility_management_app/internal/dto"
	"github.com/tamkeenlabs/facility_management_app/internal/middleware"
	"github.com/tamkeenlabs/facility_management_app/internal/platform/config"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles the Google OAuth2 login flow. Only registered
// when AUTH_PROVIDER is google.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authProvider       portssvc.AuthProviderSvc
	authHandler        *AuthHandler
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(gs portssvc.GoogleOAuthHandlerSvcFacade, ap portssvc.AuthProviderSvc, ah *AuthHandler, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: gs,
		authProvider:       ap,
		authHandler:        ah,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth login and callback routes
// under the auth route group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, authHandler *AuthHandler, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.AuthProvider, authHandler, cfg)

	rg.GET("/google/login", h.GoogleLogin)
	rg.GET("/google/callback", h.GoogleCallback)
}

// GoogleLogin godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen. A CSRF state token is set as a short-lived cookie.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) GoogleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}

	// 10 minutes is plenty for the round trip to Google.
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// GoogleCallback godoc
// @Summary Google login callback
// @Description Completes the OAuth flow: verifies the CSRF state, exchanges the code, and signs the user in. The Google account's email must belong to a registered user.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state token"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) GoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// State is single-use.
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange OAuth code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to complete Google login"})
		return
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		logger.Error("Google token response did not include an ID token")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to complete Google login"})
		return
	}

	user, err := h.authProvider.Authenticate(c.Request.Context(), "", idToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No registered account for this Google identity"})
		return
	}

	accessToken, _, err := h.authHandler.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if err := h.authHandler.issueRefreshToken(c, user); err != nil {
		logger.Error("Failed to issue refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if h.cfg.FrontendBaseURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendBaseURL+"/auth/callback#token="+accessToken)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}
