package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"taskhub/internal/pkg/response"
	"taskhub/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refreshToken"

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service        *Service
	cookieSecure   bool
	cookieSameSite string
	cookiePath     string
}

func NewHandler(service *Service, cookieSecure bool, cookieSameSite, cookiePath string) *Handler {
	return &Handler{
		service:        service,
		cookieSecure:   cookieSecure,
		cookieSameSite: cookieSameSite,
		cookiePath:     cookiePath,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/token", h.Refresh)
	}
}

// Register creates a new user account.
// @Summary		Register a new user
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", fields)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.Error(c, http.StatusBadRequest, "Username is already registered")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	response.Message(c, http.StatusCreated, fmt.Sprintf("User %s registered successfully", user.Username))
}

// Login authenticates a user and issues the token pair. The access token goes
// in the body only; the refresh token travels exclusively in an HTTP-only
// cookie.
// @Summary		Log in
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrIncorrectPassword):
			response.Error(c, http.StatusBadRequest, "Incorrect password")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(h.service.tokens.RefreshTTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("User %s logged in successfully", result.User.Username),
		"accessToken": result.AccessToken,
	})
}

// Logout revokes the refresh token from the cookie and clears it.
// @Summary		Log out
// @Tags		Auth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || strings.TrimSpace(refreshToken) == "" {
		response.Error(c, http.StatusBadRequest, "No refresh token provided")
		return
	}

	if err := h.service.Logout(c.Request.Context(), refreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "Unable to log out")
		return
	}

	h.setRefreshCookie(c, "", -1)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// Refresh exchanges the refresh-token cookie for a new access token.
// @Summary		Refresh access token
// @Tags		Auth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/auth/token [post]
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || strings.TrimSpace(refreshToken) == "" {
		response.Error(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	accessToken, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusForbidden, "Invalid refresh token")
		case errors.Is(err, ErrRefreshTokenExpired):
			response.Error(c, http.StatusForbidden, "Refresh token expired")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
	})
}

func (h *Handler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookieSameSite))
	c.SetCookie(refreshCookieName, value, maxAge, h.cookiePath, "", h.cookieSecure, true)
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteStrictMode
	}
}
