package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/codesprint-backend/internal/middleware"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/response"
	"github.com/stemsi/codesprint-backend/internal/service"
	"github.com/stemsi/codesprint-backend/internal/validator"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// AdminLogin godoc
// POST /api/admin/login
// Validates email + password and returns a 24h session token. The operator
// login alert goes out after the response is written.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failFirstField(c, fields, "email", "password")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.UTC().Format(time.RFC3339),
		"admin": gin.H{
			"email": result.Admin.Email,
			"role":  model.RoleAdmin,
		},
	})

	h.authService.AlertLoginAsync(model.LoginEvent{
		AdminEmail: result.Admin.Email,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		At:         time.Now(),
	})
}

// Verify godoc
// GET /api/admin/verify
// Confirms the presented token is still valid.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, "Token is valid", gin.H{
		"valid": true,
		"admin": gin.H{
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

// failFirstField reports the first failing field in the given order, or
// INVALID_PAYLOAD when the body could not be decoded at all.
func failFirstField(c *gin.Context, fields map[string]string, order ...string) {
	for _, f := range order {
		if msg, ok := fields[f]; ok {
			response.FailField(c, http.StatusBadRequest, response.ErrValidation, f, msg)
			return
		}
	}
	response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
}
