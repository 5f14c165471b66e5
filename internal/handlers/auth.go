package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/middleware"
	"github.com/jamal0042/boomPlan/internal/models"
	"github.com/jamal0042/boomPlan/internal/session"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// AuthHandler exposes the session store to browser views.
type AuthHandler struct {
	sessions *session.Store
	log      *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(sessions *session.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: log}
}

// Register mounts the auth routes.
func (h *AuthHandler) Register(rg *gin.RouterGroup, guard *middleware.Guard) {
	rg.POST("/auth/register", h.SignUp)
	rg.POST("/auth/login", h.SignIn)
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", guard.RequireAuth(), h.Me)
	rg.PUT("/auth/profile/:id", guard.RequireAuth(), h.UpdateProfile)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new account and signs it in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid registration payload")
		return
	}

	user, err := h.sessions.SignUp(c.Request.Context(), req)
	if err != nil {
		h.authError(c, err)
		return
	}

	response.Created(c, gin.H{"user": user})
}

// SignIn exchanges credentials for a session.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	user, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// Logout clears the session. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout()
	response.NoContent(c)
}

// Me returns the current identity.
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, gin.H{"user": h.sessions.Identity()})
}

// UpdateProfile sends partial fields to the remote API and returns the
// replaced identity.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.BadRequest(c, "invalid profile payload")
		return
	}

	user, err := h.sessions.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		h.authError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// authError maps session store failures onto facade responses. The
// store has already recorded the message and rolled its state back.
func (h *AuthHandler) authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrMalformedCredential):
		response.BadGateway(c, "remote API returned a malformed credential")
	case errors.Is(err, session.ErrNotAuthenticated):
		response.Unauthorized(c, "authentication required")
	default:
		remoteError(c, err)
	}
}
