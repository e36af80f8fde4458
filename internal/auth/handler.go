package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/storage/kv"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/internal/users"
)

const revokedPrefix = "revoked:"

// Session is the body returned by every successful login.
type Session struct {
	User    users.User `json:"user"`
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
}

// Sessions turns users into token pairs and tracks revoked refresh tokens.
type Sessions struct {
	Tokens  *sharedauth.Issuer
	Revoked kv.Store
	now     func() time.Time
}

func NewSessions(tokens *sharedauth.Issuer, revoked kv.Store) *Sessions {
	return &Sessions{Tokens: tokens, Revoked: revoked, now: time.Now}
}

// Start issues a token pair for user.
func (s *Sessions) Start(user users.User) (Session, error) {
	pair, err := s.Tokens.IssuePair(identityOf(user))
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Access: pair.Access, Refresh: pair.Refresh}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *Sessions) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.Tokens.Verify(refresh, sharedauth.TokenRefresh)
	if err != nil {
		return "", err
	}
	revoked, err := s.Revoked.Exists(ctx, revokedKey(claims.ID))
	if err != nil {
		return "", err
	}
	if revoked {
		return "", sharedauth.ErrInvalidToken
	}
	return s.Tokens.IssueAccess(sharedauth.Identity{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	})
}

// Revoke blacklists a refresh token until it would have expired anyway.
func (s *Sessions) Revoke(ctx context.Context, userID, refresh string) error {
	claims, err := s.Tokens.Verify(refresh, sharedauth.TokenRefresh)
	if err != nil {
		return err
	}
	if userID != "" && claims.Subject != userID {
		return sharedauth.ErrInvalidToken
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	_, err = s.Revoked.SetNX(ctx, revokedKey(claims.ID), claims.Subject, ttl)
	return err
}

func revokedKey(jti string) string {
	return revokedPrefix + util.HashKey(jti)
}

func identityOf(user users.User) sharedauth.Identity {
	return sharedauth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FullName(),
		Picture: user.ProfilePicture,
	}
}

// Handler serves password registration, login and token lifecycle routes.
type Handler struct {
	Users    *users.Service
	Sessions *Sessions
}

func NewHandler(userSvc *users.Service, sessions *Sessions) *Handler {
	return &Handler{Users: userSvc, Sessions: sessions}
}

// PublicPaths lists the routes that must bypass the auth middleware.
func (h *Handler) PublicPaths(prefix string) []string {
	return []string{
		prefix + "/auth/register",
		prefix + "/auth/login",
		prefix + "/auth/token/refresh",
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/token/refresh", h.refresh)
	rg.POST("/auth/logout", h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var in users.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	user, err := h.Users.Register(c.Request.Context(), in)
	if err != nil {
		var verr *users.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid input", verr.Fields)
		case errors.Is(err, users.ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "A user with this email already exists.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		}
		return
	}
	h.startSession(c, http.StatusCreated, user, "auth.register")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
		return
	}
	user, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to login", nil)
		return
	}
	h.startSession(c, http.StatusOK, user, "auth.login")
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "refresh token is required", nil)
		return
	}
	access, err := h.Sessions.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, sharedauth.ErrInvalidToken) {
			respond.Error(c, http.StatusUnauthorized, "token_not_valid", "Token is invalid or expired", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to refresh token", nil)
		return
	}
	respond.OK(c, gin.H{"access": access})
}

func (h *Handler) logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	userID := middleware.UserIDFromContext(c)
	if err := h.Sessions.Revoke(c.Request.Context(), userID, req.Refresh); err != nil {
		telemetry.Warn("auth.logout_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	telemetry.Info("auth.logout", map[string]any{"user_id": userID})
	c.Status(http.StatusResetContent)
}

func (h *Handler) startSession(c *gin.Context, status int, user users.User, event string) {
	session, err := h.Sessions.Start(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	telemetry.Info(event, map[string]any{
		"user_id":  user.ID,
		"provider": user.Provider,
	})
	respond.JSON(c, status, session)
}
