package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/jwt"
	"github.com/rahmasleam/NexusMenaV2/internal/pkg/response"
	sessionpkg "github.com/rahmasleam/NexusMenaV2/internal/pkg/session"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeySID    = "session_id"
)

// Auth returns a middleware that enforces JWT authentication.
func Auth(sessions *sessionpkg.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateTokenClaims(sessions, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		if claims.SessionID != "" {
			c.Set(ContextKeySID, claims.SessionID)
			sessions.Touch(claims.UserID, claims.SessionID)
		}
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not block the request.
func OptionalAuth(sessions *sessionpkg.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := ValidateTokenClaims(sessions, extractToken(c)); err == nil && claims.UserID != "" {
			c.Set(ContextKeyUserID, claims.UserID)
			if claims.SessionID != "" {
				c.Set(ContextKeySID, claims.SessionID)
				sessions.Touch(claims.UserID, claims.SessionID)
			}
		}
		c.Next()
	}
}

// RequireAdmin blocks requests whose authenticated user fails the isAdmin check.
// Must run after Auth.
func RequireAdmin(isAdmin func(userID string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(CurrentUserID(c)) {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

// ValidateTokenClaims validates a JWT and checks its session is still live.
func ValidateTokenClaims(sessions *sessionpkg.Registry, rawToken string) (*jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	if sessions != nil && !sessions.IsActive(claims.UserID, claims.SessionID) {
		return nil, errors.New("session expired or revoked")
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
