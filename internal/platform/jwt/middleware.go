package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube_backend/internal/platform/http/response"
)

const (
	ContextUserID = "userID"

	// CookieAccessToken and CookieRefreshToken are the cookie names used when
	// the client does not send an Authorization header.
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// TokenVerifier is satisfied by *Verifier.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AuthRequired returns a Gin middleware function that validates access tokens
// and restricts access to authenticated users only.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := AccessTokenFrom(c)
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "unauthorized request")
			return
		}

		userID, err := v.Verify(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid access token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := AccessTokenFrom(c); tokenStr != "" {
			if userID, err := v.Verify(tokenStr); err == nil {
				c.Set(ContextUserID, userID)
			}
		}
		c.Next()
	}
}

// AccessTokenFrom reads the bearer token, falling back to the access token cookie.
func AccessTokenFrom(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := c.Cookie(CookieAccessToken); err == nil {
		return cookie
	}
	return ""
}

// ActorFrom returns the authenticated user set by AuthRequired or OptionalAuth.
func ActorFrom(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// RequireActor returns the authenticated user, or writes a 401 and reports false.
func RequireActor(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := ActorFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "unauthorized request")
	}
	return userID, ok
}
