package middleware

import (
	"net/http"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	SubjectIDKey = "subject_id"
	UsernameKey  = "username"
	RoleKey      = "role"
	SessionIDKey = "session_id"
)

// SessionCookie names the cookie holding the session id.
const SessionCookie = "session_id"

// AuthService bundles the two ways a request can identify itself.
type AuthService struct {
	JWT      *auth.JWTService
	Sessions auth.Store
}

// Authenticate resolves the caller from a Bearer token or the session
// cookie and stores the identity in the gin context. Anonymous requests
// pass through untouched.
func Authenticate(authSvc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := authSvc.JWT.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err == nil {
				setIdentity(c, claims.SubjectID, claims.Username, claims.Role)
				c.Next()
				return
			}
		}

		sessionID, err := c.Cookie(SessionCookie)
		if err == nil && sessionID != "" {
			data, err := authSvc.Sessions.Get(c.Request.Context(), sessionID)
			if err == nil && data != nil {
				c.Set(SessionIDKey, sessionID)
			}
			if err == nil && data.Authenticated() {
				setIdentity(c, data.SubjectID, data.Username, data.Role)
				// Sliding expiry
				_ = authSvc.Sessions.Extend(c.Request.Context(), sessionID)
			}
		}

		c.Next()
	}
}

func setIdentity(c *gin.Context, id uint, username, role string) {
	c.Set(SubjectIDKey, id)
	c.Set(UsernameKey, username)
	c.Set(RoleKey, role)
}

// RequireRole redirects HTML requests without the given role to loginPath.
func RequireRole(role, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != role {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPIRole answers 401 to anonymous callers and 403 to the wrong role.
func RequireAPIRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := CurrentRole(c)
		if current == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "description": "unauthorized"})
			c.Abort()
			return
		}
		if current != role {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "description": role + " access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

// GetCurrentUserID returns the id of the logged-in user account.
func GetCurrentUserID(c *gin.Context) (uint, bool) {
	return subjectFor(c, auth.RoleUser)
}

// GetCurrentSpecialistID returns the id of the logged-in specialist.
func GetCurrentSpecialistID(c *gin.Context) (uint, bool) {
	return subjectFor(c, auth.RoleSpecialist)
}

func subjectFor(c *gin.Context, role string) (uint, bool) {
	if CurrentRole(c) != role {
		return 0, false
	}
	v, ok := c.Get(SubjectIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// SessionID is the cookie session seen on this request, if any.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
