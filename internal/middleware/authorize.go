package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docconnect/internal/authstate"
	"docconnect/internal/models"
	"docconnect/internal/security"
)

// RequireAuth rejects requests without a signed-in user. A bearer token,
// when sent, must be the one stored for this browser.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		b := CurrentBrowser(c)
		if b == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err := authstate.RequireAuth(b.Provider.User()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		bearer, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		stored, _ := b.Store.Token(c.Request.Context())
		if bearer != stored {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_mismatch"})
			return
		}
		if security.DecodeToken(bearer) != nil && security.IsTokenExpired(bearer, time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_expired"})
			return
		}

		c.Next()
	}
}

func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if err := authorizeRoles(user, roles); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, authstate.ErrAuthRequired) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

func authorizeRoles(user *models.User, roles []models.UserRole) error {
	switch {
	case len(roles) == 1:
		return authstate.RequireRole(user, roles[0])
	case len(roles) == 2 && hasRoles(roles, models.UserRoleDoctor, models.UserRoleAdmin):
		return authstate.RequireDoctorOrAdmin(user)
	}
	if err := authstate.RequireAuth(user); err != nil {
		return err
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return authstate.ErrForbidden
}

func hasRoles(roles []models.UserRole, want ...models.UserRole) bool {
	for _, w := range want {
		found := false
		for _, r := range roles {
			found = found || r == w
		}
		if !found {
			return false
		}
	}
	return true
}
