package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docconnect/internal/authstate"
	"docconnect/internal/config"
	"docconnect/internal/models"
)

const (
	browserKey   = "browser"
	browserIDKey = "browser_id"
)

// Browser binds each request to the visitor's state, keyed by a cookie
// holding a random browser id. A missing or malformed cookie gets a fresh id.
func Browser(registry *authstate.Registry, cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := int(cfg.TTL / time.Second)

	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   maxAge,
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(browserIDKey, id)
		c.Set(browserKey, registry.Get(c.Request.Context(), id))
		c.Next()
	}
}

// CurrentBrowser returns the state bound by Browser, or nil outside it.
func CurrentBrowser(c *gin.Context) *authstate.Browser {
	v, ok := c.Get(browserKey)
	if !ok {
		return nil
	}
	b, _ := v.(*authstate.Browser)
	return b
}

func CurrentUser(c *gin.Context) *models.User {
	b := CurrentBrowser(c)
	if b == nil {
		return nil
	}
	return b.Provider.User()
}
