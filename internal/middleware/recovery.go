package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500. Page requests get a plain
// text body so the browser does not show raw json.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Interface("error", r).
				Str("path", c.Request.URL.Path).
				Str("request_id", RequestIDFrom(c)).
				Str("browser_id", c.GetString(browserIDKey)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
				c.Abort()
				c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal_server_error",
			})
		}()
		c.Next()
	}
}
