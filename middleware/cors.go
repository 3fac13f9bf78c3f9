package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware reflects allowed origins from ALLOWED_ORIGINS
// (comma-separated). With no configuration it allows any origin, which is
// fine for the public submission form.
func CORSMiddleware() gin.HandlerFunc {
	var allowed []string
	for _, a := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			allowed = append(allowed, a)
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// With a configured allowlist, an unlisted origin gets the first
		// entry rather than the wildcard, so the list actually restricts.
		allowOrigin := "*"
		if len(allowed) > 0 {
			allowOrigin = allowed[0]
			for _, a := range allowed {
				if a == origin {
					allowOrigin = origin
					break
				}
			}
		}

		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
