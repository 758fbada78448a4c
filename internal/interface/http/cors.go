package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware lets browser frontends drive the screen and read the request id.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowOrigin, ok := matchOrigin(origin, allowed); ok {
			headers := c.Writer.Header()
			headers.Set("Access-Control-Allow-Origin", allowOrigin)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
			headers.Set("Access-Control-Expose-Headers", requestIDHeader)
			if allowOrigin != "*" {
				headers.Add("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// matchOrigin returns the Allow-Origin value for origin. An empty list allows every origin.
func matchOrigin(origin string, allowed []string) (string, bool) {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin == "" {
		return "", false
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, origin) {
			return origin, true
		}
	}
	return "", false
}
