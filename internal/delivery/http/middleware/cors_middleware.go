package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for cross-origin requests from the
// portfolio frontend.
//
// Allowed origins:
// - The deployed frontend (FRONTEND_URL)
// - localhost dev servers (disabled when GIN_MODE=release)
// - Vercel preview deployments of this project
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	isProduction := os.Getenv("GIN_MODE") == "release"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		devOrigins := map[string]bool{
			"http://localhost:3000": true,
			"http://127.0.0.1:3000": true,
			"http://localhost:5173": true,
		}

		var isAllowed bool

		if frontendURL != "" && origin == frontendURL {
			isAllowed = true
		}

		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}

		// Vercel preview deployments: portfolio-*.vercel.app only, so an
		// unrelated project on vercel.app cannot piggyback on our CORS policy.
		if !isAllowed && strings.HasSuffix(origin, ".vercel.app") {
			subdomain := strings.TrimPrefix(origin, "https://")
			subdomain = strings.TrimSuffix(subdomain, ".vercel.app")
			if strings.HasPrefix(subdomain, "portfolio") ||
				strings.Contains(subdomain, "-portfolio-") {
				isAllowed = true
			}
		}

		// Same-origin requests carry no Origin header.
		if origin == "" {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			c.Header("Access-Control-Max-Age", "86400")
		}
		// If not allowed, no CORS headers are sent - browser will block the request

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
