package middleware

import (
	"net/http"
	"os"
	"strings"

	"bookshelf-api/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORS configures cross-origin headers. Outside production any origin is
// allowed; in production only origins listed in the comma-separated
// ALLOWED_ORIGINS env var are reflected back.
func CORS() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	allowed := map[string]struct{}{}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin := strings.TrimSpace(o); origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	const methods = "GET, POST, PUT, DELETE, OPTIONS"
	const headers = "Origin, Content-Type, Authorization"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Header("Vary", "Origin")

		switch {
		case !isProd:
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
			}
		}

		if c.Request.Method == http.MethodOptions {
			// Preflight. A disallowed origin gets 204 without the allow
			// headers and the browser blocks the call.
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
