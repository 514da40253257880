package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowHeaders = "authorization, x-client-info, apikey, content-type, x-guest-id, x-request-id"

// CORS sets CORS headers and handles preflight requests.
// A "*" entry switches to wildcard mode: every response carries Allow-Origin "*" and no credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	wildcard := false
	for _, o := range allowedOrigins {
		trimmed := strings.TrimSpace(o)
		switch trimmed {
		case "":
		case "*":
			wildcard = true
		default:
			origins[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
			setCORSCommon(h)
		case origin != "":
			if _, ok := origins[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
				setCORSCommon(h)
			}
		}

		if c.Request.Method == http.MethodOptions {
			// Wildcard preflights answer 200 with an empty body.
			if wildcard {
				c.Status(http.StatusOK)
			} else {
				c.Status(http.StatusNoContent)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

func setCORSCommon(h http.Header) {
	h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	h.Set("Access-Control-Allow-Headers", allowHeaders)
	h.Set("Access-Control-Expose-Headers", "X-Request-Id")
	h.Set("Access-Control-Max-Age", "600")
}

// CORSRoutes applies wildcard CORS to publicPaths and the allowedOrigins policy everywhere else.
func CORSRoutes(allowedOrigins []string, publicPaths ...string) gin.HandlerFunc {
	private := CORS(allowedOrigins)
	public := CORS([]string{"*"})
	paths := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		paths[strings.TrimRight(p, "/")] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := paths[strings.TrimRight(c.Request.URL.Path, "/")]; ok {
			public(c)
			return
		}
		private(c)
	}
}
