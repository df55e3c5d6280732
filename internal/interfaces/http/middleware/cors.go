// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/your-org/commerce-api/internal/config"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Origins may use a single wildcard, e.g. https://*.example.com.
func CORS(cfg *config.Config) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Security.CORSAllowedOrigins,
		AllowedMethods:   cfg.Security.CORSAllowedMethods,
		AllowedHeaders:   cfg.Security.CORSAllowedHeaders,
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		// Preflight requests stop here
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
